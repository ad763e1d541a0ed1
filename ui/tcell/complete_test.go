package uitcell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"alpha.txt", "alpine.md", "beta.txt", ".hidden", "[x].txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "album"), 0755))
	dir += "/"

	tests := []struct {
		input      string
		filter     string
		want       string
		candidates []string
	}{
		{"al", "", "al", []string{"album/", "alpha.txt", "alpine.md"}},
		{"alp", "", "alp", []string{"alpha.txt", "alpine.md"}},
		{"alp", "*.txt", "alpha.txt", []string{"alpha.txt"}},
		{"al", "*.txt", "al", []string{"album/", "alpha.txt"}},
		{"b", "", "beta.txt", []string{"beta.txt"}},
		{".h", "", ".hidden", []string{".hidden"}},
		{"[", "", "[x].txt", []string{"[x].txt"}},
		{"zzz", "", "zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input+" "+tt.filter, func(t *testing.T) {
			got, candidates := complete(dir+tt.input, tt.filter)
			assert.Equal(t, dir+tt.want, got)
			assert.Equal(t, tt.candidates, candidates)
		})
	}
}

func TestEscapeMeta(t *testing.T) {
	assert.Equal(t, `a\*b\?\[c\]\{d\}`, escapeMeta("a*b?[c]{d}"))
	assert.Equal(t, "plain", escapeMeta("plain"))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "notes.txt"), expandHome("~/notes.txt"))
	assert.Equal(t, "/tmp/x", expandHome("/tmp/x"))
}
