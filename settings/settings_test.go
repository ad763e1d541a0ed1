package settings_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhe/jot/editor"
	"github.com/prodhe/jot/settings"
)

func TestLoadMissingGivesDefaults(t *testing.T) {
	s, err := settings.Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, settings.Default(), s)
	assert.Equal(t, editor.Untitled, s.LastFile)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jot", settings.FileName)
	want := settings.Settings{
		LastFile: "/home/me/notes.txt",
		Filters:  []string{"*.md"},
		Tabstop:  8,
	}

	require.NoError(t, want.Save(path))
	got, err := settings.Load(path)

	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), settings.FileName)
	require.NoError(t, os.WriteFile(path, []byte("last_file: /tmp/a.txt\n"), 0644))

	s, err := settings.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/a.txt", s.LastFile)
	assert.Equal(t, settings.Default().Filters, s.Filters)
	assert.Equal(t, 4, s.Tabstop)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), settings.FileName)
	require.NoError(t, os.WriteFile(path, []byte("last_file: [unclosed\n"), 0644))

	s, err := settings.Load(path)

	assert.Error(t, err)
	assert.Equal(t, settings.Default(), s)
}

func TestDefaultPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("HOME", "/home/me")

	path, err := settings.DefaultPath()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/cfg", "jot", "settings.yaml"), path)
}
