package editor_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhe/jot/editor"
)

func TestCheckersAgree(t *testing.T) {
	path := writeFile(t, "f.txt", "hello")
	checkers := map[string]editor.Checker{
		"disk":     editor.DiskChecker{},
		"snapshot": editor.NewSnapshotChecker(),
	}

	steps := []struct {
		name    string
		disk    string // written to the file before the check, unless empty
		content string
		want    bool
	}{
		{"same", "", "hello", false},
		{"longer", "", "hello!", true},
		{"same length", "", "jello", true},
		{"back", "", "hello", false},
		{"file rewritten", "goodbye", "hello", true},
		{"caught up", "", "goodbye", false},
	}

	for _, st := range steps {
		if st.disk != "" {
			require.NoError(t, os.WriteFile(path, []byte(st.disk), 0644))
			// make sure the rewrite is visible in the mtime
			later := time.Now().Add(time.Duration(len(st.name)) * time.Second)
			require.NoError(t, os.Chtimes(path, later, later))
		}
		for name, c := range checkers {
			got, err := c.Changed(path, st.content)
			require.NoError(t, err, "%s: %s", name, st.name)
			assert.Equal(t, st.want, got, "%s: %s", name, st.name)
		}
	}
}

func TestSnapshotCheckerSkipsUnchangedFile(t *testing.T) {
	path := writeFile(t, "f.txt", "hello")
	c := editor.NewSnapshotChecker()

	changed, err := c.Changed(path, "hello")
	require.NoError(t, err)
	require.False(t, changed)

	// Same size and mtime: the snapshot is trusted until forgotten.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("jello"), 0644))
	require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime()))

	changed, err = c.Changed(path, "hello")
	require.NoError(t, err)
	assert.False(t, changed)

	c.Forget()
	changed, err = c.Changed(path, "hello")
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestCheckerErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")

	for name, c := range map[string]editor.Checker{
		"disk":     editor.DiskChecker{},
		"snapshot": editor.NewSnapshotChecker(),
	} {
		changed, err := c.Changed(missing, "")
		assert.Error(t, err, name)
		assert.True(t, changed, name)

		changed, err = c.Changed(dir, "")
		assert.Error(t, err, name)
		assert.True(t, changed, name)
	}
}

func TestDocumentWithDiskChecker(t *testing.T) {
	path := writeFile(t, "a.txt", "hello")
	d := editor.New(editor.WithChecker(editor.DiskChecker{}))
	require.NoError(t, d.Open(path))

	assert.Equal(t, "", d.Indicator())
	d.SetContent("hello!")
	assert.Equal(t, "*", d.Indicator())
}
