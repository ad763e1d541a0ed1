package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhe/jot/editor"
	"github.com/prodhe/jot/settings"
)

func TestOpenInitial(t *testing.T) {
	dir := t.TempDir()
	last := filepath.Join(dir, "last.txt")
	arg := filepath.Join(dir, "arg.txt")
	require.NoError(t, os.WriteFile(last, []byte("last"), 0644))
	require.NoError(t, os.WriteFile(arg, []byte("arg"), 0644))
	missing := filepath.Join(dir, "missing.txt")

	tests := []struct {
		name    string
		file    string
		last    string
		path    string
		content string
		status  bool
	}{
		{"first run", "", editor.Untitled, editor.Untitled, "", false},
		{"empty setting", "", "", editor.Untitled, "", false},
		{"reopen last", "", last, last, "last", false},
		{"last is gone", "", missing, editor.Untitled, "", true},
		{"argument wins", arg, last, arg, "arg", false},
		{"missing argument", missing, last, editor.Untitled, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := editor.New()
			status := openInitial(doc, tt.file, tt.last)
			assert.Equal(t, tt.path, doc.Path())
			assert.Equal(t, tt.content, doc.Content())
			assert.Equal(t, tt.status, status != "", status)
		})
	}
}

// runLine runs a line mode session from dir with the settings file at conf and returns
// what it printed.
func runLine(t *testing.T, dir, conf, input string) string {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	settingsPath, lineMode = conf, true
	t.Cleanup(func() { settingsPath, lineMode = "", false })

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "", strings.NewReader(input), &out))
	return out.String()
}

func TestRunRemembersLastFile(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "jot", "settings.yaml")
	dirA, dirB := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dirA, "a.txt"), []byte("hello"), 0644))

	runLine(t, dirA, conf, "o a.txt\nq\n")

	st, err := settings.Load(conf)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(st.LastFile), st.LastFile)
	assert.Equal(t, "a.txt", filepath.Base(st.LastFile))

	// the next session starts somewhere else and still finds the file
	out := runLine(t, dirB, conf, "p\nq\n")
	assert.Equal(t, "hello", out)
}

func TestRunRemembersUntitledAfterClose(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "settings.yaml")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0644))

	runLine(t, dir, conf, "o a.txt\nq\n")
	runLine(t, dir, conf, "x\nq\n")

	st, err := settings.Load(conf)
	require.NoError(t, err)
	assert.Equal(t, editor.Untitled, st.LastFile)
}

func TestRunKeepsUnreadableSettings(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "settings.yaml")
	bad := "filters: [*.md\ntabstop: 8\n"
	require.NoError(t, os.WriteFile(conf, []byte(bad), 0644))
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0644))

	runLine(t, dir, conf, "o a.txt\nq\n")

	data, err := os.ReadFile(conf)
	require.NoError(t, err)
	assert.Equal(t, bad, string(data))
}
