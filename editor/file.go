package editor

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadText returns the text of the file at path. A leading UTF-8 byte order mark is not
// part of the text.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

// WriteText writes text verbatim to path, creating or truncating the file.
func WriteText(path, text string) error {
	if path == "" {
		return ErrNoPath
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return errors.Wrapf(err, "save %s", path)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return errors.Wrapf(err, "sync %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// AbsPath resolves path against the working directory. Untitled is returned unchanged.
func AbsPath(path string) string {
	if path == Untitled || path == "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
