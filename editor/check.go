package editor

import (
	"crypto/sha256"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Checker decides whether content differs from the text of the file at path.
type Checker interface {
	Changed(path, content string) (bool, error)
	// Forget drops anything remembered about the file, so the next call reads it again.
	Forget()
}

// DiskChecker reads the whole file on every call. It is always accurate and costs a full
// read per keystroke.
type DiskChecker struct{}

// Changed implements Checker.
func (DiskChecker) Changed(path, content string) (bool, error) {
	text, err := ReadText(path)
	if err != nil {
		return true, err
	}
	return text != content, nil
}

// Forget implements Checker.
func (DiskChecker) Forget() {}

// snapshot is what a SnapshotChecker knows about the file when it was last read.
type snapshot struct {
	name   string
	size   int64     // on disk, including any byte order mark
	mtime  time.Time // of file when last read
	length int       // of the text
	sha256 [sha256.Size]byte
}

// SnapshotChecker remembers the length and checksum of the file text and only reads the
// file again when its size or modification time changed. A rewrite that keeps both size
// and mtime goes unnoticed until Forget is called.
type SnapshotChecker struct {
	snap *snapshot
}

// NewSnapshotChecker returns a checker with nothing remembered.
func NewSnapshotChecker() *SnapshotChecker {
	return &SnapshotChecker{}
}

// Changed implements Checker.
func (c *SnapshotChecker) Changed(path, content string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		c.snap = nil
		return true, errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() {
		c.snap = nil
		return true, errors.Errorf("%s is a directory", path)
	}

	s := c.snap
	if s == nil || s.name != path || s.size != info.Size() || !s.mtime.Equal(info.ModTime()) {
		text, err := ReadText(path)
		if err != nil {
			c.snap = nil
			return true, err
		}
		s = &snapshot{
			name:   path,
			size:   info.Size(),
			mtime:  info.ModTime(),
			length: len(text),
			sha256: sha256.Sum256([]byte(text)),
		}
		c.snap = s
	}

	if len(content) != s.length {
		return true, nil
	}
	return sha256.Sum256([]byte(content)) != s.sha256, nil
}

// Forget implements Checker.
func (c *SnapshotChecker) Forget() {
	c.snap = nil
}
