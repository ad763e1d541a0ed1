// Package editor holds the single document being edited: its path on disk, the text buffer
// and the selection. Whether the document is dirty is never stored; it is derived from the
// path, the buffer and the file system each time it is asked for.
package editor

import (
	"io"
	"log/slog"
	"strings"

	"github.com/prodhe/jot/gapbuffer"
)

// Untitled is the path of a document that has no file on disk yet.
const Untitled = "Untitled"

// AppName prefixes the window title.
const AppName = "jot"

// Document is the edit component. A UI of some sort operates on the document to
// manipulate its content and to open, save and close files.
type Document struct {
	path    string
	buf     *gapbuffer.Buffer
	q0, q1  int    // dot/cursor
	off     int    // offset for reading runes in buffer
	runeBuf []byte // temp buf to read rune at a time from gap buffer
	checker Checker
	log     *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithChecker sets the strategy used to decide whether the document is dirty.
func WithChecker(c Checker) Option {
	return func(d *Document) {
		d.checker = c
	}
}

// WithLogger sets the logger for the document.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) {
		d.log = l
	}
}

// New returns an empty, untitled document.
func New(opts ...Option) *Document {
	d := &Document{
		path: Untitled,
		buf:  gapbuffer.New(""),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.checker == nil {
		d.checker = NewSnapshotChecker()
	}
	if d.log == nil {
		d.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

// Path returns the file backing the document, or Untitled.
func (d *Document) Path() string {
	return d.path
}

// IsUntitled reports whether the document has no file on disk yet.
func (d *Document) IsUntitled() bool {
	return d.path == Untitled
}

// Content returns the entire text buffer as a string.
func (d *Document) Content() string {
	return d.buf.String()
}

// SetContent replaces the whole text buffer and puts the cursor at the start.
func (d *Document) SetContent(s string) {
	d.buf.Reset()
	d.buf.WriteString(s)
	d.SetDot(0, 0)
}

// Dirty reports whether the buffer differs from the file at the document path. A document
// whose file cannot be read is always dirty.
func (d *Document) Dirty() bool {
	if d.IsUntitled() {
		return d.buf.Len() > 0
	}
	changed, err := d.checker.Changed(d.path, d.Content())
	if err != nil {
		d.log.Debug("dirty check failed", "path", d.path, "err", err.Error())
		return true
	}
	return changed
}

// Indicator returns "*" for a dirty document and "" otherwise.
func (d *Document) Indicator() string {
	if d.Dirty() {
		return "*"
	}
	return ""
}

// Title is the text of the window title bar.
func (d *Document) Title() string {
	title, _ := d.Captions()
	return title
}

// Label is the short file name shown above the text, prefixed by the dirty indicator.
func (d *Document) Label() string {
	_, label := d.Captions()
	return label
}

// Captions returns both Title and Label with a single dirty check.
func (d *Document) Captions() (title, label string) {
	ind := d.Indicator()
	return AppName + " | " + d.path + ind, ind + BaseName(d.path)
}

// Invalidate makes the next dirty check look at the file again. Call it when the file
// may have changed behind the document's back.
func (d *Document) Invalidate() {
	d.checker.Forget()
}

// BaseName returns the last element of path, treating both slash and backslash as
// separators regardless of platform.
func BaseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
