// Package uitcell is the full-screen terminal front end.
package uitcell

import (
	"io"
	"log/slog"
	"path/filepath"

	tcell "github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/prodhe/jot/editor"
)

const aboutText = "A minimal editor for a single plain text file."

// Tcell implements ui.Interface on a tcell screen.
type Tcell struct {
	screen  tcell.Screen
	doc     *editor.Document
	win     *Window
	body    *View
	watcher *editor.Watcher
	clip    Clipboard
	filters []string
	tabstop int
	log     *slog.Logger
	status  string

	events chan tcell.Event
	quit   bool
}

// Option configures the terminal front end.
type Option func(*Tcell)

// WithScreen uses s instead of the terminal. Init still initializes it.
func WithScreen(s tcell.Screen) Option {
	return func(t *Tcell) { t.screen = s }
}

// WithWatcher follows the document file with w to refresh the dirty indicator when the
// file changes on disk.
func WithWatcher(w *editor.Watcher) Option {
	return func(t *Tcell) { t.watcher = w }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c Clipboard) Option {
	return func(t *Tcell) { t.clip = c }
}

// WithFilters sets the glob patterns offered by the open prompt.
func WithFilters(patterns []string) Option {
	return func(t *Tcell) { t.filters = patterns }
}

// WithTabstop sets the tab width of the text body.
func WithTabstop(n int) Option {
	return func(t *Tcell) { t.tabstop = n }
}

// WithStatus shows msg on the status line until the first key press.
func WithStatus(msg string) Option {
	return func(t *Tcell) { t.status = msg }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tcell) { t.log = l }
}

// New returns an uninitialized terminal front end.
func New(opts ...Option) *Tcell {
	t := &Tcell{tabstop: 4, clip: systemClipboard{}}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return t
}

func (t *Tcell) Init(doc *editor.Document) error {
	t.doc = doc

	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return errors.Wrap(err, "new screen")
		}
		t.screen = s
	}
	if err := t.screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}

	initStyles()
	t.screen.SetStyle(bodyStyle)
	t.screen.EnableMouse()
	t.screen.Clear()

	t.body = newView(t.screen, doc, t.clip, t.tabstop)
	t.win = newWindow(t.screen, doc, t.body)
	t.win.SetStatus(t.status)
	t.resize()
	t.follow()

	t.events = make(chan tcell.Event, 100)
	return nil
}

func (t *Tcell) Close() {
	if t.screen == nil {
		return
	}
	t.screen.DisableMouse()
	t.screen.Fini()
}

func (t *Tcell) resize() {
	w, h := t.screen.Size()
	t.win.Resize(0, 0, w, h)
	t.screen.Sync()
}

func (t *Tcell) redraw() {
	t.win.Draw()
	t.screen.Show()
}

// follow points the watcher at the current document path.
func (t *Tcell) follow() {
	if t.watcher == nil {
		return
	}
	if err := t.watcher.Follow(t.doc.Path()); err != nil {
		t.log.Warn("cannot watch file", "path", t.doc.Path(), "err", err.Error())
	}
}

func (t *Tcell) Listen() {
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil { // screen finalized
				return
			}
			t.events <- ev
		}
	}()

	var changed <-chan string
	if t.watcher != nil {
		changed = t.watcher.Changed()
	}

	for !t.quit {
		t.redraw()

		select {
		case ev := <-t.events:
			t.handleEvent(ev)
		case path := <-changed:
			t.log.Debug("refreshing indicator", "path", path)
			t.doc.Invalidate()
		}
	}
}

func (t *Tcell) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.resize()
	case *tcell.EventKey:
		t.win.SetStatus("")
		t.handleKey(ev)
	case *tcell.EventMouse:
		t.body.HandleEvent(ev)
	}
	if t.body.err != nil {
		t.fail("Clipboard", t.body.err)
		t.body.err = nil
	}
}

// handleKey runs the window commands and passes everything else to the body.
func (t *Tcell) handleKey(ev *tcell.EventKey) {
	shift := ev.Modifiers()&tcell.ModShift != 0
	alt := ev.Modifiers()&tcell.ModAlt != 0

	switch ev.Key() {
	case tcell.KeyCtrlO:
		t.CmdOpen()
	case tcell.KeyCtrlS:
		if shift {
			t.CmdSaveAs()
		} else {
			t.CmdSave()
		}
	case tcell.KeyCtrlQ:
		t.CmdExit()
	case tcell.KeyCtrlH: // same code as KeyBackspace; terminals send KeyBackspace2 for the key
		t.CmdAbout()
	case tcell.KeyCtrlX:
		if shift {
			t.CmdClose()
		} else {
			t.body.HandleEvent(ev)
		}
	case tcell.KeyCtrlL: // refresh terminal
		t.screen.Clear()
		t.screen.Sync()
	case tcell.KeyRune:
		switch {
		case alt && (ev.Rune() == 's' || ev.Rune() == 'S'):
			t.CmdSaveAs()
		case alt && (ev.Rune() == 'x' || ev.Rune() == 'X'):
			t.CmdClose()
		default:
			t.body.HandleEvent(ev)
		}
	default:
		t.body.HandleEvent(ev)
	}
}

// fail shows err in a modal box unless the user cancelled.
func (t *Tcell) fail(title string, err error) {
	if err == nil || errors.Is(err, editor.ErrCancelled) {
		return
	}
	t.log.Error(title, "err", err.Error())
	t.alert(title, err.Error())
}

func (t *Tcell) dir() string {
	if t.doc.IsUntitled() {
		return ""
	}
	return filepath.Dir(t.doc.Path()) + string(filepath.Separator)
}

// CmdOpen asks for a file and loads it, after the user had a chance to save changes.
func (t *Tcell) CmdOpen() {
	ok, err := t.doc.Guard(t)
	if !ok {
		t.fail("Save", err)
		return
	}
	path, ok := t.readLine("Open", t.dir(), true)
	if !ok || path == "" {
		return
	}
	if err := t.doc.Open(expandHome(path)); err != nil {
		t.fail("Open", err)
		return
	}
	t.body.Reset()
	t.follow()
	t.win.SetStatus("opened " + t.doc.Path())
}

func (t *Tcell) CmdSave() {
	if err := t.doc.Save(t); err != nil {
		t.fail("Save", err)
		return
	}
	t.follow()
	t.win.SetStatus("saved " + t.doc.Path())
}

func (t *Tcell) CmdSaveAs() {
	initial := t.dir()
	if !t.doc.IsUntitled() {
		initial = t.doc.Path()
	}
	path, ok := t.AskPath("Save as", initial)
	if !ok || path == "" {
		return
	}
	if err := t.doc.SaveAs(path); err != nil {
		t.fail("Save as", err)
		return
	}
	t.follow()
	t.win.SetStatus("saved " + t.doc.Path())
}

func (t *Tcell) CmdClose() {
	closed, err := t.doc.Close(t)
	if !closed {
		t.fail("Save", err)
		return
	}
	t.body.Reset()
	t.follow()
}

func (t *Tcell) CmdAbout() {
	t.body.readOnly = true
	defer func() { t.body.readOnly = false }()
	t.alert("About "+editor.AppName, aboutText, "", keyHints)
}

// CmdExit asks for confirmation, then for unsaved changes, and ends Listen.
func (t *Tcell) CmdExit() {
	if !t.confirm("Confirm Exit", "Are you sure you want to exit?") {
		return
	}
	ok, err := t.doc.Guard(t)
	if !ok {
		t.fail("Save", err)
		return
	}
	t.quit = true
}
