package uitcell

import (
	"io"
	"time"

	"github.com/atotto/clipboard"
	tcell "github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/prodhe/jot/editor"
)

const (
	RuneWidthZero  = '?'
	ClickThreshold = 500 // in milliseconds to count as double click
)

// Clipboard is the system clipboard as seen by the view.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// View draws the document text and turns key and mouse events into edits.
type View struct {
	x, y, w, h int
	screen     tcell.Screen
	text       *editor.Document
	clip       Clipboard
	scrollpos  int // offset of the first visible row
	tabstop    int
	focused    bool
	readOnly   bool
	anchor     int       // fixed end of a keyboard selection, -1 when none
	mclicktime time.Time // last mouse click in time
	mclickpos  int       // byte offset accounting for runes
	mpressed   bool
	err        error // last clipboard error, picked up by the window
}

func newView(s tcell.Screen, doc *editor.Document, clip Clipboard, tabstop int) *View {
	if tabstop < 1 {
		tabstop = 4
	}
	return &View{
		screen:  s,
		text:    doc,
		clip:    clip,
		tabstop: tabstop,
		focused: true,
		anchor:  -1,
	}
}

func (v *View) Resize(x, y, w, h int) {
	v.x, v.y, v.w, v.h = x, y, w, h
}

// Cursor returns start of dot.
func (v *View) Cursor() int {
	q0, _ := v.text.Dot()
	return q0
}

// Reset scrolls back to the top, for when the document content was replaced.
func (v *View) Reset() {
	v.scrollpos = 0
	v.anchor = -1
	v.mpressed = false
}

// cellWidth is the number of cells r takes when drawn at column col of a row.
func (v *View) cellWidth(r rune, col int) int {
	if r == '\t' {
		return v.tabstop - col%v.tabstop
	}
	rw := runewidth.RuneWidth(r)
	if rw == 0 {
		rw = 1
	}
	return rw
}

// nextRow returns the offset where the visual row starting at offset ends, accounting
// for soft wraps at the view width. eof is true when the row runs into the end of the
// buffer instead of a newline or a wrap.
func (v *View) nextRow(offset int) (next int, eof bool) {
	pos, err := v.text.Seek(int64(offset), io.SeekStart)
	if err != nil {
		return offset, true
	}
	offset = int(pos)
	col := 0
	for {
		r, size, err := v.text.ReadRune()
		if err != nil {
			return offset, true
		}
		if r == '\n' {
			return offset + size, false
		}
		rw := v.cellWidth(r, col)
		if col > 0 && col+rw > v.w {
			return offset, false
		}
		col += rw
		offset += size
	}
}

// rowOf returns the visual row, counted from scrollpos, that offset is drawn on.
func (v *View) rowOf(offset int) int {
	row, start := 0, v.scrollpos
	for {
		next, eof := v.nextRow(start)
		if eof || offset < next {
			return row
		}
		start = next
		row++
	}
}

// lineStart returns the offset of the first byte of the line holding offset.
func (v *View) lineStart(offset int) int {
	return offset - v.text.PrevDelim('\n', offset)
}

// ScrollToCursor moves scrollpos so that the cursor is on screen.
func (v *View) ScrollToCursor() {
	if v.h <= 0 || v.w <= 0 {
		return
	}
	c := v.Cursor()
	if c < v.scrollpos {
		v.scrollpos = v.lineStart(c)
	}
	for row := v.rowOf(c); row >= v.h; row-- {
		next, eof := v.nextRow(v.scrollpos)
		if eof {
			break
		}
		v.scrollpos = next
	}
}

// Scroll moves the visible part of the buffer n rows. Negative means upwards.
func (v *View) Scroll(n int) {
	for ; n > 0; n-- {
		next, eof := v.nextRow(v.scrollpos)
		if eof {
			break
		}
		v.scrollpos = next
	}
	for ; n < 0 && v.scrollpos > 0; n++ {
		// back to the start of the previous line, then forward by rows until just
		// before where we were
		end := v.scrollpos
		start := v.lineStart(end - 1)
		for {
			next, eof := v.nextRow(start)
			if eof || next >= end {
				break
			}
			start = next
		}
		v.scrollpos = start
	}
}

// XYToOffset translates screen coordinates to a byte offset in the buffer, accounting for
// rune width, tabstops and soft wraps.
func (v *View) XYToOffset(x, y int) int {
	start := v.scrollpos
	for row := v.y; row < y; row++ {
		next, eof := v.nextRow(start)
		if eof {
			return v.text.Len()
		}
		start = next
	}

	offset, col := start, 0
	for col < x-v.x {
		r, size, err := v.text.ReadRuneAt(offset)
		if err != nil || r == '\n' {
			break
		}
		rw := v.cellWidth(r, col)
		if col > 0 && col+rw > v.w {
			break
		}
		col += rw
		offset += size
	}
	return offset
}

func (v *View) Draw() {
	v.ScrollToCursor()

	q0, q1 := v.text.Dot()
	x, y := v.x, v.y
	cursorShown := false
	showCursor := func(x, y int) {
		if v.focused && q0 == q1 {
			v.screen.ShowCursor(x, y)
			v.screen.SetContent(x, y, ' ', nil, bodyCursorStyle)
			cursorShown = true
		}
	}
	clearRow := func(from, y int) {
		for ; from < v.x+v.w; from++ {
			v.screen.SetContent(from, y, ' ', nil, bodyStyle)
		}
	}

	v.text.Seek(int64(v.scrollpos), io.SeekStart)
	for i := v.scrollpos; y < v.y+v.h; {
		r, n, err := v.text.ReadRune()
		if err == io.EOF {
			if i == q0 {
				if x >= v.x+v.w && y+1 < v.y+v.h {
					clearRow(x, y)
					x, y = v.x, y+1
				}
				clearRow(x, y)
				showCursor(x, y)
				x++
			}
			break
		}
		if err != nil {
			break
		}

		rw := v.cellWidth(r, x-v.x)
		if r != '\n' && x > v.x && x+rw > v.x+v.w { // soft wrap
			clearRow(x, y)
			x, y = v.x, y+1
			if y >= v.y+v.h {
				break
			}
			rw = v.cellWidth(r, 0)
		}

		style := bodyStyle
		if i >= q0 && i < q1 {
			style = bodyHilightStyle
		}
		if i == q0 {
			showCursor(x, y)
			if q0 == q1 {
				style = bodyCursorStyle
			}
		}

		switch {
		case r == '\n':
			v.screen.SetContent(x, y, ' ', nil, style)
			clearRow(x+1, y)
			x, y = v.x, y+1
		case r == '\t':
			for j := 0; j < rw; j++ {
				v.screen.SetContent(x+j, y, ' ', nil, style)
			}
			x += rw
		case runewidth.RuneWidth(r) == 0:
			v.screen.SetContent(x, y, RuneWidthZero, nil, unprintableStyle)
			x++
		default:
			v.screen.SetContent(x, y, r, nil, style)
			x += rw
		}
		i += n
	}

	// clear the rest of the view
	if y < v.y+v.h {
		clearRow(x, y)
	}
	for y++; y < v.y+v.h; y++ {
		clearRow(v.x, y)
	}

	if v.focused && !cursorShown {
		v.screen.HideCursor()
	}
}

// move sets the cursor to offset. With extend, the selection grows from where it was
// anchored instead.
func (v *View) move(offset int, extend bool) {
	if !extend {
		v.anchor = -1
		v.text.SetDot(offset, offset)
		return
	}
	if v.anchor < 0 {
		q0, q1 := v.text.Dot()
		v.anchor = q0
		if offset < q0 {
			v.anchor = q1
		}
	}
	v.text.SetDot(v.anchor, offset)
}

// head is the moving end of the selection.
func (v *View) head() int {
	q0, q1 := v.text.Dot()
	if v.anchor >= 0 && v.anchor == q0 {
		return q1
	}
	return q0
}

// column returns the number of runes between the start of the line and offset.
func (v *View) column(offset int) int {
	n := 0
	for o := v.lineStart(offset); o < offset; o = v.text.NextRune(o) {
		n++
	}
	return n
}

// atColumn returns the offset of the col'th rune on the line starting at start, or the
// end of that line.
func (v *View) atColumn(start, col int) int {
	o := start
	for ; col > 0; col-- {
		r, _, err := v.text.ReadRuneAt(o)
		if err != nil || r == '\n' {
			break
		}
		o = v.text.NextRune(o)
	}
	return o
}

func (v *View) lineUp(offset int) int {
	start := v.lineStart(offset)
	if start == 0 {
		return 0
	}
	return v.atColumn(v.lineStart(start-1), v.column(offset))
}

func (v *View) lineDown(offset int) int {
	end := offset + v.text.NextDelim('\n', offset)
	if end >= v.text.Len() {
		return v.text.Len()
	}
	return v.atColumn(end+1, v.column(offset))
}

func (v *View) insert(s string) {
	if v.readOnly {
		return
	}
	v.anchor = -1
	v.text.Write([]byte(s))
}

func (v *View) delete(forward bool) {
	if v.readOnly {
		return
	}
	v.anchor = -1
	q0, q1 := v.text.Dot()
	if forward && q0 == q1 {
		v.text.SetDot(q0, v.text.NextRune(q0))
	}
	v.text.Delete()
}

func (v *View) copy() bool {
	s := v.text.ReadDot()
	if s == "" {
		return false
	}
	if err := v.clip.WriteAll(s); err != nil {
		v.err = err
		return false
	}
	return true
}

func (v *View) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		mx, my := ev.Position()
		switch ev.Buttons() {
		case tcell.ButtonNone: // on button release
			v.mpressed = false
		case tcell.ButtonPrimary:
			pos := v.XYToOffset(mx, my)
			if v.mpressed { // select text via click-n-drag
				v.text.SetDot(v.mclickpos, pos)
				return
			}
			v.mpressed = true
			v.mclickpos = pos
			v.anchor = -1

			if ev.When().Sub(v.mclicktime) < ClickThreshold*time.Millisecond {
				// double click selects the line
				start := v.lineStart(pos)
				v.text.SetDot(start, start+v.text.NextDelim('\n', start))
			} else {
				v.text.SetDot(pos, pos)
			}
			v.mclicktime = ev.When()
		case tcell.WheelUp:
			v.Scroll(-1)
		case tcell.WheelDown:
			v.Scroll(1)
		}
	case *tcell.EventKey:
		extend := ev.Modifiers()&tcell.ModShift != 0
		switch ev.Key() {
		case tcell.KeyRight:
			_, q1 := v.text.Dot()
			if !extend && q1 > v.Cursor() {
				v.move(q1, false)
				return
			}
			v.move(v.text.NextRune(v.head()), extend)
		case tcell.KeyLeft:
			if !extend && v.text.ReadDot() != "" {
				v.move(v.Cursor(), false)
				return
			}
			v.move(v.text.PrevRune(v.head()), extend)
		case tcell.KeyUp:
			v.move(v.lineUp(v.head()), extend)
		case tcell.KeyDown:
			v.move(v.lineDown(v.head()), extend)
		case tcell.KeyHome, tcell.KeyCtrlA: // line start
			v.move(v.lineStart(v.head()), extend)
		case tcell.KeyEnd, tcell.KeyCtrlE: // line end
			h := v.head()
			v.move(h+v.text.NextDelim('\n', h), extend)
		case tcell.KeyPgUp:
			v.Scroll(-(v.h - 1))
			v.move(v.XYToOffset(v.x, v.y), false)
		case tcell.KeyPgDn:
			v.Scroll(v.h - 1)
			v.move(v.XYToOffset(v.x, v.y), false)
		case tcell.KeyEnter:
			v.insert("\n")
		case tcell.KeyTab:
			v.insert("\t")
		case tcell.KeyBackspace2:
			v.delete(false)
		case tcell.KeyDelete:
			v.delete(true)
		case tcell.KeyCtrlC: // copy to clipboard
			v.copy()
		case tcell.KeyCtrlX: // cut to clipboard
			if !v.readOnly && v.copy() {
				v.delete(false)
			}
		case tcell.KeyCtrlV: // paste from clipboard
			s, err := v.clip.ReadAll()
			if err != nil {
				v.err = err
				return
			}
			v.insert(s)
		case tcell.KeyRune:
			if ev.Modifiers()&tcell.ModAlt != 0 {
				return
			}
			v.insert(string(ev.Rune()))
		}
	}
}
