package uitcell

import (
	tcell "github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/prodhe/jot/editor"
)

const keyHints = "^O open  ^S save  M-s save as  M-x close  ^H about  ^Q quit"

// Window is the title bar, the file name label, the text body and a status line. It
// handles all key events apart from the few the loop itself takes care of.
type Window struct {
	x, y, w, h int
	screen     tcell.Screen
	doc        *editor.Document
	body       *View
	status     string // one-shot message, cleared on the next key
}

func newWindow(s tcell.Screen, doc *editor.Document, body *View) *Window {
	return &Window{screen: s, doc: doc, body: body}
}

// Resize will set new values for position and width height. Meant to be used on a resize
// event for proper recalculation during the Draw().
func (win *Window) Resize(x, y, w, h int) {
	win.x, win.y, win.w, win.h = x, y, w, h
	bodyh := h - 3
	if bodyh < 0 {
		bodyh = 0
	}
	win.body.Resize(x, y+2, w, bodyh)
}

// drawLine writes s at row y from column x on, filling the rest of the row with style.
// It returns the column after the text.
func (win *Window) drawLine(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= win.x+win.w {
			break
		}
		win.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func (win *Window) fill(x, y int, style tcell.Style) {
	for ; x < win.x+win.w; x++ {
		win.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (win *Window) Draw() {
	if win.h <= 0 {
		return
	}
	title, label := win.doc.Captions()

	x := win.drawLine(win.x, win.y, " "+title, titleStyle)
	win.fill(x, win.y, titleStyle)

	if win.h > 1 {
		style := labelStyle
		if label != "" && label[0] == '*' {
			style = labelDirtyStyle
		}
		x = win.drawLine(win.x, win.y+1, " "+label+" ", style)
		win.fill(x, win.y+1, bodyStyle)
	}

	win.body.Draw()

	if win.h > 2 {
		status := win.status
		if status == "" {
			status = keyHints
		}
		x = win.drawLine(win.x, win.y+win.h-1, " "+status, statusStyle)
		win.fill(x, win.y+win.h-1, statusStyle)
	}
}

// SetStatus shows msg on the status line until the next key press.
func (win *Window) SetStatus(msg string) {
	win.status = msg
}
