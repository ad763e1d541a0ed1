package uitcell

import (
	"strings"

	tcell "github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/prodhe/jot/editor"
)

// Modal prompts run their own event loop on the UI goroutine and return once answered,
// the same way a dialog box blocks the window that opened it.

type button struct {
	label string
	keys  string // runes that pick the button
	value int
}

type dialog struct {
	title   string
	lines   []string
	buttons []button
	focus   int
	cancel  int // value for Esc
}

// nextKey waits for the next key event, handling resizes meanwhile. It returns nil when
// no more events will come.
func (t *Tcell) nextKey() *tcell.EventKey {
	for ev := range t.events {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			return ev
		case *tcell.EventResize:
			t.resize()
		}
	}
	return nil
}

func (t *Tcell) runDialog(d *dialog) int {
	for {
		t.win.Draw()
		t.drawDialog(d)
		t.screen.Show()

		ev := t.nextKey()
		if ev == nil {
			return d.cancel
		}
		switch ev.Key() {
		case tcell.KeyEscape:
			return d.cancel
		case tcell.KeyEnter:
			return d.buttons[d.focus].value
		case tcell.KeyLeft, tcell.KeyBacktab:
			d.focus = (d.focus + len(d.buttons) - 1) % len(d.buttons)
		case tcell.KeyRight, tcell.KeyTab:
			d.focus = (d.focus + 1) % len(d.buttons)
		case tcell.KeyRune:
			r := strings.ToLower(string(ev.Rune()))
			for _, b := range d.buttons {
				if strings.Contains(b.keys, r) {
					return b.value
				}
			}
		}
	}
}

func (t *Tcell) drawDialog(d *dialog) {
	sw, sh := t.screen.Size()

	buttons := 0
	for _, b := range d.buttons {
		buttons += runewidth.StringWidth(b.label) + 5
	}
	w := runewidth.StringWidth(d.title) + 6
	if buttons+3 > w {
		w = buttons + 3
	}
	for _, l := range d.lines {
		if lw := runewidth.StringWidth(l) + 4; lw > w {
			w = lw
		}
	}
	if w > sw {
		w = sw
	}
	h := len(d.lines) + 4
	x0, y0 := (sw-w)/2, (sh-h)/2

	put := func(x, y int, s string, style tcell.Style) int {
		for _, r := range s {
			if x >= x0+w-1 {
				break
			}
			t.screen.SetContent(x, y, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
		return x
	}

	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			c := ' '
			switch {
			case (y == y0 || y == y0+h-1) && (x == x0 || x == x0+w-1):
				c = '+'
			case y == y0 || y == y0+h-1:
				c = '-'
			case x == x0 || x == x0+w-1:
				c = '|'
			}
			t.screen.SetContent(x, y, c, nil, dialogStyle)
		}
	}
	put(x0+2, y0, " "+d.title+" ", dialogStyle)
	for i, l := range d.lines {
		put(x0+2, y0+1+i, l, dialogStyle)
	}
	x := x0 + 2
	for i, b := range d.buttons {
		style := dialogButtonStyle
		if i == d.focus {
			style = dialogFocusStyle
		}
		x = put(x, y0+h-2, "[ "+b.label+" ]", style) + 1
	}
	t.screen.HideCursor()
}

// AskSave implements editor.Prompter.
func (t *Tcell) AskSave(name string) editor.Choice {
	v := t.runDialog(&dialog{
		title: "Save before closing?",
		lines: []string{"Do you want to save " + name + " before closing?"},
		buttons: []button{
			{"Yes", "ys", int(editor.ChoiceSave)},
			{"No", "nd", int(editor.ChoiceDiscard)},
			{"Cancel", "c", int(editor.ChoiceCancel)},
		},
		cancel: int(editor.ChoiceCancel),
	})
	return editor.Choice(v)
}

// AskPath implements editor.Prompter.
func (t *Tcell) AskPath(title, initial string) (string, bool) {
	path, ok := t.readLine(title, initial, false)
	return expandHome(path), ok
}

func (t *Tcell) confirm(title, msg string) bool {
	return t.runDialog(&dialog{
		title:   title,
		lines:   []string{msg},
		buttons: []button{{"Yes", "y", 1}, {"No", "n", 0}},
		cancel:  0,
	}) == 1
}

func (t *Tcell) alert(title string, lines ...string) {
	t.runDialog(&dialog{
		title:   title,
		lines:   lines,
		buttons: []button{{"OK", "o ", 0}},
	})
}

// readLine edits a single line on the status row. With filters, Tab completes file names
// and ^T switches between the filters.
func (t *Tcell) readLine(label, initial string, filtered bool) (string, bool) {
	text := []rune(initial)
	filter := 0
	hint := ""
	for {
		prompt := label
		if filtered && len(t.filters) > 0 {
			prompt += " [" + t.filters[filter] + "]"
		}
		prompt += ": "

		t.win.Draw()
		_, sh := t.screen.Size()
		x := t.win.drawLine(t.win.x, sh-1, prompt+string(text), statusStyle)
		t.screen.ShowCursor(x, sh-1)
		if hint != "" {
			x = t.win.drawLine(x+2, sh-1, hint, statusStyle)
		}
		t.win.fill(x, sh-1, statusStyle)
		t.screen.Show()

		ev := t.nextKey()
		if ev == nil {
			return "", false
		}
		hint = ""
		switch ev.Key() {
		case tcell.KeyEnter:
			return strings.TrimSpace(string(text)), true
		case tcell.KeyEscape, tcell.KeyCtrlG:
			return "", false
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(text) > 0 {
				text = text[:len(text)-1]
			}
		case tcell.KeyCtrlU:
			text = text[:0]
		case tcell.KeyCtrlT:
			if len(t.filters) > 0 {
				filter = (filter + 1) % len(t.filters)
			}
		case tcell.KeyTab:
			f := ""
			if filtered && len(t.filters) > 0 {
				f = t.filters[filter]
			}
			completed, candidates := complete(string(text), f)
			text = []rune(completed)
			if len(candidates) > 1 {
				hint = strings.Join(candidates, " ")
			}
		case tcell.KeyRune:
			text = append(text, ev.Rune())
		}
	}
}
