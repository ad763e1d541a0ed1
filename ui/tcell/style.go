package uitcell

import tcell "github.com/gdamore/tcell/v2"

var (
	// body is the main editing buffer
	bodyStyle        tcell.Style
	bodyCursorStyle  tcell.Style
	bodyHilightStyle tcell.Style

	// title is the window title bar, label the file name line below it
	titleStyle      tcell.Style
	labelStyle      tcell.Style
	labelDirtyStyle tcell.Style

	// status is the bottom line, also used for prompts
	statusStyle tcell.Style

	// dialog is a modal box drawn over the body
	dialogStyle       tcell.Style
	dialogButtonStyle tcell.Style
	dialogFocusStyle  tcell.Style

	// unprintable rune
	unprintableStyle tcell.Style
)

// initStyles initializes the different styles (colors for background/foreground).
func initStyles() {
	bodyStyle = tcell.StyleDefault.
		Background(tcell.NewHexColor(0xffffea)).
		Foreground(tcell.ColorBlack)
	bodyCursorStyle = bodyStyle.
		Background(tcell.NewHexColor(0xeaea9e))
	bodyHilightStyle = bodyStyle.
		Background(tcell.NewHexColor(0xa6a65a))
	unprintableStyle = bodyStyle.
		Foreground(tcell.ColorRed)

	titleStyle = tcell.StyleDefault.
		Background(tcell.NewHexColor(0xeaffff)).
		Foreground(tcell.ColorBlack)
	labelStyle = titleStyle.
		Background(tcell.NewHexColor(0x8888cc))
	labelDirtyStyle = titleStyle.
		Background(tcell.NewHexColor(0x2222cc)).
		Foreground(tcell.ColorWhite)

	statusStyle = titleStyle

	dialogStyle = titleStyle
	dialogButtonStyle = labelStyle
	dialogFocusStyle = labelDirtyStyle
}
