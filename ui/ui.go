package ui

import (
	"io"

	"github.com/prodhe/jot/editor"
	uitcell "github.com/prodhe/jot/ui/tcell"
)

type Interface interface {
	// Init initializes the user interface around the document.
	Init(doc *editor.Document) error

	// Close will close and clean up any resources held by the UI.
	Close()

	// Listen loops for events and acts upon the document until the user quits. It is up
	// to the implementation to decide what events it will look for and how to handle
	// them, be it key presses in a terminal or commands read line by line.
	Listen()
}

func NewTcell(opts ...uitcell.Option) Interface {
	return uitcell.New(opts...)
}

func NewCli(in io.Reader, out io.Writer) Interface {
	return &Cli{in: in, out: out}
}
