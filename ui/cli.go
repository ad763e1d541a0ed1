package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/prodhe/jot/editor"
)

// Cli implements ui.Interface with simple command-line driven user actions.
type Cli struct {
	doc     *editor.Document
	in      io.Reader
	out     io.Writer
	scanner *bufio.Scanner
}

func (c *Cli) Init(doc *editor.Document) error {
	c.doc = doc
	c.scanner = bufio.NewScanner(c.in)
	return nil
}

func (c *Cli) Close() {
}

// readLine returns the next input line. ok is false at the end of input.
func (c *Cli) readLine() (string, bool) {
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

// AskSave implements editor.Prompter. End of input counts as cancel.
func (c *Cli) AskSave(name string) editor.Choice {
	for {
		fmt.Fprintf(c.out, "Do you want to save %s before closing? [s]ave [d]iscard [c]ancel: ", name)
		line, ok := c.readLine()
		if !ok {
			return editor.ChoiceCancel
		}
		switch strings.ToLower(line) {
		case "s", "y", "yes", "save":
			return editor.ChoiceSave
		case "d", "n", "no", "discard":
			return editor.ChoiceDiscard
		case "c", "cancel":
			return editor.ChoiceCancel
		}
	}
}

// AskPath implements editor.Prompter.
func (c *Cli) AskPath(title, initial string) (string, bool) {
	fmt.Fprintf(c.out, "%s: ", title)
	line, ok := c.readLine()
	if !ok || line == "" {
		return "", false
	}
	return line, true
}

func (c *Cli) report(err error) {
	if err == nil || errors.Is(err, editor.ErrCancelled) {
		return
	}
	fmt.Fprintf(c.out, "?%v\n", err)
}

func (c *Cli) Listen() {
	for {
		line, ok := c.readLine()
		if !ok {
			return
		}
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "q": // quit
			closed, err := c.doc.Guard(c)
			c.report(err)
			if closed {
				return
			}
		case "o": // open file
			if arg == "" {
				fmt.Fprintln(c.out, "?file name")
				break
			}
			if ok, err := c.doc.Guard(c); !ok {
				c.report(err)
				break
			}
			c.report(c.doc.Open(arg))
		case "w": // write
			c.report(c.doc.Save(c))
		case "W": // write as
			if arg == "" {
				fmt.Fprintln(c.out, "?file name")
				break
			}
			c.report(c.doc.SaveAs(arg))
		case "x": // close file
			_, err := c.doc.Close(c)
			c.report(err)
		case "a": // append a line
			c.doc.SeekDot(0, io.SeekEnd)
			text := arg + "\n"
			if s := c.doc.Content(); s != "" && !strings.HasSuffix(s, "\n") {
				text = "\n" + text
			}
			c.doc.Write([]byte(text))
		case "p": // print content
			fmt.Fprint(c.out, c.doc.Content())
		case "t": // print title
			fmt.Fprintln(c.out, c.doc.Title())
		default:
			fmt.Fprintln(c.out, "?")
		}
	}
}
