package editor

import (
	"github.com/pkg/errors"
)

var (
	// ErrNoPath is returned when an untitled document is saved without a way to ask for
	// a file name.
	ErrNoPath = errors.New("no file name")

	// ErrCancelled is returned when the user backs out of a prompt.
	ErrCancelled = errors.New("cancelled")
)

// Choice is the answer to the save-before-closing question.
type Choice int

const (
	ChoiceCancel Choice = iota
	ChoiceSave
	ChoiceDiscard
)

func (c Choice) String() string {
	switch c {
	case ChoiceSave:
		return "save"
	case ChoiceDiscard:
		return "discard"
	default:
		return "cancel"
	}
}

// Prompter asks the user questions on behalf of the document. Implementations block
// until the user has answered.
type Prompter interface {
	// AskSave asks whether the named document should be saved before it goes away.
	AskSave(name string) Choice
	// AskPath asks for a file name. ok is false when the user cancelled.
	AskPath(title, initial string) (path string, ok bool)
}

// Open replaces the content with the text of the file at path and makes the absolute
// form of path the document path. On error the document is left untouched.
func (d *Document) Open(path string) error {
	path = AbsPath(path)
	text, err := ReadText(path)
	if err != nil {
		d.log.Warn("open failed", "path", path, "err", err.Error())
		return err
	}
	d.SetContent(text)
	d.path = path
	d.checker.Forget()
	d.log.Info("opened", "path", path, "bytes", len(text))
	return nil
}

// Save writes the content to the document path. An untitled document asks p for a path
// and continues as SaveAs.
func (d *Document) Save(p Prompter) error {
	if !d.IsUntitled() {
		return d.write(d.path)
	}
	if p == nil {
		return ErrNoPath
	}
	path, ok := p.AskPath("Save as", "")
	if !ok || path == "" {
		return ErrCancelled
	}
	return d.SaveAs(path)
}

// SaveAs writes the content to path and, if that succeeded, makes the absolute form of
// path the document path.
func (d *Document) SaveAs(path string) error {
	path = AbsPath(path)
	if err := d.write(path); err != nil {
		return err
	}
	d.path = path
	return nil
}

func (d *Document) write(path string) error {
	content := d.Content()
	if err := WriteText(path, content); err != nil {
		d.log.Error("save failed", "path", path, "err", err.Error())
		return err
	}
	d.checker.Forget()
	d.log.Info("saved", "path", path, "bytes", len(content))
	return nil
}

// Guard makes sure nothing is lost before the content goes away. A clean document passes
// without asking. A dirty one asks p: cancel stops, discard passes, save passes only if
// the save succeeded. The returned error is the save error, if any.
func (d *Document) Guard(p Prompter) (bool, error) {
	if !d.Dirty() {
		return true, nil
	}
	if p == nil {
		return false, ErrCancelled
	}

	choice := p.AskSave(BaseName(d.path))
	d.log.Debug("save prompt answered", "path", d.path, "choice", choice)
	switch choice {
	case ChoiceDiscard:
		return true, nil
	case ChoiceSave:
		// a save that fails or is cancelled keeps the document, unlike a discard
		if err := d.Save(p); err != nil {
			if errors.Is(err, ErrCancelled) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	default:
		return false, nil
	}
}

// Close resets the document to an empty Untitled one, after Guard allowed it. It reports
// whether the document was closed.
func (d *Document) Close(p Prompter) (bool, error) {
	ok, err := d.Guard(p)
	if !ok {
		return false, err
	}
	d.path = Untitled
	d.SetContent("")
	d.checker.Forget()
	d.log.Info("closed")
	return true, nil
}
