package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prodhe/jot/editor"
	"github.com/prodhe/jot/settings"
	"github.com/prodhe/jot/ui"
	uitcell "github.com/prodhe/jot/ui/tcell"
)

func main() {
	Execute()
}

// run edits file, or the file from the last session when file is empty, until the user
// quits. The document path at that point is remembered for the next session, unless the
// settings file could not be read.
func run(ctx context.Context, file string, in io.Reader, out io.Writer) error {
	log := slog.Default()

	path := settingsPath
	if path == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	st, loadErr := settings.Load(path)
	if loadErr != nil {
		log.Warn("using default settings", "err", loadErr.Error())
	}

	doc := editor.New(editor.WithLogger(log))
	status := openInitial(doc, file, st.LastFile)

	var iface ui.Interface
	if lineMode {
		if status != "" {
			fmt.Fprintln(out, "?"+status)
		}
		iface = ui.NewCli(in, out)
	} else {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		opts := []uitcell.Option{
			uitcell.WithLogger(log),
			uitcell.WithFilters(st.Filters),
			uitcell.WithTabstop(st.Tabstop),
			uitcell.WithStatus(status),
		}
		w, err := editor.NewWatcher(ctx, log)
		if err != nil {
			log.Warn("file watcher unavailable", "err", err.Error())
		} else {
			defer w.Close()
			opts = append(opts, uitcell.WithWatcher(w))
		}
		iface = ui.NewTcell(opts...)
	}

	if err := iface.Init(doc); err != nil {
		return err
	}
	iface.Listen()
	iface.Close()

	if loadErr != nil {
		// keep the file the user has to fix
		log.Warn("not saving settings over unreadable file", "path", path)
		return nil
	}
	st.LastFile = doc.Path()
	if err := st.Save(path); err != nil {
		log.Error("cannot save settings", "path", path, "err", err.Error())
		return err
	}
	log.Debug("saved settings", "path", path, "last_file", st.LastFile)
	return nil
}

// openInitial loads file, or last when file is empty. It returns a message for the user
// when nothing could be loaded, leaving the document untitled.
func openInitial(doc *editor.Document, file, last string) string {
	if file == "" {
		if last == "" || last == editor.Untitled {
			return ""
		}
		if err := doc.Open(last); err != nil {
			return "cannot reopen " + last
		}
		return ""
	}
	if err := doc.Open(file); err != nil {
		return err.Error()
	}
	return ""
}
