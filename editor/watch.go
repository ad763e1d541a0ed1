package editor

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watcher reports changes made by other programs to the file behind the document. It
// watches the parent directory, so editors that save through a rename are noticed too.
type Watcher struct {
	watcher *fsnotify.Watcher
	changed chan string
	log     *slog.Logger
	cancel  context.CancelFunc
	done    chan struct{}

	mu   sync.Mutex
	dir  string // currently watched directory, "" when none
	file string // absolute path of the followed file
}

// NewWatcher starts a watcher that follows nothing. Stop it with Close.
func NewWatcher(ctx context.Context, log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	if log == nil {
		log = slog.Default()
	}
	runCtx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		watcher: fw,
		changed: make(chan string, 1),
		log:     log,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go w.run(runCtx)
	return w, nil
}

// Changed delivers the path of the followed file after it was written, replaced or
// removed. Bursts of events are coalesced.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Follow switches the watcher to path. Untitled stops following anything.
func (w *Watcher) Follow(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if path == Untitled || path == "" {
		w.unwatch()
		w.file = ""
		return nil
	}

	abs := AbsPath(path)
	dir := filepath.Dir(abs)
	w.file = abs
	if dir == w.dir {
		return nil
	}
	w.unwatch()
	if err := w.watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}
	w.dir = dir
	w.log.Debug("watching", "dir", dir, "file", abs)
	return nil
}

func (w *Watcher) unwatch() {
	if w.dir == "" {
		return
	}
	if err := w.watcher.Remove(w.dir); err != nil {
		w.log.Debug("unwatch failed", "dir", w.dir, "err", err.Error())
	}
	w.dir = ""
}

func (w *Watcher) target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			file := w.target()
			if file == "" || filepath.Clean(ev.Name) != file {
				continue
			}
			w.log.Debug("file changed on disk", "path", file, "op", ev.Op.String())
			select {
			case w.changed <- file:
			default: // one pending notification is enough
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error", "err", err.Error())
		}
	}
}

// Close stops the watcher and waits for its goroutine to finish.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	<-w.done
	return errors.Wrap(err, "close watcher")
}
