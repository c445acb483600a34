package promptgen

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors a prompts directory and invokes a callback after changes
// settle. Rapid saves are coalesced by the debounce window.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func()
	logger   *zap.Logger
	fsw      *fsnotify.Watcher
}

// NewWatcher creates a Watcher for dir. onChange runs on the watcher
// goroutine after each debounced burst of markdown changes.
func NewWatcher(dir string, onChange func(), logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		dir:      dir,
		debounce: 500 * time.Millisecond,
		onChange: onChange,
		logger:   logger,
		fsw:      fsw,
	}, nil
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	if err := w.fsw.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info("watching prompts directory", zap.String("dir", w.dir))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !isPromptEvent(event) {
				continue
			}
			w.logger.Debug("prompt change", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			if pending {
				if !timer.Stop() {
					<-timer.C
				}
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			pending = false
			w.onChange()
		}
	}
}

func isPromptEvent(event fsnotify.Event) bool {
	if !strings.HasSuffix(filepath.Base(event.Name), ".md") {
		return false
	}
	return event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
}
