package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/kana/pkg/core"
)

// Watch observes the info directory of the archive and emits one event per
// created, modified or removed post info file. The channel is closed when
// ctx is done or the underlying watcher fails.
func (a *Archive) Watch(ctx context.Context) (<-chan core.Event, error) {
	dir := filepath.Join(a.Path, InfoDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create info directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event, 64)
	w := &watchWorker{archive: a, watcher: watcher, events: events}

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		a.config.Logger.Error("archive watcher failed", "path", a.Path, "error", err)
	}))

	return events, nil
}

type watchWorker struct {
	archive *Archive
	watcher *fsnotify.Watcher
	events  chan<- core.Event
}

func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.archive.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.events)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.process(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("fsnotify error", "error", wErr)
		}
	}
}

func (w *watchWorker) process(ctx context.Context, event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, TempFilePrefix) || !supported(name) {
		return
	}

	id, ok := IDFromPath(name)
	if !ok {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	w.archive.config.Logger.Debug("archive event", "type", eType, "id", id)

	select {
	case w.events <- core.Event{Type: eType, ID: id, Timestamp: time.Now().Unix()}:
	case <-ctx.Done():
	}
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}
