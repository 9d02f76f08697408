// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs extraction when PDFs in the input directory change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// relevantOps are the fsnotify operations that change the set or content of PDFs.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher calls a trigger function once per burst of PDF changes in a directory.
type Watcher struct {
	dir      string
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a Watcher for dir. A nil logger discards log output.
func New(dir string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{dir: dir, debounce: debounce, logger: logger}
}

// Run watches the directory until ctx is done. trigger runs on the calling
// goroutine, so runs never overlap; events arriving during a run start one
// more run afterwards. A trigger error is logged and watching continues.
func (w *Watcher) Run(ctx context.Context, trigger func(context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.logger.Info("watching for PDF changes", "dir", w.dir, "debounce", w.debounce)

	return w.loop(ctx, fw.Events, fw.Errors, trigger)
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, trigger func(context.Context) error) error {
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !Relevant(ev) {
				continue
			}
			w.logger.Debug("pdf changed", "file", filepath.Base(ev.Name), "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-pending:
			pending = nil
			if err := trigger(ctx); err != nil {
				w.logger.Error("run failed", "error", err)
			}
		}
	}
}

// Relevant reports whether ev changes a PDF in the watched directory.
func Relevant(ev fsnotify.Event) bool {
	if ev.Op&relevantOps == 0 {
		return false
	}
	return strings.EqualFold(filepath.Ext(ev.Name), ".pdf")
}
