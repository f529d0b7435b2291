// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch regenerates guides when their source files change. Changes
// are collected for a short quiet period so an editor save that touches a
// file several times triggers one rebuild.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc regenerates the named guides. Names are sorted and unique.
type RebuildFunc func(ctx context.Context, names []string) error

// Watcher watches a guides directory.
type Watcher struct {
	dir      string
	debounce time.Duration
	rebuild  RebuildFunc
	log      *slog.Logger
}

// New returns a watcher for dir. A zero debounce uses DefaultDebounce.
func New(dir string, debounce time.Duration, rebuild RebuildFunc, log *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Watcher{dir: dir, debounce: debounce, rebuild: rebuild, log: log}
}

// Run watches until ctx is cancelled. Rebuild errors are logged and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.log.Info("watching guides", "dir", w.dir)
	return w.loop(ctx, fw.Events, fw.Errors)
}

// loop is the event loop behind Run. It returns when ctx is cancelled or
// either channel is closed.
func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			name, ok := GuideName(ev.Name)
			if !ok || !relevant(ev.Op) {
				continue
			}
			w.log.Debug("guide changed", "guide", name, "op", ev.Op.String())
			pending[name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)

		case <-timer.C:
			names := drain(pending)
			if len(names) == 0 {
				continue
			}
			if err := w.rebuild(ctx, names); err != nil {
				w.log.Warn("rebuild failed", "guides", names, "error", err)
			}
		}
	}
}

// GuideName returns the guide name for a file path, or false for files
// that are not guides: other extensions, hidden files and editor backups.
func GuideName(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "#") || strings.HasSuffix(base, "~") {
		return "", false
	}
	if filepath.Ext(base) != ".md" {
		return "", false
	}
	return strings.TrimSuffix(base, ".md"), true
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename) || op.Has(fsnotify.Remove)
}

func drain(pending map[string]struct{}) []string {
	names := make([]string, 0, len(pending))
	for n := range pending {
		names = append(names, n)
		delete(pending, n)
	}
	sort.Strings(names)
	return names
}
