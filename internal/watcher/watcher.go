// ============================================================================
// MyPL - Front End Toolchain
// ============================================================================
//
// Package:     watcher
// Description: Debounced change notification for a single source file
// Author:      msto63
// Created:     2026-10-13
// License:     MIT
// ============================================================================

package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mypllog "github.com/msto63/mypl/pkg/core/log"
)

// DefaultDebounce is used when a non-positive debounce is given
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports writes to one file. The containing directory is watched
// so editors that replace the file on save are still seen.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	base     string
	debounce time.Duration
	logger   *mypllog.Logger
}

// New starts watching path
func New(path string, debounce time.Duration, logger *mypllog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = mypllog.GetDefault()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	w := &Watcher{
		fs:       fs,
		path:     abs,
		base:     filepath.Base(abs),
		debounce: debounce,
		logger:   logger.WithField("component", "watcher"),
	}
	w.logger.Debug("Started watching for source changes", mypllog.Fields{
		"file":     abs,
		"debounce": debounce.String(),
	})
	return w, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Run calls onChange once per burst of writes, after the file has been quiet
// for the debounce interval. It returns when ctx is done or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Stopping file watcher (context cancelled)")
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Trace("Source file event", mypllog.Fields{"op": event.Op.String()})
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger.Debug("Source file changed", mypllog.Fields{"file": w.path})
			onChange()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnWithErr("Watcher error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != w.base {
		return false
	}
	return event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create
}

// Close stops the underlying watcher
func (w *Watcher) Close() error {
	return w.fs.Close()
}
