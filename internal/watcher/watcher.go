// Package watcher reports, with debouncing, when the file being edited is
// changed on disk by someone else.
package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/tide/internal/log"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 150 * time.Millisecond

// Change describes the state of the file once a burst of events settled.
type Change struct {
	Path    string
	Removed bool
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the file must stay quiet before a Change is
// reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// Watcher monitors one file.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan Change
	stop     chan struct{}
	exited   chan struct{}
	started  bool
	stopOnce sync.Once
}

// New creates a watcher for path. Nothing is watched until Start.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: DefaultDebounce,
		changes:  make(chan Change, 1),
		stop:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching and returns the channel Changes arrive on. The
// channel holds at most one pending Change and is closed by Stop.
//
// The parent directory is watched rather than the file, so saves that
// replace the file by rename keep being seen and a file that does not exist
// yet can be watched for creation.
func (w *Watcher) Start() (<-chan Change, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "watching", "path", w.path)

	w.started = true
	go w.run()

	return w.changes, nil
}

// Stop ends the watch and closes the Change channel. It is safe to call
// more than once and before Start.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stop)
		if w.started {
			<-w.exited
		} else {
			close(w.changes)
		}
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.exited)
	defer close(w.changes)

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
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.touchesFile(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.publish(w.snapshot())

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", w.path)

		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) snapshot() Change {
	_, err := os.Stat(w.path)
	return Change{Path: w.path, Removed: errors.Is(err, fs.ErrNotExist)}
}

// publish replaces any pending Change with c. Only run sends on the
// channel, so the second send cannot block.
func (w *Watcher) publish(c Change) {
	select {
	case w.changes <- c:
		return
	default:
	}
	select {
	case <-w.changes:
	default:
	}
	w.changes <- c
}

func (w *Watcher) touchesFile(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	return err == nil && name == w.path
}
