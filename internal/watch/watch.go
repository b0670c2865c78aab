// Package watch heals corpus files as they land in a drop directory. It
// watches one directory (non-recursive, matching the batch coordinator's
// scope) and runs the per-file healer on every settled create or write.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"aimlmend/internal/heal"
)

// Stats tracks watcher activity for reporting and tests.
type Stats struct {
	FilesSeen     int
	FilesHealed   int
	Errors        int
	LastEventPath string
	LastEventTime time.Time
}

// Watcher heals files on arrival.
type Watcher struct {
	mu           sync.RWMutex
	fsw          *fsnotify.Watcher
	healer       *heal.Healer
	dir          string
	extension    string
	backupSuffix string
	debounceMap  map[string]time.Time
	debounceDur  time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	running      bool
	log          *zap.Logger
	stats        Stats
}

// New creates a Watcher over dir. ext and backupSuffix must match the
// healer's configuration so backup files are never re-healed.
func New(dir string, healer *heal.Healer, ext, backupSuffix string, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		fsw:          fsw,
		healer:       healer,
		dir:          dir,
		extension:    ext,
		backupSuffix: backupSuffix,
		debounceMap:  make(map[string]time.Time),
		debounceDur:  500 * time.Millisecond, // absorb rapid saves and our own rewrite
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		log:          log,
	}, nil
}

// SetDebounce overrides the settle window. Only useful in tests.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounceDur = d
	w.mu.Unlock()
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine
// until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.fsw.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.log.Info("watching directory", zap.String("dir", w.dir))
	go w.loop(ctx)
	return nil
}

// Stop shuts the watcher down and waits for the event loop to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.fsw.Close()
}

// Snapshot returns a copy of the activity stats.
func (w *Watcher) Snapshot() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
			w.log.Warn("watch error", zap.Error(err))
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !w.wants(ev.Name) {
				continue
			}
			if w.debounced(ev.Name) {
				continue
			}
			w.healOne(ev.Name)
		}
	}
}

func (w *Watcher) wants(path string) bool {
	name := filepath.Base(path)
	if strings.HasSuffix(name, w.backupSuffix) {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), w.extension)
}

func (w *Watcher) debounced(path string) bool {
	now := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()
	if last, ok := w.debounceMap[path]; ok && now.Sub(last) < w.debounceDur {
		return true
	}
	w.debounceMap[path] = now
	return false
}

func (w *Watcher) healOne(path string) {
	res := w.healer.HealFile(path)

	w.mu.Lock()
	w.stats.FilesSeen++
	w.stats.LastEventPath = path
	w.stats.LastEventTime = time.Now()
	if !res.Succeeded {
		w.stats.Errors++
	} else if res.Modified {
		w.stats.FilesHealed++
	}
	w.mu.Unlock()

	switch {
	case !res.Succeeded:
		w.log.Warn("heal failed", zap.String("file", path), zap.String("error", res.Err))
	case res.Modified:
		w.log.Info("healed on arrival", zap.String("file", path), zap.Int("fixes", res.FixesApplied))
	default:
		w.log.Debug("file already clean", zap.String("file", path))
	}
}
