package catalog

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is delivered by a Watcher after the catalog file settles. Err is set
// when the new content failed to load; the previous catalog should be kept.
type Reload struct {
	Catalog Catalog
	Phases  []PhaseDefinition
	Err     error
}

// Watcher monitors a catalog file and emits a Reload whenever it changes.
// Bursts of writes are debounced into one reload.
type Watcher struct {
	Path    string
	Reloads <-chan Reload

	reloads  chan Reload
	done     chan struct{}
	watcher  *fsnotify.Watcher
	debounce time.Duration
	started  bool
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the catalog file at path. The parent
// directory is watched so that editors which replace the file atomically are
// still observed.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan Reload, 4)
	return &Watcher{
		Path:     abs,
		Reloads:  ch,
		reloads:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: 100 * time.Millisecond,
	}, nil
}

// Start begins watching. On failure the underlying fsnotify watcher is
// released; Stop remains safe to call.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		w.watcher.Close()
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Reloads channel. It may be called whether
// or not Start succeeded, and more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.watcher.Close()
		if w.started {
			<-w.done
		}
		close(w.reloads)
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				pending = time.Time{}
				w.emit()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

func (w *Watcher) emit() {
	cat, phases, err := Load(w.Path)
	select {
	case w.reloads <- Reload{Catalog: cat, Phases: phases, Err: err}:
	default:
		// Receiver is behind; it will pick up the next reload.
	}
}
