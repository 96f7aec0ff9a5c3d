package options

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the options file for external writes (e.g. ignisctl
// toggling do-not-disturb) and reloads the Service so change callbacks
// fire inside a running daemon.
type Watcher struct {
	watcher *fsnotify.Watcher
	service *Service
	logger  *slog.Logger
	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewWatcher creates a watcher for the service's backing file.
func NewWatcher(service *Service, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher: fw,
		service: service,
		logger:  logger,
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching for changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory containing the file (more reliable for
	// rename-based writes)
	dir := filepath.Dir(w.service.Path())
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go w.watch()
	return nil
}

// watch is the main watch loop.
func (w *Watcher) watch() {
	filename := filepath.Base(w.service.Path())

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("options file changed, reloading", "file", event.Name)
				if err := w.service.Reload(); err != nil {
					w.logger.Warn("failed to reload options", "error", err)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("options watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.done)
	return w.watcher.Close()
}
