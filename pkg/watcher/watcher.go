package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ritzau/vt-designer/pkg/logging"
)

// batchWindow groups the burst of events one save produces.
const batchWindow = 100 * time.Millisecond

// ChangeType represents the type of file change detected
type ChangeType int

const (
	ChangeTypeWrite  ChangeType = iota // Written, created or renamed into place
	ChangeTypeRemove                   // Removed or renamed away
)

func (t ChangeType) String() string {
	if t == ChangeTypeRemove {
		return "remove"
	}
	return "write"
}

// ChangeEvent represents a batch of file system changes
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches one project file. The directory is watched rather than
// the file so that editors which save by renaming a new file into place are
// still seen.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan ChangeEvent
	once    sync.Once
}

// NewFileWatcher creates a new file system watcher for a project file
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher: watcher,
		path:    abs,
		events:  make(chan ChangeEvent, 100),
	}, nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logging.Info("Watching project file", "path", fw.path)

	go fw.processEvents(ctx)
	return nil
}

// processEvents filters events down to the project file and batches them.
func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer close(fw.events)

	var (
		paths   []string
		removed bool
	)
	flushTimer := time.NewTimer(batchWindow)
	flushTimer.Stop()

	flush := func() {
		if len(paths) == 0 {
			return
		}
		event := ChangeEvent{Type: ChangeTypeWrite, Paths: paths, Timestamp: time.Now()}
		if removed {
			event.Type = ChangeTypeRemove
		}
		select {
		case fw.events <- event:
		case <-ctx.Done():
		}
		paths, removed = nil, false
	}

	for {
		select {
		case <-ctx.Done():
			fw.Stop()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path || event.Op == fsnotify.Chmod {
				continue
			}
			logging.Trace("Project file event", "op", event.Op.String())
			paths = append(paths, event.Name)
			// The last operation decides: a remove followed by a create is a write
			removed = event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
			flushTimer.Reset(batchWindow)

		case <-flushTimer.C:
			flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("Watcher error", "error", err)
		}
	}
}

// Path returns the watched project file.
func (fw *FileWatcher) Path() string {
	return fw.path
}

// Events returns the channel of change events
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Stop stops the file watcher
func (fw *FileWatcher) Stop() error {
	var err error
	fw.once.Do(func() { err = fw.watcher.Close() })
	return err
}
