package web

import (
	"context"
	"errors"
	"time"

	"github.com/ritzau/vt-designer/pkg/logging"
	"github.com/ritzau/vt-designer/pkg/projectfile"
	"github.com/ritzau/vt-designer/pkg/watcher"
)

const (
	watchQuietPeriod = 200 * time.Millisecond
	watchMaxWait     = 2 * time.Second
)

// ErrNoProjectFile is returned when saving a session that has no file.
var ErrNoProjectFile = errors.New("session has no project file")

// Save writes the pool to the project file.
func (s *Server) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Server) save() error {
	if s.path == "" {
		return ErrNoProjectFile
	}
	if err := projectfile.Save(s.path, s.project.Graph()); err != nil {
		s.publishStatus("error", err.Error())
		return err
	}
	fp, err := watcher.Fingerprint(s.path)
	if err != nil {
		return err
	}
	s.fingerprint = fp
	s.project.MarkSaved()
	s.publishStatus("saved", "")
	return nil
}

// Watch reloads the project when its file changes on disk, until ctx is
// done. Unsaved edits are never replaced: a change under them is reported as
// a conflict on the status topic.
func (s *Server) Watch(ctx context.Context) error {
	if s.path == "" {
		return ErrNoProjectFile
	}
	fw, err := watcher.NewFileWatcher(s.path)
	if err != nil {
		return err
	}
	if err := fw.Start(ctx); err != nil {
		_ = fw.Stop()
		return err
	}

	debouncer := watcher.NewDebouncer(fw.Events(), watchQuietPeriod, watchMaxWait)
	debouncer.Start(ctx)

	go func() {
		for event := range debouncer.Output() {
			s.handleFileChange(event)
		}
		logging.Debug("Stopped watching project file", "path", s.path)
	}()
	return nil
}

func (s *Server) handleFileChange(event watcher.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	analysis := watcher.AnalyzeChanges(event, s.path, s.fingerprint, s.project.Dirty())
	logging.Debug("Project file changed", "action", analysis.Action.String(), "reason", analysis.Reason)

	switch analysis.Action {
	case watcher.ActionIgnore:
		return

	case watcher.ActionReload:
		g, err := projectfile.Load(s.path)
		if err != nil {
			logging.Warn("Keeping current pool, project file does not load", "path", s.path, "error", err)
			s.publishStatus("error", err.Error())
			return
		}
		s.fingerprint = analysis.Fingerprint
		s.project.Reload(g)
		s.publishStatus("reloaded", analysis.Reason)

	case watcher.ActionConflict:
		logging.Warn("Project file changed under unsaved edits", "path", s.path)
		s.publishStatus("conflict", analysis.Reason)

	case watcher.ActionMissing:
		logging.Warn("Project file is gone", "path", s.path, "reason", analysis.Reason)
		s.publishStatus("missing", analysis.Reason)
	}
}
