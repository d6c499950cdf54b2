// Package web serves an editing session over HTTP.
//
// All editor calls go through one mutex: the editor itself is not safe for
// concurrent use. Changes are pushed to browsers as server-sent events on the
// pubsub topics.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	gocache "github.com/patrickmn/go-cache"
	"github.com/ritzau/vt-designer/pkg/editor"
	"github.com/ritzau/vt-designer/pkg/logging"
	"github.com/ritzau/vt-designer/pkg/pubsub"
	"github.com/ritzau/vt-designer/pkg/watcher"
)

const (
	renderCacheTTL     = 5 * time.Minute
	renderCacheCleanup = 10 * time.Minute
	shutdownTimeout    = 5 * time.Second
)

// Server represents the web server
type Server struct {
	router    *mux.Router
	publisher *pubsub.SSEPublisher
	renders   *gocache.Cache // Scenes by revision and object id

	mu          sync.Mutex
	project     *editor.Project
	path        string // Project file, empty for an unsaved session
	fingerprint string // Of the project file as last loaded or saved
}

// NewServer creates a web server for an editing session. path is the project
// file that Save writes to; it may be empty.
func NewServer(project *editor.Project, path string) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		publisher: pubsub.NewSSEPublisher(),
		renders:   gocache.New(renderCacheTTL, renderCacheCleanup),
		project:   project,
		path:      path,
	}
	if path != "" {
		if fp, err := watcher.Fingerprint(path); err == nil {
			s.fingerprint = fp
		}
	}
	project.WithObserver(s.publishProjectEvent)
	s.setupRoutes()
	s.publishStatus("loaded", "")
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/subscribe/project", s.handleSubscribe(pubsub.TopicProject)).Methods("GET")
	s.router.HandleFunc("/api/subscribe/status", s.handleSubscribe(pubsub.TopicStatus)).Methods("GET")

	s.router.HandleFunc("/api/project", s.handleProject).Methods("GET")
	s.router.HandleFunc("/api/objects", s.handleListObjects).Methods("GET")
	s.router.HandleFunc("/api/objects", s.handleAddObject).Methods("POST")
	s.router.HandleFunc("/api/objects/{id}", s.handleGetObject).Methods("GET")
	s.router.HandleFunc("/api/objects/{id}", s.handleConfigure).Methods("PATCH")
	s.router.HandleFunc("/api/objects/{id}", s.handleRemoveObject).Methods("DELETE")
	s.router.HandleFunc("/api/objects/{id}/id", s.handleChangeID).Methods("POST")
	s.router.HandleFunc("/api/objects/{id}/name", s.handleRename).Methods("PUT")
	s.router.HandleFunc("/api/objects/{id}/refs", s.handleAddReference).Methods("POST")
	s.router.HandleFunc("/api/objects/{id}/refs/{role}/{index}", s.handleRemoveReference).Methods("DELETE")
	s.router.HandleFunc("/api/objects/{id}/candidates", s.handleCandidates).Methods("GET")
	s.router.HandleFunc("/api/objects/{id}/render", s.handleRender).Methods("GET")

	s.router.HandleFunc("/api/selection", s.handleSelection).Methods("GET")
	s.router.HandleFunc("/api/selection", s.handleSelect).Methods("POST")
	s.router.HandleFunc("/api/selection/back", s.handleNavigate(true)).Methods("POST")
	s.router.HandleFunc("/api/selection/forward", s.handleNavigate(false)).Methods("POST")

	s.router.HandleFunc("/api/undo", s.handleUndo).Methods("POST")
	s.router.HandleFunc("/api/redo", s.handleRedo).Methods("POST")
	s.router.HandleFunc("/api/sizes", s.handleSizes).Methods("PUT")
	s.router.HandleFunc("/api/name-all", s.handleNameAll).Methods("POST")
	s.router.HandleFunc("/api/save", s.handleSave).Methods("POST")
}

// Handler returns the HTTP handler of the server, request logging included.
func (s *Server) Handler() http.Handler {
	return logging.RequestIDMiddleware(s.router)
}

// Close shuts down the event streams.
func (s *Server) Close() error {
	return s.publisher.Close()
}

// Start serves on the given port until ctx is done.
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logging.Info("Starting web server", "url", fmt.Sprintf("http://localhost:%d", port))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	// Streams end with the publisher so Shutdown does not wait for them
	_ = s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleSubscribe(topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pubsub.ServeSSE(w, r, s.publisher, topic)
	}
}

// publishProjectEvent runs with s.mu held, from inside editor calls.
func (s *Server) publishProjectEvent(event editor.Event) {
	if err := s.publisher.Publish(pubsub.TopicProject, string(event.Kind), event); err != nil {
		logging.Warn("Failed to publish project event", "kind", event.Kind, "error", err)
	}
}

// publishStatus runs with s.mu held or before the server is shared.
func (s *Server) publishStatus(state, message string) {
	status := pubsub.ProjectStatus{
		State:   state,
		Path:    s.path,
		Message: message,
		Objects: s.project.Graph().Len(),
		Dirty:   s.project.Dirty(),
	}
	if err := s.publisher.Publish(pubsub.TopicStatus, state, status); err != nil {
		logging.Warn("Failed to publish status", "state", state, "error", err)
	}
}
