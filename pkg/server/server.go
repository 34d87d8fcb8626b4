// Package server exposes the planner's HTTP surface: a health probe,
// the credential-hiding calendar proxy, and the video search endpoints.
// Provider keys live only here; browsers talk to this server, never to
// the providers.
package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/video"
)

// Options wires the server's collaborators.
type Options struct {
	Addr     string
	Store    *store.Store
	Calendar *calendar.Client
	Video    *video.Client
	Logger   *log.Logger
}

// Server serves the planner API.
type Server struct {
	addr     string
	store    *store.Store
	calendar *calendar.Client
	video    *video.Client
	log      *log.Logger
}

// New builds a Server. A nil logger falls back to stderr.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "planner: ", log.LstdFlags)
	}
	return &Server{
		addr:     opts.Addr,
		store:    opts.Store,
		calendar: opts.Calendar,
		video:    opts.Video,
		log:      logger,
	}
}

// Handler returns the route table. Exposed separately so tests can
// drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/calendar", s.handleCalendarProxy)
	mux.HandleFunc("/api/videos/search", s.handleVideoSearch)
	mux.HandleFunc("/api/videos/popular", s.handleVideoPopular)
	return mux
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Printf("listening on %s", s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
