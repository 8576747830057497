// Package web serves the HTML views and a small JSON API over a core.Service.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/gorilla/mux"

	"github.com/aretw0/memedir/pkg/core"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Server renders the table, list and form views.
type Server struct {
	svc    *core.Service
	logger *slog.Logger
	router *mux.Router
	pages  map[string]*template.Template
}

// NewServer builds the router and parses the embedded templates.
func NewServer(svc *core.Service, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		svc:    svc,
		logger: logger,
		pages:  make(map[string]*template.Template),
	}

	for _, page := range []string{"table", "list", "form"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		s.pages[page] = t
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/", s.handleTable).Methods(http.MethodGet)
	r.HandleFunc("/list", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/memes/new", s.handleNew).Methods(http.MethodGet)
	r.HandleFunc("/memes", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/memes/{id}/edit", s.handleEditForm).Methods(http.MethodGet)
	r.HandleFunc("/memes/{id}", s.handleEdit).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/memes", s.handleAPIList).Methods(http.MethodGet)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
// Service events are logged for as long as the server runs.
func (s *Server) Run(ctx context.Context, addr string) error {
	events, unsubscribe := s.svc.Subscribe()
	defer unsubscribe()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				s.logger.Info("record changed", "type", e.Type, "id", e.ID)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("event logger stopped", "error", err)
	}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "address", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
