// Package web exposes the FreshFridge operations as a JSON HTTP API. Each
// browser gets its own engine session through a cookie.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/alexmuntean1/freshfridge/internal/engine"
	"github.com/alexmuntean1/freshfridge/internal/logger"
)

// Defaults for Server options.
const (
	DefaultRequestTimeout = 15 * time.Second
	DefaultSessionIdle    = 2 * time.Hour
)

// Option configures the server.
type Option func(*Server)

// WithAllowedOrigins enables credentialed CORS for the given origins.
// Without it the API is same-origin only. "*" is ignored: browsers refuse
// cookies for a wildcard origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		for _, o := range origins {
			if o != "" && o != "*" {
				s.origins = append(s.origins, o)
			}
		}
	}
}

// WithRequestTimeout bounds the Edamam calls made for a single request.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithSessionIdle sets how long an untouched session lives.
func WithSessionIdle(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.idle = d
		}
	}
}

// Server routes API requests to engine sessions.
type Server struct {
	engine  *engine.Engine
	log     *logger.Logger
	origins []string
	timeout time.Duration
	idle    time.Duration
	handler http.Handler
}

// NewServer builds the router and middleware chain.
func NewServer(e *engine.Engine, log *logger.Logger, opts ...Option) *Server {
	s := &Server{
		engine:  e,
		log:     log.Named("web"),
		timeout: DefaultRequestTimeout,
		idle:    DefaultSessionIdle,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/filters", s.getFilters).Methods(http.MethodGet)
	api.HandleFunc("/navigate", s.navigate).Methods(http.MethodPost)
	api.HandleFunc("/lists/grocery/export.{ext:xlsx|csv}", s.exportGroceries).Methods(http.MethodGet)
	api.HandleFunc("/lists/{list}", s.getList).Methods(http.MethodGet)
	api.HandleFunc("/lists/{list}", s.addItem).Methods(http.MethodPost)
	api.HandleFunc("/lists/{list}/{index:[0-9]+}", s.deleteItem).Methods(http.MethodDelete)
	api.HandleFunc("/recipes", s.getRecipes).Methods(http.MethodGet)
	api.HandleFunc("/recipes/select/{index:[0-9]+}", s.toggleIngredient).Methods(http.MethodPost)
	api.HandleFunc("/recipes/filters", s.setFilters).Methods(http.MethodPut)
	api.HandleFunc("/recipes/search", s.search).Methods(http.MethodPost)
	api.HandleFunc("/recipes/nutrition", s.nutrition).Methods(http.MethodPost)
	api.HandleFunc("/recipes/merge", s.merge).Methods(http.MethodPost)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	s.handler = s.loggingMiddleware(s.sessionMiddleware(r))
	if len(s.origins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins:   s.origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		})
		s.handler = c.Handler(s.handler)
		s.log.Info("CORS enabled for %v", s.origins)
	}
	return s
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Idle sessions are expired in the background.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.engine.RunJanitor(ctx, s.idle/4, s.idle)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("server stopped")
	return nil
}
