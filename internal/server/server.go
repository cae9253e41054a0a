package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hongminglow/user-directory/internal/config"
	"github.com/hongminglow/user-directory/internal/http/handlers"
	"github.com/hongminglow/user-directory/internal/middleware"
	"github.com/hongminglow/user-directory/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.UserStore, log *zap.Logger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(cfg, store, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewHandler builds the routed handler tree: /health and the users API under /api.
// CORS and logging wrap the router so preflight requests never reach route matching.
func NewHandler(cfg config.Config, store storage.UserStore, log *zap.Logger) http.Handler {
	router := mux.NewRouter()
	handlers.NewHealthHandler(time.Now(), store, log).Register(router)

	api := router.PathPrefix("/api").Subrouter()
	handlers.NewUsersHandler(store, log).Register(api)

	return middleware.CORS(cfg.CORSOrigins)(middleware.Logging(log)(router))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
