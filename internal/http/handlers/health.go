package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hongminglow/user-directory/internal/http/respond"
	"github.com/hongminglow/user-directory/internal/storage"
)

// HealthHandler returns uptime and store reachability.
type HealthHandler struct {
	startedAt time.Time
	store     storage.UserStore
	respond   respond.Writer
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, store storage.UserStore, log *zap.Logger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, store: store, respond: respond.New(log)}
}

// Register wires the handler into a router.
func (h *HealthHandler) Register(r *mux.Router) {
	r.HandleFunc("/health", h.handle).Methods(http.MethodGet)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.respond.Error(w, http.StatusServiceUnavailable, err)
		return
	}
	h.respond.JSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
