package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hongminglow/user-directory/internal/http/respond"
	"github.com/hongminglow/user-directory/internal/models/dto"
	"github.com/hongminglow/user-directory/internal/storage"
)

const (
	msgUserNotFound   = "User not found"
	msgFieldsRequired = "Name and email are required"
	msgInvalidPayload = "Invalid JSON payload"
	msgDeletedSuccess = "User deleted successfully"
)

// UsersHandler serves CRUD endpoints for the users directory.
type UsersHandler struct {
	store   storage.UserStore
	log     *zap.Logger
	respond respond.Writer
}

// NewUsersHandler constructs the handler around an injected store.
func NewUsersHandler(store storage.UserStore, log *zap.Logger) *UsersHandler {
	return &UsersHandler{store: store, log: log, respond: respond.New(log)}
}

// Register attaches the users routes to r, which is expected to be mounted at /api.
func (h *UsersHandler) Register(r *mux.Router) {
	r.HandleFunc("/users", h.handleList).Methods(http.MethodGet)
	r.HandleFunc("/users", h.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", h.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", h.handleDelete).Methods(http.MethodDelete)
}

func (h *UsersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.storeError(w, "list users", err)
		return
	}
	h.respond.JSON(w, http.StatusOK, users)
}

func (h *UsersHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.respond.Message(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.respond.Message(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		h.storeError(w, "get user", err)
		return
	}
	h.respond.JSON(w, http.StatusOK, user)
}

func (h *UsersHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	created, err := h.store.CreateUser(r.Context(), in.ToUser(0))
	if err != nil {
		h.storeError(w, "create user", err)
		return
	}
	h.respond.JSON(w, http.StatusCreated, created)
}

func (h *UsersHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		h.respond.Message(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	user := in.ToUser(id)
	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.respond.Message(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		h.storeError(w, "update user", err)
		return
	}
	h.respond.JSON(w, http.StatusOK, user)
}

func (h *UsersHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.respond.Message(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.respond.Message(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		h.storeError(w, "delete user", err)
		return
	}
	h.respond.Message(w, http.StatusOK, msgDeletedSuccess)
}

// decodeInput reads the body and checks that name and email are present.
// It writes the 400 response itself and reports whether the caller may continue.
func (h *UsersHandler) decodeInput(w http.ResponseWriter, r *http.Request) (dto.UserInput, bool) {
	var in dto.UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respond.Message(w, http.StatusBadRequest, msgInvalidPayload)
		return dto.UserInput{}, false
	}
	if !in.Valid() {
		h.respond.Message(w, http.StatusBadRequest, msgFieldsRequired)
		return dto.UserInput{}, false
	}
	return in, true
}

func (h *UsersHandler) storeError(w http.ResponseWriter, op string, err error) {
	h.log.Error(op+" failed", zap.Error(err))
	h.respond.Error(w, http.StatusInternalServerError, err)
}

// pathID parses the {id} route variable. Ids that are not integers cannot match a record.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
