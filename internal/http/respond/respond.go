package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/user-directory/internal/models/dto"
)

// Writer encodes JSON responses and logs encoding failures.
type Writer struct {
	log *zap.Logger
}

// New returns a Writer that reports encode failures to log.
func New(log *zap.Logger) Writer {
	return Writer{log: log}
}

// JSON writes payload with the given status.
func (rw Writer) JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		rw.log.Warn("respond: encode payload failed", zap.Error(err))
	}
}

// Message writes a {message} body, used for validation, not-found and confirmations.
func (rw Writer) Message(w http.ResponseWriter, status int, message string) {
	rw.JSON(w, status, dto.MessageResponse{Message: message})
}

// Error writes an {error} body carrying err verbatim.
func (rw Writer) Error(w http.ResponseWriter, status int, err error) {
	rw.JSON(w, status, dto.ErrorResponse{Error: err.Error()})
}
