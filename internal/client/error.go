package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// HTTPError represents a non-2xx response from the users API.
type HTTPError struct {
	StatusCode int
	// Message is the {message} or {error} field of the body, whichever was set.
	Message string
	Body    []byte
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return fmt.Sprintf("http error: status=%d message=%s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, string(e.Body))
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

func decodeError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read error body: %w", err)
	}
	httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: body}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		httpErr.Message = payload.Message
		if httpErr.Message == "" {
			httpErr.Message = payload.Error
		}
	}
	return httpErr
}
