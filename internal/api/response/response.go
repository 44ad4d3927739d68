// Package response writes the JSON bodies shared by all handlers and
// middleware, so error payloads look the same wherever they originate.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrorResponse is the error body returned by every endpoint. Details is
// optional context, usually the underlying error text.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON writes data as JSON with the given status. A nil data writes
// the status alone, which is how 204 responses are sent. By the time
// encoding fails the status line is already on the wire, so the failure is
// logged rather than surfaced.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).WithField("status", status).Error("Failed to encode response body")
	}
}

// RespondError writes a structured error body with the given status.
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	RespondJSON(w, status, ErrorResponse{Error: message, Details: details})
}
