// internal/app/system/httpapi/httpapi.go

// Package httpapi writes the JSON response and error envelopes used by every
// endpoint.
//
// Success envelope: { "statusCode": n, "data": ..., "message": "...", "success": true }
// Error envelope:   { "statusCode": n, "message": "...", "success": false, "errors": [] }
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// Envelope is the success response body.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorEnvelope is the error response body.
type ErrorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// Respond writes a success envelope with the given status, payload, and message.
func Respond(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// RespondError writes the error envelope for ae without logging. Handlers
// normally go through ErrorWriter; middleware that has no logger of its own
// can call this directly.
func RespondError(w http.ResponseWriter, ae *apperr.Error) {
	status := ae.StatusCode()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		StatusCode: status,
		Message:    ae.Message,
		Success:    false,
		Errors:     []string{},
	})
}

// ErrorWriter logs failures and writes the error envelope. One instance is
// shared across handlers so all endpoints log with the same fields.
type ErrorWriter struct {
	log *zap.Logger
}

// NewErrorWriter creates an ErrorWriter bound to the given logger.
func NewErrorWriter(logger *zap.Logger) *ErrorWriter {
	return &ErrorWriter{log: logger}
}

// WriteError converts err into an apperr.Error, logs internal failures, and
// writes the error envelope. The underlying cause is never sent to the caller.
func (e *ErrorWriter) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperr.From(err)
	status := ae.StatusCode()

	if status >= http.StatusInternalServerError {
		e.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	} else {
		e.log.Debug("request rejected",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.String("message", ae.Message))
	}

	RespondError(w, ae)
}
