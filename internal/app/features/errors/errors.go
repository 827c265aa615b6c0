// internal/app/features/errors/errors.go
//
// Package errors maps service errors onto JSON API responses. Denied
// and unauthenticated both produce the same 403 body, so a response
// never reveals whether a credential was recognized.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/filehaven/filehaven/internal/app/service/library"
	"github.com/filehaven/filehaven/internal/app/system/access"
	"go.uber.org/zap"
)

// ErrorLogger records server-side failures with request context before
// the client sees a generic 500.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogError records err against the request.
func (l *ErrorLogger) LogError(r *http.Request, msg string, err error) {
	l.log.Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
}

type errBody struct {
	Error string `json:"error"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Write translates err into a response. Callers pass every service
// error through here so the status mapping stays in one place.
func (l *ErrorLogger) Write(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, access.ErrDenied):
		JSON(w, http.StatusForbidden, errBody{Error: "access denied"})
	case errors.Is(err, access.ErrNotFound):
		JSON(w, http.StatusNotFound, errBody{Error: "not found"})
	case errors.Is(err, library.ErrValidation):
		JSON(w, http.StatusBadRequest, errBody{Error: err.Error()})
	default:
		l.LogError(r, "request failed", err)
		JSON(w, http.StatusInternalServerError, errBody{Error: "internal error"})
	}
}

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errBody{Error: msg})
}
