// internal/app/features/errors/errlog.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with user-facing error pages.
// Handlers log the developer message and underlying error once, and the
// user only ever sees the friendly message.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

func requestFields(r *http.Request, err error) []zap.Field {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	return fields
}

// LogBadRequest logs an invalid-input failure and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, devMsg string, err error, userMsg, backURL string) {
	e.log.Warn(devMsg, requestFields(r, err)...)
	RenderBadRequest(w, r, userMsg, backURL)
}

// LogNotFound logs a missing-record failure and renders a 404 page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, devMsg string, err error, userMsg, backURL string) {
	e.log.Warn(devMsg, requestFields(r, err)...)
	RenderNotFound(w, r, userMsg, backURL)
}

// LogServerError logs a server-side failure and renders a 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, devMsg string, err error, userMsg, backURL string) {
	e.log.Error(devMsg, requestFields(r, err)...)
	RenderServerError(w, r, userMsg, backURL)
}

// HTMXLogBadRequest logs an invalid-input failure and returns a plain
// 400 so HTMX swaps the message into the requesting fragment.
func (e *ErrorLogger) HTMXLogBadRequest(w http.ResponseWriter, r *http.Request, devMsg string, err error, userMsg string) {
	e.log.Warn(devMsg, requestFields(r, err)...)
	http.Error(w, userMsg, http.StatusBadRequest)
}

// HTMXLogServerError logs a server-side failure and returns a plain 500
// for the requesting fragment.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, devMsg string, err error, userMsg string) {
	e.log.Error(devMsg, requestFields(r, err)...)
	http.Error(w, userMsg, http.StatusInternalServerError)
}
