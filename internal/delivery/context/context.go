// Package context carries request-scoped values between the HTTP middleware,
// the handlers and the use cases.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the request id header read from clients and echoed on every response.
const HeaderXRequestID = echo.HeaderXRequestID

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

// echo.Context store keys.
const (
	echoKeyRequestID       = "request_id"
	echoKeySessionIdentity = "session_identity"
)

// SetRequestID stores the request id on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetRequestID returns the request id set by the middleware, or "".
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(echoKeyRequestID).(string)

	return id
}

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestIDFromContext returns the request id below the HTTP layer, or "".
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

// WithLogger returns a copy of ctx carrying a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, or nil outside a request.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)

	return logger
}

// GetLoggerOrDefault is GetLogger falling back to the process logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// SetSessionIdentity records the identity resolved from the session cookie.
func SetSessionIdentity(c echo.Context, identityID uuid.UUID) {
	c.Set(echoKeySessionIdentity, identityID)
}

// GetSessionIdentity returns the session identity, or false for anonymous requests.
func GetSessionIdentity(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(echoKeySessionIdentity).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}

	return id, true
}
