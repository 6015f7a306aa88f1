// Package context carries per-call scope through both front ends: a kiosk
// request gets a request ID, a console run gets a session ID, and either one
// gets a logger already tagged with that ID.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey keeps these keys apart from any other package's.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"
	KeySessionID ContextKey = "session_id"

	// HeaderXRequestID is read from kiosk calls and echoed on the response.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the kiosk request ID. A call that skipped the
// request ID middleware still gets a fresh UUID for its envelope.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns "" outside a kiosk request.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetSessionIDFromContext returns "" outside a console session.
func GetSessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeySessionID).(string); ok {
		return id
	}

	return ""
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, KeySessionID, sessionID)
}

// GetLogger returns the scoped logger, or nil when none was attached.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault is what services call: the scoped logger when the
// front end attached one, otherwise their own.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
