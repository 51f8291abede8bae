// Package context carries the request scope of a storefront call. The logger
// handed out by LoggerFrom is tagged with every scope value present.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type scopeKey int

const (
	keyRequestID scopeKey = iota
	keyBusinessEntityID
	keyWorkflow
	keyLogger
)

// HeaderXRequestID is the HTTP header name for request ID.
const HeaderXRequestID = "X-Request-Id"

// echoKeyRequestID is where the request id is kept on echo.Context.
const echoKeyRequestID = "request_id"

// Log attribute names.
const (
	AttrRequestID        = "request_id"
	AttrBusinessEntityID = "business_entity_id"
	AttrWorkflow         = "workflow"
)

// GetRequestID returns the request id stored on c, or a fresh UUID.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoKeyRequestID).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID stores requestID on c for the response envelopes.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// WithRequestScope starts the scope of one request or delivered event.
// logger is the untagged base logger; LoggerFrom adds the scope attributes.
func WithRequestScope(ctx context.Context, requestID string, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, keyRequestID, requestID)
	if logger != nil {
		ctx = context.WithValue(ctx, keyLogger, logger)
	}

	return ctx
}

// RequestIDFrom returns the request id of ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)

	return id
}

// WithBusinessEntity records the business entity a call acts for.
// Non-positive ids are ignored.
func WithBusinessEntity(ctx context.Context, businessEntityID int32) context.Context {
	if businessEntityID <= 0 {
		return ctx
	}

	return context.WithValue(ctx, keyBusinessEntityID, businessEntityID)
}

// BusinessEntityIDFrom returns the business entity recorded on ctx.
func BusinessEntityIDFrom(ctx context.Context) (int32, bool) {
	id, ok := ctx.Value(keyBusinessEntityID).(int32)

	return id, ok
}

// WithWorkflow names the use case running on ctx, e.g. "user.register".
func WithWorkflow(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyWorkflow, name)
}

// WorkflowFrom returns the workflow name of ctx, or "".
func WorkflowFrom(ctx context.Context) string {
	name, _ := ctx.Value(keyWorkflow).(string)

	return name
}

// LoggerFrom returns the scope logger of ctx, falling back to fallback, tagged
// with the request id, business entity and workflow found on ctx.
func LoggerFrom(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	logger, ok := ctx.Value(keyLogger).(*slog.Logger)
	if !ok {
		logger = fallback
	}
	if logger == nil {
		logger = slog.Default()
	}

	attrs := make([]any, 0, 3)
	if id := RequestIDFrom(ctx); id != "" {
		attrs = append(attrs, slog.String(AttrRequestID, id))
	}
	if id, ok := BusinessEntityIDFrom(ctx); ok {
		attrs = append(attrs, slog.Any(AttrBusinessEntityID, id))
	}
	if name := WorkflowFrom(ctx); name != "" {
		attrs = append(attrs, slog.String(AttrWorkflow, name))
	}
	if len(attrs) == 0 {
		return logger
	}

	return logger.With(attrs...)
}
