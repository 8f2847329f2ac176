package log

import (
	"context"
	"log/slog"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/requestid"
)

// ContextHandler wraps an slog.Handler and enriches every record with
// values carried on the request context: the request id and, when the
// request is authenticated, the user id.
type ContextHandler struct {
	inner slog.Handler
}

func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := requestid.FromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if identity, ok := auth.IdentityFromContext(ctx); ok {
		r.AddAttrs(slog.String("user_id", identity.UserID))
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}
