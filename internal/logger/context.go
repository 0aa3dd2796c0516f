package logger

import (
	"context"
	"log/slog"

	"github.com/templui/storefront/internal/ctxkeys"
)

// Ctx returns the default logger tagged with the request id, if any.
func Ctx(ctx context.Context) *slog.Logger {
	l := slog.Default()
	if id := ctxkeys.RequestID(ctx); id != "" {
		l = l.With("request_id", id)
	}
	return l
}
