package ctxkeys

import (
	"context"

	"github.com/templui/storefront/internal/config"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	URLPathKey   contextKey = "url_path"
	ConfigKey    contextKey = "config"
	RequestIDKey contextKey = "request_id"
)

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}

// Config returns the sanitized config placed by the Config middleware.
func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
