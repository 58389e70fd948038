package ctxkeys

import (
	"context"

	"github.com/southgate-leisure/feedback/internal/config"
	"github.com/southgate-leisure/feedback/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	StaffKey     contextKey = "staff"
	SessionKey   contextKey = "session"
	URLPathKey   contextKey = "url_path"
	ConfigKey    contextKey = "config"
	CSRFTokenKey contextKey = "csrf_token"
)

// Staff returns the authenticated staff account, or nil for anonymous requests.
func Staff(ctx context.Context) *model.StaffAccount {
	staff, _ := ctx.Value(StaffKey).(*model.StaffAccount)
	return staff
}

func WithStaff(ctx context.Context, staff *model.StaffAccount) context.Context {
	return context.WithValue(ctx, StaffKey, staff)
}

func Session(ctx context.Context) *model.Session {
	session, _ := ctx.Value(SessionKey).(*model.Session)
	return session
}

func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}
