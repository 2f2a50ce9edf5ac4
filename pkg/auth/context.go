package auth

import "context"

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	NameKey   contextKey = "name"
	RoleKey   contextKey = "role"
)

// WithIdentity stores the authenticated identity on the request context
func WithIdentity(ctx context.Context, userID uint, name, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, NameKey, name)
	return context.WithValue(ctx, RoleKey, role)
}

// UserIDFromContext returns the authenticated user id, if any
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok
}

// RoleFromContext returns the authenticated role, if any
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
