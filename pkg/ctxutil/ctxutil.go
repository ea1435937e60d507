// Package ctxutil carries request-scoped identity through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	learnerIDKey ctxKey = "learner_id"
	roleKey      ctxKey = "role"
	requestIDKey ctxKey = "request_id"
)

const roleAdmin = "admin"

// WithLearnerID stores the learner ID in the context.
func WithLearnerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, learnerIDKey, id)
}

// LearnerIDFromCtx extracts the learner ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func LearnerIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(learnerIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRole stores the caller's role in the context.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

// RoleFromCtx returns the caller's role, or "" if absent.
func RoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

// IsAdminCtx reports whether the caller acts with the admin role.
func IsAdminCtx(ctx context.Context) bool {
	return RoleFromCtx(ctx) == roleAdmin
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
