package api

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type keyType string

const (
	userIDKey   keyType = "userID"
	userRoleKey keyType = "userRole"
)

// ctxWithCaller records the authenticated caller's identity and role.
func ctxWithCaller(ctx context.Context, userID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

// ctxGetUserID retrieves the authenticated caller's ID from the context.
func ctxGetUserID(ctx context.Context) (uuid.UUID, error) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, errors.New("userID not found in context")
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("userID is not of type uuid.UUID")
	}
	return id, nil
}

// ctxGetUserRole retrieves the authenticated caller's role from the context.
func ctxGetUserRole(ctx context.Context) string {
	if value, ok := ctx.Value(userRoleKey).(string); ok {
		return value
	}
	return ""
}
