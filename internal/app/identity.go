package app

import (
	"context"

	"level-assessment-service/internal/domain"
)

// IdentityProvider abstracts the auth collaborator; nil means anonymous.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) *domain.User
}

type userKey struct{}

// WithUser attaches the caller's identity to ctx.
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the identity attached by WithUser, if any.
func UserFromContext(ctx context.Context) *domain.User {
	user, ok := ctx.Value(userKey{}).(domain.User)
	if !ok {
		return nil
	}
	return &user
}

// ContextIdentity resolves the current user from the request context.
type ContextIdentity struct{}

func (ContextIdentity) CurrentUser(ctx context.Context) *domain.User {
	return UserFromContext(ctx)
}

// StaticIdentity always reports the same user.
type StaticIdentity struct {
	User *domain.User
}

func (s StaticIdentity) CurrentUser(context.Context) *domain.User {
	if s.User == nil {
		return nil
	}
	u := *s.User
	return &u
}
