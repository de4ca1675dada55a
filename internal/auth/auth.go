// Package auth resolves the current user identity from bearer tokens. Every
// owner-scoped operation requires an identity; there is no unscoped
// fallback.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNotAuthenticated = errors.New("not authenticated")

type ctxKey struct{}

// Verifier validates access tokens and extracts the user id carried in the
// subject claim.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// UserID parses and validates an HS256 token, returning the uuid in its
// subject claim.
func (v *Verifier) UserID(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}

		return v.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, fmt.Errorf("%w: missing subject claim", ErrNotAuthenticated)
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a user id", ErrNotAuthenticated)
	}

	return id, nil
}

// WithUser returns a context carrying the authenticated user id.
func WithUser(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// CurrentUser returns the authenticated user id from the context, or
// ErrNotAuthenticated when no identity is present.
func CurrentUser(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrNotAuthenticated
	}

	return id, nil
}
