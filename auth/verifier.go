//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=../mocks/mock_identity_verifier.go -package=mocks
package auth

import (
	"context"
	"fmt"

	"message-ledger/domain"
	"message-ledger/errors"
)

// IdentityVerifier proves that the caller controls the claimed identity.
// Any error aborts the whole operation before state is touched.
type IdentityVerifier interface {
	Verify(ctx context.Context, identity domain.Identity) error
}

type contextKey string

const (
	IdentityKey contextKey = "identity"
	RolesKey    contextKey = "roles"
)

// WithIdentity records a proven identity in the context.
func WithIdentity(ctx context.Context, identity domain.Identity, roles []string) context.Context {
	ctx = context.WithValue(ctx, IdentityKey, identity)
	return context.WithValue(ctx, RolesKey, roles)
}

// IdentityFromContext returns the identity proven by the transport, if any.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(domain.Identity)
	return identity, ok && identity != ""
}

// ContextVerifier accepts an identity when it matches the one the
// transport proved for this call.
type ContextVerifier struct{}

func NewContextVerifier() ContextVerifier {
	return ContextVerifier{}
}

func (ContextVerifier) Verify(ctx context.Context, identity domain.Identity) error {
	proven, ok := IdentityFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: no proven identity for %s", errors.ErrAuthenticationFailure, identity)
	}
	if proven != identity {
		return fmt.Errorf("%w: caller is %s, not %s", errors.ErrAuthenticationFailure, proven, identity)
	}
	return nil
}
