package driving

import (
	"context"

	"github.com/courseloft/syllaboard/internal/core/domain"
)

// CredentialService runs the OAuth authorization-code flow for the
// workspace provider and answers the authorization predicate.
type CredentialService interface {
	// Start begins a flow for a session: issues a fresh CSRF state,
	// stores it with its validity window, and returns the provider
	// authorization URL to redirect the user to.
	Start(ctx context.Context, sessionID string) (string, error)

	// Complete finishes a flow. The returned state must exactly match
	// the stored one (domain.ErrInvalidState otherwise); the code is
	// then exchanged for a token (domain.ErrExchangeFailed on provider
	// rejection). The stored state is consumed either way.
	Complete(ctx context.Context, sessionID, code, returnedState string) (*domain.Credentials, error)

	// IsAuthorized reports whether the session holds a non-expired token.
	IsAuthorized(ctx context.Context, sessionID string) bool

	// Credentials returns the session's stored credentials, or
	// domain.ErrUnauthenticated when none are valid.
	Credentials(ctx context.Context, sessionID string) (*domain.Credentials, error)
}
