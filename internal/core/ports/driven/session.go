package driven

import (
	"context"

	"github.com/courseloft/syllaboard/internal/core/domain"
)

// SessionStore persists per-session OAuth flow state and credentials.
// Flow state is single-use: Consume removes it atomically so a stale
// state value can never be replayed.
type SessionStore interface {
	// SaveFlowState stores the CSRF state for a session, replacing any
	// previous pending flow for the same session.
	SaveFlowState(ctx context.Context, state domain.FlowState) error

	// ConsumeFlowState returns and removes the pending flow state for
	// a session. Missing or expired state fails with domain.ErrNotFound.
	ConsumeFlowState(ctx context.Context, sessionID string) (*domain.FlowState, error)

	// SaveCredentials stores the credentials for a session.
	SaveCredentials(ctx context.Context, creds domain.Credentials) error

	// GetCredentials returns the credentials for a session, or
	// domain.ErrNotFound if the session never completed a flow.
	GetCredentials(ctx context.Context, sessionID string) (*domain.Credentials, error)

	// DeleteCredentials removes the credentials for a session.
	DeleteCredentials(ctx context.Context, sessionID string) error
}
