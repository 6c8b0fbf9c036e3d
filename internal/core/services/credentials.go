package services

import (
	"context"
	"fmt"
	"time"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driven"
	"github.com/courseloft/syllaboard/internal/core/ports/driving"
	"github.com/courseloft/syllaboard/internal/logger"
)

// Ensure CredentialBroker implements the interface.
var _ driving.CredentialService = (*CredentialBroker)(nil)

// StateValidity bounds how long a started flow may remain pending.
const StateValidity = 15 * time.Minute

// CredentialBroker runs the OAuth authorization-code flow state machine:
// Unauthenticated -> PendingAuthorization -> Authorized. Any failure
// returns the session to Unauthenticated; there is no automatic retry.
type CredentialBroker struct {
	exchanger driven.OAuthExchanger
	store     driven.SessionStore
}

// NewCredentialBroker creates a new credential broker.
func NewCredentialBroker(exchanger driven.OAuthExchanger, store driven.SessionStore) *CredentialBroker {
	return &CredentialBroker{exchanger: exchanger, store: store}
}

// Start issues a fresh CSRF state for the session and returns the
// provider authorization URL. A previous pending flow for the same
// session is replaced: at most one state is live per session.
func (b *CredentialBroker) Start(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("%w: missing session id", domain.ErrInvalidInput)
	}

	state, err := generateState()
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}

	flow := domain.FlowState{
		SessionID: sessionID,
		State:     state,
		ExpiresAt: time.Now().Add(StateValidity),
	}
	if err := b.store.SaveFlowState(ctx, flow); err != nil {
		return "", fmt.Errorf("save flow state: %w", err)
	}

	logger.Debug("oauth flow started for session %s", sessionID)
	return b.exchanger.AuthCodeURL(state), nil
}

// Complete verifies the callback state and exchanges the code for a
// token. The stored state is consumed whether or not completion
// succeeds, so a failed attempt cannot be replayed.
func (b *CredentialBroker) Complete(ctx context.Context, sessionID, code, returnedState string) (*domain.Credentials, error) {
	stored, err := b.store.ConsumeFlowState(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: no pending flow for session", domain.ErrInvalidState)
	}
	if stored.IsExpired() {
		return nil, fmt.Errorf("%w: flow expired", domain.ErrInvalidState)
	}
	if returnedState == "" || returnedState != stored.State {
		return nil, fmt.Errorf("%w: state mismatch", domain.ErrInvalidState)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", domain.ErrInvalidInput)
	}

	token, err := b.exchanger.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("complete oauth flow: %w", err)
	}

	now := time.Now()
	creds := domain.Credentials{
		SessionID:   sessionID,
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Expiry:      token.Expiry,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := b.store.SaveCredentials(ctx, creds); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}

	logger.Info("oauth flow completed for session %s", sessionID)
	return &creds, nil
}

// IsAuthorized reports whether the session holds a non-expired token.
func (b *CredentialBroker) IsAuthorized(ctx context.Context, sessionID string) bool {
	creds, err := b.store.GetCredentials(ctx, sessionID)
	if err != nil {
		return false
	}
	return creds.IsAuthorized()
}

// Credentials returns the session's valid credentials.
func (b *CredentialBroker) Credentials(ctx context.Context, sessionID string) (*domain.Credentials, error) {
	creds, err := b.store.GetCredentials(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if !creds.IsAuthorized() {
		return nil, fmt.Errorf("%w: token expired", domain.ErrUnauthenticated)
	}
	return creds, nil
}
