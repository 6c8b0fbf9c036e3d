package driven

import (
	"context"
	"time"
)

// Token is the result of a successful authorization-code exchange.
type Token struct {
	// AccessToken is the bearer token for the workspace API.
	AccessToken string

	// TokenType is typically "Bearer".
	TokenType string

	// Expiry is when the token stops being valid. Providers that omit
	// expires_in get a long-lived fallback from the exchanger.
	Expiry time.Time
}

// OAuthExchanger talks to the workspace provider's OAuth endpoints.
type OAuthExchanger interface {
	// AuthCodeURL builds the provider authorization URL embedding the
	// client id, redirect target, requested scopes, and CSRF state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for an access token.
	// Provider rejection or a response without an access token fails
	// with an error wrapping domain.ErrExchangeFailed.
	Exchange(ctx context.Context, code string) (*Token, error)
}
