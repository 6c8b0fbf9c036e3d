package domain

import "time"

// Credentials stores the workspace access token obtained for one
// browsing session via the OAuth authorization-code flow.
type Credentials struct {
	// SessionID links the token to the session that completed the flow.
	SessionID string `json:"session_id"`

	// AccessToken is the bearer token for the workspace API.
	AccessToken string `json:"access_token"`

	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`

	// Expiry is when the access token stops being valid.
	Expiry time.Time `json:"expiry"`

	// CreatedAt is when the exchange completed.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the credentials were last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsExpired returns true if the access token has expired.
// A zero expiry means the token does not expire.
func (c *Credentials) IsExpired() bool {
	if c.Expiry.IsZero() {
		return false
	}
	return time.Now().After(c.Expiry)
}

// IsAuthorized returns true if the credentials hold a usable token.
func (c *Credentials) IsAuthorized() bool {
	return c.AccessToken != "" && !c.IsExpired()
}

// FlowState holds the CSRF state issued at the start of an OAuth flow.
// It is single-use: consumed exactly once at completion, success or not.
type FlowState struct {
	// SessionID identifies the browsing session the flow belongs to.
	SessionID string `json:"session_id"`

	// State is the opaque random value carried through the provider
	// redirect and echoed back on the callback.
	State string `json:"state"`

	// ExpiresAt bounds how long the flow may stay pending.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the flow has outlived its validity window.
func (f *FlowState) IsExpired() bool {
	return time.Now().After(f.ExpiresAt)
}
