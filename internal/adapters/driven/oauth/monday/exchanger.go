// Package monday implements the authorization-code exchange against the
// monday.com OAuth endpoints.
package monday

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driven"
)

// Ensure Exchanger implements the interface.
var _ driven.OAuthExchanger = (*Exchanger)(nil)

// Default provider endpoints and scopes.
const (
	DefaultAuthURL  = "https://auth.monday.com/oauth2/authorize"
	DefaultTokenURL = "https://auth.monday.com/oauth2/token"
)

// DefaultScopes covers board creation and population.
var DefaultScopes = []string{"boards:read", "boards:write"}

// FallbackTokenValidity is applied when the provider omits expires_in;
// monday.com access tokens do not expire, so a long horizon is safe.
const FallbackTokenValidity = 365 * 24 * time.Hour

// Config holds configuration for the OAuth exchanger.
type Config struct {
	// ClientID is the OAuth app client id (required).
	ClientID string

	// ClientSecret is the OAuth app client secret (required).
	ClientSecret string

	// RedirectURL is the registered callback URL (required).
	RedirectURL string

	// AuthURL overrides the provider authorization endpoint. Used in tests.
	AuthURL string

	// TokenURL overrides the provider token endpoint. Used in tests.
	TokenURL string

	// Scopes overrides the requested scopes (default: boards:read boards:write).
	Scopes []string
}

// Exchanger performs the authorization-code grant.
type Exchanger struct {
	oauth *oauth2.Config
	now   func() time.Time
}

// NewExchanger creates a new OAuth exchanger.
func NewExchanger(cfg Config) (*Exchanger, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("oauth: client id and secret are required")
	}
	if cfg.RedirectURL == "" {
		return nil, fmt.Errorf("oauth: redirect URL is required")
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultScopes
	}

	return &Exchanger{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		now: time.Now,
	}, nil
}

// AuthCodeURL builds the provider authorization URL for one flow.
func (e *Exchanger) AuthCodeURL(state string) string {
	return e.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token.
func (e *Exchanger) Exchange(ctx context.Context, code string) (*driven.Token, error) {
	tok, err := e.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExchangeFailed, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: provider returned no access token", domain.ErrExchangeFailed)
	}

	expiry := tok.Expiry
	if expiry.IsZero() {
		expiry = e.now().Add(FallbackTokenValidity)
	}

	tokenType := tok.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &driven.Token{
		AccessToken: tok.AccessToken,
		TokenType:   tokenType,
		Expiry:      expiry,
	}, nil
}
