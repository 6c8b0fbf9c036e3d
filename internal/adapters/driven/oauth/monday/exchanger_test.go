package monday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseloft/syllaboard/internal/core/domain"
)

func newTestExchanger(t *testing.T, handler http.HandlerFunc) *Exchanger {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	ex, err := NewExchanger(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://app.example.com/api/monday/oauth/callback",
		AuthURL:      server.URL + "/authorize",
		TokenURL:     server.URL + "/token",
	})
	require.NoError(t, err)
	return ex
}

func TestNewExchanger_Validation(t *testing.T) {
	_, err := NewExchanger(Config{ClientSecret: "s", RedirectURL: "r"})
	assert.Error(t, err)

	_, err = NewExchanger(Config{ClientID: "c", ClientSecret: "s"})
	assert.Error(t, err)
}

func TestAuthCodeURL(t *testing.T) {
	ex, err := NewExchanger(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://app.example.com/callback",
	})
	require.NoError(t, err)

	raw := ex.AuthCodeURL("state-123")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "auth.monday.com", parsed.Host)
	assert.Equal(t, "/oauth2/authorize", parsed.Path)

	q := parsed.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "https://app.example.com/callback", q.Get("redirect_uri"))
	assert.Equal(t, "boards:read boards:write", q.Get("scope"))
}

func TestExchange(t *testing.T) {
	ex := newTestExchanger(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.FormValue("code"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"Bearer","expires_in":3600}`))
	})

	tok, err := ex.Exchange(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Expiry, time.Minute)
}

func TestExchange_NoExpiryFallback(t *testing.T) {
	ex := newTestExchanger(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"Bearer"}`))
	})
	ex.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	tok, err := ex.Exchange(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), tok.Expiry)
}

func TestExchange_ProviderRejection(t *testing.T) {
	ex := newTestExchanger(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	})

	_, err := ex.Exchange(context.Background(), "stale-code")
	assert.ErrorIs(t, err, domain.ErrExchangeFailed)
}

func TestExchange_EmptyAccessToken(t *testing.T) {
	ex := newTestExchanger(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"","token_type":"Bearer"}`))
	})

	_, err := ex.Exchange(context.Background(), "auth-code")
	assert.ErrorIs(t, err, domain.ErrExchangeFailed)
}
