package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCredentials_IsExpired(t *testing.T) {
	tests := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{"zero expiry never expires", time.Time{}, false},
		{"future expiry", time.Now().Add(time.Hour), false},
		{"past expiry", time.Now().Add(-time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Credentials{AccessToken: "tok", Expiry: tt.expiry}
			assert.Equal(t, tt.want, c.IsExpired())
		})
	}
}

func TestCredentials_IsAuthorized(t *testing.T) {
	c := Credentials{}
	assert.False(t, c.IsAuthorized(), "no token")

	c.AccessToken = "tok"
	c.Expiry = time.Now().Add(time.Hour)
	assert.True(t, c.IsAuthorized())

	c.Expiry = time.Now().Add(-time.Minute)
	assert.False(t, c.IsAuthorized(), "expired token")
}

func TestFlowState_IsExpired(t *testing.T) {
	f := FlowState{State: "abc", ExpiresAt: time.Now().Add(15 * time.Minute)}
	assert.False(t, f.IsExpired())

	f.ExpiresAt = time.Now().Add(-time.Second)
	assert.True(t, f.IsExpired())
}
