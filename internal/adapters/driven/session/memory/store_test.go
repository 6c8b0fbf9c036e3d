package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseloft/syllaboard/internal/core/domain"
)

func TestFlowState_RoundTrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	state := domain.FlowState{
		SessionID: "sess-1",
		State:     "state-abc",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}
	require.NoError(t, store.SaveFlowState(ctx, state))

	got, err := store.ConsumeFlowState(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "state-abc", got.State)

	// Consume is single-use.
	_, err = store.ConsumeFlowState(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlowState_Missing(t *testing.T) {
	store := NewStore()

	_, err := store.ConsumeFlowState(context.Background(), "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlowState_Expired(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	state := domain.FlowState{
		SessionID: "sess-1",
		State:     "state-abc",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, store.SaveFlowState(ctx, state))

	_, err := store.ConsumeFlowState(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlowState_Replace(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.SaveFlowState(ctx, domain.FlowState{
		SessionID: "sess-1", State: "old", ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, store.SaveFlowState(ctx, domain.FlowState{
		SessionID: "sess-1", State: "new", ExpiresAt: time.Now().Add(time.Hour),
	}))

	got, err := store.ConsumeFlowState(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.State)
}

func TestCredentials_RoundTrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	creds := domain.Credentials{
		SessionID:   "sess-1",
		AccessToken: "tok-1",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}
	require.NoError(t, store.SaveCredentials(ctx, creds))

	got, err := store.GetCredentials(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.AccessToken)

	require.NoError(t, store.DeleteCredentials(ctx, "sess-1"))
	_, err = store.GetCredentials(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCredentials_Missing(t *testing.T) {
	store := NewStore()

	_, err := store.GetCredentials(context.Background(), "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
