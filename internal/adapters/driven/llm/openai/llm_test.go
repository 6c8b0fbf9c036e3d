package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(LLMConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})
	assert.Error(t, err, "API key is required")

	svc, err := NewLLMService(LLMConfig{APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultLLMModel, svc.ModelName())
}

func TestChat(t *testing.T) {
	var gotBody map[string]any

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `[{"id":"1"}]`}},
			},
		})
	})

	reply, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "instructions"},
		{Role: "user", Content: "syllabus"},
	}, driven.ChatOptions{MaxTokens: 1024, Temperature: 0})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, reply)

	temp, present := gotBody["temperature"]
	require.True(t, present, "temperature 0 must be sent explicitly")
	assert.Equal(t, float64(0), temp)
	assert.Equal(t, float64(1024), gotBody["max_tokens"])
}

func TestChat_APIError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid api key", "type": "auth"},
		})
	})

	_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModelCall)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestChat_NonOKStatus(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
	assert.ErrorIs(t, err, domain.ErrModelCall)
}

func TestChat_TransportFailure(t *testing.T) {
	svc, err := NewLLMService(LLMConfig{APIKey: "key", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), nil, driven.ChatOptions{})
	assert.ErrorIs(t, err, domain.ErrModelCall)
}

func TestChat_NoChoices(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
	assert.ErrorIs(t, err, domain.ErrModelCall)
}

func TestPing(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	assert.NoError(t, svc.Ping(context.Background()))
}
