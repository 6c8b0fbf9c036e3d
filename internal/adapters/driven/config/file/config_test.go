package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
listen = ":9090"
verbose = true

[openai]
api_key = "file-key"
model = "gpt-4o-mini"
max_tokens = 2048

[monday]
client_id = "cid"
redirect_url = "https://app.example.com/api/monday/oauth/callback"

[sync]
item_concurrency = 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "file-key", cfg.OpenAI.APIKey)
	assert.Equal(t, 2048, cfg.OpenAI.MaxTokens)
	assert.Equal(t, "cid", cfg.Monday.ClientID)
	assert.Equal(t, 4, cfg.Sync.ItemConcurrency)

	// Unset values keep their defaults.
	assert.Equal(t, DefaultRequestsPerSecond, cfg.Sync.RequestsPerSecond)
	assert.Equal(t, DefaultBurst, cfg.Sync.Burst)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, DefaultItemConcurrency, cfg.Sync.ItemConcurrency)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, `listen = [broken`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[openai]
api_key = "file-key"
`)

	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("MONDAY_CLIENT_ID", "env-cid")
	t.Setenv("MONDAY_CLIENT_SECRET", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.OpenAI.APIKey, "environment wins over file")
	assert.Equal(t, "env-cid", cfg.Monday.ClientID)
	assert.Equal(t, "env-secret", cfg.Monday.ClientSecret)
}

func TestWatch_Reload(t *testing.T) {
	path := writeConfig(t, `listen = ":8080"`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, path, func(cfg *Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`listen = ":9999"`), 0600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, ":9999", cfg.Listen)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}

	cancel()
	<-done
}
