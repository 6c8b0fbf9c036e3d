// Package file loads application configuration from a TOML file with
// environment-variable overrides for secrets.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultListen            = ":8080"
	DefaultItemConcurrency   = 8
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 10
)

// Config is the application configuration.
type Config struct {
	// Listen is the HTTP listen address (default: :8080).
	Listen string `toml:"listen"`

	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`

	OpenAI  OpenAIConfig  `toml:"openai"`
	Monday  MondayConfig  `toml:"monday"`
	Sync    SyncConfig    `toml:"sync"`
	Storage StorageConfig `toml:"storage"`
}

// OpenAIConfig configures the extraction model.
type OpenAIConfig struct {
	// APIKey is read from OPENAI_API_KEY when not set in the file.
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	BaseURL   string `toml:"base_url"`
	MaxTokens int    `toml:"max_tokens"`
}

// MondayConfig configures the workspace provider.
type MondayConfig struct {
	// ClientID and ClientSecret are read from MONDAY_CLIENT_ID and
	// MONDAY_CLIENT_SECRET when not set in the file.
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
	APIURL       string `toml:"api_url"`
}

// SyncConfig bounds the provisioning fan-out.
type SyncConfig struct {
	ItemConcurrency   int     `toml:"item_concurrency"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// StorageConfig locates the session database.
type StorageConfig struct {
	DataDir string `toml:"data_dir"`
}

// DefaultPath returns the default config file location,
// ~/.syllaboard/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".syllaboard", "config.toml"), nil
}

// Load reads the config file at path and applies environment overrides.
// A missing file is not an error: defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Listen: DefaultListen,
		Sync: SyncConfig{
			ItemConcurrency:   DefaultItemConcurrency,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays secrets from the environment. Environment values
// win over file values so deployments never need secrets on disk.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("MONDAY_CLIENT_ID"); v != "" {
		c.Monday.ClientID = v
	}
	if v := os.Getenv("MONDAY_CLIENT_SECRET"); v != "" {
		c.Monday.ClientSecret = v
	}
}
