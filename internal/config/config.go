package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the production backend. It is hosted on a free tier
	// that spins down when idle, which is why the request timeout below is
	// so generous.
	DefaultBaseURL = "https://wainkombackend.onrender.com/api"

	// MinRequestTimeoutSeconds is the floor for the outbound request
	// timeout. A cold-starting backend can take 30-60s to answer its
	// first request.
	MinRequestTimeoutSeconds = 60

	defaultRefreshSeconds = 15
	defaultListen         = "127.0.0.1:8080"
	defaultLocationLabel  = "Kuwait City, KW"
)

// BasicAuthConfig holds HTTP Basic Auth credentials for the preview server.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// GeoConfig configures the location-label resolution chain.
type GeoConfig struct {
	// GoogleAPIKey enables the primary (Google Geocoding) reverse geocoder.
	// When empty, the resolver skips straight to the secondary provider.
	GoogleAPIKey string `yaml:"google_api_key" json:"google_api_key"`

	// DefaultLabel is shown when permission is denied or every lookup fails.
	DefaultLabel string `yaml:"default_label" json:"default_label"`
}

// Config is the top-level application configuration.
type Config struct {
	// BaseURL is the API base address. Resolution priority is CLI flag,
	// then EVENTHUB_API_BASE_URL / API_BASE_URL environment variables,
	// then this field, then DefaultBaseURL.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// RequestTimeoutSeconds is the outbound HTTP timeout. Values below
	// MinRequestTimeoutSeconds are raised to it during normalization.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" json:"request_timeout_seconds"`

	// RefreshSeconds is the feed poll interval.
	RefreshSeconds int `yaml:"refresh_seconds" json:"refresh_seconds"`

	// Listen is the HTTP listen address for the local preview server.
	Listen string `yaml:"listen" json:"listen"`

	// TokenPath is where the bearer token is persisted.
	TokenPath string `yaml:"token_path" json:"token_path"`

	Geo GeoConfig `yaml:"geo" json:"geo"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// preview endpoints except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:               DefaultBaseURL,
		RequestTimeoutSeconds: MinRequestTimeoutSeconds,
		RefreshSeconds:        defaultRefreshSeconds,
		Listen:                defaultListen,
		TokenPath:             defaultTokenPath(),
		Geo: GeoConfig{
			DefaultLabel: defaultLocationLabel,
		},
		BasicAuth: nil,
	}
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".eventhub/token"
	}
	return filepath.Join(home, ".eventhub", "token")
}

// Normalize fills in missing/zero values with defaults so that partially
// filled configs still behave correctly, and applies the environment
// override chain for the base URL.
func (c *Config) Normalize() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if v := os.Getenv("API_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("EVENTHUB_API_BASE_URL"); v != "" {
		c.BaseURL = v
	}

	if c.RequestTimeoutSeconds < MinRequestTimeoutSeconds {
		c.RequestTimeoutSeconds = MinRequestTimeoutSeconds
	}
	if c.RefreshSeconds <= 0 {
		c.RefreshSeconds = defaultRefreshSeconds
	}
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.TokenPath == "" {
		c.TokenPath = defaultTokenPath()
	}
	if c.Geo.DefaultLabel == "" {
		c.Geo.DefaultLabel = defaultLocationLabel
	}
	if c.Geo.GoogleAPIKey == "" {
		c.Geo.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	}
}

// RequestTimeout returns the outbound HTTP timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// RefreshInterval returns the feed poll interval as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults and environment overrides
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			cfg.Normalize()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".eventhub-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
