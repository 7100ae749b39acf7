// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Duration is a time.Duration written as a Go duration string in JSON ("168h").
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"24h\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	// Service
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty disables cache and run history

	// Profile data source
	ProfileAPIURL   string   `json:"profile_api_url,omitempty"`   // Base URL of the profile API
	ProfileAPIKey   string   `json:"profile_api_key,omitempty"`   // Bearer key for the profile API
	ProfileRPS      float64  `json:"profile_rps,omitempty"`       // Profile lookups per second
	ProfileBurst    int      `json:"profile_burst,omitempty"`     // Profile lookup burst
	ProfileCacheTTL Duration `json:"profile_cache_ttl,omitempty"` // How long cached profiles stay fresh

	// Crawling
	SearchEndpoint    string `json:"search_endpoint,omitempty"`     // Search engine results URL
	ProfileSiteMarker string `json:"profile_site_marker,omitempty"` // Base domain of profile links
	UseBrowser        bool   `json:"use_browser,omitempty"`         // Render every result page in a headless browser
	BrowserFallback   *bool  `json:"browser_fallback,omitempty"`    // Render pages whose HTTP fetch fails or is too thin
	MaxPages          int    `json:"max_pages,omitempty"`           // Result pages per crawl
	Concurrency       int    `json:"concurrency,omitempty"`         // Parallel profile lookups per page

	// Logging
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn, error
	Verbose  bool   `json:"verbose,omitempty"`   // Development logging
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	fallback := true
	return Config{
		Port:              8080,
		ProfileRPS:        2,
		ProfileBurst:      2,
		ProfileCacheTTL:   Duration(7 * 24 * time.Hour),
		SearchEndpoint:    "https://www.google.com/search",
		ProfileSiteMarker: "linkedin.com",
		BrowserFallback:   &fallback,
		MaxPages:          10,
		Concurrency:       1,
		LogLevel:          "info",
	}
}

// FromEnv reads the configuration values that are set in the environment.
func FromEnv() Config {
	return Config{
		Port:          getEnvInt("PORT", 0),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ProfileAPIURL: os.Getenv("PROFILE_API_URL"),
		ProfileAPIKey: os.Getenv("PROFILE_API_KEY"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}
}

// Load builds the effective configuration: the optional config file, then the
// environment, then defaults. The result is validated.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	cfg = cfg.MergeWithDefaults(Defaults())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those depend on the command.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxPages < 0 || c.MaxPages > 50 {
		return fmt.Errorf("config error: 'max_pages' must be between 1 and 50")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.ProfileRPS < 0 {
		return fmt.Errorf("config error: 'profile_rps' must be non-negative")
	}
	if c.ProfileBurst < 0 {
		return fmt.Errorf("config error: 'profile_burst' must be non-negative")
	}
	if c.ProfileCacheTTL < 0 {
		return fmt.Errorf("config error: 'profile_cache_ttl' must be non-negative")
	}

	for name, raw := range map[string]string{
		"profile_api_url": c.ProfileAPIURL,
		"search_endpoint": c.SearchEndpoint,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: '%s' must be an http(s) URL: %s", name, raw)
		}
	}

	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: invalid 'log_level' %q", c.LogLevel)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer config file, environment and built-in values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ProfileAPIURL == "" {
		result.ProfileAPIURL = defaults.ProfileAPIURL
	}
	if result.ProfileAPIKey == "" {
		result.ProfileAPIKey = defaults.ProfileAPIKey
	}
	if result.SearchEndpoint == "" {
		result.SearchEndpoint = defaults.SearchEndpoint
	}
	if result.ProfileSiteMarker == "" {
		result.ProfileSiteMarker = defaults.ProfileSiteMarker
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ProfileRPS == 0 {
		result.ProfileRPS = defaults.ProfileRPS
	}
	if result.ProfileBurst == 0 {
		result.ProfileBurst = defaults.ProfileBurst
	}
	if result.ProfileCacheTTL == 0 {
		result.ProfileCacheTTL = defaults.ProfileCacheTTL
	}
	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Optional bools
	if result.BrowserFallback == nil {
		result.BrowserFallback = defaults.BrowserFallback
	}

	// Plain bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// BrowserFallbackEnabled reports whether thin or failed HTTP fetches are retried in a browser.
func (c *Config) BrowserFallbackEnabled() bool {
	return c.BrowserFallback != nil && *c.BrowserFallback
}

// CacheTTL returns the profile cache freshness window.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.ProfileCacheTTL)
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
