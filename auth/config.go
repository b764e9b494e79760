package auth

import (
	"fmt"
	"time"
)

// Config configures bearer-token authentication for the HTTP API.
// When Enabled is false the API is open, which is the default for local
// development.
type Config struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Secret  string `yaml:"secret" mapstructure:"secret"`
	Issuer  string `yaml:"issuer" mapstructure:"issuer"`
	// TokenTTL is the lifetime of issued tokens in seconds.
	TokenTTL int `yaml:"token_ttl" mapstructure:"token_ttl"`
	// SkipPaths are URL path prefixes that bypass authentication.
	SkipPaths []string `yaml:"skip_paths" mapstructure:"skip_paths"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Issuer == "" {
		c.Issuer = "cortex"
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = int((15 * time.Minute).Seconds())
	}
	if len(c.SkipPaths) == 0 {
		c.SkipPaths = []string{"/health", "/version"}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Secret == "" {
		return fmt.Errorf("auth.secret is required when auth is enabled")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("auth.secret must be at least 16 bytes (got: %d)", len(c.Secret))
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("auth.token_ttl must be non-negative (got: %d)", c.TokenTTL)
	}
	return nil
}

// tokenTTL returns the configured token lifetime as a Duration.
func (c *Config) tokenTTL() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}
