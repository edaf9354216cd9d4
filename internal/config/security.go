package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SecurityConfig represents security configuration: JWT verification
// parameters, the endpoints left open to anonymous traffic, and the
// per-IP limits on the abuse-prone public forms.
type SecurityConfig struct {
	Security struct {
		PublicEndpoints []string `yaml:"public_endpoints"`
		JWT             struct {
			SecretEnv string `yaml:"secret_env"`
			Issuer    string `yaml:"issuer"`
			Audience  string `yaml:"audience"`
		} `yaml:"jwt"`
		RateLimits struct {
			Contact   RateLimitRule `yaml:"contact"`
			Subscribe RateLimitRule `yaml:"subscribe"`
		} `yaml:"rate_limits"`
	} `yaml:"security"`
}

// RateLimitRule is a per-IP request budget over a sliding window.
type RateLimitRule struct {
	Limit  int    `yaml:"limit"`
	Window string `yaml:"window"`
}

// ParsedWindow returns the rule's window as a duration.
func (r RateLimitRule) ParsedWindow() (time.Duration, error) {
	d, err := time.ParseDuration(r.Window)
	if err != nil {
		return 0, fmt.Errorf("invalid window %q: %w", r.Window, err)
	}
	return d, nil
}

// LoadSecurityConfig loads security configuration from YAML file.
// The path parameter is expected to come from a trusted source (command-line argument or hardcoded default).
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path is provided by trusted source (CLI arg or config), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SecurityConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateSecurityConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// validateSecurityConfig validates the loaded configuration.
func validateSecurityConfig(config *SecurityConfig) error {
	if config.Security.JWT.SecretEnv == "" {
		return fmt.Errorf("jwt secret_env is required")
	}

	if config.Security.JWT.Issuer == "" {
		return fmt.Errorf("jwt issuer is required")
	}

	if config.Security.JWT.Audience == "" {
		return fmt.Errorf("jwt audience is required")
	}

	for name, rule := range map[string]RateLimitRule{
		"contact":   config.Security.RateLimits.Contact,
		"subscribe": config.Security.RateLimits.Subscribe,
	} {
		if rule.Limit <= 0 {
			return fmt.Errorf("rate limit for %s must be positive", name)
		}
		if _, err := rule.ParsedWindow(); err != nil {
			return fmt.Errorf("rate limit window for %s: %w", name, err)
		}
	}

	return nil
}

// GetPublicEndpoints returns the list of public endpoints.
func (c *SecurityConfig) GetPublicEndpoints() []string {
	return c.Security.PublicEndpoints
}

// GetJWTSecretEnv returns the environment variable name for JWT secret.
func (c *SecurityConfig) GetJWTSecretEnv() string {
	return c.Security.JWT.SecretEnv
}

// GetJWTIssuer returns the expected JWT issuer.
func (c *SecurityConfig) GetJWTIssuer() string {
	return c.Security.JWT.Issuer
}

// GetJWTAudience returns the expected JWT audience.
func (c *SecurityConfig) GetJWTAudience() string {
	return c.Security.JWT.Audience
}

// GetContactRateLimit returns the contact form rate limit rule.
func (c *SecurityConfig) GetContactRateLimit() RateLimitRule {
	return c.Security.RateLimits.Contact
}

// GetSubscribeRateLimit returns the subscribe form rate limit rule.
func (c *SecurityConfig) GetSubscribeRateLimit() RateLimitRule {
	return c.Security.RateLimits.Subscribe
}
