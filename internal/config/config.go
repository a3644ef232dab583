package config

// Configuration loading and validation for the cattle portal client.

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avrlabs/cattleport/internal/errors"
)

// Mode selects how backend effects are produced.
type Mode string

const (
	// ModeMock simulates every backend effect locally.
	ModeMock Mode = "mock"
	// ModeLive issues real HTTP calls against the portal API.
	ModeLive Mode = "live"
)

// APIConfig describes the live portal API endpoint.
type APIConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// MockConfig tunes the mock backend. Delays exist so the TUI feels like the
// real thing; tests run with zero delays.
type MockConfig struct {
	OTP               string `yaml:"otp"`                 // issued code; empty = random per request
	ResendCooldownSec int    `yaml:"resend_cooldown_sec"` // min seconds between OTP issues
	VerifyDelayMs     int    `yaml:"verify_delay_ms"`
	PredictDelayMs    int    `yaml:"predict_delay_ms"`
}

// LogConfig controls the portal logger.
type LogConfig struct {
	Level string `yaml:"level"` // silent, error, info, verbose, debug
	File  string `yaml:"file,omitempty"`
}

// Config is the full client configuration.
type Config struct {
	Mode Mode       `yaml:"mode"`
	API  APIConfig  `yaml:"api"`
	Mock MockConfig `yaml:"mock"`
	Log  LogConfig  `yaml:"log"`
}

// DefaultConfig returns the configuration used when no file is given:
// mock mode with the fixed test OTP.
func DefaultConfig() *Config {
	return &Config{
		Mode: ModeMock,
		API: APIConfig{
			BaseURL:    "http://localhost:5000",
			TimeoutSec: 15,
		},
		Mock: MockConfig{
			OTP:               "123456",
			ResendCooldownSec: 15,
			VerifyDelayMs:     500,
			PredictDelayMs:    1500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads and validates a YAML config file. Fields omitted from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("read config: %w", err), path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("parse config: %w", err), path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapConfigError(err, path)
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeMock, ModeLive:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeMock, ModeLive, c.Mode)
	}

	if c.Mode == ModeLive {
		url := strings.TrimSpace(c.API.BaseURL)
		if url == "" {
			return fmt.Errorf("api.base_url is required in live mode")
		}
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return fmt.Errorf("api.base_url must start with http:// or https://, got %q", url)
		}
	}

	if c.API.TimeoutSec < 0 {
		return fmt.Errorf("api.timeout_sec must not be negative, got %d", c.API.TimeoutSec)
	}
	if c.Mock.ResendCooldownSec < 0 {
		return fmt.Errorf("mock.resend_cooldown_sec must not be negative, got %d", c.Mock.ResendCooldownSec)
	}
	if c.Mock.VerifyDelayMs < 0 || c.Mock.PredictDelayMs < 0 {
		return fmt.Errorf("mock delays must not be negative")
	}
	if c.Mock.OTP != "" && len(c.Mock.OTP) != 6 {
		return fmt.Errorf("mock.otp must be a 6-digit code, got %q", c.Mock.OTP)
	}

	switch c.Log.Level {
	case "silent", "error", "info", "verbose", "debug":
	default:
		return fmt.Errorf("log.level must be one of silent, error, info, verbose, debug; got %q", c.Log.Level)
	}

	return nil
}
