// internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type EvaluatorConfig struct {
	// Endpoint is the evaluation service URL. Empty means mock mode.
	Endpoint string `yaml:"endpoint,omitempty"`
	// TimeoutSeconds bounds one evaluation call. The engine itself never
	// retries or cancels; this transport timeout is the only time limit.
	TimeoutSeconds int  `yaml:"timeout_seconds,omitempty"`
	Mock           bool `yaml:"mock,omitempty"`
}

type ScoringConfig struct {
	HighThreshold int `yaml:"high_threshold,omitempty"`
	// MidThreshold is 70 in the current scheme. Legacy deployments drew the
	// line at 60; set 60 here to match scores published by one of those.
	MidThreshold int `yaml:"mid_threshold,omitempty"`
}

type ExportConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

type Config struct {
	Evaluator EvaluatorConfig `yaml:"evaluator"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Export    ExportConfig    `yaml:"export"`
}

func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		// Return defaults if no config file
		return defaultConfig(), nil
	}

	// Expand environment variables in config
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Evaluator.Endpoint == "" {
		cfg.Evaluator.Endpoint = os.Getenv("HTMLJUDGE_ENDPOINT")
	}
	if cfg.Evaluator.TimeoutSeconds == 0 {
		cfg.Evaluator.TimeoutSeconds = 120
	}
	if cfg.Scoring.HighThreshold == 0 {
		cfg.Scoring.HighThreshold = 80
	}
	if cfg.Scoring.MidThreshold == 0 {
		cfg.Scoring.MidThreshold = 70
	}
	if cfg.Export.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.Export.Dir = filepath.Join(home, "htmljudge")
	}
}

// Timeout returns the evaluator timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Evaluator.TimeoutSeconds) * time.Second
}

// MockMode reports whether the canned evaluator should be used. An explicit
// mock flag or a missing endpoint both select it, matching how the service
// behaves without credentials.
func (c *Config) MockMode() bool {
	return c.Evaluator.Mock || c.Evaluator.Endpoint == ""
}

func ConfigPath() string {
	configDir, _ := os.UserConfigDir()
	if configDir == "" {
		configDir = os.ExpandEnv("$HOME/.config")
	}
	return filepath.Join(configDir, "htmljudge", "config.yaml")
}
