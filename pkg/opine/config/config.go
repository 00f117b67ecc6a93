// Package config loads the analyzer configuration from YAML, with
// working defaults when no file is given. The remote API key is never
// stored in the file; it comes from the environment (optionally seeded
// from a .env file).
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/opinelab/opine/pkg/opine/internalerr"
)

// Environment variables checked for the remote API key, in order.
var apiKeyEnvVars = []string{"OPINE_API_KEY", "OPENAI_API_KEY"}

// Remote configures the hosted-model backend.
type Remote struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Thresholds configures insight triggers.
type Thresholds struct {
	HighNegativeRatio    float64 `yaml:"high_negative_ratio"`
	MediumNegativeRatio  float64 `yaml:"medium_negative_ratio"`
	HealthyPositiveRatio float64 `yaml:"healthy_positive_ratio"`
}

// Config is the full analyzer configuration.
type Config struct {
	Stopwords     []string            `yaml:"stopwords"`
	MinTopicCount int                 `yaml:"min_topic_count"`
	Lexicon       map[string]float64  `yaml:"lexicon"`
	Categories    map[string][]string `yaml:"categories"`
	Thresholds    Thresholds          `yaml:"thresholds"`
	Remote        Remote              `yaml:"remote"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MinTopicCount: 1,
		Thresholds: Thresholds{
			HighNegativeRatio:    0.40,
			MediumNegativeRatio:  0.20,
			HealthyPositiveRatio: 0.60,
		},
		Remote: Remote{
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 15,
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: read %s: %v", internalerr.ErrIO, path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse %s: %v", internalerr.ErrConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ratio bounds and remote settings.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"high_negative_ratio":    c.Thresholds.HighNegativeRatio,
		"medium_negative_ratio":  c.Thresholds.MediumNegativeRatio,
		"healthy_positive_ratio": c.Thresholds.HealthyPositiveRatio,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be in [0,1], got %v", internalerr.ErrConfig, name, v)
		}
	}
	if c.MinTopicCount < 0 {
		return fmt.Errorf("%w: min_topic_count must be >= 0", internalerr.ErrConfig)
	}
	if c.Remote.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: remote timeout_seconds must be >= 0", internalerr.ErrConfig)
	}
	return nil
}

// APIKey returns the remote API key from the environment. A .env file
// in the working directory is honored when present; absence of a key
// just disables the remote backend, so no error is returned.
func APIKey() string {
	_ = godotenv.Load()
	for _, name := range apiKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
