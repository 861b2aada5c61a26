// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"candidate-evaluator"`
	// MetricsAddr exposes the Prometheus /metrics listener; empty disables it.
	MetricsAddr string `env:"METRICS_ADDR" envDefault:""`
	// AIAPIKeys are the credential slots the judge client rotates across.
	// An empty list disables the AI judgment entirely (deterministic-only).
	AIAPIKeys   []string `env:"AI_API_KEYS" envSeparator:","`
	AIBaseURL   string   `env:"AI_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	AIModel     string   `env:"AI_MODEL" envDefault:"openai/gpt-4o-mini"`
	AIReferer   string   `env:"AI_REFERER"`
	AITitle     string   `env:"AI_TITLE" envDefault:"Candidate Evaluator"`
	AIMaxTokens int      `env:"AI_MAX_TOKENS" envDefault:"1200"`
	// AIRequestTimeout bounds a single judge HTTP attempt.
	AIRequestTimeout time.Duration `env:"AI_REQUEST_TIMEOUT" envDefault:"45s"`
	// AICredentialCooldown is how long a rate-limited credential sits out
	// before rotation may pick it again.
	AICredentialCooldown time.Duration `env:"AI_CREDENTIAL_COOLDOWN" envDefault:"60s"`
	// AI Backoff Configuration (within one judge call, across credentials)
	AIBackoffMaxElapsedTime  time.Duration `env:"AI_BACKOFF_MAX_ELAPSED_TIME" envDefault:"90s"`
	AIBackoffInitialInterval time.Duration `env:"AI_BACKOFF_INITIAL_INTERVAL" envDefault:"1s"`
	AIBackoffMaxInterval     time.Duration `env:"AI_BACKOFF_MAX_INTERVAL" envDefault:"10s"`
	AIBackoffMultiplier      float64       `env:"AI_BACKOFF_MULTIPLIER" envDefault:"1.5"`
	// BatchMaxConcurrency bounds parallel candidate evaluations in a batch.
	BatchMaxConcurrency int `env:"BATCH_MAX_CONCURRENCY" envDefault:"4"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// AIEnabled reports whether at least one AI credential slot is configured.
func (c Config) AIEnabled() bool {
	for _, k := range c.AIAPIKeys {
		if strings.TrimSpace(k) != "" {
			return true
		}
	}
	return false
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }

// GetAIBackoffConfig returns backoff configuration appropriate for the current
// environment. Test environments use much shorter timeouts.
func (c Config) GetAIBackoffConfig() (maxElapsedTime, initialInterval, maxInterval time.Duration, multiplier float64) {
	if c.IsTest() {
		return 2 * time.Second, 50 * time.Millisecond, 500 * time.Millisecond, 2.0
	}
	return c.AIBackoffMaxElapsedTime, c.AIBackoffInitialInterval, c.AIBackoffMaxInterval, c.AIBackoffMultiplier
}
