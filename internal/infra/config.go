package infra

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Server
	HTTPPort  int    `env:"HTTP_PORT" envDefault:"3000"`
	PanelName string `env:"PANEL_NAME" envDefault:"Lonely"`

	// Identity of the acting operator when a request carries no X-Panel-User
	// header. Route-level authentication is intentionally not enforced.
	DefaultOperator  string `env:"DEFAULT_OPERATOR" envDefault:"user1"`
	OperatorPassword string `env:"OPERATOR_PASSWORD" envDefault:"changeme"`

	// JWT for the login route; no other route requires tokens
	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`

	// Side effects
	ShellTimeout time.Duration `env:"SHELL_TIMEOUT" envDefault:"5s"`

	// Audit sink; entity state itself is never persisted
	DatabaseURL string `env:"DATABASE_URL"`

	// Chat presence announcements
	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled bool   `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaTopic   string `env:"KAFKA_TOPIC" envDefault:"panel.announcements"`

	// AI suggestions
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	// CORS
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for configuration that cannot work at runtime.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT %d out of range", c.HTTPPort)
	}
	if c.ShellTimeout <= 0 {
		return fmt.Errorf("SHELL_TIMEOUT must be positive, got %s", c.ShellTimeout)
	}
	if c.DefaultOperator == "" {
		return fmt.Errorf("DEFAULT_OPERATOR must not be empty")
	}
	return nil
}
