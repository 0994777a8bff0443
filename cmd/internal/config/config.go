package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/labstack/gommon/log"
)

const (
	AuthModeStatic = "static"
	AuthModeJWT    = "jwt"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel    string    `env:"LOG_LEVEL" envDefault:"info"`
	ServiceName string    `env:"SERVICE_NAME" envDefault:"vantay-go"`
	APIKey      string    `env:"API_KEY"`
	HTTP        HTTP      `envPrefix:"HTTP_"`
	Database    Database  `envPrefix:"DATABASE_"`
	Auth        Auth      `envPrefix:"AUTH_"`
	CORS        CORS      `envPrefix:"CORS_"`
	RateLimit   RateLimit `envPrefix:"RATE_LIMIT_"`
}

// HTTP contains listener parameters.
type HTTP struct {
	Host            string        `env:"HOST" envDefault:"127.0.0.1"`
	Port            string        `env:"PORT" envDefault:"3000"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Database contains connection pool parameters.
type Database struct {
	Driver      string        `env:"DRIVER" envDefault:"sqlite"`
	URL         string        `env:"URL" envDefault:"file:vantay.db?_foreign_keys=on"`
	MaxConns    int           `env:"MAX_CONNS" envDefault:"5"`
	MaxIdleTime time.Duration `env:"MAX_IDLE_TIME" envDefault:"30s"`
}

// Auth selects how bearer tokens are checked against API_KEY.
type Auth struct {
	Mode    string `env:"MODE" envDefault:"static"`
	DBCheck bool   `env:"DB_CHECK" envDefault:"true"`
}

// CORS contains the origin allow-list.
type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
}

// RateLimit applies to signup.
type RateLimit struct {
	RPS       float64       `env:"RPS" envDefault:"5"`
	Burst     int           `env:"BURST" envDefault:"10"`
	ExpiresIn time.Duration `env:"EXPIRES_IN" envDefault:"3m"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.HTTP.Host + ":" + c.HTTP.Port
}

// LogLvl maps LOG_LEVEL onto the gommon levels.
func (c *Config) LogLvl() log.Lvl {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	switch c.Auth.Mode {
	case AuthModeStatic, AuthModeJWT:
	default:
		return fmt.Errorf("unsupported AUTH_MODE %q", c.Auth.Mode)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("DATABASE_MAX_CONNS must be at least 1")
	}
	return nil
}
