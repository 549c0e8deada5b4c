// Package config loads process configuration from SPIX_* environment variables.
package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/spix/internal/errors"
)

// Save backends
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Backends lists every accepted SPIX_SAVE_BACKEND value
var Backends = []string{BackendNone, BackendFile, BackendRedis, BackendSQLite}

// Config is everything the binary reads from its environment. Command line
// flags override individual fields after parsing.
type Config struct {
	SaveBackend string `env:"SPIX_SAVE_BACKEND" envDefault:"file"`
	SaveDir     string `env:"SPIX_SAVE_DIR" envDefault:"saves"`
	RedisAddr   string `env:"SPIX_REDIS_ADDR" envDefault:"localhost:6379"`
	SQLitePath  string `env:"SPIX_SQLITE_PATH" envDefault:"spix.db"`

	// Owner groups saves made from the terminal
	Owner string `env:"SPIX_OWNER" envDefault:"local"`

	ListenAddr  string `env:"SPIX_LISTEN_ADDR" envDefault:":8080"`
	HealthPort  int    `env:"SPIX_HEALTH_PORT" envDefault:"50051"`
	MaxSessions int    `env:"SPIX_MAX_SESSIONS" envDefault:"32"`

	// Seed of 0 rolls non-deterministically
	Seed int64 `env:"SPIX_SEED" envDefault:"0"`

	// LogLevel is empty to let each command pick its own default
	LogLevel    string `env:"SPIX_LOG_LEVEL"`
	Transcripts bool   `env:"SPIX_TRANSCRIPTS" envDefault:"true"`

	// OTLPEndpoint enables trace export when set
	OTLPEndpoint string `env:"SPIX_OTLP_ENDPOINT"`
}

// Load parses the process environment and validates the result
func Load() (*Config, error) {
	return parse(env.Options{})
}

// FromMap parses environ instead of the process environment
func FromMap(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backend specific settings and numeric ranges
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("SPIX_SAVE_BACKEND", c.SaveBackend, Backends, vb)
	switch c.SaveBackend {
	case BackendFile:
		errors.ValidateRequired("SPIX_SAVE_DIR", c.SaveDir, vb)
	case BackendRedis:
		errors.ValidateRequired("SPIX_REDIS_ADDR", c.RedisAddr, vb)
	case BackendSQLite:
		errors.ValidateRequired("SPIX_SQLITE_PATH", c.SQLitePath, vb)
	}

	errors.ValidateRequired("SPIX_OWNER", c.Owner, vb)
	if strings.ContainsAny(c.Owner, `/\:`) {
		vb.InvalidField("SPIX_OWNER", "must not contain path separators")
	}
	errors.ValidateRange("SPIX_HEALTH_PORT", c.HealthPort, 0, 65535, vb)
	if c.MaxSessions < 1 {
		vb.Fieldf("SPIX_MAX_SESSIONS", "must be at least 1, got %d", c.MaxSessions)
	}
	if c.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
			vb.Fieldf("SPIX_LOG_LEVEL", "unknown level %q", c.LogLevel)
		}
	}

	return vb.Build()
}

// Level returns the configured log level, or def when none is set
func (c *Config) Level(def slog.Level) slog.Level {
	if c.LogLevel == "" {
		return def
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return def
	}
	return level
}
