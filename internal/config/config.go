// Package config loads process configuration from the environment.
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
	"github.com/KirkDiggler/rpg-spellindex/internal/registry"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Config is the process configuration. Command flags override it.
type Config struct {
	RedisAddr      string        `env:"SPELLINDEX_REDIS_ADDR"      envDefault:"localhost:6379"`
	LogLevel       string        `env:"SPELLINDEX_LOG_LEVEL"       envDefault:"info"`
	LogFormat      string        `env:"SPELLINDEX_LOG_FORMAT"      envDefault:"text"`
	DND5eBaseURL   string        `env:"SPELLINDEX_DND5E_BASE_URL"  envDefault:"https://www.dnd5eapi.co/api/2014/"`
	HTTPTimeout    time.Duration `env:"SPELLINDEX_HTTP_TIMEOUT"    envDefault:"30s"`
	ConflictPolicy string        `env:"SPELLINDEX_CONFLICT_POLICY" envDefault:"first-specific"`
}

// Load parses the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("LogLevel", c.LogLevel, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("LogFormat", c.LogFormat, []string{LogFormatText, LogFormatJSON}, vb)
	errors.ValidateEnum("ConflictPolicy", c.ConflictPolicy, registry.PolicyNames(), vb)
	if c.HTTPTimeout < 0 {
		vb.Field("HTTPTimeout", "must not be negative")
	}
	return vb.Build()
}

// SlogLevel returns the configured level, Info when unset
func (c *Config) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return level
	}
	return slog.LevelInfo
}

// NewLogger builds the process logger writing to w
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.LogFormat, LogFormatJSON) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Policy resolves the configured conflict policy
func (c *Config) Policy() (registry.ConflictPolicy, error) {
	return registry.PolicyByName(c.ConflictPolicy)
}
