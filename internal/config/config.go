package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textcore/internal/config/loader"
	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/engine/buffer"
)

// FileName is the name of the configuration file inside the user
// configuration directory.
const FileName = "config.toml"

// Config holds every textcore setting.
type Config struct {
	Buffer BufferConfig `toml:"buffer"`
	Search SearchConfig `toml:"search"`
	Log    LogConfig    `toml:"log"`
}

// BufferConfig sizes the text storage.
type BufferConfig struct {
	// InitialCapacity is the number of code units allocated up front.
	InitialCapacity int `toml:"initialCapacity"`
	// GrowthFactor multiplies the capacity when the storage is full.
	GrowthFactor float64 `toml:"growthFactor"`
	// GrowthSlack is added to the capacity on every reallocation.
	GrowthSlack int `toml:"growthSlack"`
	// LineCapacity is the initial size of the line index.
	LineCapacity int `toml:"lineCapacity"`
}

// SearchConfig holds the search defaults of the engine.
type SearchConfig struct {
	MatchCase bool `toml:"matchCase"`
	Regexp    bool `toml:"regexp"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Buffer: BufferConfig{
			InitialCapacity: buffer.DefaultCapacity,
			GrowthFactor:    buffer.DefaultGrowthFactor,
			GrowthSlack:     buffer.DefaultGrowthSlack,
			LineCapacity:    buffer.DefaultLineCapacity,
		},
		Search: SearchConfig{MatchCase: true},
		Log:    LogConfig{Level: "info", Format: "console"},
	}
}

// DefaultPath returns the configuration file in the user configuration
// directory ($XDG_CONFIG_HOME/textcore or ~/.config/textcore).
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "textcore", FileName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "textcore", FileName)
}

// Load builds a configuration from the defaults, the TOML file at path
// and TEXTCORE_* environment variables, in increasing priority. A missing
// file is not an error. The result is validated.
func Load(path string) (*Config, error) {
	return load(loader.NewTOMLLoader(path), loader.NewEnvLoader(loader.DefaultPrefix))
}

func load(sources ...loader.Loader) (*Config, error) {
	var merged map[string]any
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes settings over the current values. Unknown settings are
// rejected.
func (c *Config) apply(settings map[string]any) error {
	if len(settings) == 0 {
		return nil
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, strict.String())
		}
		return fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}
	return nil
}

// Validate checks every setting and returns all problems joined. Each
// problem is a *ValidationError.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, path, msg string, value any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
		}
	}

	check(c.Buffer.InitialCapacity >= 0, "buffer.initialCapacity", "must not be negative", c.Buffer.InitialCapacity)
	check(c.Buffer.GrowthFactor >= 1, "buffer.growthFactor", "must be at least 1", c.Buffer.GrowthFactor)
	check(c.Buffer.GrowthSlack >= 0, "buffer.growthSlack", "must not be negative", c.Buffer.GrowthSlack)
	check(c.Buffer.LineCapacity > 0, "buffer.lineCapacity", "must be positive", c.Buffer.LineCapacity)

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		check(false, "log.level", "must be one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		check(false, "log.format", "must be console or json", c.Log.Format)
	}

	return errors.Join(errs...)
}

// BufferOptions returns the buffer options for the [buffer] section.
func (c *Config) BufferOptions() []buffer.Option {
	return []buffer.Option{
		buffer.WithCapacity(c.Buffer.InitialCapacity),
		buffer.WithGrowthFactor(c.Buffer.GrowthFactor),
		buffer.WithGrowthSlack(c.Buffer.GrowthSlack),
		buffer.WithLineCapacity(c.Buffer.LineCapacity),
	}
}

// EngineOptions returns the engine options for the whole configuration.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithBufferOptions(c.BufferOptions()...),
		engine.WithMatchCase(c.Search.MatchCase),
		engine.WithRegexp(c.Search.Regexp),
	}
}
