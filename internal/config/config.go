// Package config loads the TOML configuration of the gwydump tool.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/robert-malhotra/go-gwy/internal/filter"
	"github.com/robert-malhotra/go-gwy/internal/logging"
)

// Config is the top-level gwydump configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Decode DecodeConfig `toml:"decode"`
	Encode EncodeConfig `toml:"encode"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	Timestamp bool   `toml:"timestamp"`
	NoColor   bool   `toml:"no_color"`
}

type DecodeConfig struct {
	MaxDepth int `toml:"max_depth"`
}

type EncodeConfig struct {
	Magic       string `toml:"magic"`
	Compression string `toml:"compression"`
	Level       int    `toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:     "info",
			Timestamp: false,
		},
		Decode: DecodeConfig{
			MaxDepth: 256,
		},
		Encode: EncodeConfig{
			Magic:       "GWYP",
			Compression: "none",
			Level:       filter.DefaultLevel,
		},
	}
}

// Load reads path on top of Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func Validate(cfg Config) error {
	var errs []error
	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok && cfg.Log.Level != "" {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", cfg.Log.Level))
	}
	if cfg.Decode.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("decode.max_depth must be positive, got %d", cfg.Decode.MaxDepth))
	}
	switch cfg.Encode.Magic {
	case "GWYP", "GWYO":
	default:
		errs = append(errs, fmt.Errorf("encode.magic must be GWYP or GWYO, got %q", cfg.Encode.Magic))
	}
	id, err := filter.ParseID(cfg.Encode.Compression)
	if err != nil {
		errs = append(errs, fmt.Errorf("encode.compression: %w", err))
	} else if _, err := filter.New(id, cfg.Encode.Level); err != nil {
		errs = append(errs, fmt.Errorf("encode.level: %w", err))
	}
	return errors.Join(errs...)
}

// LogSettings converts the [log] table into a logging.Config override.
func (c Config) LogSettings() func(*logging.Config) {
	return func(lc *logging.Config) {
		if lvl, ok := logging.ParseLevel(c.Log.Level); ok {
			lc.Level = lvl
		}
		lc.Timestamp = c.Log.Timestamp
		lc.NoColor = c.Log.NoColor
	}
}
