package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/codec"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/mirror"
)

// DemoConfig configures the load generator from environment variables.
type DemoConfig struct {
	SQLitePath   string `env:"DEMO_SQLITE_PATH"   envDefault:":memory:"`
	TableName    string `env:"DEMO_TABLE_NAME"    envDefault:"books"`
	Codec        string `env:"DEMO_CODEC"         envDefault:"json"`
	MirrorMode   string `env:"DEMO_MIRROR_MODE"   envDefault:"sequential"`
	Workers      int    `env:"DEMO_WORKERS"       envDefault:"4"`
	Rate         int    `env:"DEMO_RATE"          envDefault:"30"`
	InitialBooks int    `env:"DEMO_INITIAL_BOOKS" envDefault:"100"`
	WriteWeight  int    `env:"DEMO_WRITE_WEIGHT"  envDefault:"30"`
	LogLevel     string `env:"DEMO_LOG_LEVEL"     envDefault:"info"`
}

// ParseDemoConfig loads the load generator configuration from environment
// variables, falling back to the defaults declared on DemoConfig.
func ParseDemoConfig() (DemoConfig, error) {
	var cfg DemoConfig
	if err := env.Parse(&cfg); err != nil {
		return DemoConfig{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.WriteWeight < 0 || cfg.WriteWeight > 100 {
		return DemoConfig{}, fmt.Errorf("DEMO_WRITE_WEIGHT must be between 0 and 100, got %d", cfg.WriteWeight)
	}

	return cfg, nil
}

// Mode resolves the configured mirror scheduling mode.
func (c DemoConfig) Mode() (mirror.Mode, error) {
	switch c.MirrorMode {
	case "sequential":
		return mirror.Sequential, nil
	case "concurrent":
		return mirror.Concurrent, nil
	default:
		return mirror.Sequential, fmt.Errorf("unknown DEMO_MIRROR_MODE %q", c.MirrorMode)
	}
}

// EntityCodec resolves the configured payload codec for the SQLite store.
func (c DemoConfig) EntityCodec() (codec.Codec, error) {
	switch c.Codec {
	case "json":
		return codec.JSON, nil
	case "cbor":
		return codec.CBOR, nil
	default:
		return nil, fmt.Errorf("unknown DEMO_CODEC %q", c.Codec)
	}
}

// Level resolves the configured slog level, defaulting to info for unknown
// values.
func (c DemoConfig) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
