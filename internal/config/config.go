package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/san-kum/labkit/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir    = ".labkit"
	DefaultLogLevel   = "info"
	DefaultHistWidth  = 50
	DefaultHistHeight = 12
	DefaultHistColor  = "#00ff88"
)

type Config struct {
	DataDir    string            `yaml:"data_dir" env:"DATA"`
	LogLevel   string            `yaml:"log_level" env:"LOG_LEVEL"`
	LightSpeed float64           `yaml:"light_speed" env:"LIGHT_SPEED"`
	Histogram  HistogramConfig   `yaml:"histogram" envPrefix:"HIST_"`
	Species    []physics.Species `yaml:"species"`
}

type HistogramConfig struct {
	Width  int    `yaml:"width" env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`
	Color  string `yaml:"color" env:"COLOR"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:    DefaultDataDir,
		LogLevel:   DefaultLogLevel,
		LightSpeed: physics.DefaultLightSpeed,
		Histogram: HistogramConfig{
			Width:  DefaultHistWidth,
			Height: DefaultHistHeight,
			Color:  DefaultHistColor,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads dotenv files (missing ones are ignored) and overlays
// LABKIT_* environment variables on cfg.
func ApplyEnv(cfg *Config, dotenvFiles ...string) error {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "LABKIT_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the values that cannot be defaulted away.
func (c *Config) Validate() error {
	if !(c.LightSpeed > 0) || math.IsInf(c.LightSpeed, 1) {
		return fmt.Errorf("light_speed must be positive and finite, got %g", c.LightSpeed)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Histogram.Width <= 0 || c.Histogram.Height <= 0 {
		return fmt.Errorf("histogram size must be positive, got %dx%d", c.Histogram.Width, c.Histogram.Height)
	}
	return nil
}

// Catalog returns the preset species extended with the configured ones.
func (c *Config) Catalog() (*physics.Catalog, error) {
	cat := physics.NewCatalog()
	for _, s := range c.Species {
		if err := cat.Add(s); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// ParticleOptions returns the construction options implied by the config.
func (c *Config) ParticleOptions() []physics.Option {
	return []physics.Option{physics.WithLightSpeed(c.LightSpeed)}
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}
