// Package config loads the settings shared by the CLI and the servers.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/algebra/internal/logging"
	"github.com/aretw0/algebra/internal/runtime"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// MaxPrecision bounds the configurable decimal digits.
const MaxPrecision = 100000

// Config is the complete application configuration.
type Config struct {
	Precision uint        `mapstructure:"precision" yaml:"precision"`
	Mode      string      `mapstructure:"mode" yaml:"mode"`
	LogLevel  string      `mapstructure:"log_level" yaml:"log_level"`
	MaxDepth  int         `mapstructure:"max_depth" yaml:"max_depth"`
	Cache     CacheConfig `mapstructure:"cache" yaml:"cache"`
	HTTP      HTTPConfig  `mapstructure:"http" yaml:"http"`
}

// CacheConfig selects and configures the reduction cache.
type CacheConfig struct {
	Backend    string        `mapstructure:"backend" yaml:"backend"`
	Address    string        `mapstructure:"address" yaml:"address"`
	Password   string        `mapstructure:"password" yaml:"password,omitempty"`
	DB         int           `mapstructure:"db" yaml:"db"`
	Prefix     string        `mapstructure:"prefix" yaml:"prefix"`
	TTL        time.Duration `mapstructure:"ttl" yaml:"ttl"`
	MaxEntries int           `mapstructure:"max_entries" yaml:"max_entries"`
}

// HTTPConfig configures `algebra serve`.
type HTTPConfig struct {
	Port         int   `mapstructure:"port" yaml:"port"`
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Precision: numeric.DefaultDigits,
		Mode:      string(runtime.ModeNumeric),
		LogLevel:  "info",
		MaxDepth:  runtime.DefaultMaxDepth,
		Cache: CacheConfig{
			Backend: CacheNone,
			Address: "localhost:6379",
			Prefix:  "algebra:reduce:",
		},
		HTTP: HTTPConfig{
			Port:         8080,
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns the defaults.
// Files ending in .json are read as JSON, everything else as YAML.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return Decode(raw)
}

// Decode applies raw over the defaults and validates the result.
// Values are weakly typed ("50" is a valid precision) and durations may be
// written as strings ("5m").
func Decode(raw map[string]any) (Config, error) {
	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Precision == 0 || c.Precision > MaxPrecision {
		errs = append(errs, fmt.Errorf("precision must be between 1 and %d digits, got %d", MaxPrecision, c.Precision))
	}
	if _, err := runtime.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}

	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.Address == "" {
			errs = append(errs, errors.New("cache.address is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend %q", c.Cache.Backend))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL))
	}
	if c.Cache.MaxEntries < 0 {
		errs = append(errs, fmt.Errorf("cache.max_entries must not be negative, got %d", c.Cache.MaxEntries))
	}

	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port out of range: %d", c.HTTP.Port))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("http.max_body_bytes must be positive, got %d", c.HTTP.MaxBodyBytes))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Write serializes c as YAML.
func (c Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
