// Package config provides configuration loading and validation for the
// match server. It uses koanf to merge an optional YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the match server.
type Config struct {
	// Server settings
	Port int    `koanf:"port"`
	Env  string `koanf:"env"`

	// Catalog sources
	AffordabilityPath string `koanf:"affordability_path"`
	ResultsPath       string `koanf:"results_path"`

	// Query behavior
	DefaultLimit       int     `koanf:"default_limit"`
	Steepness          float64 `koanf:"steepness"`
	ExcludeZeroWeights bool    `koanf:"exclude_zero_weights"`

	// Operational settings
	CacheTTLMinutes     int `koanf:"cache_ttl_minutes"`
	RateLimitPerMin     int `koanf:"rate_limit_per_min"`
	RateLimitBurstMulti int `koanf:"rate_limit_burst_multiplier"`
}

// Configuration validation errors.
var (
	ErrMissingAffordabilityPath = errors.New("AFFORDABILITY_PATH is required")
	ErrMissingResultsPath       = errors.New("RESULTS_PATH is required")
	ErrInvalidPort              = errors.New("PORT must be a valid integer")
	ErrInvalidSteepness         = errors.New("STEEPNESS must be positive")
)

// Default values for configuration.
const (
	DefaultPort                = 8080
	DefaultEnv                 = "development"
	DefaultAffordabilityPath   = "data/Affordability_Gap.csv"
	DefaultResultsPath         = "data/College_Results.csv"
	DefaultLimit               = 10
	DefaultSteepness           = 6.0
	DefaultCacheTTLMinutes     = 15
	DefaultRateLimitPerMin     = 60
	DefaultRateLimitBurstMulti = 2
)

// Load reads configuration from an optional YAML file and environment
// variables. Environment variables take precedence over file values.
// Returns the loaded config and a slice of validation errors (empty if
// valid). A config file that cannot be parsed is itself an error.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	// File first (lower precedence)
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	port, portErr := getEnvIntOrDefault("PORT", k.Int("port"), DefaultPort)
	if portErr != nil {
		loadErrs = append(loadErrs, portErr)
	}

	cacheTTL, ttlErr := getEnvIntOrDefault("CACHE_TTL_MINUTES", k.Int("cache_ttl_minutes"), DefaultCacheTTLMinutes)
	if ttlErr != nil {
		loadErrs = append(loadErrs, ttlErr)
	}

	rateLimit, rlErr := getEnvIntOrDefault("RATE_LIMIT_PER_MIN", k.Int("rate_limit_per_min"), DefaultRateLimitPerMin)
	if rlErr != nil {
		loadErrs = append(loadErrs, rlErr)
	}

	burstMulti, bmErr := getEnvIntOrDefault("RATE_LIMIT_BURST_MULTIPLIER", k.Int("rate_limit_burst_multiplier"), DefaultRateLimitBurstMulti)
	if bmErr != nil {
		loadErrs = append(loadErrs, bmErr)
	}

	limit, limitErr := getEnvIntOrDefault("DEFAULT_LIMIT", k.Int("default_limit"), DefaultLimit)
	if limitErr != nil {
		loadErrs = append(loadErrs, limitErr)
	}

	steepness := DefaultSteepness
	if k.Exists("steepness") {
		steepness = k.Float64("steepness")
	}
	if val := os.Getenv("STEEPNESS"); val != "" {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			loadErrs = append(loadErrs, fmt.Errorf("STEEPNESS must be a valid number: %w", err))
		} else {
			steepness = parsed
		}
	}
	if steepness <= 0 {
		loadErrs = append(loadErrs, ErrInvalidSteepness)
	}

	excludeZero := k.Bool("exclude_zero_weights")
	if val := os.Getenv("EXCLUDE_ZERO_WEIGHTS"); val != "" {
		excludeZero = val == "true" || val == "1"
	}

	cfg := &Config{
		Port:                port,
		Env:                 getEnvOrDefault("ENV", k.String("env"), DefaultEnv),
		AffordabilityPath:   getEnvOrDefault("AFFORDABILITY_PATH", k.String("affordability_path"), DefaultAffordabilityPath),
		ResultsPath:         getEnvOrDefault("RESULTS_PATH", k.String("results_path"), DefaultResultsPath),
		DefaultLimit:        limit,
		Steepness:           steepness,
		ExcludeZeroWeights:  excludeZero,
		CacheTTLMinutes:     cacheTTL,
		RateLimitPerMin:     rateLimit,
		RateLimitBurstMulti: burstMulti,
	}

	if cfg.AffordabilityPath == "" {
		loadErrs = append(loadErrs, ErrMissingAffordabilityPath)
	}
	if cfg.ResultsPath == "" {
		loadErrs = append(loadErrs, ErrMissingResultsPath)
	}

	return cfg, loadErrs
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnvOrDefault(envKey, fileVal, def string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if fileVal != "" {
		return fileVal
	}
	return def
}

func getEnvIntOrDefault(envKey string, fileVal, def int) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return def, fmt.Errorf("%s must be a valid integer: %w", envKey, err)
		}
		return parsed, nil
	}
	if fileVal != 0 {
		return fileVal, nil
	}
	return def, nil
}
