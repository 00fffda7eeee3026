package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds runtime configuration for the frontend.
type Config struct {
	Port     string
	API      APIConfig
	Frontend FrontendConfig
	Metrics  MetricsConfig
	Log      LogConfig
}

// APIConfig controls how the Puppy Bowl API is reached.
type APIConfig struct {
	BaseURL string
	Cohort  string
	Mode    string
	Timeout time.Duration
	Retries int
}

// ResourceURL returns the cohort-scoped API root that /players hangs off.
func (c APIConfig) ResourceURL() string {
	base := strings.TrimSuffix(c.BaseURL, "/")
	if c.Cohort == "" {
		return base
	}
	return base + "/" + c.Cohort
}

// FrontendConfig controls rendering and the browser-facing HTTP surface.
type FrontendConfig struct {
	NoticeDelay time.Duration
	RateLimit   int
	Minify      bool
	// RefreshInterval re-fetches the roster periodically; zero disables it.
	RefreshInterval time.Duration
}

// LogConfig selects log level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// Load builds a Config by layering defaults, an optional .env file, an optional
// YAML file named by PUPPYBOWL_CONFIG and finally the process environment.
func Load() (Config, error) {
	if err := loadDotenv(); err != nil {
		return Config{}, err
	}

	k := koanf.New(".")
	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return Config{}, fmt.Errorf("config: load env: %w", err)
	}

	cfg := Config{
		Port: stringOr(k, keyPort, defaultPort),
		API: APIConfig{
			BaseURL: stringOr(k, keyAPIBaseURL, defaultAPIBaseURL),
			Cohort:  stringOr(k, keyAPICohort, defaultAPICohort),
			Mode:    modeOr(k, keyAPIMode, defaultAPIMode),
			Timeout: durationOr(k, keyAPITimeout, defaultAPITimeout),
			Retries: nonNegativeIntOr(k, keyAPIRetries, defaultAPIRetries),
		},
		Frontend: FrontendConfig{
			NoticeDelay: durationOr(k, keyNoticeDelay, defaultNoticeDelay),
			RateLimit:   positiveIntOr(k, keyRateLimit, defaultRateLimit),
			Minify:      boolOr(k, keyMinify, false),

			RefreshInterval: durationOr(k, keyRefresh, 0),
		},
		Metrics: loadMetrics(k),
		Log: LogConfig{
			Level:  stringOr(k, keyLogLevel, defaultLogLevel),
			Format: stringOr(k, keyLogFormat, defaultLogFormat),
		},
	}
	return cfg, nil
}

// loadDotenv populates the environment from a dotenv file without overriding
// variables that are already set. A missing file is not an error.
func loadDotenv() error {
	path := os.Getenv(envDotenvFile)
	if path == "" {
		path = defaultDotenvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}
