// Package config resolves runtime settings from flags, GITAKIDS_* env vars
// and an optional .gitakids.yaml, in viper's usual precedence.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/hammamikhairi/gitakids/internal/domain"
	"github.com/hammamikhairi/gitakids/internal/logger"
)

// EnvPrefix is the prefix for environment overrides, e.g. GITAKIDS_FRAME_RATE.
const EnvPrefix = "GITAKIDS"

// Frame rate bounds for the splash animation.
const (
	MinFrameRate = 1
	MaxFrameRate = 120
)

// Config holds everything the commands need to start.
type Config struct {
	CatalogPath string `mapstructure:"catalog_path"` // empty: built-in catalog
	SplashPath  string `mapstructure:"splash_path"`  // empty: built-in splash
	Watch       bool   `mapstructure:"watch"`
	SkipSplash  bool   `mapstructure:"skip_splash"`
	FrameRate   int    `mapstructure:"frame_rate"`
	AltScreen   bool   `mapstructure:"alt_screen"`
	LogLevel    string `mapstructure:"log_level"`
	LogFile     string `mapstructure:"log_file"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("catalog_path", "")
	v.SetDefault("splash_path", "")
	v.SetDefault("watch", false)
	v.SetDefault("skip_splash", false)
	v.SetDefault("frame_rate", 60)
	v.SetDefault("alt_screen", true)
	v.SetDefault("log_level", "normal")
	v.SetDefault("log_file", "gitakids.log")
}

// Load applies defaults, unmarshals v and validates the result. Errors wrap
// domain.ErrInvalidConfiguration.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and cross-field rules.
func (c Config) Validate() error {
	if c.FrameRate < MinFrameRate || c.FrameRate > MaxFrameRate {
		return fmt.Errorf("%w: frame_rate %d outside %d..%d",
			domain.ErrInvalidConfiguration, c.FrameRate, MinFrameRate, MaxFrameRate)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	if c.Watch && c.CatalogPath == "" {
		return fmt.Errorf("%w: watch needs catalog_path; the built-in catalog never changes",
			domain.ErrInvalidConfiguration)
	}
	return nil
}

// Level returns the parsed log level. Call after Validate.
func (c Config) Level() logger.Level {
	lvl, _ := logger.ParseLevel(c.LogLevel)
	return lvl
}

// FrameInterval is the delay between splash frames.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}
