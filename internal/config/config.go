package config

import (
	"fmt"
	"strings"

	"github.com/cheerioskun/filetable/internal/utils"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (FILETABLE_MAX_DEPTH, ...)
const EnvPrefix = "FILETABLE"

// Config holds all filetable configuration
type Config struct {
	LogFile         string   `mapstructure:"log-file"`
	Verbose         bool     `mapstructure:"verbose"`
	MaxDepth        int      `mapstructure:"max-depth"`
	PageSize        int      `mapstructure:"page-size"`
	ShowHidden      bool     `mapstructure:"show-hidden"`
	PendingSuffixes []string `mapstructure:"pending-suffixes"`
	DefaultDevice   string   `mapstructure:"default-device"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LogFile:         utils.DefaultLogPath(),
		MaxDepth:        10,
		PageSize:        10,
		PendingSuffixes: []string{".part", ".crdownload", ".pending"},
		DefaultDevice:   "local",
	}
}

// SetDefaults registers the built-in values on v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log-file", d.LogFile)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("max-depth", d.MaxDepth)
	v.SetDefault("page-size", d.PageSize)
	v.SetDefault("show-hidden", d.ShowHidden)
	v.SetDefault("pending-suffixes", d.PendingSuffixes)
	v.SetDefault("default-device", d.DefaultDevice)
}

// BindEnv makes every key overridable through FILETABLE_* variables
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and normalises suffixes
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max-depth must not be negative, got %d", c.MaxDepth)
	}
	if c.PageSize < 0 {
		return fmt.Errorf("page-size must not be negative, got %d", c.PageSize)
	}
	for i, s := range c.PendingSuffixes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		c.PendingSuffixes[i] = s
	}
	return nil
}
