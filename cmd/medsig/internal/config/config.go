// Package config loads cmd/medsig's CLI-only configuration (rounding
// precision, audit ring-buffer capacity, log level), following
// Nirmitee-tech-headless-ehr-fhir's viper-based Load/Validate shape.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is cmd/medsig's optional runtime configuration. None of it reaches
// the core engine packages directly; it only tunes how the CLI drives them.
type Config struct {
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	Precision         int    `mapstructure:"PRECISION"`
	AuditCapacity     int    `mapstructure:"AUDIT_CAPACITY"`
	DefaultFHIRVersion string `mapstructure:"FHIR_VERSION"`
}

// Load reads an optional YAML config file (if configFile is non-empty) plus
// MEDSIG_-prefixed environment variables, falling back to defaults when
// neither is set.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MEDSIG")
	v.AutomaticEnv()

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PRECISION", 4)
	v.SetDefault("AUDIT_CAPACITY", 1000)
	v.SetDefault("FHIR_VERSION", "R4")

	v.BindEnv("LOG_LEVEL")
	v.BindEnv("PRECISION")
	v.BindEnv("AUDIT_CAPACITY")
	v.BindEnv("FHIR_VERSION")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Precision < 0 {
		return fmt.Errorf("PRECISION must be non-negative, got %d", c.Precision)
	}
	if c.AuditCapacity <= 0 {
		return fmt.Errorf("AUDIT_CAPACITY must be positive, got %d", c.AuditCapacity)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug/info/warn/error, got %q", c.LogLevel)
	}
	return nil
}
