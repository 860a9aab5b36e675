// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LogLevelEnv is the unprefixed log level variable, also read by main
// before configuration is loaded.
const LogLevelEnv = "LOG_LEVEL"

// EnvPrefix prefixes every environment override, e.g. BUDGETBUDDY_LOG_LEVEL.
const EnvPrefix = "BUDGETBUDDY"

// LogConfig controls the logrus adapter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// StorageConfig selects where budget data lives.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Path is the data file or database. Empty means DefaultDataPath(Backend).
	Path          string `mapstructure:"path" yaml:"path"`
	BackupEnabled bool   `mapstructure:"backup_enabled" yaml:"backup_enabled"`
}

// LimitsConfig bounds user input.
type LimitsConfig struct {
	MaxExpenseAmount float64 `mapstructure:"max_expense_amount" yaml:"max_expense_amount"`
	MaxBudgetAmount  float64 `mapstructure:"max_budget_amount" yaml:"max_budget_amount"`
	MaxAlertAmount   float64 `mapstructure:"max_alert_amount" yaml:"max_alert_amount"`
	MaxFrequencyDays int     `mapstructure:"max_frequency_days" yaml:"max_frequency_days"`
	MaxIterations    int     `mapstructure:"max_iterations" yaml:"max_iterations"`
}

// CSVConfig controls the export writer.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// DisplayConfig controls the session renderer.
type DisplayConfig struct {
	Color bool `mapstructure:"color" yaml:"color"`
}

// Config represents the complete application configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Limits  LimitsConfig  `mapstructure:"limits" yaml:"limits"`
	CSV     CSVConfig     `mapstructure:"csv" yaml:"csv"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.budgetbuddy")
	v.AddConfigPath(".budgetbuddy")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// The unprefixed LOG_LEVEL is honoured when BUDGETBUDDY_LOG_LEVEL is unset.
	if err := v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", LogLevelEnv); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", LogLevelEnv, err)
	}

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("storage.backend", "yaml")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.backup_enabled", true)

	v.SetDefault("limits.max_expense_amount", 10000)
	v.SetDefault("limits.max_budget_amount", 100000)
	v.SetDefault("limits.max_alert_amount", 100000)
	v.SetDefault("limits.max_frequency_days", 1000)
	v.SetDefault("limits.max_iterations", 10)

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("display.color", true)
}

// Validate re-checks the configuration, e.g. after command-line overrides.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch strings.ToLower(config.Storage.Backend) {
	case "yaml", "sqlite":
	default:
		return fmt.Errorf("invalid storage backend: %s (must be 'yaml' or 'sqlite')", config.Storage.Backend)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	amounts := []struct {
		key   string
		value float64
	}{
		{"limits.max_expense_amount", config.Limits.MaxExpenseAmount},
		{"limits.max_budget_amount", config.Limits.MaxBudgetAmount},
		{"limits.max_alert_amount", config.Limits.MaxAlertAmount},
	}
	for _, a := range amounts {
		if a.value <= 0 {
			return fmt.Errorf("%s must be positive, got: %v", a.key, a.value)
		}
	}
	if config.Limits.MaxFrequencyDays < 1 {
		return fmt.Errorf("limits.max_frequency_days must be at least 1, got: %d", config.Limits.MaxFrequencyDays)
	}
	if config.Limits.MaxIterations < 1 {
		return fmt.Errorf("limits.max_iterations must be at least 1, got: %d", config.Limits.MaxIterations)
	}

	return nil
}
