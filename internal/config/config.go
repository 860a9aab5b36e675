package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"budgetbuddy/internal/logging"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, once per process. It returns the file it loaded, or ""
// when none was found.
func LoadEnv() string {
	var loaded string
	once.Do(func() {
		loaded = loadEnvFile()
	})
	return loaded
}

func loadEnvFile() string {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return ""
		}
	}
	if err := godotenv.Load(envFile); err != nil {
		return ""
	}
	return envFile
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// DefaultDataPath returns the data location used when storage.path is empty.
func DefaultDataPath(backend string) string {
	name := "budgetbuddy.yaml"
	if strings.EqualFold(backend, "sqlite") {
		name = "budgetbuddy.db"
	}
	return filepath.Join("~", ".budgetbuddy", name)
}

// DataPath returns the configured storage path or the backend default.
func (c *Config) DataPath() string {
	if strings.TrimSpace(c.Storage.Path) != "" {
		return c.Storage.Path
	}
	return DefaultDataPath(c.Storage.Backend)
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

// DecimalLimit converts a configured amount limit.
func DecimalLimit(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// NewLogger builds the logrus-backed logger described by the log section.
func (c *Config) NewLogger() logging.Logger {
	return logging.NewLogrusAdapter(c.Log.Level, c.Log.Format)
}
