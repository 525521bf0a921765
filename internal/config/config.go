package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Alp4ka/gotable"
)

// Supported values of the enumerated settings.
var (
	Drivers    = []string{"sqlite", "mysql", "postgres"}
	LogFormats = []string{"console", "json"}
)

type Config struct {
	// Database
	DBDriver string
	DBDSN    string

	// Pagination
	DefaultPageSize int
	MaxPageSize     int

	// Logging
	LogLevel  string
	LogFormat string

	// Presentation
	Currency string
	Locale   string
}

// LoadEnvFile loads a .env file from the working directory. A missing file
// is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Load reads the configuration from the environment, falling back to
// defaults for unset keys.
func Load() *Config {
	return &Config{
		DBDriver: getEnv("LEDGER_DB_DRIVER", "sqlite"),
		DBDSN:    getEnv("LEDGER_DB_DSN", "./data/ledger.db"),

		DefaultPageSize: getEnvInt("LEDGER_DEFAULT_PAGE_SIZE", gotable.DefaultPageSize),
		MaxPageSize:     getEnvInt("LEDGER_MAX_PAGE_SIZE", gotable.MaxPageSize),

		LogLevel:  getEnv("LEDGER_LOG_LEVEL", "info"),
		LogFormat: getEnv("LEDGER_LOG_FORMAT", "console"),

		Currency: getEnv("LEDGER_CURRENCY", "COP"),
		Locale:   getEnv("LEDGER_LOCALE", "es-CO"),
	}
}

// Validate validates the configuration and returns an error listing every
// invalid setting.
func (c *Config) Validate() error {
	var errs []string

	if !slices.Contains(Drivers, c.DBDriver) {
		errs = append(errs, fmt.Sprintf("invalid database driver '%s': must be one of %v", c.DBDriver, Drivers))
	}
	if c.DBDSN == "" {
		errs = append(errs, "database DSN cannot be empty")
	}

	if c.DefaultPageSize < 1 {
		errs = append(errs, fmt.Sprintf("invalid default page size %d: must be at least 1", c.DefaultPageSize))
	}
	if c.MaxPageSize < 1 {
		errs = append(errs, fmt.Sprintf("invalid max page size %d: must be at least 1", c.MaxPageSize))
	} else if c.DefaultPageSize > c.MaxPageSize {
		errs = append(errs, fmt.Sprintf("default page size %d exceeds max page size %d", c.DefaultPageSize, c.MaxPageSize))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}
	if !slices.Contains(LogFormats, c.LogFormat) {
		errs = append(errs, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, LogFormats))
	}

	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Sprintf("invalid currency code '%s'", c.Currency))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
