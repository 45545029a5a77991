package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey string // API key for authentication on the trigger/write surface

	// TrustedProxies lists proxy IPs whose X-Forwarded-For is believed
	TrustedProxies []string

	ReferenceTZ    string
	WriteBatchSize int
	FetchLimit     int
	AggregateHour  int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		DBUser:      getEnv("DB_USER", DefaultDBUser),
		DBPassword:  getEnv("DB_PASSWORD", DefaultDBPassword),
		DBHost:      getEnv("DB_HOST", DefaultDBHost),
		DBPort:      getEnv("DB_PORT", DefaultDBPort),
		DBName:      getEnv("DB_NAME", DefaultDBName),
		APIKey:      getEnv("API_KEY", ""),
		ReferenceTZ: getEnv("REFERENCE_TZ", DefaultReferenceTZ),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	cfg.WriteBatchSize, err = getEnvInt("WRITE_BATCH_SIZE", strconv.Itoa(DefaultWriteBatchSize))
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_BATCH_SIZE value: %w", err)
	}
	if cfg.WriteBatchSize < 1 {
		return nil, fmt.Errorf("WRITE_BATCH_SIZE must be positive, got %d", cfg.WriteBatchSize)
	}

	cfg.FetchLimit, err = getEnvInt("FETCH_LIMIT", strconv.Itoa(DefaultFetchLimit))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_LIMIT value: %w", err)
	}

	cfg.AggregateHour, err = getEnvInt("AGGREGATE_HOUR", strconv.Itoa(DefaultAggregateHour))
	if err != nil {
		return nil, fmt.Errorf("invalid AGGREGATE_HOUR value: %w", err)
	}
	if cfg.AggregateHour < 0 || cfg.AggregateHour > 23 {
		return nil, fmt.Errorf("AGGREGATE_HOUR must be within [0,23], got %d", cfg.AggregateHour)
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	// Validate the reference timezone resolves
	if _, err := time.LoadLocation(cfg.ReferenceTZ); err != nil {
		return nil, fmt.Errorf("invalid REFERENCE_TZ %q: %w", cfg.ReferenceTZ, err)
	}

	return cfg, nil
}

// Location resolves the configured reference timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ReferenceTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or parses the default
func getEnvInt(key, defaultValue string) (int, error) {
	return strconv.Atoi(getEnv(key, defaultValue))
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
