package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported storage drivers
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DatabaseURL     string
	DBDriver        string
	DBLogLevel      string
	ServerHost      string
	ServerPort      string
	GinMode         string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, after merging an optional .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Ignoring .env file: %v", err)
	}

	databaseURL := getEnv("DATABASE_URL", "postgresql://clawd:@localhost:5432/taskflow")

	return &Config{
		DatabaseURL:     databaseURL,
		DBDriver:        getEnv("DB_DRIVER", DetectDriver(databaseURL)),
		DBLogLevel:      getEnv("DB_LOG_LEVEL", "warn"),
		ServerHost:      getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// Addr returns the HTTP bind address.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// DetectDriver infers the storage driver from a connection string.
// Anything that is not recognisably MySQL or SQLite is handed to Postgres.
func DetectDriver(databaseURL string) string {
	switch {
	case strings.HasPrefix(databaseURL, "mysql://"):
		return DriverMySQL
	case strings.HasPrefix(databaseURL, "sqlite://"),
		strings.HasPrefix(databaseURL, "file:"),
		databaseURL == ":memory:",
		strings.HasSuffix(databaseURL, ".db"),
		strings.HasSuffix(databaseURL, ".sqlite"):
		return DriverSQLite
	default:
		return DriverPostgres
	}
}

// ClientAPIURL returns the base URL the command-line client talks to.
func ClientAPIURL() string {
	return strings.TrimRight(getEnv("TASKFLOW_API_URL", "http://localhost:8080"), "/")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
