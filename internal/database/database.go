package database

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/yukikurage/taskflow-api/internal/config"
	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// mysqlDatetimePrecision keeps microseconds so updated_at can always advance.
var mysqlDatetimePrecision = 6

// Connect opens the storage pool described by cfg. The returned handle is
// safe for concurrent use and is meant to be shared by every request.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(LogLevel(cfg.DBLogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("Database connection established (%s)", cfg.DBDriver)
	return db, nil
}

// Dialector picks the GORM driver for a connection string.
func Dialector(driver, databaseURL string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(databaseURL), nil
	case config.DriverMySQL:
		dsn, err := MySQLDSN(databaseURL)
		if err != nil {
			return nil, err
		}
		return mysql.New(mysql.Config{
			DSN:                      dsn,
			DefaultDatetimePrecision: &mysqlDatetimePrecision,
		}), nil
	case config.DriverSQLite:
		return sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://")), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// MySQLDSN turns a mysql:// URL or a native go-sql-driver DSN into a DSN
// with parseTime enabled, so DATETIME columns scan into time.Time.
func MySQLDSN(databaseURL string) (string, error) {
	var cfg *gomysql.Config

	if strings.HasPrefix(databaseURL, "mysql://") {
		u, err := url.Parse(databaseURL)
		if err != nil {
			return "", fmt.Errorf("invalid mysql url: %w", err)
		}
		native := "tcp(" + u.Host + ")/" + strings.TrimPrefix(u.Path, "/")
		if u.RawQuery != "" {
			native += "?" + u.RawQuery
		}
		cfg, err = gomysql.ParseDSN(native)
		if err != nil {
			return "", fmt.Errorf("invalid mysql url: %w", err)
		}
		if u.User != nil {
			cfg.User = u.User.Username()
			cfg.Passwd, _ = u.User.Password()
		}
	} else {
		var err error
		cfg, err = gomysql.ParseDSN(databaseURL)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
	}

	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// LogLevel maps a DB_LOG_LEVEL value onto the GORM logger.
func LogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate creates the tasks table and its indexes if they are missing.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(&models.Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
