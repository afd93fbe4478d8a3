package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"

	"taskboard/internal/util"
)

// Supported database kinds.
const (
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgresql"
)

// Config holds runtime settings for the service and the CLI commands.
type Config struct {
	Addr      string
	StaticDir string
	Seed      bool

	DBType      string
	DBPath      string
	DatabaseURL string
	PGHost      string
	PGPort      string
	PGDatabase  string
	PGUser      string
	PGPassword  string
	PGSSLMode   string

	LogLevel    string
	LogFile     string
	CORSOrigins []string
}

// LoadEnv reads .env (or the given files) into the process environment.
// Variables already set are kept. The error is informational: callers fall
// back to the process environment.
func LoadEnv(files ...string) error {
	return godotenv.Load(files...)
}

// Load builds a Config from the environment.
func Load() Config {
	return Config{
		Addr:      util.EnvOrDefault("TASKBOARD_ADDR", ":8080"),
		StaticDir: util.EnvOrDefault("TASKBOARD_STATIC_DIR", ""),
		Seed:      util.EnvBoolOrDefault("TASKBOARD_SEED", true),

		DBType:      normalizeDBType(util.EnvOrDefault("DB_TYPE", DBTypeSQLite)),
		DBPath:      util.EnvOrDefault("DB_PATH", "data/taskboard.db"),
		DatabaseURL: util.EnvOrDefault("DATABASE_URL", ""),
		PGHost:      util.EnvOrDefault("PGHOST", "localhost"),
		PGPort:      util.EnvOrDefault("PGPORT", "5432"),
		PGDatabase:  util.EnvOrDefault("PGDATABASE", "task_manager"),
		PGUser:      util.EnvOrDefault("PGUSER", "postgres"),
		PGPassword:  util.EnvOrDefault("PGPASSWORD", ""),
		PGSSLMode:   util.EnvOrDefault("PGSSLMODE", "disable"),

		LogLevel:    util.EnvOrDefault("TASKBOARD_LOG_LEVEL", "info"),
		LogFile:     util.EnvOrDefault("TASKBOARD_LOG_FILE", ""),
		CORSOrigins: util.EnvListOrDefault("TASKBOARD_CORS_ORIGINS", nil),
	}
}

// Validate reports configuration that cannot produce a working database connection.
func (c Config) Validate() error {
	switch normalizeDBType(c.DBType) {
	case DBTypeSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("sqlite database path must not be empty")
		}
	case DBTypePostgres:
		if c.DatabaseURL == "" && c.PGHost == "" {
			return errors.New("postgres requires DATABASE_URL or PGHOST")
		}
	default:
		return fmt.Errorf("unsupported database type %q", c.DBType)
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if normalizeDBType(c.DBType) == DBTypeSQLite {
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", c.DBPath)
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   c.PGHost + ":" + c.PGPort,
		Path:   "/" + c.PGDatabase,
	}
	if c.PGPassword != "" {
		u.User = url.UserPassword(c.PGUser, c.PGPassword)
	} else {
		u.User = url.User(c.PGUser)
	}
	q := url.Values{}
	q.Set("sslmode", c.PGSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Postgres reports whether the networked backend is selected.
func (c Config) Postgres() bool {
	return normalizeDBType(c.DBType) == DBTypePostgres
}

func normalizeDBType(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "sqlite", "sqlite3":
		return DBTypeSQLite
	case "postgres", "postgresql", "pg":
		return DBTypePostgres
	default:
		return v
	}
}
