package directorydb

import (
	"fmt"
	"log/slog"
	"strings"

	"communityconnect.org/internal/appconf"
)

// Driver names a database/sql driver registered by this package.
type Driver string

const (
	SQLite   Driver = "sqlite"
	Postgres Driver = "pgx"
)

// ParseDriver maps a user supplied driver name onto a Driver.
func ParseDriver(name string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "pgx", "postgres", "postgresql":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

// Config holds configuration options for the Client
type Config struct {
	Driver  Driver
	DSN     string // file path for SQLite, connection URL for Postgres
	Env     appconf.Environment
	Logger  *slog.Logger
	verbose bool
}

func NewConfig(driver Driver, dsn string, env appconf.Environment, verbose bool) Config {
	return Config{
		Driver:  driver,
		DSN:     dsn,
		Env:     env,
		verbose: verbose,
	}
}

func (c Config) inMemory() bool {
	return c.Driver == SQLite && c.DSN == ":memory:"
}
