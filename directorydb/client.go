package directorydb

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"communityconnect.org/internal/appconf"
	"communityconnect.org/internal/logging"
)

//go:embed schema_sqlite.sql
var sqliteDDL string

//go:embed schema_postgres.sql
var postgresDDL string

// Client is the main entry point for the business store
type Client struct {
	config Config
	DB     *sql.DB
	logger *slog.Logger
}

// NewClient opens the database described by config, verifies the
// connection and brings the schema up to date.
func NewClient(config Config) (*Client, error) {
	if config.Env == appconf.Test && config.Driver == SQLite && !config.inMemory() {
		return nil, fmt.Errorf("test environment requires an in-memory database, got %q", config.DSN)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open(string(config.Driver), config.DSN)
	if err != nil {
		return nil, fmt.Errorf("error opening %s database: %w", config.Driver, err)
	}
	configurePool(db, config)

	client := &Client{
		config: config,
		DB:     db,
		logger: logger.With(slog.String("component", "directorydb")),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logging.SafeCloseWithLogging(db, client.logger, "database_open")
		return nil, fmt.Errorf("error connecting to %s database: %w", config.Driver, err)
	}

	if err := client.Migrate(ctx); err != nil {
		logging.SafeCloseWithLogging(db, client.logger, "database_open")
		return nil, err
	}

	if config.verbose {
		logging.LogOperation(client.logger, "database_ready",
			slog.String("driver", string(config.Driver)))
	}

	return client, nil
}

// configurePool applies connection limits. Every connection to an in-memory
// SQLite database sees its own empty database, so those are pinned to one.
func configurePool(db *sql.DB, config Config) {
	if config.inMemory() {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// Driver reports which database driver the client was opened with.
func (c *Client) Driver() Driver {
	return c.config.Driver
}

// Ping verifies the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Migrate runs the schema statements for the configured driver. Every
// statement is idempotent, so calling it on an existing database is safe.
func (c *Client) Migrate(ctx context.Context) error {
	ddl := sqliteDDL
	if c.config.Driver == Postgres {
		ddl = postgresDDL
	}

	for _, stmt := range strings.Split(ddl, "-- migrate") {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}
		if _, err := c.DB.ExecContext(ctx, trimmed); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmed, err)
		}
	}
	return nil
}

func (c *Client) q(query string) string {
	return rebind(c.config.Driver, query)
}
