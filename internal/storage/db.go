// Package storage provides SQLite persistence for collection files.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// DB wraps a connection to one collection database file.
type DB struct {
	conn          *sql.DB
	schemaVersion uint
}

// Config holds database configuration settings.
type Config struct {
	// Path is the file path to the SQLite database.
	Path string

	// BusyTimeout sets how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// JournalMode sets the SQLite journal mode.
	// Default: DELETE, so a collection stays a single portable file.
	JournalMode string

	// Synchronous sets the SQLite synchronous mode.
	// Default: FULL
	Synchronous string

	// AutoMigrate applies pending schema migrations on Open.
	AutoMigrate bool
}

// DefaultConfig returns a Config for the database at path with migrations enabled.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:        path,
		BusyTimeout: 5 * time.Second,
		JournalMode: "DELETE",
		Synchronous: "FULL",
		AutoMigrate: true,
	}
}

// dsn builds the modernc.org/sqlite connection string for config.
func (c *Config) dsn() string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(%s)&_pragma=synchronous(%s)&_pragma=foreign_keys(1)",
		filepath.ToSlash(c.Path),
		c.BusyTimeout.Milliseconds(),
		c.JournalMode,
		c.Synchronous,
	)
}

// Open opens (creating if needed) the database described by config.
// Migrations run before the connection is opened when AutoMigrate is set.
func Open(config *Config) (*DB, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	var schemaVersion uint
	if config.AutoMigrate {
		v, err := migrateUp(config.Path)
		if err != nil {
			return nil, err
		}
		schemaVersion = v
	}

	conn, err := sql.Open("sqlite", config.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A collection file is used by one process at a time.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to close database after ping error: %w (original error: %v)", closeErr, err)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, schemaVersion: schemaVersion}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Conn returns the underlying sql.DB connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// SchemaVersion returns the migration version applied by Open, or 0 when
// migrations were not run.
func (db *DB) SchemaVersion() uint {
	return db.schemaVersion
}

// migrateUp applies pending migrations to the database at path and returns
// the resulting schema version.
func migrateUp(path string) (version uint, err error) {
	mgr, err := NewMigrationManager(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration manager: %w", err)
	}
	defer func() {
		if closeErr := mgr.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close migration manager: %w", closeErr)
		}
	}()

	if err := mgr.Up(); err != nil {
		return 0, fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := mgr.Version()
	if err != nil {
		return 0, err
	}
	if dirty {
		return 0, fmt.Errorf("database schema is dirty at version %d", version)
	}
	return version, nil
}
