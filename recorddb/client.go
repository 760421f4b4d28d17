// Package recorddb maintains a local SQLite mirror of the spreadsheet
// service's records. The mirror serves lookups and aggregates the record API
// does poorly; the spreadsheet service remains the source of truth and owns
// referential integrity.
package recorddb

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"strings"

	"github.com/alexonufrak/dashboard-api/internal/appconf"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed schema.sql
var ddl string

// Client is the main entry point for the record mirror
type Client struct {
	config Config
	DB     *sql.DB
}

// NewClient creates a new Client with the provided configuration
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, fmt.Errorf("unable to create record mirror: %w", err)
	}
	if config.verbose {
		log.Println("record mirror tables created")
	}

	return &Client{
		config: config,
		DB:     db,
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// createDB opens the SQLite database and applies the schema
func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("test mirror DB must be in-memory, got %s", config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}

	if err := performDatabaseMigration(context.Background(), db); err != nil {
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	return db, nil
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate")
	for _, stmt := range statements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmedStmt); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmedStmt, err)
		}
	}
	return nil
}

// ReplaceTables clears the named tables and runs insert within one
// transaction, so readers never observe a half-synced mirror. A failed sync
// leaves the previous contents intact.
func (c *Client) ReplaceTables(ctx context.Context, insert func(tx *sql.Tx) error, tables ...string) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("error clearing table %s: %w", table, err)
		}
	}
	if err := insert(tx); err != nil {
		return fmt.Errorf("error repopulating tables: %w", err)
	}
	return tx.Commit()
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on error. Used for write-through updates after a record is created in
// the spreadsheet service.
func (c *Client) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
