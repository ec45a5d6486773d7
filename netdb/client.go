// Package netdb persists built network graphs to SQLite so downstream tools
// can query nodes, edges and build history without re-running the pipeline.
package netdb

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "embed"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"netbuild.opentransit.org/internal/appconf"
)

//go:embed schema.sql
var ddl string

// Client is the main entry point for graph persistence
type Client struct {
	config Config
	DB     *sql.DB
}

// NewClient opens (or creates) the database and runs the schema migration
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, fmt.Errorf("error creating graph database: %w", err)
	}
	if config.verbose {
		log.Println("Successfully created graph tables")
	}

	return &Client{config: config, DB: db}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// createDB creates a new SQLite database with tables for graphs, nodes and edges
func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		log.Fatal("DB is being created in a file.", config.DBPath)
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
	statements := strings.Split(ddl, "-- migrate") // Split DDL into individual statements
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error executing migration statement: %w", err)
		}
	}
	return nil
}
