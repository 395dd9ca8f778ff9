// Package db provides PostgreSQL persistence for users and saved resumes.
package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned by updates and deletes that match no row.
// Lookups return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

// ErrEmailAlreadyExists is returned when a user with the same email exists.
var ErrEmailAlreadyExists = errors.New("email already exists")

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Migration is one named schema step.
type Migration struct {
	Name string
	SQL  string
}

// Migrations splits the embedded schema into named steps. Each step starts
// with a "-- migrate: <name>" marker and is idempotent.
func Migrations() []Migration {
	var out []Migration
	for _, block := range strings.Split(schemaSQL, "-- migrate:") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		name, body, _ := strings.Cut(block, "\n")
		out = append(out, Migration{Name: strings.TrimSpace(name), SQL: strings.TrimSpace(body)})
	}
	return out
}

// Migrate applies every migration in order. Steps use IF NOT EXISTS so
// running it against an up-to-date database is a no-op.
func (db *DB) Migrate(ctx context.Context) error {
	log.Printf("[DB] Starting database migrations")
	for _, m := range Migrations() {
		if _, err := db.pool.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.Name, err)
		}
		log.Printf("[DB] Migration completed: %s", m.Name)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
