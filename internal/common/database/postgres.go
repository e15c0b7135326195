// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pawmatch-workers/internal/common/config"

	_ "github.com/lib/pq"
)

// Schema is the catalog and swipe layout the workers read and write.
// Every statement is idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS shelters (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		contact_email TEXT NOT NULL,
		contact_phone TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS animals (
		id                      TEXT PRIMARY KEY,
		name                    TEXT NOT NULL,
		species                 TEXT NOT NULL,
		breed                   TEXT NOT NULL DEFAULT '',
		age                     INTEGER NOT NULL DEFAULT 0,
		bio                     TEXT NOT NULL DEFAULT '',
		mbti_type               CHAR(4) NOT NULL,
		energy_level            SMALLINT NOT NULL CHECK (energy_level BETWEEN 1 AND 5),
		experience_level_needed TEXT NOT NULL,
		special_needs           BOOLEAN NOT NULL DEFAULT FALSE,
		days_in_shelter         INTEGER NOT NULL DEFAULT 0,
		hdb_approved            BOOLEAN NOT NULL DEFAULT FALSE,
		personality_tag         TEXT NOT NULL DEFAULT '',
		shelter_id              TEXT REFERENCES shelters(id),
		adopted                 BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS swipes (
		id         UUID PRIMARY KEY,
		user_id    TEXT NOT NULL,
		animal_id  TEXT NOT NULL REFERENCES animals(id),
		direction  TEXT NOT NULL CHECK (direction IN ('like', 'pass')),
		score      INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, animal_id)
	)`,
	`CREATE TABLE IF NOT EXISTS adopter_profiles (
		user_id        TEXT PRIMARY KEY,
		mbti           CHAR(4) NOT NULL,
		activity_level TEXT NOT NULL,
		living_space   TEXT NOT NULL,
		time_available TEXT NOT NULL DEFAULT '',
		experience     TEXT NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a pooled lib/pq handle. No connection is made until first use.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// EnsureSchema applies Schema in one transaction.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	for _, stmt := range Schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return tx.Commit()
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
