// Package postgres keeps the document as a single JSONB row keyed by the
// fixed storage key, with a version column guarding every write.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/store"
)

type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type Store struct {
	db *sqlx.DB
}

func New(cfg Config) (*Store, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS documents (
			key        TEXT PRIMARY KEY,
			version    BIGINT NOT NULL,
			doc        JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (*model.Document, error) {
	var data []byte
	err := s.db.GetContext(ctx, &data, `SELECT doc FROM documents WHERE key = $1`, store.Key)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

func (s *Store) Save(ctx context.Context, doc *model.Document) error {
	prev := doc.Version
	doc.Version++
	payload, err := json.Marshal(doc)
	if err != nil {
		doc.Version = prev
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	var res sql.Result
	if prev == 0 {
		// First write may race another first write; the primary key
		// catches that.
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO documents (key, version, doc) VALUES ($1, $2, $3)
			ON CONFLICT (key) DO NOTHING
		`, store.Key, doc.Version, payload)
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE documents SET version = $1, doc = $2, updated_at = now()
			WHERE key = $3 AND version = $4
		`, doc.Version, payload, store.Key, prev)
	}
	if err != nil {
		doc.Version = prev
		return fmt.Errorf("failed to save document: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		doc.Version = prev
		return fmt.Errorf("failed to check save result: %w", err)
	}
	if rows == 0 {
		doc.Version = prev
		return store.ErrVersionConflict
	}
	return nil
}

func (s *Store) Update(ctx context.Context, fn func(*model.Document) error) error {
	return store.RunUpdate(ctx, s, fn)
}

func (s *Store) Close() error {
	return s.db.Close()
}
