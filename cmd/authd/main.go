// authd is the standalone authentication stub: one login endpoint over
// its own user table, independent of the record store the portals use.
package main

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/healthkey/healthkey-api/pkg/auth"
)

type Config struct {
	Port        int    `default:"8081"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	ExpiryHours int    `envconfig:"JWT_EXPIRY_HOURS" default:"24"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("AUTHD", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	jwtSvc := auth.NewJWTService(cfg.JWTSecret, time.Duration(cfg.ExpiryHours)*time.Hour)
	srv := newServer(newUserStore(db), jwtSvc)

	log.Info().Int("port", cfg.Port).Msg("starting authd")
	if err := srv.engine.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func migrate(db *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS auth_users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create auth_users table: %w", err)
	}
	return nil
}
