// Package scripts provides utility scripts for database and system management.
//
// The package implements database seeding to populate data the application
// needs before it can serve requests. Seeding works similarly to migrations,
// tracking executed seeds so the process is idempotent and safe to run on
// both new and existing databases.
package scripts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/uservault/backend/internal/auth"
	"github.com/uservault/backend/internal/config"
	"github.com/uservault/backend/internal/database"
	"github.com/uservault/backend/internal/models"
)

// Seeder handles database seeding.
type Seeder struct {
	db   *database.Pool
	seed *config.SeedSettings
}

// NewSeeder creates a new seeder.
func NewSeeder(db *database.Pool, seed *config.SeedSettings) *Seeder {
	return &Seeder{
		db:   db,
		seed: seed,
	}
}

// SeedDatabase seeds the database with initial data. It creates the seeds
// tracking table if it doesn't exist, then runs all seed functions that
// haven't been executed yet.
func (s *Seeder) SeedDatabase(ctx context.Context) error {
	log.Info().Msg("Seeding database")
	startTime := time.Now()

	if err := s.createSeedsTable(ctx); err != nil {
		return fmt.Errorf("failed to create seeds table: %w", err)
	}

	executedSeeds, err := s.getExecutedSeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed seeds: %w", err)
	}

	seeds := []struct {
		Name     string
		SeedFunc func(ctx context.Context, tx *sql.Tx) error
	}{
		{"admin_account", s.seedAdminAccount},
	}

	for _, seed := range seeds {
		if executedSeeds[seed.Name] {
			log.Debug().Str("seed", seed.Name).Msg("Seed already executed")
			continue
		}

		log.Info().Str("seed", seed.Name).Msg("Running seed")
		if err := s.runSeed(ctx, seed.Name, seed.SeedFunc); err != nil {
			return err
		}
	}

	log.Info().
		Dur("duration", time.Since(startTime)).
		Msg("Database seeding completed")

	return nil
}

// createSeedsTable creates the seeds tracking table if it doesn't exist.
func (s *Seeder) createSeedsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS seeds (
			name VARCHAR(255) PRIMARY KEY,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// getExecutedSeeds returns the names of seeds already applied.
func (s *Seeder) getExecutedSeeds(ctx context.Context) (map[string]bool, error) {
	query := `SELECT name FROM seeds`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	seeds := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		seeds[name] = true
	}

	return seeds, rows.Err()
}

// runSeed runs a seed function within a transaction. If the seed fails,
// the transaction is rolled back.
func (s *Seeder) runSeed(ctx context.Context, name string, seedFunc func(ctx context.Context, tx *sql.Tx) error) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := seedFunc(ctx, tx); err != nil {
			return fmt.Errorf("seed %s failed: %w", name, err)
		}

		query := `INSERT INTO seeds (name) VALUES ($1)`
		if _, err := tx.ExecContext(ctx, query, name); err != nil {
			return fmt.Errorf("failed to record seed: %w", err)
		}

		return nil
	})
}

// seedAdminAccount creates the bootstrap admin account. Admin accounts
// cannot be created through the public API, so the first one comes from
// the seed configuration. The seed is skipped when no credentials are
// configured or an admin account already exists.
func (s *Seeder) seedAdminAccount(ctx context.Context, tx *sql.Tx) error {
	if s.seed == nil || s.seed.AdminEmail == "" || s.seed.AdminPassword == "" {
		log.Warn().Msg("No admin seed credentials configured, skipping admin account seed")
		return nil
	}

	var adminCount int
	countQuery := `SELECT COUNT(*) FROM users WHERE is_admin = TRUE`
	if err := tx.QueryRowContext(ctx, countQuery).Scan(&adminCount); err != nil {
		return fmt.Errorf("failed to count admin accounts: %w", err)
	}

	if adminCount > 0 {
		log.Info().Int("existing_admins", adminCount).Msg("Admin account already present, skipping seed")
		return nil
	}

	hash, err := auth.HashPassword(s.seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	email := models.NormalizeEmail(s.seed.AdminEmail)
	query := `
		INSERT INTO users (name, email, phone, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, TRUE)
	`
	if _, err := tx.ExecContext(ctx, query, s.seed.AdminName, email, s.seed.AdminPhone, hash); err != nil {
		return fmt.Errorf("failed to insert admin account: %w", err)
	}

	log.Info().Str("email", email).Msg("Bootstrap admin account created")
	return nil
}
