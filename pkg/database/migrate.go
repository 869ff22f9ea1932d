package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"lolanalyzer/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const migrationsLockKey = "lolanalyzer_migrations_lock"

// RunMigrations applies all pending migrations to the database.
func RunMigrations(db *sql.DB, databaseName string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("could not open the migration files: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, databaseName, driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	// Advisory locks belong to a session, so lock and unlock on the same connection.
	ctx := context.Background()
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("could not get a connection for the migration lock: %w", err)
	}
	defer conn.Close()

	// Acquire an advisory lock to prevent concurrent migrations between services.
	var lockAcquired bool
	err = conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock(hashtext($1))", migrationsLockKey).Scan(&lockAcquired)
	if err != nil {
		return err
	}

	if !lockAcquired {
		log.Println("Another process is already running migrations, skipping...")
		return nil
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		conn.ExecContext(ctx, "SELECT pg_advisory_unlock(hashtext($1))", migrationsLockKey)
		return fmt.Errorf("could not run migrations: %w", err)
	}

	var lockReleased bool
	err = conn.QueryRowContext(ctx, "SELECT pg_advisory_unlock(hashtext($1))", migrationsLockKey).Scan(&lockReleased)
	if err != nil || !lockReleased {
		return fmt.Errorf("could not release advisory lock: %v", err)
	}

	return nil
}
