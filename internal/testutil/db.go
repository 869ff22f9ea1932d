package testutil

import (
	"context"
	"fmt"
	"lolanalyzer/pkg/database"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// NewTestDatabase starts a postgres container with the full schema migrated.
// Return the DSN and the cleanup function.
func NewTestDatabase(t *testing.T) (string, func()) {
	t.Helper()

	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=test password=test dbname=testdb sslmode=disable TimeZone=UTC",
		host, port.Port(),
	)

	db, err := database.NewConnection(dsn)
	if err != nil {
		t.Fatalf("Failed to open connection: %v", err)
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB: %v", err)
	}

	// Run the migrations to replicate the full schema.
	if err := database.RunMigrations(sqlDB, "testdb"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	cleanup := func() {
		tc.CleanupContainer(t, container)
	}

	return dsn, cleanup
}

// NewTestConnection starts a migrated postgres container and connects to it.
// Return the connection pool and the cleanup function.
func NewTestConnection(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn, stopContainer := NewTestDatabase(t)

	db, err := database.NewConnection(dsn)
	if err != nil {
		stopContainer()
		t.Fatalf("Failed to open connection: %v", err)
	}

	cleanup := func() {
		database.Close(db)
		stopContainer()
	}

	return db, cleanup
}

// NewTestRedis starts a redis container and returns its address.
func NewTestRedis(t *testing.T) (string, func()) {
	t.Helper()

	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cleanup := func() {
		tc.CleanupContainer(t, container)
	}

	return fmt.Sprintf("%s:%s", host, port.Port()), cleanup
}
