package jobs

import (
	"context"
	"errors"
	"fmt"
	"lolanalyzer/pkg/database"
	"lolanalyzer/pkg/database/models"
	"lolanalyzer/pkg/repositories"
)

// DummyPlayers returns the placeholder players used for testing the pipeline.
// A new slice is built on every call since the upsert fills the timestamps.
func DummyPlayers() []*models.Player {
	return []*models.Player{
		{Puuid: "test1", PlayerName: "TestPlayer1", Tier: "CHALLENGER", LeaguePoints: 1500},
		{Puuid: "test2", PlayerName: "TestPlayer2", Tier: "GRANDMASTER", LeaguePoints: 1200},
		{Puuid: "test3", PlayerName: "TestPlayer3", Tier: "MASTER", LeaguePoints: 800},
	}
}

// DummyPlayerSeeder writes players into the players table.
type DummyPlayerSeeder struct {
	repository repositories.PlayerRepository
	log        Logger
}

// NewDummyPlayerSeeder creates the seeder over a player repository.
func NewDummyPlayerSeeder(repository repositories.PlayerRepository, log Logger) *DummyPlayerSeeder {
	return &DummyPlayerSeeder{
		repository: repository,
		log:        log,
	}
}

// Seed upserts the given players in a single commit.
func (s *DummyPlayerSeeder) Seed(ctx context.Context, players []*models.Player) error {
	if s.repository == nil {
		return errors.New("the player repository can't be nil")
	}

	if err := s.repository.UpsertPlayers(ctx, players); err != nil {
		s.log.Errorf("couldn't seed %d players: %v", len(players), err)
		return fmt.Errorf("couldn't seed the players: %w", err)
	}

	s.log.Infof("%d dummy players created", len(players))
	return nil
}

// SeedPlaceholderPlayers upserts the fixed placeholder players.
func (s *DummyPlayerSeeder) SeedPlaceholderPlayers(ctx context.Context) error {
	return s.Seed(ctx, DummyPlayers())
}

// CreateDummyPlayers is the body of the seeding task.
// The connection is opened for this run only and always released.
func CreateDummyPlayers(ctx context.Context, dsn string, log Logger) error {
	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Errorf("couldn't get database connection: %v", err)
		return fmt.Errorf("couldn't get database connection: %w", err)
	}
	defer database.Close(db)

	seeder := NewDummyPlayerSeeder(repositories.NewPlayerRepository(db), log)
	return seeder.SeedPlaceholderPlayers(ctx)
}
