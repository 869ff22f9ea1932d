package repositories

import (
	"lolanalyzer/pkg/database/models"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedDate = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func seedPlayerTestData(t *testing.T, db *gorm.DB) {
	t.Helper()

	// Clean up existing data
	db.Exec("TRUNCATE TABLE players")

	players := []*models.Player{
		{Puuid: "kr-puuid-faker", PlayerName: "Faker", Tier: "CHALLENGER", LeaguePoints: 1800, CreatedAt: fixedDate, UpdatedAt: fixedDate},
		{Puuid: "kr-puuid-chovy", PlayerName: "Chovy", Tier: "CHALLENGER", LeaguePoints: 1650, CreatedAt: fixedDate, UpdatedAt: fixedDate},
		{Puuid: "kr-puuid-showmaker", PlayerName: "ShowMaker", Tier: "GRANDMASTER", LeaguePoints: 1200, CreatedAt: fixedDate, UpdatedAt: fixedDate},
		{Puuid: "kr-puuid-keria", PlayerName: "Keria", Tier: "GRANDMASTER", LeaguePoints: 1100, CreatedAt: fixedDate, UpdatedAt: fixedDate},
		{Puuid: "kr-puuid-zeus", PlayerName: "Zeus", Tier: "MASTER", LeaguePoints: 700, CreatedAt: fixedDate, UpdatedAt: fixedDate},
	}

	for _, player := range players {
		err := db.Create(player).Error
		require.NoError(t, err)
	}
}

func stringPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}
