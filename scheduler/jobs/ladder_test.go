package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"lolanalyzer/internal/testutil"
	"lolanalyzer/pkg/database"
	"lolanalyzer/pkg/database/models"
	"lolanalyzer/pkg/repositories"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Serves every league endpoint, the master league fails.
func ladderHandler(t *testing.T, divisionSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasPrefix(path, "/lol/league/v4/challengerleagues/"):
			json.NewEncoder(w).Encode(challengerLeague(6))
		case strings.HasPrefix(path, "/lol/league/v4/grandmasterleagues/"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"tier": "GRANDMASTER",
				"entries": []map[string]interface{}{
					{"puuid": "gm-1", "leaguePoints": 900, "rank": "I", "wins": 80, "losses": 60},
					{"puuid": "", "leaguePoints": 850, "rank": "I"},
				},
			})
		case strings.HasPrefix(path, "/lol/league/v4/masterleagues/"):
			w.WriteHeader(http.StatusInternalServerError)
		case strings.HasPrefix(path, "/lol/league/v4/entries/RANKED_SOLO_5x5/"):
			parts := strings.Split(strings.TrimPrefix(path, "/lol/league/v4/entries/RANKED_SOLO_5x5/"), "/")
			if !assert.Len(t, parts, 2) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			assert.Equal(t, "1", r.URL.Query().Get("page"))

			entries := make([]map[string]interface{}, divisionSize)
			for i := range entries {
				entries[i] = map[string]interface{}{
					"puuid":        fmt.Sprintf("%s-%s-%d", parts[0], parts[1], i),
					"summonerName": fmt.Sprintf("Player%d", i),
					"tier":         parts[0],
					"rank":         parts[1],
					"leaguePoints": 90 - i,
					"wins":         20 + i,
					"losses":       10,
				}
			}
			json.NewEncoder(w).Encode(entries)
		default:
			t.Errorf("unexpected path %s", path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func findPlayer(players []*models.Player, puuid string) *models.Player {
	for _, player := range players {
		if player.Puuid == puuid {
			return player
		}
	}
	return nil
}

func TestSweep(t *testing.T) {
	t.Run("keeps the first entries of each league", func(t *testing.T) {
		client := newRiotClient(t, ladderHandler(t, 6))

		var stored []*models.Player
		repo := new(mockPlayerRepository)
		repo.On("UpsertLadderEntries", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).([]*models.Player)
			}).
			Return(nil).Once()

		log := &recordLogger{}
		count, err := NewLadderSweeper(client, repo, log, 4).Sweep(context.Background())
		require.NoError(t, err)

		// 4 challengers, 1 grandmaster with a puuid and 4 per division for 7 tiers.
		expected := 4 + 1 + 7*4*4
		assert.Equal(t, expected, count)
		require.Len(t, stored, expected)

		// The master league failed and was skipped.
		require.Len(t, log.errors, 1)
		assert.Contains(t, log.errors[0], "MASTER")
		assert.Equal(t, []string{fmt.Sprintf("ladder sweep stored %d players, 1 of 31 requests failed", expected)}, log.infos)

		challenger := findPlayer(stored, "puuid-00")
		require.NotNil(t, challenger)
		assert.Equal(t, "CHALLENGER", challenger.Tier)
		assert.Equal(t, "I", *challenger.Rank)
		assert.Nil(t, findPlayer(stored, "puuid-04"))

		gold := findPlayer(stored, "GOLD-II-3")
		require.NotNil(t, gold)
		assert.Equal(t, "GOLD", gold.Tier)
		assert.Equal(t, "II", *gold.Rank)
		assert.Equal(t, "Player3", gold.PlayerName)
		assert.Equal(t, 87, gold.LeaguePoints)
		assert.Equal(t, 23, *gold.Wins)
		assert.Equal(t, 10, *gold.Losses)
		assert.Nil(t, findPlayer(stored, "GOLD-II-4"))

		assert.NotNil(t, findPlayer(stored, "BRONZE-IV-0"))
		repo.AssertExpectations(t)
	})

	t.Run("zero keeps the whole page", func(t *testing.T) {
		client := newRiotClient(t, ladderHandler(t, 6))

		repo := new(mockPlayerRepository)
		repo.On("UpsertLadderEntries", mock.Anything, mock.Anything).Return(nil).Once()

		count, err := NewLadderSweeper(client, repo, &recordLogger{}, 0).Sweep(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 6+1+7*4*6, count)
	})

	t.Run("every request failed", func(t *testing.T) {
		client := newRiotClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		repo := new(mockPlayerRepository)
		log := &recordLogger{}
		count, err := NewLadderSweeper(client, repo, log, 4).Sweep(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "every ladder request failed")
		assert.Equal(t, 0, count)
		assert.Len(t, log.errors, 31)
		repo.AssertNotCalled(t, "UpsertLadderEntries", mock.Anything, mock.Anything)
	})

	t.Run("repository failure", func(t *testing.T) {
		client := newRiotClient(t, ladderHandler(t, 2))

		repoErr := errors.New("connection reset")
		repo := new(mockPlayerRepository)
		repo.On("UpsertLadderEntries", mock.Anything, mock.Anything).Return(repoErr).Once()

		log := &recordLogger{}
		_, err := NewLadderSweeper(client, repo, log, 4).Sweep(context.Background())

		assert.ErrorIs(t, err, repoErr)
		assert.Empty(t, log.infos)
	})

	t.Run("cancelled", func(t *testing.T) {
		client := newRiotClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		repo := new(mockPlayerRepository)
		_, err := NewLadderSweeper(client, repo, &recordLogger{}, 4).Sweep(ctx)

		assert.ErrorIs(t, err, context.Canceled)
		repo.AssertNotCalled(t, "UpsertLadderEntries", mock.Anything, mock.Anything)
	})

	t.Run("missing dependencies", func(t *testing.T) {
		_, err := NewLadderSweeper(nil, new(mockPlayerRepository), &recordLogger{}, 4).Sweep(context.Background())
		assert.Error(t, err)

		client := newRiotClient(t, ladderHandler(t, 1))
		_, err = NewLadderSweeper(client, nil, &recordLogger{}, 4).Sweep(context.Background())
		assert.Error(t, err)
	})
}

func TestSweepLadder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	dsn, cleanup := testutil.NewTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	client := newRiotClient(t, ladderHandler(t, 2))

	// Seeded players stay next to the ladder entries.
	require.NoError(t, CreateDummyPlayers(ctx, dsn, &recordLogger{}))
	require.NoError(t, SweepLadder(ctx, client, dsn, &recordLogger{}, 4))

	db, err := database.NewConnection(dsn)
	require.NoError(t, err)
	defer database.Close(db)

	repo := repositories.NewPlayerRepository(db)

	count, err := repo.CountPlayers(ctx)
	require.NoError(t, err)
	// 3 seeded, 4 challengers, 1 grandmaster and 2 per division.
	assert.Equal(t, int64(3+4+1+7*4*2), count)

	player, err := repo.GetPlayerByPuuid(ctx, "DIAMOND-I-0")
	require.NoError(t, err)
	assert.Equal(t, "DIAMOND", player.Tier)
	require.NotNil(t, player.Rank)
	assert.Equal(t, "I", *player.Rank)
	assert.Equal(t, 20, *player.Wins)

	seeded, err := repo.GetPlayerByPuuid(ctx, "test1")
	require.NoError(t, err)
	assert.Nil(t, seeded.Rank)
}
