package jobs

import (
	"context"
	"errors"
	"fmt"
	"lolanalyzer/fetcher/riot"
	"lolanalyzer/pkg/database"
	"lolanalyzer/pkg/database/models"
	"lolanalyzer/pkg/repositories"
	queuevalues "lolanalyzer/pkg/riotvalues/queue"
	tiervalues "lolanalyzer/pkg/riotvalues/tier"
)

// LadderClient is the part of the Riot client used by the ladder sweep.
type LadderClient interface {
	LeagueClient
	GetGrandmasterLeague(ctx context.Context, queue string) (*riot.HighEloLeague, error)
	GetMasterLeague(ctx context.Context, queue string) (*riot.HighEloLeague, error)
	GetLeagueEntries(ctx context.Context, queue, tier, division string, page int) ([]riot.LeagueEntry, error)
}

// LadderSweeper samples every tier of the ladder and stores the entries found.
type LadderSweeper struct {
	client      LadderClient
	repository  repositories.PlayerRepository
	log         Logger
	queue       string
	perDivision int
}

// NewLadderSweeper creates a sweeper for the solo queue ladder.
// A perDivision of zero keeps the whole first page.
func NewLadderSweeper(client LadderClient, repository repositories.PlayerRepository, log Logger, perDivision int) *LadderSweeper {
	return &LadderSweeper{
		client:      client,
		repository:  repository,
		log:         log,
		queue:       queuevalues.RankedSolo,
		perDivision: perDivision,
	}
}

// Sweep reads the high elo leagues and the first page of every division, then upserts the entries.
// A failed league is logged and skipped, the sweep only fails when nothing could be read.
// Returns the amount of players stored.
func (s *LadderSweeper) Sweep(ctx context.Context) (int, error) {
	if s.client == nil {
		return 0, errors.New("the ladder client can't be nil")
	}
	if s.repository == nil {
		return 0, errors.New("the player repository can't be nil")
	}

	var (
		players  []*models.Player
		requests int
		failures int
		lastErr  error
	)

	highElo := []struct {
		tier  string
		fetch func(ctx context.Context, queue string) (*riot.HighEloLeague, error)
	}{
		{tier: "CHALLENGER", fetch: s.client.GetChallengerLeague},
		{tier: "GRANDMASTER", fetch: s.client.GetGrandmasterLeague},
		{tier: "MASTER", fetch: s.client.GetMasterLeague},
	}

	for _, league := range highElo {
		requests++
		result, err := league.fetch(ctx, s.queue)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			failures++
			lastErr = err
			s.log.Errorf("couldn't fetch the %s league: %v", league.tier, err)
			continue
		}
		players = append(players, s.toPlayers(result.Entries, result.Tier)...)
	}

	for _, tier := range tiervalues.DivisionTiers() {
		for _, division := range tiervalues.Divisions() {
			requests++
			entries, err := s.client.GetLeagueEntries(ctx, s.queue, tier, division, 1)
			if err != nil {
				if ctx.Err() != nil {
					return 0, ctx.Err()
				}
				failures++
				lastErr = err
				s.log.Errorf("couldn't fetch %s %s: %v", tier, division, err)
				continue
			}
			players = append(players, s.toPlayers(entries, tier)...)
		}
	}

	if failures == requests {
		return 0, fmt.Errorf("every ladder request failed, last error: %w", lastErr)
	}

	if len(players) > 0 {
		if err := s.repository.UpsertLadderEntries(ctx, players); err != nil {
			s.log.Errorf("couldn't store %d ladder entries: %v", len(players), err)
			return 0, fmt.Errorf("couldn't store the ladder entries: %w", err)
		}
	}

	s.log.Infof("ladder sweep stored %d players, %d of %d requests failed", len(players), failures, requests)
	return len(players), nil
}

// Keep the first entries of a page as players.
// Entries without a puuid are dropped.
func (s *LadderSweeper) toPlayers(entries []riot.LeagueEntry, tier string) []*models.Player {
	if s.perDivision > 0 && len(entries) > s.perDivision {
		entries = entries[:s.perDivision]
	}

	players := make([]*models.Player, 0, len(entries))
	for _, entry := range entries {
		if entry.Puuid == "" {
			continue
		}

		ranking := toRankingEntry(entry, tier)
		player := &models.Player{
			Puuid:        ranking.Puuid,
			PlayerName:   ranking.PlayerName,
			Tier:         ranking.Tier,
			LeaguePoints: ranking.LeaguePoints,
			Wins:         &ranking.Wins,
			Losses:       &ranking.Losses,
		}
		if ranking.Rank != "" {
			player.Rank = &ranking.Rank
		}
		players = append(players, player)
	}

	return players
}

// SweepLadder is the body of the ladder sweep task.
// The connection is opened for this run only and always released.
func SweepLadder(ctx context.Context, client LadderClient, dsn string, log Logger, perDivision int) error {
	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Errorf("couldn't get database connection: %v", err)
		return fmt.Errorf("couldn't get database connection: %w", err)
	}
	defer database.Close(db)

	_, err = NewLadderSweeper(client, repositories.NewPlayerRepository(db), log, perDivision).Sweep(ctx)
	return err
}
