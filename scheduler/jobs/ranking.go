package jobs

import (
	"context"
	"errors"
	"fmt"
	"lolanalyzer/fetcher/riot"
	queuevalues "lolanalyzer/pkg/riotvalues/queue"
)

// DefaultTopN is the amount of entries kept by the collection task.
const DefaultTopN = 10

// LeagueClient is the part of the Riot client used by the ranking fetcher.
type LeagueClient interface {
	GetChallengerLeague(ctx context.Context, queue string) (*riot.HighEloLeague, error)
}

// RankingEntry is a leaderboard entry, alive only during a task run.
type RankingEntry struct {
	Puuid        string
	PlayerName   string
	Tier         string
	Rank         string
	LeaguePoints int
	Wins         int
	Losses       int
}

// RankingFetcher retrieves the top of the challenger ladder.
type RankingFetcher struct {
	client LeagueClient
	log    Logger
	queue  string
}

// NewRankingFetcher creates a fetcher for the solo queue ladder.
func NewRankingFetcher(client LeagueClient, log Logger) *RankingFetcher {
	return &RankingFetcher{
		client: client,
		log:    log,
		queue:  queuevalues.RankedSolo,
	}
}

// FetchTopN returns the first n entries in the order the API returned them.
func (f *RankingFetcher) FetchTopN(ctx context.Context, n int) ([]RankingEntry, error) {
	if f.client == nil {
		return nil, errors.New("the league client can't be nil")
	}

	league, err := f.client.GetChallengerLeague(ctx, f.queue)
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch the challenger league: %w", err)
	}

	if n < 0 {
		n = 0
	}
	if n > len(league.Entries) {
		n = len(league.Entries)
	}

	entries := make([]RankingEntry, n)
	for i, entry := range league.Entries[:n] {
		entries[i] = toRankingEntry(entry, league.Tier)
	}

	f.log.Infof("collected %d challenger entries, keeping top %d", len(league.Entries), n)

	return entries, nil
}

// Convert the API entry, falling back to the league tier.
func toRankingEntry(entry riot.LeagueEntry, leagueTier string) RankingEntry {
	ranking := RankingEntry{
		Puuid:        entry.Puuid,
		PlayerName:   entry.SummonerName,
		Tier:         leagueTier,
		LeaguePoints: entry.LeaguePoints,
		Wins:         entry.Wins,
		Losses:       entry.Losses,
	}

	if entry.Tier != nil && *entry.Tier != "" {
		ranking.Tier = *entry.Tier
	}
	if entry.Rank != nil {
		ranking.Rank = *entry.Rank
	}

	return ranking
}

// CollectChallengerRanking is the body of the collection task.
// TODO: persist the entries once the ranking snapshot table exists.
func CollectChallengerRanking(ctx context.Context, client LeagueClient, log Logger, n int) ([]RankingEntry, error) {
	entries, err := NewRankingFetcher(client, log).FetchTopN(ctx, n)
	if err != nil {
		return nil, err
	}

	for i, entry := range entries {
		log.Infof("#%d %s %s %d LP", i+1, entry.Puuid, entry.Tier, entry.LeaguePoints)
	}

	return entries, nil
}
