package services

import (
	"context"
	"errors"
	"fmt"
	"lolanalyzer/api/dto"
	"lolanalyzer/pkg/database/models"
	"lolanalyzer/pkg/messages"
	"lolanalyzer/pkg/repositories"
	tiervalues "lolanalyzer/pkg/riotvalues/tier"
	"strings"
	"sync/atomic"
	"time"
)

const listCacheDuration = 30 * time.Second

// ErrInvalidInput is returned when a request can't be applied to the players table.
var ErrInvalidInput = errors.New("invalid input")

// PlayerCache is the cache surface used by the player service.
type PlayerCache interface {
	Get(key string) any
	Set(key string, value any, ttl time.Duration)
	Clear()
}

// PlayerService handles the players table for the API.
type PlayerService struct {
	cache            PlayerCache
	PlayerRepository repositories.PlayerRepository

	// Part of every listing key, bumped on each write.
	// A listing read before a write is stored under the old generation and never served again.
	generation atomic.Uint64
}

type PlayerServiceDeps struct {
	Cache      PlayerCache
	Repository repositories.PlayerRepository
}

// NewPlayerService creates a service for handling player services.
func NewPlayerService(deps *PlayerServiceDeps) (*PlayerService, error) {
	if deps == nil || deps.Repository == nil {
		return nil, errors.New("the player repository can't be nil")
	}

	return &PlayerService{
		cache:            deps.Cache,
		PlayerRepository: deps.Repository,
	}, nil
}

// ListPlayers returns the players ordered by league points.
// Listings are cached for a short time.
func (ps *PlayerService) ListPlayers(ctx context.Context, filter *repositories.PlayerListFilter) ([]*dto.PlayerEntry, error) {
	if filter == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	tier := strings.ToUpper(strings.TrimSpace(filter.Tier))
	if tier != "" && !tiervalues.IsValidTier(tier) {
		return nil, fmt.Errorf("%w: "+messages.InvalidTierMsg, ErrInvalidInput, filter.Tier)
	}

	cacheKey := fmt.Sprintf("players:%d:%s:%d", ps.generation.Load(), tier, filter.Limit)
	if ps.cache != nil {
		if cached, ok := ps.cache.Get(cacheKey).([]*dto.PlayerEntry); ok {
			return cached, nil
		}
	}

	players, err := ps.PlayerRepository.ListPlayers(ctx, &repositories.PlayerListFilter{
		Tier:  tier,
		Limit: filter.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't list the players: %w", err)
	}

	result := make([]*dto.PlayerEntry, len(players))
	for i, player := range players {
		result[i] = toPlayerEntry(player)
	}

	if ps.cache != nil {
		ps.cache.Set(cacheKey, result, listCacheDuration)
	}

	return result, nil
}

// GetPlayer returns a single player.
func (ps *PlayerService) GetPlayer(ctx context.Context, puuid string) (*dto.PlayerEntry, error) {
	player, err := ps.PlayerRepository.GetPlayerByPuuid(ctx, puuid)
	if err != nil {
		return nil, err
	}

	return toPlayerEntry(player), nil
}

// CreatePlayer validates and upserts a player, clearing the cached listings.
func (ps *PlayerService) CreatePlayer(ctx context.Context, input *dto.CreatePlayer) (*dto.PlayerEntry, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidInput)
	}

	puuid := strings.TrimSpace(input.Puuid)
	name := strings.TrimSpace(input.PlayerName)
	if puuid == "" || name == "" {
		return nil, fmt.Errorf("%w: puuid and playerName are required", ErrInvalidInput)
	}

	tier := strings.ToUpper(strings.TrimSpace(input.Tier))
	if !tiervalues.IsValidTier(tier) {
		return nil, fmt.Errorf("%w: "+messages.InvalidTierMsg, ErrInvalidInput, input.Tier)
	}

	if input.LeaguePoints == nil || *input.LeaguePoints < 0 {
		return nil, fmt.Errorf("%w: lp must be zero or positive", ErrInvalidInput)
	}

	player := &models.Player{
		Puuid:        puuid,
		PlayerName:   name,
		Tier:         tier,
		LeaguePoints: *input.LeaguePoints,
	}

	if err := ps.PlayerRepository.UpsertPlayers(ctx, []*models.Player{player}); err != nil {
		if errors.Is(err, repositories.ErrInvalidPlayer) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("couldn't save the player: %w", err)
	}

	ps.generation.Add(1)
	if ps.cache != nil {
		ps.cache.Clear()
	}

	// Read back, an existing player keeps the stored name and creation time.
	return ps.GetPlayer(ctx, puuid)
}

func toPlayerEntry(player *models.Player) *dto.PlayerEntry {
	rank := ""
	if player.Rank != nil {
		rank = *player.Rank
	}

	return &dto.PlayerEntry{
		Puuid:        player.Puuid,
		PlayerName:   player.PlayerName,
		Tier:         player.Tier,
		Rank:         player.Rank,
		LeaguePoints: player.LeaguePoints,
		Wins:         player.Wins,
		Losses:       player.Losses,
		NumericScore: tiervalues.CalculateRank(player.Tier, rank, player.LeaguePoints),
		CreatedAt:    player.CreatedAt,
		UpdatedAt:    player.UpdatedAt,
	}
}
