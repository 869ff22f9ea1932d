package repositories

import (
	"context"
	"errors"
	"fmt"
	"lolanalyzer/pkg/database/models"
	"lolanalyzer/pkg/messages"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100

	checkViolationCode = "23514"
)

// Columns changed when a seeded player already exists.
var seedUpdateColumns = []string{"tier", "lp", "updatedAt"}

// Columns changed when a ladder entry already exists.
var ladderUpdateColumns = []string{"tier", "rank", "lp", "wins", "losses", "updatedAt"}

var (
	// ErrPlayerNotFound is returned when no player has the requested puuid.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInvalidPlayer is returned when the database rejects the player values.
	ErrInvalidPlayer = errors.New("invalid player")
)

// PlayerListFilter narrows the player listing.
type PlayerListFilter struct {
	Tier  string
	Limit int
}

// PlayerRepository defines the public interface for handling the players table.
type PlayerRepository interface {
	UpsertPlayers(ctx context.Context, players []*models.Player) error
	UpsertLadderEntries(ctx context.Context, players []*models.Player) error
	GetPlayerByPuuid(ctx context.Context, puuid string) (*models.Player, error)
	ListPlayers(ctx context.Context, filter *PlayerListFilter) ([]*models.Player, error)
	CountPlayers(ctx context.Context) (int64, error)
}

// playerRepository is the repository instance.
type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates and return the player repository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// UpsertPlayers inserts or updates each player, one statement per player, in a single transaction.
// On conflict only the tier, lp and update time change.
// Repeated puuids in the same batch are applied in order, so the last one wins.
func (r *playerRepository) UpsertPlayers(ctx context.Context, players []*models.Player) error {
	return r.upsert(ctx, players, seedUpdateColumns)
}

// UpsertLadderEntries works like UpsertPlayers, also refreshing the rank, wins and losses.
// The stored name is kept.
func (r *playerRepository) UpsertLadderEntries(ctx context.Context, players []*models.Player) error {
	return r.upsert(ctx, players, ladderUpdateColumns)
}

// Run the upserts in one transaction.
// Only the update time is forced, the creation time is filled by gorm on insert.
// Every player is refreshed with the stored row afterwards.
func (r *playerRepository) upsert(ctx context.Context, players []*models.Player, updateColumns []string) error {
	if len(players) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, player := range players {
			player.UpdatedAt = tx.NowFunc()

			err := tx.Clauses(
				clause.OnConflict{
					Columns:   []clause.Column{{Name: "puuid"}},
					DoUpdates: clause.AssignmentColumns(updateColumns),
				},
				clause.Returning{},
			).Create(player).Error
			if err != nil {
				return fmt.Errorf("couldn't upsert the player with puuid %s: %w", player.Puuid, translateError(err))
			}
		}
		return nil
	})
}

// GetPlayerByPuuid returns a given player by his PUUID.
func (r *playerRepository) GetPlayerByPuuid(ctx context.Context, puuid string) (*models.Player, error) {
	var player models.Player
	if err := r.db.WithContext(ctx).Where("puuid = ?", puuid).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, puuid)
		}
		// Other database error.
		return nil, fmt.Errorf("couldn't get the player by the puuid: %w", err)
	}

	return &player, nil
}

// ListPlayers returns the players ordered by league points.
func (r *playerRepository) ListPlayers(ctx context.Context, filter *PlayerListFilter) ([]*models.Player, error) {
	if filter == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := r.db.WithContext(ctx).Model(&models.Player{})

	if tier := strings.ToUpper(strings.TrimSpace(filter.Tier)); tier != "" {
		query = query.Where("tier = ?", tier)
	}

	var players []*models.Player
	err := query.
		Order("lp DESC").
		Order("puuid ASC").
		Limit(limit).
		Find(&players).Error
	if err != nil {
		return nil, err
	}

	return players, nil
}

// CountPlayers returns the amount of players stored.
func (r *playerRepository) CountPlayers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Player{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Convert the postgres errors that the callers can act on.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == checkViolationCode {
		return fmt.Errorf("%w: %s", ErrInvalidPlayer, pgErr.ConstraintName)
	}
	return err
}
