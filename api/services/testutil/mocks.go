package testutil

import (
	"context"
	"lolanalyzer/pkg/database/models"
	"lolanalyzer/pkg/repositories"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// Player repository mock.
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) UpsertPlayers(ctx context.Context, players []*models.Player) error {
	args := m.Called(ctx, players)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpsertLadderEntries(ctx context.Context, players []*models.Player) error {
	args := m.Called(ctx, players)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetPlayerByPuuid(ctx context.Context, puuid string) (*models.Player, error) {
	args := m.Called(ctx, puuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) ListPlayers(ctx context.Context, filter *repositories.PlayerListFilter) ([]*models.Player, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) CountPlayers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Memory cache mock.
type MockMemCache struct {
	mock.Mock
}

func (m *MockMemCache) Get(key string) any {
	args := m.Called(key)
	return args.Get(0)
}

func (m *MockMemCache) Set(key string, value any, ttl time.Duration) {
	m.Called(key, value, ttl)
}

func (m *MockMemCache) Clear() {
	m.Called()
}
