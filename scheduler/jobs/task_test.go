package jobs

import (
	"context"
	"errors"
	"lolanalyzer/pkg/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithRetry(t *testing.T) {
	failure := errors.New("upstream unavailable")

	tests := []struct {
		name             string
		retries          int
		failures         int
		expectedAttempts int
		expectError      bool
	}{
		{name: "first attempt succeeds", retries: 1, failures: 0, expectedAttempts: 1},
		{name: "retry succeeds", retries: 1, failures: 1, expectedAttempts: 2},
		{name: "retries exhausted", retries: 1, failures: 5, expectedAttempts: 2, expectError: true},
		{name: "no retries", retries: 0, failures: 1, expectedAttempts: 1, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			task := &Task{
				Name:       "test_task",
				Retries:    tt.retries,
				RetryDelay: 10 * time.Millisecond,
				Run: func(ctx context.Context, log Logger) error {
					attempts++
					if attempts <= tt.failures {
						return failure
					}
					return nil
				},
			}

			log := &recordLogger{}
			err := RunWithRetry(context.Background(), task, log)

			assert.Equal(t, tt.expectedAttempts, attempts)
			if tt.expectError {
				assert.ErrorIs(t, err, failure)
				assert.Len(t, log.errors, tt.expectedAttempts)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, log.errors, tt.failures)
		})
	}
}

func TestRunWithRetry_WaitsBetweenAttempts(t *testing.T) {
	var calls []time.Time
	task := &Task{
		Name:       "delayed_task",
		Retries:    1,
		RetryDelay: 100 * time.Millisecond,
		Run: func(ctx context.Context, log Logger) error {
			calls = append(calls, time.Now())
			return errors.New("fail")
		},
	}

	err := RunWithRetry(context.Background(), task, &recordLogger{})

	require.Error(t, err)
	require.Len(t, calls, 2)
	assert.GreaterOrEqual(t, calls[1].Sub(calls[0]), 90*time.Millisecond)
}

func TestRunWithRetry_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	task := &Task{
		Name:       "cancelled_task",
		Retries:    3,
		RetryDelay: time.Hour,
		Run: func(ctx context.Context, log Logger) error {
			attempts++
			cancel()
			return errors.New("fail")
		},
	}

	err := RunWithRetry(ctx, task, &recordLogger{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestExecute(t *testing.T) {
	task := &Task{
		Name: "execute_task",
		Run: func(ctx context.Context, log Logger) error {
			log.Infof("working")
			return nil
		},
	}

	// No bucket configured, the upload is skipped.
	assert.NoError(t, task.Execute(context.Background(), config.BucketConfiguration{}))
}

func testSchedulerConfig(apiKey string) *config.Config {
	return &config.Config{
		Riot: config.RiotConfiguration{ApiKey: apiKey, Region: "KR"},
		Scheduler: config.SchedulerConfiguration{
			CollectionCron:    "0 */6 * * *",
			TopN:              DefaultTopN,
			LadderCron:        "0 3 * * *",
			LadderPerDivision: 4,
			Retries:           1,
			RetryDelay:        5 * time.Minute,
			SeedRetryDelay:    2 * time.Minute,
		},
	}
}

func TestRegistry(t *testing.T) {
	registry := NewDefaultRegistry(testSchedulerConfig("test-key"))

	assert.Equal(t, []string{CollectChallengerRankingTask, CreateDummyPlayersTask, LadderSweepTask}, registry.Names())

	collect, err := registry.Get(CollectChallengerRankingTask)
	require.NoError(t, err)
	assert.Equal(t, "0 */6 * * *", collect.Schedule)
	assert.Equal(t, 1, collect.Retries)
	assert.Equal(t, 5*time.Minute, collect.RetryDelay)
	assert.False(t, collect.Manual())
	assert.False(t, collect.NeedsDatabase)

	sweep, err := registry.Get(LadderSweepTask)
	require.NoError(t, err)
	assert.Equal(t, "0 3 * * *", sweep.Schedule)
	assert.True(t, sweep.NeedsDatabase)

	seed, err := registry.Get(CreateDummyPlayersTask)
	require.NoError(t, err)
	assert.True(t, seed.Manual())
	assert.True(t, seed.NeedsDatabase)
	assert.Equal(t, 1, seed.Retries)
	assert.Equal(t, 2*time.Minute, seed.RetryDelay)

	scheduled, err := registry.Scheduled()
	require.NoError(t, err)
	require.Len(t, scheduled, 2)
	assert.Equal(t, CollectChallengerRankingTask, scheduled[0].Name)
	assert.Equal(t, LadderSweepTask, scheduled[1].Name)
	assert.True(t, NeedsDatabase(scheduled...))
	assert.False(t, NeedsDatabase(collect))

	_, err = registry.Get("unknown")
	assert.ErrorIs(t, err, ErrUnknownTask)
	assert.EqualError(t, err, `unknown task "unknown"`)
}

func TestRegistry_WithoutApiKey(t *testing.T) {
	registry := NewDefaultRegistry(testSchedulerConfig(""))

	// The seeder never talks to Riot.
	seed, err := registry.Get(CreateDummyPlayersTask)
	require.NoError(t, err)
	assert.Equal(t, CreateDummyPlayersTask, seed.Name)
	assert.NotNil(t, seed.Run)

	_, err = registry.Get(CollectChallengerRankingTask)
	assert.ErrorIs(t, err, config.ErrMissingApiKey)
	assert.NotErrorIs(t, err, ErrUnknownTask)

	_, err = registry.Get(LadderSweepTask)
	assert.ErrorIs(t, err, config.ErrMissingApiKey)

	_, err = registry.Scheduled()
	assert.ErrorIs(t, err, config.ErrMissingApiKey)
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	builds := 0
	registry.Register("custom", func() (*Task, error) {
		builds++
		return &Task{Name: "custom"}, nil
	})

	// Tasks are only built when resolved.
	assert.Equal(t, 0, builds)

	task, err := registry.Get("custom")
	require.NoError(t, err)
	assert.True(t, task.Manual())
	assert.Equal(t, 1, builds)

	scheduled, err := registry.Scheduled()
	require.NoError(t, err)
	assert.Empty(t, scheduled)
	assert.False(t, NeedsDatabase(scheduled...))
}
