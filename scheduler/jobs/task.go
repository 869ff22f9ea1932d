package jobs

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"lolanalyzer/fetcher/riot"
	"lolanalyzer/pkg/config"
	"lolanalyzer/pkg/logger"
	"lolanalyzer/pkg/messages"
	"lolanalyzer/pkg/metrics"
	"sort"
	"sync"
	"time"
)

// Task identifiers.
const (
	CollectChallengerRankingTask = "collect_challenger_ranking"
	CreateDummyPlayersTask       = "create_dummy_players"
	LadderSweepTask              = "sweep_ladder"
)

// ErrUnknownTask is returned when no task has the requested identifier.
var ErrUnknownTask = errors.New(messages.UnknownTaskMsg)

// Logger is the logging surface the tasks need.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// TaskFunc is a single attempt of a task.
type TaskFunc func(ctx context.Context, log Logger) error

// Task is a unit of work known by the scheduler.
type Task struct {
	Name string
	// Cron expression, empty means the task only runs on manual trigger.
	Schedule   string
	Retries    int
	RetryDelay time.Duration
	// The schema must be migrated before the task runs.
	NeedsDatabase bool
	Run           TaskFunc
}

// Manual verifies if the task is only triggered by hand.
func (t *Task) Manual() bool {
	return t.Schedule == ""
}

// RunWithRetry runs the task, retrying with a fixed delay after a failure.
// The last error is returned once every attempt failed.
func RunWithRetry(ctx context.Context, task *Task, log Logger) error {
	attempts := task.Retries + 1

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		start := time.Now()
		err = task.Run(ctx, log)
		metrics.TaskDuration.WithLabelValues(task.Name).Observe(time.Since(start).Seconds())

		if err == nil {
			metrics.TaskRunsTotal.WithLabelValues(task.Name, "success").Inc()
			log.Infof("task %s finished in %v", task.Name, time.Since(start))
			return nil
		}

		metrics.TaskRunsTotal.WithLabelValues(task.Name, "failed").Inc()
		log.Errorf(messages.TaskAttemptFailed, task.Name, attempt, attempts, err)

		if attempt == attempts {
			break
		}

		timer := time.NewTimer(task.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("task %s cancelled while waiting to retry: %w", task.Name, ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf(messages.TaskRetriesExhaust, task.Name, attempts, err)
}

// Execute runs the task with its own log file.
// The log is shipped to the bucket afterwards, even when the task failed.
func (t *Task) Execute(ctx context.Context, bucket config.BucketConfiguration) error {
	log, err := logger.CreateLogger()
	if err != nil {
		return fmt.Errorf("couldn't create the logger for task %s: %w", t.Name, err)
	}
	defer log.Close()

	runErr := RunWithRetry(ctx, t, log)

	objectKey := fmt.Sprintf("tasks/%s/%s.log", t.Name, time.Now().UTC().Format("20060102T150405Z"))
	if err := log.UploadToS3Bucket(ctx, bucket, objectKey); err != nil {
		stdlog.Printf("Couldn't upload the log of task %s: %v", t.Name, err)
	}

	return runErr
}

// TaskFactory builds a task when it's resolved.
// Tasks that need credentials check them here, so other tasks still run without them.
type TaskFactory func() (*Task, error)

// Registry keeps the task factories by identifier.
type Registry struct {
	factories map[string]TaskFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]TaskFactory)}
}

// Register adds a task factory, replacing any factory with the same name.
func (r *Registry) Register(name string, factory TaskFactory) {
	r.factories[name] = factory
}

// Get builds a task by its identifier.
func (r *Registry) Get(name string) (*Task, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("%w %q", ErrUnknownTask, name)
	}

	task, err := factory()
	if err != nil {
		return nil, fmt.Errorf("couldn't set up task %s: %w", name, err)
	}
	return task, nil
}

// Scheduled builds every task and returns the ones that have a schedule, sorted by name.
func (r *Registry) Scheduled() ([]*Task, error) {
	var tasks []*Task
	for _, name := range r.Names() {
		task, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		if !task.Manual() {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// Names returns every task identifier, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NeedsDatabase verifies if any of the tasks uses the database.
func NeedsDatabase(tasks ...*Task) bool {
	for _, task := range tasks {
		if task.NeedsDatabase {
			return true
		}
	}
	return false
}

// NewDefaultRegistry registers the collection, ladder and seeding tasks.
// The Riot client is created on the first task that needs it and shared afterwards.
func NewDefaultRegistry(cfg *config.Config) *Registry {
	registry := NewRegistry()

	riotClient := sync.OnceValues(func() (*riot.Client, error) {
		return riot.NewClient(cfg.Riot, riot.NewRateLimiter(cfg.Limits))
	})

	registry.Register(CollectChallengerRankingTask, func() (*Task, error) {
		client, err := riotClient()
		if err != nil {
			return nil, err
		}

		return &Task{
			Name:       CollectChallengerRankingTask,
			Schedule:   cfg.Scheduler.CollectionCron,
			Retries:    cfg.Scheduler.Retries,
			RetryDelay: cfg.Scheduler.RetryDelay,
			Run: func(ctx context.Context, log Logger) error {
				_, err := CollectChallengerRanking(ctx, client, log, cfg.Scheduler.TopN)
				return err
			},
		}, nil
	})

	registry.Register(LadderSweepTask, func() (*Task, error) {
		client, err := riotClient()
		if err != nil {
			return nil, err
		}

		return &Task{
			Name:          LadderSweepTask,
			Schedule:      cfg.Scheduler.LadderCron,
			Retries:       cfg.Scheduler.Retries,
			RetryDelay:    cfg.Scheduler.RetryDelay,
			NeedsDatabase: true,
			Run: func(ctx context.Context, log Logger) error {
				return SweepLadder(ctx, client, cfg.Database.DSN(), log, cfg.Scheduler.LadderPerDivision)
			},
		}, nil
	})

	registry.Register(CreateDummyPlayersTask, func() (*Task, error) {
		return &Task{
			Name:          CreateDummyPlayersTask,
			Retries:       cfg.Scheduler.Retries,
			RetryDelay:    cfg.Scheduler.SeedRetryDelay,
			NeedsDatabase: true,
			Run: func(ctx context.Context, log Logger) error {
				return CreateDummyPlayers(ctx, cfg.Database.DSN(), log)
			},
		}, nil
	})

	return registry
}
