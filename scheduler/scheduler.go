package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"lolanalyzer/pkg/config"
	"lolanalyzer/pkg/database"
	"lolanalyzer/pkg/redis"
	"lolanalyzer/scheduler/jobs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Must outlast a full run, retry delays included.
const jobLockTTL = time.Hour

func main() {
	runTask := flag.String("run", "", "run a single task once and exit ("+strings.Join([]string{jobs.CollectChallengerRankingTask, jobs.LadderSweepTask, jobs.CreateDummyPlayersTask}, ", ")+")")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	registry := jobs.NewDefaultRegistry(cfg)

	// Manual trigger.
	if *runTask != "" {
		os.Exit(runOnce(cfg, registry, *runTask))
	}

	tasks, err := registry.Scheduled()
	if err != nil {
		log.Fatal(err)
	}

	if jobs.NeedsDatabase(tasks...) {
		if err := migrate(cfg); err != nil {
			log.Fatal(err)
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal(err)
	}
	defer redisClient.Close()

	log.Println("Starting scheduler.")

	// Create a new scheduler with options.
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithDistributedLocker(redis.NewLocker(redisClient, jobLockTTL)),
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	for _, task := range tasks {
		_, err = s.NewJob(
			gocron.CronJob(task.Schedule, false),
			gocron.NewTask(
				func(task *jobs.Task) {
					if err := task.Execute(ctx, cfg.Bucket); err != nil {
						log.Printf("Task %s failed: %v", task.Name, err)
					}
				},
				task,
			),
			gocron.WithName(task.Name),
			gocron.WithTags("riot"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			log.Fatalf("Failed to create the %s job: %v", task.Name, err)
		}
		log.Printf("Registered %s with schedule %q", task.Name, task.Schedule)
	}

	grpcServer, healthServer := startHealthServer(cfg.Scheduler.HealthAddr)
	metricsServer := startMetricsServer(cfg.Scheduler.MetricsAddr)

	// Start the scheduler.
	s.Start()

	// Setup signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for termination signal.
	<-sigChan
	log.Println("Shutting down scheduler...")

	setNotServing(healthServer)
	stop()

	if err := s.Shutdown(); err != nil {
		log.Printf("Error shutting down scheduler: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Metrics server forced to shutdown: %v", err)
	}
	grpcServer.GracefulStop()
}

// Apply the schema, a short lived connection is enough.
func migrate(cfg *config.Config) error {
	db, err := database.NewConnection(cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer database.Close(db)

	rawDb, err := db.DB()
	if err != nil {
		return err
	}

	return database.RunMigrations(rawDb, cfg.Database.Database)
}

// Run a single task and return the exit code.
func runOnce(cfg *config.Config, registry *jobs.Registry, name string) int {
	task, err := registry.Get(name)
	if errors.Is(err, jobs.ErrUnknownTask) {
		log.Printf("%v, available tasks: %s", err, strings.Join(registry.Names(), ", "))
		return 2
	}
	if err != nil {
		log.Print(err)
		return 1
	}

	if task.NeedsDatabase {
		if err := migrate(cfg); err != nil {
			log.Printf("Couldn't migrate the database: %v", err)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Running %s.", task.Name)
	if err := task.Execute(ctx, cfg.Bucket); err != nil {
		log.Printf("Task %s failed: %v", task.Name, err)
		return 1
	}
	return 0
}
