package config

import (
	"errors"
	"fmt"
	"lolanalyzer/pkg/regions"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingApiKey is returned when no Riot API key is available.
var ErrMissingApiKey = errors.New("missing RIOT_API_KEY")

// Riot API configuration.
type RiotConfiguration struct {
	ApiKey  string
	Region  string
	BaseURL string // Empty means the public regional host.
	Timeout time.Duration
}

// Validate checks the values every Riot client needs.
func (r RiotConfiguration) Validate() error {
	if strings.TrimSpace(r.ApiKey) == "" {
		return ErrMissingApiKey
	}
	return nil
}

// Single rate limit window.
type LimitWindow struct {
	Count         int
	ResetInterval time.Duration
}

// Rate limits applied to the Riot API.
type LimitsConfiguration struct {
	Lower  LimitWindow
	Higher LimitWindow
}

// Database configuration struct.
type DatabaseConfiguration struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// DSN returns the connection string used by gorm.
func (d DatabaseConfiguration) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Database,
	)
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Bucket used for shipping the task logs.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// SchedulerConfiguration holds the task scheduling values.
type SchedulerConfiguration struct {
	CollectionCron    string
	TopN              int
	LadderCron        string
	LadderPerDivision int
	Retries           int
	RetryDelay        time.Duration
	SeedRetryDelay    time.Duration
	HealthAddr        string
	MetricsAddr       string
}

// Api configuration.
type ApiConfiguration struct {
	Addr           string
	AllowedOrigins []string
}

// Config is the full application configuration.
// Built once at startup and passed down explicitly.
type Config struct {
	Riot      RiotConfiguration
	Limits    LimitsConfiguration
	Database  DatabaseConfiguration
	Redis     RedisConfiguration
	Bucket    BucketConfiguration
	Scheduler SchedulerConfiguration
	Api       ApiConfiguration
}

// Load reads the environment and validates the values shared by every binary.
// Credentials of a single component, like the Riot key, are checked where that component is built.
func Load() (*Config, error) {
	// Outside of docker the values come from the .env file.
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("couldn't load the .env file: %w", err)
		}
	}

	env := &envReader{}

	cfg := &Config{
		Riot: RiotConfiguration{
			ApiKey:  strings.TrimSpace(os.Getenv("RIOT_API_KEY")),
			Region:  strings.ToUpper(env.getString("RIOT_REGION", "KR")),
			BaseURL: strings.TrimRight(os.Getenv("RIOT_API_BASE_URL"), "/"),
			Timeout: env.getDuration("RIOT_API_TIMEOUT", 10*time.Second),
		},
		// Development key limits.
		Limits: LimitsConfiguration{
			Lower: LimitWindow{
				Count:         env.getInt("RIOT_LIMIT_LOWER_COUNT", 20),
				ResetInterval: env.getDuration("RIOT_LIMIT_LOWER_INTERVAL", time.Second),
			},
			Higher: LimitWindow{
				Count:         env.getInt("RIOT_LIMIT_HIGHER_COUNT", 100),
				ResetInterval: env.getDuration("RIOT_LIMIT_HIGHER_INTERVAL", 2*time.Minute),
			},
		},
		Database: DatabaseConfiguration{
			Host:     env.getString("POSTGRES_HOST", "postgres"),
			Port:     env.getString("POSTGRES_PORT", "5432"),
			User:     env.getString("POSTGRES_USER", "postgres"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Database: env.getString("POSTGRES_DB", "lol_analyzer"),
		},
		Redis: RedisConfiguration{
			Host:     env.getString("REDIS_HOST", "redis"),
			Port:     env.getString("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Bucket: BucketConfiguration{
			Region:       env.getString("BUCKET_REGION", "us-east-1"),
			Endpoint:     os.Getenv("BUCKET_ENDPOINT"),
			AccessKey:    os.Getenv("BUCKET_ACCESS_KEY"),
			AccessSecret: os.Getenv("BUCKET_ACCESS_SECRET"),
			LogBucket:    os.Getenv("BUCKET_LOG_NAME"),
		},
		Scheduler: SchedulerConfiguration{
			CollectionCron:    env.getString("COLLECTION_CRON", "0 */6 * * *"),
			TopN:              env.getInt("COLLECTION_TOP_N", 10),
			LadderCron:        env.getString("LADDER_SWEEP_CRON", "0 3 * * *"),
			LadderPerDivision: env.getInt("LADDER_PER_DIVISION", 4),
			Retries:           env.getInt("TASK_RETRIES", 1),
			RetryDelay:        env.getDuration("TASK_RETRY_DELAY", 5*time.Minute),
			SeedRetryDelay:    env.getDuration("SEED_RETRY_DELAY", 2*time.Minute),
			HealthAddr:        env.getString("SCHEDULER_HEALTH_ADDR", ":50051"),
			MetricsAddr:       env.getString("SCHEDULER_METRICS_ADDR", ":2112"),
		},
		Api: ApiConfiguration{
			Addr:           env.getString("API_ADDR", ":8080"),
			AllowedOrigins: splitList(env.getString("API_ALLOWED_ORIGINS", "*")),
		},
	}

	if err := env.err(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values that can't have a usable default.
func (c *Config) Validate() error {
	if !regions.IsPlatform(regions.SubRegion(c.Riot.Region)) {
		return fmt.Errorf("unknown riot region %q", c.Riot.Region)
	}

	if c.Scheduler.Retries < 0 {
		return fmt.Errorf("task retries can't be negative, got %d", c.Scheduler.Retries)
	}

	if c.Scheduler.LadderPerDivision < 0 {
		return fmt.Errorf("ladder entries per division can't be negative, got %d", c.Scheduler.LadderPerDivision)
	}

	return nil
}

// Reads the environment, collecting every malformed value.
// Unset or empty values take the fallback.
type envReader struct {
	errs []error
}

func (e *envReader) getString(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func (e *envReader) getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s %q: expected an integer", key, raw))
		return fallback
	}
	return value
}

func (e *envReader) getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s %q: expected a duration like 30s or 5m", key, raw))
		return fallback
	}
	return value
}

func (e *envReader) err() error {
	return errors.Join(e.errs...)
}

// Split a comma separated list, dropping empty values.
func splitList(value string) []string {
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
