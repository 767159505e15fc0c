package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// StoreBackend selects where answer records are kept.
type StoreBackend string

const (
	StoreMemory   StoreBackend = "memory"
	StoreRedis    StoreBackend = "redis"
	StorePostgres StoreBackend = "postgres"
)

// DefaultSurveyTTL is how long an untouched survey is kept by expiring stores.
const DefaultSurveyTTL = 30 * 24 * time.Hour

// DefaultRequestTimeout bounds a single request when REQUEST_TIMEOUT is unset.
const DefaultRequestTimeout = 30 * time.Second

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	StoreBackend    StoreBackend
	SurveyTTL       time.Duration
	LogLevel        string
	LogFormat       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	Redis           RedisConfig
	Postgres        PostgresConfig
}

// RedisConfig configures the Redis connection pool.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the PostgreSQL connection pool.
type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// LoadDotEnv loads the first .env file found among paths. A missing file is
// not an error; real environment variables always win.
func LoadDotEnv(paths ...string) (string, bool) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var (
		cfg Server
		err error
	)
	cfg.Addr = getEnv("ENERGY_ADVICE_ADDR", ":8080")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	cfg.StoreBackend = StoreBackend(strings.ToLower(getEnv("STORE_BACKEND", string(StoreMemory))))
	switch cfg.StoreBackend {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		return Server{}, fmt.Errorf("STORE_BACKEND must be memory, redis or postgres, got %q", cfg.StoreBackend)
	}

	if cfg.SurveyTTL, err = getDuration("SURVEY_TTL", DefaultSurveyTTL); err != nil {
		return Server{}, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", DefaultRequestTimeout); err != nil {
		return Server{}, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Server{}, err
	}

	if cfg.Redis, err = redisFromEnv(); err != nil {
		return Server{}, err
	}
	if cfg.Postgres, err = postgresFromEnv(); err != nil {
		return Server{}, err
	}

	if cfg.StoreBackend == StoreRedis && cfg.Redis.URL == "" {
		return Server{}, fmt.Errorf("REDIS_URL is required when STORE_BACKEND=redis")
	}
	if cfg.StoreBackend == StorePostgres && cfg.Postgres.URL == "" {
		return Server{}, fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
	}
	return cfg, nil
}

func redisFromEnv() (RedisConfig, error) {
	cfg := RedisConfig{URL: os.Getenv("REDIS_URL")}
	var err error
	if cfg.PoolSize, err = getInt("REDIS_POOL_SIZE", 10); err != nil {
		return cfg, err
	}
	if cfg.MinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", 2); err != nil {
		return cfg, err
	}
	if cfg.DialTimeout, err = getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second); err != nil {
		return cfg, err
	}
	if cfg.ReadTimeout, err = getDuration("REDIS_READ_TIMEOUT", 3*time.Second); err != nil {
		return cfg, err
	}
	if cfg.WriteTimeout, err = getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func postgresFromEnv() (PostgresConfig, error) {
	cfg := PostgresConfig{URL: os.Getenv("DATABASE_URL")}
	var err error
	if cfg.MaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return cfg, err
	}
	if cfg.MaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return cfg, err
	}
	if cfg.ConnMaxLifetime, err = getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration, got %q", key, raw)
	}
	return d, nil
}
