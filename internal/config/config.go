package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver        string
	DBDSN           string
	HTTPAddr        string
	GRPCAddr        string // empty disables gRPC
	RedisAddr       string // empty disables the code cache
	CodeCacheTTL    time.Duration
	CodeSize        int
	ShutdownTimeout time.Duration
}

// Load reads STOCK_* variables, after seeding the environment from
// STOCK_ENV_FILE (default .env) when that file exists. Variables already set
// in the environment win over the file.
func Load() (*Config, error) {
	envFile := getEnv("STOCK_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{
		DBDriver:  getEnv("STOCK_DB_DRIVER", "sqlite"),
		DBDSN:     getEnv("STOCK_DB_DSN", "estoque.db"),
		HTTPAddr:  getEnv("STOCK_HTTP_ADDR", "127.0.0.1:8080"),
		GRPCAddr:  os.Getenv("STOCK_GRPC_ADDR"),
		RedisAddr: os.Getenv("STOCK_REDIS_ADDR"),
	}

	var err error
	if cfg.CodeCacheTTL, err = getDuration("STOCK_CODE_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("STOCK_SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.CodeSize, err = getInt("STOCK_CODE_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.CodeSize <= 0 {
		return nil, fmt.Errorf("STOCK_CODE_SIZE must be positive, got %d", cfg.CodeSize)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
