package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	History HistoryConfig
	Battle  BattleConfig
	Client  ClientConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr       string
	CORSOrigin string
}

// RedisConfig holds Redis-specific configuration. An empty URL keeps
// battles in memory.
type RedisConfig struct {
	URL        string
	SessionTTL time.Duration
}

// HistoryConfig holds the finished-battle ledger configuration. An empty
// path disables the ledger.
type HistoryConfig struct {
	DBPath string
}

// BattleConfig holds engine configuration
type BattleConfig struct {
	EnemyPolicy string
	RandomSeed  int64 // 0 seeds from the clock
}

// ClientConfig holds terminal client configuration
type ClientConfig struct {
	APIURL     string
	EnemyDelay time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	ttl, err := getEnvAsDurationOrDefault("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	delay, err := getEnvAsDurationOrDefault("ENEMY_DELAY", time.Second)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvAsInt64OrDefault("RANDOM_SEED", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:       getEnvOrDefault("SERVER_ADDR", ":8080"),
			CORSOrigin: getEnvOrDefault("CORS_ORIGIN", "*"),
		},
		Redis: RedisConfig{
			URL:        os.Getenv("REDIS_URL"),
			SessionTTL: ttl,
		},
		History: HistoryConfig{
			DBPath: os.Getenv("HISTORY_DB_PATH"),
		},
		Battle: BattleConfig{
			EnemyPolicy: getEnvOrDefault("ENEMY_POLICY", "random"),
			RandomSeed:  seed,
		},
		Client: ClientConfig{
			APIURL:     getEnvOrDefault("API_URL", "http://localhost:8080"),
			EnemyDelay: delay,
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}

	// Validate
	if cfg.Redis.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.Client.EnemyDelay < 0 {
		return nil, fmt.Errorf("ENEMY_DELAY cannot be negative")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 30s or 24h: %w", key, err)
	}
	return parsed, nil
}
