package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_ADDR", "CORS_ORIGIN", "REDIS_URL", "SESSION_TTL", "HISTORY_DB_PATH",
		"ENEMY_POLICY", "RANDOM_SEED", "API_URL", "ENEMY_DELAY", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "*", cfg.Server.CORSOrigin)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 24*time.Hour, cfg.Redis.SessionTTL)
	assert.Empty(t, cfg.History.DBPath)
	assert.Equal(t, "random", cfg.Battle.EnemyPolicy)
	assert.Zero(t, cfg.Battle.RandomSeed)
	assert.Equal(t, "http://localhost:8080", cfg.Client.APIURL)
	assert.Equal(t, time.Second, cfg.Client.EnemyDelay)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9000")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ENEMY_POLICY", "cycle")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("ENEMY_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
	assert.Equal(t, 2*time.Hour, cfg.Redis.SessionTTL)
	assert.Equal(t, "cycle", cfg.Battle.EnemyPolicy)
	assert.Equal(t, int64(42), cfg.Battle.RandomSeed)
	assert.Equal(t, 250*time.Millisecond, cfg.Client.EnemyDelay)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"SESSION_TTL": "forever",
		"RANDOM_SEED": "abc",
		"ENEMY_DELAY": "-1s",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
