package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// DefaultTestRedisURL points at DB 15 so tests never touch real data
const DefaultTestRedisURL = "redis://localhost:6379/15"

// CreateTestRedisClient connects to REDIS_TEST_URL (or the default) and
// skips the test when Redis is not reachable. The database is flushed
// before and after the test.
func CreateTestRedisClient(t *testing.T) redis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		url = DefaultTestRedisURL
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err, "invalid REDIS_TEST_URL")

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing: %v", err)
	}

	err = client.FlushDB(ctx).Err()
	require.NoError(t, err, "Failed to flush test Redis database")

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}
