package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/spell-duel/internal/repositories/battles"
)

func main() {
	ctx := context.Background()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	repo := battles.NewRedisRepository(&battles.RedisRepoConfig{Client: client})

	states, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list battles: %v", err)
	}

	fmt.Printf("Found %d battles:\n", len(states))
	for _, s := range states {
		status := "turn: " + string(s.Turn)
		if s.Finished() {
			status = "won by " + string(s.Winner)
		}

		ttl, ttlErr := client.TTL(ctx, battles.BattleKey(s.ID)).Result()
		if ttlErr != nil {
			fmt.Printf("  %s: ERROR - %v\n", s.ID, ttlErr)
			continue
		}

		fmt.Printf("  %s: round %d, player %d HP, enemy %d HP, %s, expires in %s\n",
			s.ID, s.Round, s.Player.HP, s.Enemy.HP, status, ttl)
	}
}
