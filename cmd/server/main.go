package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/spell-duel/internal/config"
	"github.com/KirkDiggler/spell-duel/internal/dice"
	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	"github.com/KirkDiggler/spell-duel/internal/handlers/api"
	"github.com/KirkDiggler/spell-duel/internal/logging"
	"github.com/KirkDiggler/spell-duel/internal/repositories/battles"
	"github.com/KirkDiggler/spell-duel/internal/repositories/history"
	"github.com/KirkDiggler/spell-duel/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		log.Fatalf("Invalid LOG_LEVEL: %v", err)
	}
	defer logging.Sync()

	policy, err := battle.PolicyByName(cfg.Battle.EnemyPolicy)
	if err != nil {
		logging.Fatal("Invalid enemy policy", err, logging.Fields{"policy": cfg.Battle.EnemyPolicy})
	}

	providerConfig := &services.ProviderConfig{
		EnemyPolicy: policy,
	}

	if cfg.Battle.RandomSeed != 0 {
		providerConfig.Roller = dice.NewSeededRoller(cfg.Battle.RandomSeed)
		logging.Info("Using seeded dice", logging.Fields{"seed": cfg.Battle.RandomSeed})
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	// Try to connect to Redis if URL is provided
	if cfg.Redis.URL != "" {
		redisClient = connectRedis(cfg.Redis.URL)
		if redisClient != nil {
			providerConfig.BattleRepository = battles.NewRedisRepository(&battles.RedisRepoConfig{
				Client: redisClient,
				TTL:    cfg.Redis.SessionTTL,
			})
			logging.Info("Using Redis for battle sessions", logging.Fields{"ttl": cfg.Redis.SessionTTL.String()})
		}
	} else {
		logging.Info("No REDIS_URL found, using in-memory battle sessions", nil)
	}

	if cfg.History.DBPath != "" {
		db, dbErr := history.OpenAndMigrate(cfg.History.DBPath)
		if dbErr != nil {
			logging.Fatal("Failed to open history database", dbErr, logging.Fields{"path": cfg.History.DBPath})
		}
		providerConfig.HistoryRepository = history.NewSQLiteRepository(db)
		logging.Info("Recording battle history", logging.Fields{"path": cfg.History.DBPath})
	}

	// Create service provider
	serviceProvider := services.NewProvider(providerConfig)

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.NewRouter(&api.RouterConfig{
			Service:    serviceProvider.BattleService,
			CORSOrigin: cfg.Server.CORSOrigin,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Battle server listening", logging.Fields{"addr": cfg.Server.Addr})
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logging.Fatal("Server failed", serveErr, nil)
		}
	}()

	// Wait here until CTRL-C or other term signal is received
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logging.Info("Shutting down", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil {
		logging.Error("Graceful shutdown failed", shutdownErr, nil)
	}

	if redisClient != nil {
		if closeErr := redisClient.Close(); closeErr != nil {
			logging.Error("Error closing Redis connection", closeErr, nil)
		}
	}
}

// connectRedis returns nil when Redis is unusable so the caller falls
// back to in-memory storage
func connectRedis(url string) *redis.Client {
	logging.Info("Connecting to Redis", logging.Fields{"url": url})

	opts, err := redis.ParseURL(url)
	if err != nil {
		logging.Warn("Failed to parse Redis URL, falling back to in-memory", logging.Fields{"error": err.Error()})
		return nil
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Warn("Failed to connect to Redis, falling back to in-memory", logging.Fields{"error": err.Error()})
		_ = client.Close()
		return nil
	}

	logging.Info("Successfully connected to Redis", nil)
	return client
}
