package services

import (
	"github.com/KirkDiggler/spell-duel/internal/dice"
	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	"github.com/KirkDiggler/spell-duel/internal/events"
	"github.com/KirkDiggler/spell-duel/internal/repositories/battles"
	"github.com/KirkDiggler/spell-duel/internal/repositories/history"
	battleService "github.com/KirkDiggler/spell-duel/internal/services/battle"
	"github.com/KirkDiggler/spell-duel/internal/uuid"
)

// Provider holds all service instances
type Provider struct {
	BattleService battleService.Service
	Bus           *events.Bus
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	BattleRepository  battles.Repository
	HistoryRepository history.Repository
	Roller            dice.Roller
	EnemyPolicy       battle.EnemyPolicy
	UUIDGenerator     uuid.Generator
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repository if none provided
	battleRepo := cfg.BattleRepository
	if battleRepo == nil {
		battleRepo = battles.NewInMemoryRepository(nil)
	}

	historyRepo := cfg.HistoryRepository
	if historyRepo == nil {
		historyRepo = history.NewNopRepository()
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	bus := events.NewBus()
	events.SubscribeDefaults(bus, historyRepo)

	engine := battle.NewEngine(&battle.EngineConfig{
		Roller: roller,
		Policy: cfg.EnemyPolicy,
	})

	svc := battleService.NewService(&battleService.ServiceConfig{
		Repository:    battleRepo,
		Engine:        engine,
		History:       historyRepo,
		Bus:           bus,
		UUIDGenerator: cfg.UUIDGenerator,
	})

	return &Provider{
		BattleService: svc,
		Bus:           bus,
	}
}
