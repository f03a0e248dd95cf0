package battle

//go:generate mockgen -destination=mock/mock_service.go -package=mockbattle -source=service.go

import (
	"context"
	"strings"

	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	dnderr "github.com/KirkDiggler/spell-duel/internal/errors"
	"github.com/KirkDiggler/spell-duel/internal/events"
	"github.com/KirkDiggler/spell-duel/internal/logging"
	"github.com/KirkDiggler/spell-duel/internal/repositories/battles"
	"github.com/KirkDiggler/spell-duel/internal/repositories/history"
	"github.com/KirkDiggler/spell-duel/internal/uuid"
)

const maxSessionIDLength = 128

// Service defines the battle service interface. Every operation on one
// session is serialized; different sessions never block each other.
type Service interface {
	// GetState returns the session's battle, creating it when unknown
	GetState(ctx context.Context, sessionID string) (*battle.State, error)

	// Peek returns the session's battle without creating it
	Peek(ctx context.Context, sessionID string) (*battle.State, error)

	// ApplyPlayerAction resolves a player action, creating the session when unknown
	ApplyPlayerAction(ctx context.Context, sessionID string, action battle.ActionID) (*battle.State, error)

	// ApplyEnemyTurn lets the enemy act
	ApplyEnemyTurn(ctx context.Context, sessionID string) (*battle.State, error)

	// Reset restarts the session's battle, creating it when unknown
	Reset(ctx context.Context, sessionID string) (*battle.State, error)

	// CreateSession starts a battle under a new generated id
	CreateSession(ctx context.Context) (*battle.State, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, sessionID string) error

	// ListSessions returns every stored battle
	ListSessions(ctx context.Context) ([]*battle.State, error)

	// History returns the most recent finished battles
	History(ctx context.Context, limit int) ([]history.Outcome, error)

	// Catalog lists the player actions
	Catalog() []battle.Action
}

type service struct {
	repository    battles.Repository
	history       history.Repository
	engine        *battle.Engine
	bus           *events.Bus
	uuidGenerator uuid.Generator
	locks         *sessionLocks
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    battles.Repository
	Engine        *battle.Engine
	History       history.Repository // Defaults to a no-op ledger
	Bus           *events.Bus        // Optional
	UUIDGenerator uuid.Generator
}

// NewService creates a new battle service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Engine == nil {
		panic("engine is required")
	}

	svc := &service{
		repository: cfg.Repository,
		history:    cfg.History,
		engine:     cfg.Engine,
		bus:        cfg.Bus,
		locks:      newSessionLocks(),
	}

	if svc.history == nil {
		svc.history = history.NewNopRepository()
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

// GetState returns the battle without changing it
func (s *service) GetState(ctx context.Context, sessionID string) (*battle.State, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	return s.load(ctx, sessionID, true)
}

// Peek returns the battle, or a not found error when the session is unknown
func (s *service) Peek(ctx context.Context, sessionID string) (*battle.State, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	return s.load(ctx, sessionID, false)
}

// ApplyPlayerAction loads the battle, applies the action and saves it
func (s *service) ApplyPlayerAction(ctx context.Context, sessionID string, action battle.ActionID) (*battle.State, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	state, err := s.load(ctx, sessionID, true)
	if err != nil {
		return nil, err
	}

	wasFinished := state.Finished()
	outcome, err := s.engine.ApplyPlayerAction(state, action)
	if err != nil {
		return nil, err
	}

	return s.commit(ctx, state, outcome, wasFinished)
}

// ApplyEnemyTurn loads the battle, lets the policy act and saves it
func (s *service) ApplyEnemyTurn(ctx context.Context, sessionID string) (*battle.State, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	state, err := s.load(ctx, sessionID, false)
	if err != nil {
		if dnderr.IsNotFound(err) {
			// A fresh battle would be at the player's turn
			return nil, dnderr.InvalidTurn("it is not the enemy's turn").WithMeta("session_id", sessionID)
		}
		return nil, err
	}

	outcome, err := s.engine.ApplyEnemyTurn(state)
	if err != nil {
		return nil, err
	}

	return s.commit(ctx, state, outcome, false)
}

// Reset restarts the battle
func (s *service) Reset(ctx context.Context, sessionID string) (*battle.State, error) {
	return s.ApplyPlayerAction(ctx, sessionID, battle.ActionReset)
}

// CreateSession starts a new battle with a generated id
func (s *service) CreateSession(ctx context.Context) (*battle.State, error) {
	state := s.engine.NewState(s.uuidGenerator.New())
	if err := s.repository.Create(ctx, state); err != nil {
		return nil, dnderr.Wrap(err, "failed to create battle session")
	}

	s.emit(events.NewSessionEvent(events.EventTypeSessionCreated, state.ID))
	return state, nil
}

// DeleteSession removes the battle
func (s *service) DeleteSession(ctx context.Context, sessionID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.repository.Delete(ctx, sessionID); err != nil {
		return dnderr.Wrapf(err, "failed to delete battle session '%s'", sessionID)
	}

	s.emit(events.NewSessionEvent(events.EventTypeSessionDeleted, sessionID))
	return nil
}

// ListSessions returns every stored battle
func (s *service) ListSessions(ctx context.Context) ([]*battle.State, error) {
	states, err := s.repository.List(ctx)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list battle sessions")
	}
	return states, nil
}

// History returns recent finished battles, newest first
func (s *service) History(ctx context.Context, limit int) ([]history.Outcome, error) {
	outcomes, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to load battle history")
	}
	return outcomes, nil
}

// Catalog lists the player actions
func (s *service) Catalog() []battle.Action {
	return battle.Catalog()
}

// load fetches a battle, optionally creating it when missing
func (s *service) load(ctx context.Context, sessionID string, create bool) (*battle.State, error) {
	state, err := s.repository.Get(ctx, sessionID)
	if err == nil {
		return state, nil
	}
	if !dnderr.IsNotFound(err) || !create {
		return nil, dnderr.Wrapf(err, "failed to get battle session '%s'", sessionID)
	}

	state = s.engine.NewState(sessionID)
	if err := s.repository.Create(ctx, state); err != nil {
		if !dnderr.IsAlreadyExists(err) {
			return nil, dnderr.Wrapf(err, "failed to create battle session '%s'", sessionID)
		}
		// Another process created it first
		return s.load(ctx, sessionID, false)
	}

	logging.Info("battle session created", logging.Fields{"session_id": sessionID})
	s.emit(events.NewSessionEvent(events.EventTypeSessionCreated, sessionID))
	return state, nil
}

// commit saves a mutated battle and announces what happened
func (s *service) commit(ctx context.Context, state *battle.State, outcome *battle.Outcome, wasFinished bool) (*battle.State, error) {
	if err := s.repository.Update(ctx, state); err != nil {
		return nil, dnderr.Wrapf(err, "failed to save battle session '%s'", state.ID)
	}

	s.emit(events.NewActionResolvedEvent(outcome, state))
	if state.Finished() && !wasFinished {
		s.emit(events.NewBattleFinishedEvent(state, state.UpdatedAt))
	}

	return state, nil
}

// emit never fails the caller; listener errors are only logged
func (s *service) emit(event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(event); err != nil {
		logging.Error("event listener failed", err, logging.Fields{
			"event":      string(event.GetType()),
			"session_id": event.GetSessionID(),
		})
	}
}

func validateSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return dnderr.InvalidArgument("session ID is required")
	}
	if len(sessionID) > maxSessionIDLength {
		return dnderr.InvalidArgument("session ID is too long")
	}
	return nil
}
