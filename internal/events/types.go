package events

import (
	"time"

	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
)

// EventType represents the type of battle event
type EventType string

const (
	// EventTypeActionResolved fires after every successful player or enemy action, including reset
	EventTypeActionResolved EventType = "action_resolved"

	// EventTypeBattleFinished fires once when a battle reaches a winner
	EventTypeBattleFinished EventType = "battle_finished"

	// EventTypeSessionCreated and EventTypeSessionDeleted track session lifecycle
	EventTypeSessionCreated EventType = "session_created"
	EventTypeSessionDeleted EventType = "session_deleted"
)

// Priority levels for listener order; lower runs first
const (
	PriorityPersistence = 100
	PriorityLogging     = 500
)

// Event is the base interface for all battle events
type Event interface {
	GetType() EventType
	GetSessionID() string
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type      EventType
	SessionID string
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType   { return e.Type }
func (e *BaseEvent) GetSessionID() string { return e.SessionID }
func (e *BaseEvent) IsCancelled() bool    { return e.Cancelled }
func (e *BaseEvent) Cancel()              { e.Cancelled = true }

// ActionResolvedEvent carries the outcome and a snapshot taken after it
type ActionResolvedEvent struct {
	BaseEvent
	Outcome battle.Outcome
	State   *battle.State
}

// NewActionResolvedEvent builds an action_resolved event
func NewActionResolvedEvent(outcome *battle.Outcome, state *battle.State) *ActionResolvedEvent {
	return &ActionResolvedEvent{
		BaseEvent: BaseEvent{Type: EventTypeActionResolved, SessionID: state.ID},
		Outcome:   *outcome,
		State:     state.Clone(),
	}
}

// BattleFinishedEvent summarizes a finished battle
type BattleFinishedEvent struct {
	BaseEvent
	Winner     battle.Side
	Rounds     int
	PlayerHP   int
	EnemyHP    int
	FinishedAt time.Time
}

// NewBattleFinishedEvent builds a battle_finished event from the final state
func NewBattleFinishedEvent(state *battle.State, at time.Time) *BattleFinishedEvent {
	return &BattleFinishedEvent{
		BaseEvent:  BaseEvent{Type: EventTypeBattleFinished, SessionID: state.ID},
		Winner:     state.Winner,
		Rounds:     state.Round,
		PlayerHP:   state.Player.HP,
		EnemyHP:    state.Enemy.HP,
		FinishedAt: at,
	}
}

// SessionEvent marks a session being created or deleted
type SessionEvent struct {
	BaseEvent
}

// NewSessionEvent builds a session lifecycle event
func NewSessionEvent(eventType EventType, sessionID string) *SessionEvent {
	return &SessionEvent{BaseEvent: BaseEvent{Type: eventType, SessionID: sessionID}}
}
