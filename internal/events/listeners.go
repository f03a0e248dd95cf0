package events

import (
	"context"
	"time"

	"github.com/KirkDiggler/spell-duel/internal/logging"
	"github.com/KirkDiggler/spell-duel/internal/repositories/history"
)

const recordTimeout = 5 * time.Second

// HistoryListener writes finished battles to the history ledger
type HistoryListener struct {
	repo history.Repository
}

// NewHistoryListener creates a listener backed by repo
func NewHistoryListener(repo history.Repository) *HistoryListener {
	if repo == nil {
		panic("history repository is required")
	}
	return &HistoryListener{repo: repo}
}

func (l *HistoryListener) ID() string    { return "history" }
func (l *HistoryListener) Priority() int { return PriorityPersistence }

// HandleEvent records battle_finished events and ignores the rest
func (l *HistoryListener) HandleEvent(event Event) error {
	finished, ok := event.(*BattleFinishedEvent)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	return l.repo.Record(ctx, &history.Outcome{
		SessionID:  finished.SessionID,
		Winner:     string(finished.Winner),
		Rounds:     finished.Rounds,
		PlayerHP:   finished.PlayerHP,
		EnemyHP:    finished.EnemyHP,
		FinishedAt: finished.FinishedAt,
	})
}

// LogListener writes one structured entry per event
type LogListener struct{}

func (LogListener) ID() string    { return "log" }
func (LogListener) Priority() int { return PriorityLogging }

// HandleEvent implements EventListener
func (LogListener) HandleEvent(event Event) error {
	fields := logging.Fields{
		"event":      string(event.GetType()),
		"session_id": event.GetSessionID(),
	}

	switch e := event.(type) {
	case *ActionResolvedEvent:
		fields["actor"] = string(e.Outcome.Actor)
		fields["action"] = string(e.Outcome.Action)
		fields["damage"] = e.Outcome.Damage
		fields["healed"] = e.Outcome.Healed
		fields["critical"] = e.Outcome.Critical
		fields["player_hp"] = e.State.Player.HP
		fields["enemy_hp"] = e.State.Enemy.HP
		logging.Debug("action resolved", fields)
	case *BattleFinishedEvent:
		fields["winner"] = string(e.Winner)
		fields["rounds"] = e.Rounds
		logging.Info("battle finished", fields)
	default:
		logging.Info("session event", fields)
	}

	return nil
}

// SubscribeDefaults wires the standard listeners onto bus. A nil history
// repository skips the ledger.
func SubscribeDefaults(bus *Bus, repo history.Repository) {
	if repo != nil {
		bus.Subscribe(EventTypeBattleFinished, NewHistoryListener(repo))
	}

	log := LogListener{}
	for _, t := range []EventType{EventTypeActionResolved, EventTypeBattleFinished, EventTypeSessionCreated, EventTypeSessionDeleted} {
		bus.Subscribe(t, log)
	}
}
