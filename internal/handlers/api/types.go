package api

import (
	"time"

	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	"github.com/KirkDiggler/spell-duel/internal/effects"
)

// CombatantView is one side of the battle as the renderer sees it
type CombatantView struct {
	HP      int                    `json:"hp"`
	MaxHP   int                    `json:"max_hp"`
	Effects []effects.StatusEffect `json:"effects"`
}

// Snapshot is the full battle state returned by every battle endpoint
type Snapshot struct {
	SessionID string        `json:"session_id"`
	Player    CombatantView `json:"player"`
	Enemy     CombatantView `json:"enemy"`
	Turn      battle.Side   `json:"turn"`
	Message   string        `json:"message"`
	Finished  bool          `json:"finished"`
	Winner    battle.Side   `json:"winner,omitempty"`
	Round     int           `json:"round"`
	Log       []string      `json:"log"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SpellRequest is the body of POST /api/spell
type SpellRequest struct {
	Spell string `json:"spell" binding:"required"`
}

// SessionResponse is returned when a session is created
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	State     *Snapshot `json:"state"`
}

// ErrorResponse is the body of every failed request. State is set on
// out-of-turn rejections so the renderer can resync.
type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	State   *Snapshot `json:"state,omitempty"`
}

// NewSnapshot converts battle state into its wire form
func NewSnapshot(s *battle.State) *Snapshot {
	return &Snapshot{
		SessionID: s.ID,
		Player:    newCombatantView(s.Player),
		Enemy:     newCombatantView(s.Enemy),
		Turn:      s.Turn,
		Message:   s.Message,
		Finished:  s.Finished(),
		Winner:    s.Winner,
		Round:     s.Round,
		Log:       nonNil(s.Log),
		UpdatedAt: s.UpdatedAt,
	}
}

func newCombatantView(c battle.Combatant) CombatantView {
	view := CombatantView{
		HP:      c.HP,
		MaxHP:   c.MaxHP,
		Effects: []effects.StatusEffect(c.Effects.Clone()),
	}
	if view.Effects == nil {
		view.Effects = []effects.StatusEffect{}
	}
	return view
}

func nonNil(log []string) []string {
	if log == nil {
		return []string{}
	}
	out := make([]string, len(log))
	copy(out, log)
	return out
}
