package battle

import "time"

// Side identifies a combatant; it doubles as the turn owner and the winner
type Side string

const (
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

const greeting = "A wild enemy appears! Choose your action."

// State is one battle session
type State struct {
	ID        string    `json:"id"`
	Player    Combatant `json:"player"`
	Enemy     Combatant `json:"enemy"`
	Turn      Side      `json:"turn"`
	Message   string    `json:"message"`
	Winner    Side      `json:"winner,omitempty"`
	Round     int       `json:"round"` // Player actions since the last reset
	Log       []string  `json:"log"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewState creates a fresh battle at the player's turn
func NewState(id string, tuning Tuning) *State {
	return &State{
		ID:      id,
		Player:  newCombatant(tuning.MaxHP, tuning.Player),
		Enemy:   newCombatant(tuning.MaxHP, tuning.Enemy),
		Turn:    SidePlayer,
		Message: greeting,
		Log:     []string{greeting},
	}
}

// Finished is true once either side is at 0 HP
func (s *State) Finished() bool {
	return !s.Player.IsAlive() || !s.Enemy.IsAlive()
}

// Clone returns a deep copy
func (s *State) Clone() *State {
	c := *s
	c.Player = s.Player.clone()
	c.Enemy = s.Enemy.clone()
	if s.Log != nil {
		c.Log = make([]string, len(s.Log))
		copy(c.Log, s.Log)
	}
	return &c
}

func (s *State) narrate(message string, keep int) {
	s.Message = message
	s.Log = append(s.Log, message)
	if keep > 0 && len(s.Log) > keep {
		s.Log = s.Log[len(s.Log)-keep:]
	}
}

func (s *State) combatants(actor Side) (self, opponent *Combatant) {
	if actor == SidePlayer {
		return &s.Player, &s.Enemy
	}
	return &s.Enemy, &s.Player
}
