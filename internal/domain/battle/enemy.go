package battle

import (
	"fmt"

	"github.com/KirkDiggler/spell-duel/internal/dice"
)

// EnemyPolicy picks the enemy's action for its turn.
// Implementations must always return an id from EnemyCatalog.
type EnemyPolicy interface {
	Choose(s *State, roller dice.Roller) (ActionID, error)
}

// RandomPolicy picks uniformly with a single die roll
type RandomPolicy struct{}

// Choose implements EnemyPolicy
func (RandomPolicy) Choose(_ *State, roller dice.Roller) (ActionID, error) {
	result, err := roller.Roll(1, len(enemyCatalog), 0)
	if err != nil {
		return "", fmt.Errorf("failed to roll enemy action: %w", err)
	}
	return enemyCatalog[wrapIndex(result.Total-1)].ID, nil
}

// CyclePolicy rotates attack, heavy strike, brace by round and never rolls
type CyclePolicy struct{}

// Choose implements EnemyPolicy
func (CyclePolicy) Choose(s *State, _ dice.Roller) (ActionID, error) {
	return enemyCatalog[wrapIndex(s.Round-1)].ID, nil
}

func wrapIndex(i int) int {
	n := len(enemyCatalog)
	return ((i % n) + n) % n
}

// PolicyByName resolves a configured policy name
func PolicyByName(name string) (EnemyPolicy, error) {
	switch name {
	case "", "random":
		return RandomPolicy{}, nil
	case "cycle":
		return CyclePolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown enemy policy %q", name)
	}
}

func isEnemyAction(id ActionID) bool {
	for _, a := range enemyCatalog {
		if a.ID == id {
			return true
		}
	}
	return false
}
