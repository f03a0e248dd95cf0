package testutils

import (
	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
)

// CreateTestBattle creates a fresh battle with default tuning
func CreateTestBattle(id string) *battle.State {
	return battle.NewState(id, battle.DefaultTuning())
}

// CreateEnemyTurnBattle creates a battle waiting on the enemy
func CreateEnemyTurnBattle(id string) *battle.State {
	s := CreateTestBattle(id)
	s.Turn = battle.SideEnemy
	s.Round = 1
	return s
}

// CreateFinishedBattle creates a battle already won by winner
func CreateFinishedBattle(id string, winner battle.Side) *battle.State {
	s := CreateTestBattle(id)
	if winner == battle.SidePlayer {
		s.Enemy.HP = 0
	} else {
		s.Player.HP = 0
	}
	s.Winner = winner
	s.Round = 5
	return s
}
