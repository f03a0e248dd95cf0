package battle_test

import (
	"testing"

	"github.com/KirkDiggler/spell-duel/internal/dice"
	mockdice "github.com/KirkDiggler/spell-duel/internal/dice/mock"
	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	"github.com/KirkDiggler/spell-duel/internal/effects"
	dnderr "github.com/KirkDiggler/spell-duel/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedPolicy always picks the same enemy action
type fixedPolicy battle.ActionID

func (p fixedPolicy) Choose(*battle.State, dice.Roller) (battle.ActionID, error) {
	return battle.ActionID(p), nil
}

func newEngine(roller dice.Roller, policy battle.EnemyPolicy) *battle.Engine {
	return battle.NewEngine(&battle.EngineConfig{
		Roller: roller,
		Policy: policy,
	})
}

func TestNewEngine_RequiresRoller(t *testing.T) {
	assert.Panics(t, func() { battle.NewEngine(&battle.EngineConfig{}) })
	assert.Panics(t, func() { battle.NewEngine(nil) })
}

func TestNewState(t *testing.T) {
	engine := newEngine(mockdice.NewManualMockRoller(), nil)
	s := engine.NewState("s1")

	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, 100, s.Player.HP)
	assert.Equal(t, 100, s.Enemy.HP)
	assert.Equal(t, battle.SidePlayer, s.Turn)
	assert.False(t, s.Finished())
	assert.NotEmpty(t, s.Message)
	assert.Equal(t, []string{s.Message}, s.Log)
}

func TestEngine_PunchThenEnemyTurn(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	engine := newEngine(roller, battle.RandomPolicy{})
	s := engine.NewState("s1")

	// Crit check misses
	roller.SetRolls([]int{50})
	outcome, err := engine.ApplyPlayerAction(s, battle.ActionPunch)
	require.NoError(t, err)

	assert.Equal(t, 12, outcome.Damage)
	assert.Equal(t, 88, s.Enemy.HP)
	assert.Equal(t, battle.SideEnemy, s.Turn)
	assert.Equal(t, "You punch the enemy for 12 damage.", s.Message)
	assert.Equal(t, 1, s.Round)

	// Policy roll 1 picks a normal attack; the enemy has no crit chance so nothing else is rolled
	roller.SetRolls([]int{1})
	outcome, err = engine.ApplyEnemyTurn(s)
	require.NoError(t, err)

	assert.Equal(t, battle.EnemyAttack, outcome.Action)
	assert.Equal(t, 95, s.Player.HP)
	assert.Equal(t, battle.SidePlayer, s.Turn)
	assert.False(t, s.Finished())
	assert.Equal(t, "Enemy attacks for 5 damage!", s.Message)
	assert.Equal(t, 0, roller.Remaining())
}

func TestEngine_CriticalHits(t *testing.T) {
	t.Run("punch crit doubles damage", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		engine := newEngine(roller, nil)
		s := engine.NewState("s1")

		roller.SetRolls([]int{10})
		outcome, err := engine.ApplyPlayerAction(s, battle.ActionPunch)
		require.NoError(t, err)

		assert.True(t, outcome.Critical)
		assert.Equal(t, 24, outcome.Damage)
		assert.Contains(t, s.Message, "Critical hit!")
	})

	t.Run("spear throw has bonus crit chance", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		engine := newEngine(roller, nil)
		s := engine.NewState("s1")

		roller.SetRolls([]int{30})
		outcome, err := engine.ApplyPlayerAction(s, battle.ActionSpearThrow)
		require.NoError(t, err)

		assert.True(t, outcome.Critical)
		assert.Equal(t, 34, outcome.Damage)
		assert.Equal(t, 66, s.Enemy.HP)
	})

	t.Run("crit boost raises the chance", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		engine := newEngine(roller, fixedPolicy(battle.EnemyBrace))
		s := engine.NewState("s1")

		_, err := engine.ApplyPlayerAction(s, battle.ActionCritBoost)
		require.NoError(t, err)
		_, err = engine.ApplyEnemyTurn(s)
		require.NoError(t, err)

		roller.SetRolls([]int{40})
		outcome, err := engine.ApplyPlayerAction(s, battle.ActionPunch)
		require.NoError(t, err)
		assert.True(t, outcome.Critical)
		// Brace adds 5 defense: (20 - 13) * 2
		assert.Equal(t, 14, outcome.Damage)
	})
}

func TestEngine_SupportActionsPassTheTurn(t *testing.T) {
	for _, id := range []battle.ActionID{battle.ActionDmgBoost, battle.ActionCritBoost, battle.ActionDefBoost, battle.ActionShieldBlock} {
		t.Run(string(id), func(t *testing.T) {
			engine := newEngine(mockdice.NewManualMockRoller(), nil)
			s := engine.NewState("s1")

			_, err := engine.ApplyPlayerAction(s, id)
			require.NoError(t, err)

			assert.Equal(t, battle.SideEnemy, s.Turn)
			assert.Equal(t, 100, s.Enemy.HP)
			assert.Len(t, s.Player.Effects, 1)
		})
	}
}

func TestEngine_Heal(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	engine := newEngine(roller, fixedPolicy(battle.EnemyHeavyStrike))
	s := engine.NewState("s1")

	_, err := engine.ApplyPlayerAction(s, battle.ActionShieldBlock)
	require.NoError(t, err)
	_, err = engine.ApplyEnemyTurn(s)
	require.NoError(t, err)
	require.Equal(t, 95, s.Player.HP)

	// Roll 11 on a d11 is the top of the 20-30 range, capped by max HP
	roller.SetRolls([]int{11})
	outcome, err := engine.ApplyPlayerAction(s, battle.ActionHeal)
	require.NoError(t, err)

	assert.Equal(t, 5, outcome.Healed)
	assert.Equal(t, 100, s.Player.HP)
	assert.Equal(t, "You heal for 5 HP.", s.Message)
	assert.Equal(t, battle.SideEnemy, s.Turn)
}

func TestEngine_ShieldBlock(t *testing.T) {
	engine := newEngine(mockdice.NewManualMockRoller(), fixedPolicy(battle.EnemyHeavyStrike))
	s := engine.NewState("s1")

	_, err := engine.ApplyPlayerAction(s, battle.ActionShieldBlock)
	require.NoError(t, err)
	require.True(t, s.Player.Effects.Has(effects.KindShield))

	outcome, err := engine.ApplyEnemyTurn(s)
	require.NoError(t, err)

	// Heavy strike: 15 + 5 - 10 = 10, halved
	assert.Equal(t, 5, outcome.Absorbed)
	assert.Equal(t, 5, outcome.Damage)
	assert.Equal(t, 95, s.Player.HP)
	assert.False(t, s.Player.Effects.Has(effects.KindShield), "shield is consumed by the hit")
	assert.Contains(t, s.Message, "The shield absorbed 5.")
}

func TestEngine_ShieldConsumedByFullyBlockedHit(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	engine := newEngine(roller, fixedPolicy(battle.EnemyAttack))
	s := engine.NewState("s1")

	_, err := engine.ApplyPlayerAction(s, battle.ActionDefBoost)
	require.NoError(t, err)
	_, err = engine.ApplyEnemyTurn(s)
	require.NoError(t, err)

	_, err = engine.ApplyPlayerAction(s, battle.ActionShieldBlock)
	require.NoError(t, err)
	require.True(t, s.Player.Effects.Has(effects.KindShield))

	// Attack 15 against defense 10 + 10 deals nothing but still lands
	outcome, err := engine.ApplyEnemyTurn(s)
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.Damage)
	assert.Equal(t, 0, outcome.Absorbed)
	assert.True(t, outcome.Shielded)
	assert.Equal(t, 100, s.Player.HP)
	assert.False(t, s.Player.Effects.Has(effects.KindShield))
	assert.Equal(t, "Enemy attacks for 0 damage! The shield breaks.", s.Message)
}

func TestEngine_MissedTornadoDoesNotTouchShield(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	engine := newEngine(roller, fixedPolicy(battle.EnemyBrace))
	s := engine.NewState("s1")

	// Shield the enemy directly; only the player has a shield action
	s.Enemy.Effects = s.Enemy.Effects.Add(effects.NewBuilder(effects.KindShield).WithMagnitude(50).UntilConsumed().Build())

	roller.SetRolls([]int{10})
	outcome, err := engine.ApplyPlayerAction(s, battle.ActionTornado)
	require.NoError(t, err)

	assert.True(t, outcome.Missed)
	assert.False(t, outcome.Shielded)
	assert.True(t, s.Enemy.Effects.Has(effects.KindShield))
}

func TestEngine_RecastBuffRefreshesInsteadOfStacking(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	engine := newEngine(roller, fixedPolicy(battle.EnemyAttack))
	s := engine.NewState("s1")

	for i := 0; i < 2; i++ {
		_, err := engine.ApplyPlayerAction(s, battle.ActionDefBoost)
		require.NoError(t, err)
		_, err = engine.ApplyEnemyTurn(s)
		require.NoError(t, err)
	}

	require.Len(t, s.Player.Effects, 1)
	boost := s.Player.Effects[0]
	assert.Equal(t, effects.StackingTakeHighest, boost.Stacking)
	assert.Equal(t, 3, boost.Remaining)
	assert.Equal(t, 20, s.Player.EffectiveDefense())
}

func TestEngine_LongBraceStacks(t *testing.T) {
	tuning := battle.DefaultTuning()
	tuning.Brace.Turns = 2

	roller := mockdice.NewManualMockRoller()
	engine := battle.NewEngine(&battle.EngineConfig{
		Roller: roller,
		Policy: fixedPolicy(battle.EnemyBrace),
		Tuning: &tuning,
	})
	s := engine.NewState("s1")

	for i := 0; i < 2; i++ {
		_, err := engine.ApplyPlayerAction(s, battle.ActionCritBoost)
		require.NoError(t, err)
		_, err = engine.ApplyEnemyTurn(s)
		require.NoError(t, err)
	}

	// Both braces are live: 8 + 5 + 5
	assert.Equal(t, 18, s.Enemy.EffectiveDefense())

	// Crit chance 10 + 30, roll 99 misses
	roller.SetRolls([]int{99})
	outcome, err := engine.ApplyPlayerAction(s, battle.ActionPunch)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Damage)
}

func TestEngine_AttackBoostExpiresAfterThreeActions(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	engine := newEngine(roller, fixedPolicy(battle.EnemyAttack))
	s := engine.NewState("s1")

	_, err := engine.ApplyPlayerAction(s, battle.ActionDmgBoost)
	require.NoError(t, err)
	_, err = engine.ApplyEnemyTurn(s)
	require.NoError(t, err)

	var damage []int
	for i := 0; i < 4; i++ {
		roller.SetRolls([]int{99})
		outcome, err := engine.ApplyPlayerAction(s, battle.ActionPunch)
		require.NoError(t, err)
		damage = append(damage, outcome.Damage)

		_, err = engine.ApplyEnemyTurn(s)
		require.NoError(t, err)
	}

	assert.Equal(t, []int{22, 22, 22, 12}, damage)
	assert.False(t, s.Player.Effects.Has(effects.KindAttackBoost))
}

func TestEngine_DefenseBoostCoversThreeEnemyTurns(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	engine := newEngine(roller, fixedPolicy(battle.EnemyHeavyStrike))
	s := engine.NewState("s1")

	_, err := engine.ApplyPlayerAction(s, battle.ActionDefBoost)
	require.NoError(t, err)

	var taken []int
	for i := 0; i < 4; i++ {
		outcome, err := engine.ApplyEnemyTurn(s)
		require.NoError(t, err)
		taken = append(taken, outcome.Damage)

		_, err = engine.ApplyPlayerAction(s, battle.ActionShieldBlock)
		require.NoError(t, err)
		// Drop the fresh shield so only the boost is measured
		s.Player.Effects = removeKind(s.Player.Effects, effects.KindShield)
	}

	assert.Equal(t, []int{0, 0, 0, 10}, taken)
}

func TestEngine_EnemyBraceLastsOneTurn(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	policy := &scriptedPolicy{moves: []battle.ActionID{battle.EnemyBrace, battle.EnemyAttack}}
	engine := newEngine(roller, policy)
	s := engine.NewState("s1")

	roller.SetRolls([]int{99})
	_, err := engine.ApplyPlayerAction(s, battle.ActionPunch)
	require.NoError(t, err)
	_, err = engine.ApplyEnemyTurn(s)
	require.NoError(t, err)
	assert.Equal(t, "Enemy braces for defense.", s.Message)

	roller.SetRolls([]int{99})
	outcome, err := engine.ApplyPlayerAction(s, battle.ActionPunch)
	require.NoError(t, err)
	assert.Equal(t, 7, outcome.Damage)

	_, err = engine.ApplyEnemyTurn(s)
	require.NoError(t, err)

	roller.SetRolls([]int{99})
	outcome, err = engine.ApplyPlayerAction(s, battle.ActionPunch)
	require.NoError(t, err)
	assert.Equal(t, 12, outcome.Damage)
}

func TestEngine_Tornado(t *testing.T) {
	t.Run("miss deals nothing and rolls once", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		engine := newEngine(roller, nil)
		s := engine.NewState("s1")

		roller.SetRolls([]int{20})
		outcome, err := engine.ApplyPlayerAction(s, battle.ActionTornado)
		require.NoError(t, err)

		assert.True(t, outcome.Missed)
		assert.Equal(t, 100, s.Enemy.HP)
		assert.Equal(t, "Your tornado missed!", s.Message)
		assert.Equal(t, battle.SideEnemy, s.Turn)
	})

	t.Run("hit ignores defense", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		engine := newEngine(roller, nil)
		s := engine.NewState("s1")

		roller.SetRolls([]int{21, 1})
		outcome, err := engine.ApplyPlayerAction(s, battle.ActionTornado)
		require.NoError(t, err)

		assert.Equal(t, 30, outcome.Damage)
		assert.Equal(t, 70, s.Enemy.HP)
	})
}

func TestEngine_LethalPlayerAction(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	engine := newEngine(roller, fixedPolicy(battle.EnemyBrace))
	s := engine.NewState("s1")

	for i := 0; i < 3; i++ {
		roller.SetRolls([]int{100, 16})
		_, err := engine.ApplyPlayerAction(s, battle.ActionTornado)
		require.NoError(t, err)
		if s.Finished() {
			break
		}
		_, err = engine.ApplyEnemyTurn(s)
		require.NoError(t, err)
	}

	require.True(t, s.Finished())
	assert.Equal(t, 0, s.Enemy.HP)
	assert.Equal(t, battle.SidePlayer, s.Winner)
	assert.Contains(t, s.Message, "You win!")

	before := s.Clone()
	_, err := engine.ApplyPlayerAction(s, battle.ActionPunch)
	assert.True(t, dnderr.IsInvalidTurn(err))
	_, err = engine.ApplyEnemyTurn(s)
	assert.True(t, dnderr.IsInvalidTurn(err))
	assert.Equal(t, before, s)

	_, err = engine.ApplyPlayerAction(s, battle.ActionReset)
	require.NoError(t, err)
	assert.False(t, s.Finished())
	assert.Equal(t, battle.SidePlayer, s.Turn)
	assert.Empty(t, s.Winner)
}

func TestEngine_LethalEnemyTurn(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	engine := newEngine(roller, fixedPolicy(battle.EnemyAttack))
	s := engine.NewState("s1")

	_, err := engine.ApplyPlayerAction(s, battle.ActionDmgBoost)
	require.NoError(t, err)
	s.Player.HP = 3

	outcome, err := engine.ApplyEnemyTurn(s)
	require.NoError(t, err)

	assert.True(t, outcome.Finished)
	assert.Equal(t, 3, outcome.Damage, "damage is capped at remaining HP")
	assert.Equal(t, 0, s.Player.HP)
	assert.Equal(t, battle.SideEnemy, s.Winner)
	assert.Contains(t, s.Message, "You have been defeated!")

	_, err = engine.ApplyPlayerAction(s, battle.ActionHeal)
	assert.True(t, dnderr.IsInvalidTurn(err))
}

func TestEngine_Rejections(t *testing.T) {
	t.Run("player action on enemy turn", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		engine := newEngine(roller, nil)
		s := engine.NewState("s1")
		roller.SetRolls([]int{50})
		_, err := engine.ApplyPlayerAction(s, battle.ActionPunch)
		require.NoError(t, err)

		before := s.Clone()
		_, err = engine.ApplyPlayerAction(s, battle.ActionHeal)
		require.Error(t, err)
		assert.True(t, dnderr.IsInvalidTurn(err))
		assert.Equal(t, before, s)
	})

	t.Run("enemy turn on player turn", func(t *testing.T) {
		engine := newEngine(mockdice.NewManualMockRoller(), nil)
		s := engine.NewState("s1")
		before := s.Clone()

		_, err := engine.ApplyEnemyTurn(s)
		assert.True(t, dnderr.IsInvalidTurn(err))
		assert.Equal(t, before, s)
	})

	t.Run("unknown action", func(t *testing.T) {
		engine := newEngine(mockdice.NewManualMockRoller(), nil)
		s := engine.NewState("s1")
		before := s.Clone()

		_, err := engine.ApplyPlayerAction(s, "not_a_spell")
		assert.True(t, dnderr.IsUnknownAction(err))
		assert.Equal(t, before, s)
	})

	t.Run("enemy actions are not player actions", func(t *testing.T) {
		engine := newEngine(mockdice.NewManualMockRoller(), nil)
		s := engine.NewState("s1")

		_, err := engine.ApplyPlayerAction(s, battle.EnemyHeavyStrike)
		assert.True(t, dnderr.IsUnknownAction(err))
	})

	t.Run("roller failure leaves state untouched", func(t *testing.T) {
		engine := newEngine(mockdice.NewManualMockRoller(), nil)
		s := engine.NewState("s1")
		before := s.Clone()

		_, err := engine.ApplyPlayerAction(s, battle.ActionPunch)
		require.Error(t, err)
		assert.Equal(t, before, s)
	})

	t.Run("policy outside the enemy catalog", func(t *testing.T) {
		engine := newEngine(mockdice.NewManualMockRoller(), fixedPolicy(battle.ActionTornado))
		s := engine.NewState("s1")
		_, err := engine.ApplyPlayerAction(s, battle.ActionDefBoost)
		require.NoError(t, err)
		before := s.Clone()

		_, err = engine.ApplyEnemyTurn(s)
		assert.Equal(t, dnderr.CodeInternal, dnderr.GetCode(err))
		assert.Equal(t, before, s)
	})
}

func TestEngine_ResetFromAnyState(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	engine := newEngine(roller, fixedPolicy(battle.EnemyAttack))
	s := engine.NewState("s1")

	// Reset at the enemy's turn with effects active
	_, err := engine.ApplyPlayerAction(s, battle.ActionDmgBoost)
	require.NoError(t, err)
	require.Equal(t, battle.SideEnemy, s.Turn)

	_, err = engine.ApplyPlayerAction(s, battle.ActionReset)
	require.NoError(t, err)

	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, 100, s.Player.HP)
	assert.Equal(t, 100, s.Enemy.HP)
	assert.Equal(t, battle.SidePlayer, s.Turn)
	assert.False(t, s.Finished())
	assert.Empty(t, s.Player.Effects)
	assert.Equal(t, 0, s.Round)
	assert.Equal(t, "Game reset! Choose your action.", s.Message)
}

func TestEngine_LogIsCapped(t *testing.T) {
	tuning := battle.DefaultTuning()
	tuning.LogSize = 3
	engine := battle.NewEngine(&battle.EngineConfig{
		Roller: mockdice.NewManualMockRoller(),
		Policy: fixedPolicy(battle.EnemyBrace),
		Tuning: &tuning,
	})
	s := engine.NewState("s1")

	for i := 0; i < 3; i++ {
		_, err := engine.ApplyPlayerAction(s, battle.ActionDefBoost)
		require.NoError(t, err)
		_, err = engine.ApplyEnemyTurn(s)
		require.NoError(t, err)
	}

	require.Len(t, s.Log, 3)
	assert.Equal(t, s.Message, s.Log[2])
}

// TestEngine_RandomPlayInvariants drives many seeded battles and checks
// HP bounds and strict turn alternation on every step.
func TestEngine_RandomPlayInvariants(t *testing.T) {
	roller := dice.NewSeededRoller(7)
	picker := dice.NewSeededRoller(11)
	engine := newEngine(roller, battle.RandomPolicy{})
	s := engine.NewState("s1")
	catalog := battle.Catalog()
	finishedBattles := 0

	for step := 0; step < 2000; step++ {
		if s.Finished() {
			finishedBattles++
			engine.Reset(s)
			continue
		}

		switch s.Turn {
		case battle.SidePlayer:
			pick, err := picker.Roll(1, len(catalog)-1, -1) // Skip reset, the last entry
			require.NoError(t, err)
			_, err = engine.ApplyPlayerAction(s, catalog[pick.Total].ID)
			require.NoError(t, err)
			if !s.Finished() {
				assert.Equal(t, battle.SideEnemy, s.Turn)
			}
		case battle.SideEnemy:
			_, err := engine.ApplyEnemyTurn(s)
			require.NoError(t, err)
			if !s.Finished() {
				assert.Equal(t, battle.SidePlayer, s.Turn)
			}
		}

		for _, c := range []battle.Combatant{s.Player, s.Enemy} {
			assert.GreaterOrEqual(t, c.HP, 0)
			assert.LessOrEqual(t, c.HP, c.MaxHP)
		}
	}

	assert.Positive(t, finishedBattles)
}

type scriptedPolicy struct {
	moves []battle.ActionID
	next  int
}

func (p *scriptedPolicy) Choose(*battle.State, dice.Roller) (battle.ActionID, error) {
	id := p.moves[p.next%len(p.moves)]
	p.next++
	return id, nil
}

func removeKind(l effects.List, kind effects.Kind) effects.List {
	_, rest, ok := l.Consume(kind)
	if !ok {
		return l
	}
	return rest
}
