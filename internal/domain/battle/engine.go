package battle

import (
	"fmt"

	"github.com/KirkDiggler/spell-duel/internal/dice"
	"github.com/KirkDiggler/spell-duel/internal/effects"
	dnderr "github.com/KirkDiggler/spell-duel/internal/errors"
)

const resetMessage = "Game reset! Choose your action."

// Outcome describes one resolved action
type Outcome struct {
	Actor    Side
	Action   ActionID
	Damage   int // HP the opponent actually lost
	Absorbed int  // Damage removed by a shield
	Shielded bool // A shield took this hit, even one fully blocked by defense
	Healed   int
	Critical bool
	Missed   bool
	Reset    bool
	Finished bool
	Winner   Side
}

// Engine applies actions to battle state. It holds no session state itself
// and never blocks; callers serialize access to a given State.
type Engine struct {
	roller dice.Roller
	policy EnemyPolicy
	tuning Tuning
}

// EngineConfig holds configuration for the engine
type EngineConfig struct {
	Roller dice.Roller
	Policy EnemyPolicy // Defaults to RandomPolicy
	Tuning *Tuning     // Defaults to DefaultTuning
}

// NewEngine creates a new battle engine
func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil || cfg.Roller == nil {
		panic("roller is required")
	}

	e := &Engine{
		roller: cfg.Roller,
		policy: cfg.Policy,
		tuning: DefaultTuning(),
	}
	if e.policy == nil {
		e.policy = RandomPolicy{}
	}
	if cfg.Tuning != nil {
		e.tuning = *cfg.Tuning
	}

	return e
}

// NewState creates a fresh battle using the engine's tuning
func (e *Engine) NewState(id string) *State {
	return NewState(id, e.tuning)
}

// ApplyPlayerAction resolves a catalog action for the player.
// On any error s is left exactly as it was.
func (e *Engine) ApplyPlayerAction(s *State, id ActionID) (*Outcome, error) {
	if _, ok := LookupAction(id); !ok {
		return nil, dnderr.UnknownActionf("unknown action %q", id).WithMeta("action", string(id))
	}

	if id == ActionReset {
		e.Reset(s)
		return &Outcome{Actor: SidePlayer, Action: ActionReset, Reset: true}, nil
	}

	if s.Finished() {
		return nil, dnderr.InvalidTurn("the battle is over, reset to play again")
	}
	if s.Turn != SidePlayer {
		return nil, dnderr.InvalidTurn("wait for your turn")
	}

	next := s.Clone()
	next.Round++
	outcome, err := e.resolve(next, SidePlayer, id)
	if err != nil {
		return nil, err
	}

	*s = *next
	return outcome, nil
}

// ApplyEnemyTurn lets the enemy policy act against the player.
// On any error s is left exactly as it was.
func (e *Engine) ApplyEnemyTurn(s *State) (*Outcome, error) {
	if s.Finished() {
		return nil, dnderr.InvalidTurn("the battle is over, reset to play again")
	}
	if s.Turn != SideEnemy {
		return nil, dnderr.InvalidTurn("it is not the enemy's turn")
	}

	next := s.Clone()
	id, err := e.policy.Choose(next, e.roller)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to choose enemy action")
	}
	if !isEnemyAction(id) {
		return nil, dnderr.Internalf("enemy policy chose %q", id)
	}

	outcome, err := e.resolve(next, SideEnemy, id)
	if err != nil {
		return nil, err
	}

	*s = *next
	return outcome, nil
}

// Reset reinitializes s in place, keeping its id and creation time
func (e *Engine) Reset(s *State) {
	fresh := NewState(s.ID, e.tuning)
	fresh.CreatedAt = s.CreatedAt
	fresh.UpdatedAt = s.UpdatedAt
	fresh.Message = resetMessage
	fresh.Log = []string{resetMessage}
	*s = *fresh
}

func (e *Engine) resolve(s *State, actor Side, id ActionID) (*Outcome, error) {
	self, opponent := s.combatants(actor)
	outcome := &Outcome{Actor: actor, Action: id}
	t := e.tuning

	var (
		message string
		added   *effects.StatusEffect
		err     error
	)

	switch id {
	case ActionHeal:
		var amount int
		amount, err = dice.Between(e.roller, t.HealMin, t.HealMax)
		outcome.Healed = self.Heal(amount)
		message = fmt.Sprintf("You heal for %d HP.", outcome.Healed)

	case ActionDmgBoost:
		added = boost(effects.KindAttackBoost, id, t.AttackBoost)
		message = fmt.Sprintf("Your attack increased by %d for %d turns!", t.AttackBoost.Magnitude, t.AttackBoost.Turns)

	case ActionCritBoost:
		added = boost(effects.KindCritBoost, id, t.CritBoost)
		message = fmt.Sprintf("Your critical hit chance increased by %d%% for %d turns!", t.CritBoost.Magnitude, t.CritBoost.Turns)

	case ActionDefBoost:
		added = boost(effects.KindDefenseBoost, id, t.DefenseBoost)
		message = fmt.Sprintf("Your defense increased by %d for %d turns!", t.DefenseBoost.Magnitude, t.DefenseBoost.Turns)

	case ActionPunch:
		err = e.strike(self, opponent, 0, 0, outcome)
		message = hitMessage(outcome, "You punch the enemy for %d damage.", "Critical hit! Your punch deals %d damage.")

	case ActionSpearThrow:
		err = e.strike(self, opponent, t.SpearBonus, t.SpearCritBonus, outcome)
		message = hitMessage(outcome, "You throw a spear for %d damage.", "Critical hit! Your spear deals %d damage.")

	case ActionTornado:
		err = e.tornado(opponent, outcome)
		if outcome.Missed {
			message = "Your tornado missed!"
		} else {
			message = hitMessage(outcome, "You unleash a tornado for %d damage!", "")
		}

	case ActionShieldBlock:
		shield := effects.NewBuilder(effects.KindShield).
			WithSource(string(id)).
			WithMagnitude(t.ShieldReduction).
			UntilConsumed().
			Build()
		added = &shield
		message = fmt.Sprintf("You raise your shield! The next hit against you is reduced by %d%%.", t.ShieldReduction)

	case EnemyAttack:
		err = e.strike(self, opponent, 0, 0, outcome)
		message = hitMessage(outcome, "Enemy attacks for %d damage!", "Critical hit! Enemy attacks for %d damage!")

	case EnemyHeavyStrike:
		err = e.strike(self, opponent, t.HeavyStrikeBonus, 0, outcome)
		message = hitMessage(outcome, "Enemy uses Heavy Strike for %d damage!", "Critical hit! Enemy Heavy Strike deals %d damage!")

	case EnemyBrace:
		added = boost(effects.KindDefenseBoost, id, t.Brace)
		message = "Enemy braces for defense."

	default:
		return nil, dnderr.Internalf("no resolution for action %q", id)
	}
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to resolve %s", id)
	}

	// Effects already active count this action; the one just created does not.
	self.Effects = self.Effects.Tick()
	if added != nil {
		self.Effects = self.Effects.Add(*added)
	}

	if s.Finished() {
		outcome.Finished = true
		if s.Enemy.IsAlive() {
			s.Winner = SideEnemy
			message += " You have been defeated!"
		} else {
			s.Winner = SidePlayer
			message += " The enemy is defeated. You win!"
		}
		outcome.Winner = s.Winner
	}

	if actor == SidePlayer {
		s.Turn = SideEnemy
	} else {
		s.Turn = SidePlayer
	}
	s.narrate(message, t.LogSize)

	return outcome, nil
}

// strike resolves a weapon-style attack: attack plus bonus minus defense, then crit, then shield
func (e *Engine) strike(attacker, defender *Combatant, bonus, critBonus int, outcome *Outcome) error {
	damage := attacker.EffectiveAttack() + bonus - defender.EffectiveDefense()
	if damage < 0 {
		damage = 0
	}

	crit, err := dice.Check(e.roller, attacker.EffectiveCritChance()+critBonus)
	if err != nil {
		return err
	}
	if crit {
		damage *= e.tuning.CritMultiplier
		outcome.Critical = true
	}

	e.land(defender, damage, outcome)
	return nil
}

// tornado ignores defense and crits but may miss
func (e *Engine) tornado(defender *Combatant, outcome *Outcome) error {
	missed, err := dice.Check(e.roller, e.tuning.TornadoMissChance)
	if err != nil {
		return err
	}
	if missed {
		outcome.Missed = true
		return nil
	}

	damage, err := dice.Between(e.roller, e.tuning.TornadoMin, e.tuning.TornadoMax)
	if err != nil {
		return err
	}

	e.land(defender, damage, outcome)
	return nil
}

// land applies a hit. Any hit that lands uses up a shield; a miss never reaches here.
func (e *Engine) land(defender *Combatant, damage int, outcome *Outcome) {
	if shield, rest, ok := defender.Effects.Consume(effects.KindShield); ok {
		absorbed := damage * shield.Magnitude / 100
		damage -= absorbed
		defender.Effects = rest
		outcome.Absorbed = absorbed
		outcome.Shielded = true
	}
	outcome.Damage = defender.ApplyDamage(damage)
}

func boost(kind effects.Kind, source ActionID, b Boost) *effects.StatusEffect {
	effect := effects.NewBuilder(kind).
		WithSource(string(source)).
		WithMagnitude(b.Magnitude).
		ForTurns(b.Turns).
		WithStackingRule(b.Stacking).
		Build()
	return &effect
}

func hitMessage(outcome *Outcome, normal, critical string) string {
	format := normal
	if outcome.Critical && critical != "" {
		format = critical
	}
	message := fmt.Sprintf(format, outcome.Damage)
	switch {
	case outcome.Absorbed > 0:
		message += fmt.Sprintf(" The shield absorbed %d.", outcome.Absorbed)
	case outcome.Shielded:
		message += " The shield breaks."
	}
	return message
}
