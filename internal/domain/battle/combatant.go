package battle

import "github.com/KirkDiggler/spell-duel/internal/effects"

// Combatant represents one side of the duel
type Combatant struct {
	HP         int          `json:"hp"`
	MaxHP      int          `json:"max_hp"`
	Attack     int          `json:"attack"`
	Defense    int          `json:"defense"`
	CritChance int          `json:"crit_chance"`
	Effects    effects.List `json:"effects"`
}

func newCombatant(maxHP int, stats Stats) Combatant {
	return Combatant{
		HP:         maxHP,
		MaxHP:      maxHP,
		Attack:     stats.Attack,
		Defense:    stats.Defense,
		CritChance: stats.CritChance,
		Effects:    effects.List{},
	}
}

// IsAlive returns true if the combatant has more than 0 HP
func (c *Combatant) IsAlive() bool {
	return c.HP > 0
}

// EffectiveAttack includes active attack boosts
func (c *Combatant) EffectiveAttack() int {
	return c.Attack + c.Effects.Total(effects.KindAttackBoost)
}

// EffectiveDefense includes active defense boosts
func (c *Combatant) EffectiveDefense() int {
	return c.Defense + c.Effects.Total(effects.KindDefenseBoost)
}

// EffectiveCritChance includes active crit boosts
func (c *Combatant) EffectiveCritChance() int {
	return c.CritChance + c.Effects.Total(effects.KindCritBoost)
}

// ApplyDamage lowers HP, never below zero, and returns the HP actually lost
func (c *Combatant) ApplyDamage(damage int) int {
	if damage <= 0 {
		return 0
	}
	if damage > c.HP {
		damage = c.HP
	}
	c.HP -= damage
	return damage
}

// Heal restores HP up to MaxHP and returns the HP actually gained
func (c *Combatant) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	if c.HP+amount > c.MaxHP {
		amount = c.MaxHP - c.HP
	}
	c.HP += amount
	return amount
}

func (c Combatant) clone() Combatant {
	c.Effects = c.Effects.Clone()
	return c
}
