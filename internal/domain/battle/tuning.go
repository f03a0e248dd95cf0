package battle

import "github.com/KirkDiggler/spell-duel/internal/effects"

// Stats are the base numbers of one side before effects
type Stats struct {
	Attack     int
	Defense    int
	CritChance int // Percent
}

// Boost is the size, duration and stacking of a buff
type Boost struct {
	Magnitude int
	Turns     int
	Stacking  effects.StackingRule
}

// Tuning holds every gameplay number the engine uses
type Tuning struct {
	MaxHP int

	Player Stats
	Enemy  Stats

	CritMultiplier int

	SpearBonus     int
	SpearCritBonus int // Percent points added to crit chance

	TornadoMissChance int // Percent
	TornadoMin        int
	TornadoMax        int

	HealMin int
	HealMax int

	AttackBoost  Boost
	CritBoost    Boost // Magnitude in percent points
	DefenseBoost Boost

	ShieldReduction int // Percent of the next hit removed

	HeavyStrikeBonus int
	Brace            Boost

	LogSize int
}

// DefaultTuning returns the standard balance
func DefaultTuning() Tuning {
	return Tuning{
		MaxHP: 100,

		Player: Stats{Attack: 20, Defense: 10, CritChance: 10},
		Enemy:  Stats{Attack: 15, Defense: 8, CritChance: 0},

		CritMultiplier: 2,

		SpearBonus:     5,
		SpearCritBonus: 20,

		TornadoMissChance: 20,
		TornadoMin:        30,
		TornadoMax:        45,

		HealMin: 20,
		HealMax: 30,

		// Recasting a buff keeps the stronger one and refreshes its duration
		AttackBoost:  Boost{Magnitude: 10, Turns: 3, Stacking: effects.StackingTakeHighest},
		CritBoost:    Boost{Magnitude: 30, Turns: 3, Stacking: effects.StackingTakeHighest},
		DefenseBoost: Boost{Magnitude: 10, Turns: 3, Stacking: effects.StackingTakeHighest},

		ShieldReduction: 50,

		HeavyStrikeBonus: 5,
		Brace:            Boost{Magnitude: 5, Turns: 1, Stacking: effects.StackingStack},

		LogSize: 20,
	}
}
