package effects

// Kind names what an effect modifies
type Kind string

const (
	KindAttackBoost  Kind = "attack_boost"  // Flat bonus to outgoing damage
	KindCritBoost    Kind = "crit_boost"    // Percent points added to crit chance
	KindDefenseBoost Kind = "defense_boost" // Flat reduction of incoming damage
	KindShield       Kind = "shield"        // Percent reduction of the next hit taken
)

// DurationType represents how an effect expires
type DurationType string

const (
	DurationTurns         DurationType = "turns"          // Expires after N more actions of its owner
	DurationUntilConsumed DurationType = "until_consumed" // Expires when used up
)

// StackingRule defines how effects of the same kind combine
type StackingRule string

const (
	StackingReplace     StackingRule = "replace"      // New effect replaces old
	StackingStack       StackingRule = "stack"        // Effects add together
	StackingTakeHighest StackingRule = "take_highest" // Only highest magnitude is kept
)

// StatusEffect is one active modifier attached to a combatant
type StatusEffect struct {
	Kind      Kind         `json:"kind"`
	Source    string       `json:"source"` // Action that created it
	Magnitude int          `json:"magnitude"`
	Duration  DurationType `json:"duration"`
	Remaining int          `json:"remaining,omitempty"` // Only meaningful for DurationTurns
	Stacking  StackingRule `json:"stacking"`
}

// Expired reports whether a turn-based effect has run out
func (e StatusEffect) Expired() bool {
	return e.Duration == DurationTurns && e.Remaining <= 0
}
