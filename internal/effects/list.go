package effects

// List is the ordered set of effects on one combatant.
// Methods never modify the receiver; they return the new list.
type List []StatusEffect

// Add applies the incoming effect's stacking rule against effects of the same kind
func (l List) Add(effect StatusEffect) List {
	out := make(List, 0, len(l)+1)

	switch effect.Stacking {
	case StackingStack:
		out = append(out, l...)
	case StackingTakeHighest:
		for _, existing := range l {
			if existing.Kind != effect.Kind {
				out = append(out, existing)
				continue
			}
			if existing.Magnitude > effect.Magnitude {
				effect = existing
			} else if existing.Magnitude == effect.Magnitude && existing.Remaining > effect.Remaining {
				effect.Remaining = existing.Remaining
			}
		}
	default:
		for _, existing := range l {
			if existing.Kind != effect.Kind {
				out = append(out, existing)
			}
		}
	}

	return append(out, effect)
}

// Total sums the magnitude of every effect of a kind
func (l List) Total(kind Kind) int {
	total := 0
	for _, e := range l {
		if e.Kind == kind && !e.Expired() {
			total += e.Magnitude
		}
	}
	return total
}

// Has reports whether any live effect of the kind is present
func (l List) Has(kind Kind) bool {
	for _, e := range l {
		if e.Kind == kind && !e.Expired() {
			return true
		}
	}
	return false
}

// Consume removes the oldest until-consumed effect of a kind
func (l List) Consume(kind Kind) (StatusEffect, List, bool) {
	for i, e := range l {
		if e.Kind != kind || e.Duration != DurationUntilConsumed {
			continue
		}
		out := make(List, 0, len(l)-1)
		out = append(out, l[:i]...)
		out = append(out, l[i+1:]...)
		return e, out, true
	}
	return StatusEffect{}, l, false
}

// Tick counts one action of the owner against turn-based effects and drops expired ones
func (l List) Tick() List {
	out := make(List, 0, len(l))
	for _, e := range l {
		if e.Duration == DurationTurns {
			e.Remaining--
			if e.Expired() {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// Clone returns an independent copy
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}
