package effects

// Builder helps create status effects
type Builder struct {
	effect StatusEffect
}

// NewBuilder starts a one-turn, replace-stacking effect of the given kind
func NewBuilder(kind Kind) *Builder {
	return &Builder{
		effect: StatusEffect{
			Kind:      kind,
			Duration:  DurationTurns,
			Remaining: 1,
			Stacking:  StackingReplace,
		},
	}
}

// WithSource records the action that created the effect
func (b *Builder) WithSource(source string) *Builder {
	b.effect.Source = source
	return b
}

// WithMagnitude sets the effect size
func (b *Builder) WithMagnitude(magnitude int) *Builder {
	b.effect.Magnitude = magnitude
	return b
}

// ForTurns makes the effect last for the owner's next n actions
func (b *Builder) ForTurns(n int) *Builder {
	b.effect.Duration = DurationTurns
	b.effect.Remaining = n
	return b
}

// UntilConsumed makes the effect last until Consume removes it
func (b *Builder) UntilConsumed() *Builder {
	b.effect.Duration = DurationUntilConsumed
	b.effect.Remaining = 0
	return b
}

// WithStackingRule sets how this effect stacks; an empty rule keeps the current one
func (b *Builder) WithStackingRule(rule StackingRule) *Builder {
	if rule != "" {
		b.effect.Stacking = rule
	}
	return b
}

// Build returns the effect
func (b *Builder) Build() StatusEffect {
	return b.effect
}
