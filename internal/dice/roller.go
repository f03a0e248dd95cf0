package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// RollResult holds the outcome of a single Roll call
type RollResult struct {
	Total    int   // Sum of rolls plus bonus
	Rolls    []int // Individual die faces
	Bonus    int
	Count    int
	Sides    int
	RawTotal int // Sum of rolls without bonus
}

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}
