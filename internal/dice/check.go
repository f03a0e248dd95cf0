package dice

import "fmt"

// Check rolls a d100 and succeeds when the face is at or below chance.
// A chance of 0 or less never rolls; 100 or more always succeeds without rolling.
func Check(r Roller, chance int) (bool, error) {
	if chance <= 0 {
		return false, nil
	}
	if chance >= 100 {
		return true, nil
	}
	result, err := r.Roll(1, 100, 0)
	if err != nil {
		return false, fmt.Errorf("percent check: %w", err)
	}
	return result.Total <= chance, nil
}

// Between returns a uniform value in [low, high] using a single die.
func Between(r Roller, low, high int) (int, error) {
	if high < low {
		return 0, fmt.Errorf("invalid range %d..%d", low, high)
	}
	if high == low {
		return low, nil
	}
	result, err := r.Roll(1, high-low+1, low-1)
	if err != nil {
		return 0, fmt.Errorf("range %d..%d: %w", low, high, err)
	}
	return result.Total, nil
}
