package utils

import "errors"

// ErrDivisionUndefined is returned when a serving reports a zero or
// negative reference unit count.
var ErrDivisionUndefined = errors.New("reference unit count must be positive")

// ComputeCalories scales a serving's per-reference calorie value to the
// logged amount:
//
//	calories = caloriesPerReference * amount / referenceUnits
//
// A gram-based serving whose nutrients are defined per 100 g is simply
// referenceUnits == 100. The result is never rounded here; rounding is a
// display concern.
func ComputeCalories(caloriesPerReference, referenceUnits, amount float64) (float64, error) {
	if referenceUnits <= 0 {
		return 0, ErrDivisionUndefined
	}
	return caloriesPerReference * amount / referenceUnits, nil
}
