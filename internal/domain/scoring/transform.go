// Package scoring converts windowed review aggregates into slot deltas.
package scoring

import (
	"fmt"
	"math"
)

// Transform constants.
const (
	// growthFactor scales positive net points into slot growth.
	growthFactor = 10
	// diminishingFactor scales the quadratic penalty for negative net points.
	diminishingFactor = 2
)

// SlotDelta converts an agent's window aggregate into an integer capacity
// delta.
//
// Positive net points grow slots with square-root volume dampening:
//
//	growthFactor * netPoints / sqrt(totalSubmissions)
//
// Non-positive net points shrink slots with a volume-normalized quadratic
// penalty:
//
//	-diminishingFactor * netPoints^2 / totalSubmissions
//
// The raw value is rounded to the nearest integer, ties away from zero
// (math.Round semantics).
//
// totalSubmissions must be positive; zero volume indicates an aggregation
// bug upstream and returns ErrZeroVolume.
func SlotDelta(totalSubmissions int, netPoints float64) (int, error) {
	if totalSubmissions <= 0 {
		return 0, fmt.Errorf("%w: total submissions %d", ErrZeroVolume, totalSubmissions)
	}

	var raw float64
	if netPoints > 0 {
		raw = growthFactor * netPoints / math.Sqrt(float64(totalSubmissions))
	} else {
		raw = -diminishingFactor * netPoints * netPoints / float64(totalSubmissions)
	}

	return int(math.Round(raw)), nil
}
