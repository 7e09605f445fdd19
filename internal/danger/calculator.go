// Package danger turns raw world snapshots into comparable danger levels.
// Every entry point is a pure function over the passed-in snapshot: no I/O,
// no retained state, safe to call concurrently.
//
// All results land on the shared danger scale (0 = safe, upper bound set by
// config). Missing data is neutral, not an error: an absent faction
// relationship contributes nothing, an empty wildlife roster contributes
// zero. Malformed snapshots fail with *world.ValidationError instead of
// defaulting to zero danger.
package danger

import (
	"github.com/talgya/world-engine/internal/config"
)

// Calculator evaluates danger levels using the injected tuning constants.
type Calculator struct {
	cfg config.DangerConfig
}

// NewCalculator creates a calculator with the given tuning constants.
func NewCalculator(cfg config.DangerConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// clamp keeps a composed danger level on the non-negative scale. A strongly
// allied faction can bring a quiet road to zero, never below it.
func clamp(level float64) float64 {
	if level < 0 {
		return 0
	}
	return level
}
