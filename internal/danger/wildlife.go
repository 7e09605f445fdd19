package danger

import (
	"github.com/talgya/world-engine/internal/world"
)

// WildlifeDanger returns the effective danger contribution of one creature
// population: per-creature rating times population, amplified for pack
// hunters.
//
// Pack amplification counts complete packs by floor-dividing the population
// by the maximum pack size; a population below the minimum pack size forms no
// packs at all. Each complete pack adds the configured bonus factor to the
// base multiplier, so modifiers only ever amplify — effective danger is never
// below the unmodified base.
func (c *Calculator) WildlifeDanger(pop *world.WildlifePopulation) (float64, error) {
	if err := pop.Validate(); err != nil {
		return 0, err
	}
	if pop.Population == 0 {
		return 0, nil
	}

	base := float64(pop.DangerRating) * float64(pop.Population)
	if !pop.PackBehavior || pop.Population < pop.PackSizeMin {
		return base, nil
	}

	packs := pop.Population / pop.PackSizeMax
	bonus := float64(packs) * c.cfg.PackBonusFactor
	return base * (1 + bonus), nil
}
