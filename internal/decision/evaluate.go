package decision

import (
	"sort"
	"strings"

	"github.com/talgya/world-engine/internal/world"
)

// Recommendation pairs a blueprint with its trait-affinity score. Unaffordable
// blueprints keep their true score so callers can still display affinity, but
// they always rank below every affordable entry.
type Recommendation struct {
	Blueprint  world.BuildingBlueprint `json:"blueprint"`
	Score      float64                 `json:"score"`
	Affordable bool                    `json:"affordable"`
}

// Evaluator scores building blueprints for a settlement.
type Evaluator struct {
	scorer *Scorer
}

// NewEvaluator creates an evaluator backed by the given trait scorer.
func NewEvaluator(scorer *Scorer) *Evaluator {
	return &Evaluator{scorer: scorer}
}

// Recommend ranks the catalogue for a settlement: affordable blueprints
// first by score descending, then unaffordable ones, ties broken by blueprint
// ID ascending so identical inputs always produce identical orderings.
// Affordability is strict — every required resource quantity must be on hand.
//
// The returned slice is built fresh on every call; callers re-evaluate each
// decision cycle rather than caching.
func (e *Evaluator) Recommend(settlement *world.Settlement, traits []world.Trait, catalogue []world.BuildingBlueprint) ([]Recommendation, error) {
	if err := settlement.Validate(); err != nil {
		return nil, err
	}

	weights := e.scorer.Weights(traits)

	recs := make([]Recommendation, 0, len(catalogue))
	for i := range catalogue {
		bp := catalogue[i]
		if err := bp.Validate(); err != nil {
			return nil, err
		}

		score := 0.0
		for _, attr := range bp.Attributes {
			score += weights[attr]
		}

		recs = append(recs, Recommendation{
			Blueprint:  bp,
			Score:      score,
			Affordable: settlement.CanAfford(bp.Cost),
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Affordable != b.Affordable {
			return a.Affordable
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return strings.Compare(a.Blueprint.ID.String(), b.Blueprint.ID.String()) < 0
	})

	return recs, nil
}
