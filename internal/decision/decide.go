package decision

import (
	"github.com/google/uuid"

	"github.com/talgya/world-engine/internal/world"
)

// Action is a chosen building action for a settlement. The engine only names
// the blueprint; deducting resources and creating the building instance is
// the caller's transaction.
type Action struct {
	BlueprintID   uuid.UUID `json:"blueprint_id"`
	BlueprintName string    `json:"blueprint_name"`
	Score         float64   `json:"score"`
}

// Engine is the top-level settlement decision policy.
type Engine struct {
	eval *Evaluator
}

// NewEngine creates a decision engine over the given evaluator.
func NewEngine(eval *Evaluator) *Engine {
	return &Engine{eval: eval}
}

// Decide selects the next building action for a settlement: the
// highest-scoring affordable recommendation. A nil action means nothing is
// affordable right now — an ordinary outcome of resource scarcity, not an
// error. Pure function of the snapshot; calling it twice on the same inputs
// yields the same choice.
func (e *Engine) Decide(settlement *world.Settlement, traits []world.Trait, catalogue []world.BuildingBlueprint) (*Action, error) {
	recs, err := e.eval.Recommend(settlement, traits, catalogue)
	if err != nil {
		return nil, err
	}

	// Recommendations sort affordable-first, so only the head can qualify.
	if len(recs) == 0 || !recs[0].Affordable {
		return nil, nil
	}

	top := recs[0]
	return &Action{
		BlueprintID:   top.Blueprint.ID,
		BlueprintName: top.Blueprint.Name,
		Score:         top.Score,
	}, nil
}
