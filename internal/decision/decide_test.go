package decision

import (
	"testing"

	"github.com/google/uuid"

	"github.com/talgya/world-engine/internal/world"
)

func testEngine() *Engine {
	return NewEngine(testEvaluator())
}

func TestDecide(t *testing.T) {
	engine := testEngine()

	t.Run("picks highest scoring affordable blueprint", func(t *testing.T) {
		settlement := &world.Settlement{Resources: map[uuid.UUID]int{timber: 100, stone: 100}}
		action, err := engine.Decide(settlement, []world.Trait{world.TraitDefensive}, defensiveCatalogue())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if action == nil {
			t.Fatalf("expected an action")
		}
		if action.BlueprintID != idKeep {
			t.Fatalf("chose %s, want the keep", action.BlueprintName)
		}
	})

	t.Run("falls back to an affordable lower scorer", func(t *testing.T) {
		settlement := &world.Settlement{Resources: map[uuid.UUID]int{timber: 30}}
		action, err := engine.Decide(settlement, []world.Trait{world.TraitDefensive}, defensiveCatalogue())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if action == nil || action.BlueprintID != idBarrack {
			t.Fatalf("expected the barracks, got %+v", action)
		}
	})

	t.Run("no affordable blueprint means no action", func(t *testing.T) {
		settlement := &world.Settlement{Resources: map[uuid.UUID]int{}}
		action, err := engine.Decide(settlement, []world.Trait{world.TraitDefensive}, defensiveCatalogue())
		if err != nil {
			t.Fatalf("scarcity is not an error, got %v", err)
		}
		if action != nil {
			t.Fatalf("expected no action, got %+v", action)
		}
	})

	t.Run("empty catalogue means no action", func(t *testing.T) {
		settlement := &world.Settlement{Resources: map[uuid.UUID]int{timber: 100}}
		action, err := engine.Decide(settlement, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if action != nil {
			t.Fatalf("expected no action, got %+v", action)
		}
	})

	t.Run("same snapshot yields same choice", func(t *testing.T) {
		settlement := &world.Settlement{Resources: map[uuid.UUID]int{timber: 100, stone: 100}}
		traits := []world.Trait{world.TraitEconomical, world.TraitExpansive}

		first, err := engine.Decide(settlement, traits, defensiveCatalogue())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := engine.Decide(settlement, traits, defensiveCatalogue())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first == nil || second == nil {
			t.Fatalf("expected actions, got %+v and %+v", first, second)
		}
		if first.BlueprintID != second.BlueprintID || first.Score != second.Score {
			t.Fatalf("decision drifted: %+v vs %+v", first, second)
		}
	})
}
