package decision

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/talgya/world-engine/internal/config"
	"github.com/talgya/world-engine/internal/world"
)

var (
	// Fixed IDs with a known lexical order for tie-break assertions.
	idKeep    = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	idBarrack = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	idMarket  = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	idShrine  = uuid.MustParse("44444444-4444-4444-4444-444444444444")

	timber = uuid.New()
	stone  = uuid.New()
)

func testEvaluator() *Evaluator {
	return NewEvaluator(NewScorer(config.Default().TraitWeights))
}

func defensiveCatalogue() []world.BuildingBlueprint {
	return []world.BuildingBlueprint{
		{ID: idMarket, Name: "Market Hall", Attributes: []world.Attribute{world.AttrEconomic}, Cost: map[uuid.UUID]int{timber: 20}},
		{ID: idKeep, Name: "Stone Keep", Attributes: []world.Attribute{world.AttrDefensive, world.AttrMilitary}, Cost: map[uuid.UUID]int{stone: 50, timber: 10}},
		{ID: idBarrack, Name: "Barracks", Attributes: []world.Attribute{world.AttrMilitary}, Cost: map[uuid.UUID]int{timber: 30}},
		{ID: idShrine, Name: "Shrine", Attributes: []world.Attribute{world.AttrSpiritual}, Cost: map[uuid.UUID]int{stone: 15}},
	}
}

func TestRecommendOrdering(t *testing.T) {
	eval := testEvaluator()
	settlement := &world.Settlement{
		Name:      "Ironhaven",
		Resources: map[uuid.UUID]int{timber: 100, stone: 100},
	}

	recs, err := eval.Recommend(settlement, []world.Trait{world.TraitDefensive}, defensiveCatalogue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(recs))
	}

	// Defensive leader: keep (1.0 + 0.3) beats barracks (0.3), then the
	// zero-affinity entries in ID order.
	wantOrder := []uuid.UUID{idKeep, idBarrack, idMarket, idShrine}
	for i, want := range wantOrder {
		if recs[i].Blueprint.ID != want {
			t.Fatalf("position %d: got %s, want %s", i, recs[i].Blueprint.Name, want)
		}
	}
	if recs[0].Score != 1.3 {
		t.Fatalf("keep score = %g, want 1.3", recs[0].Score)
	}
}

func TestRecommendTieBreakByID(t *testing.T) {
	eval := testEvaluator()
	settlement := &world.Settlement{Resources: map[uuid.UUID]int{timber: 100, stone: 100}}

	// No traits: every blueprint scores zero, so ordering falls entirely to
	// blueprint ID ascending.
	recs, err := eval.Recommend(settlement, nil, defensiveCatalogue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantOrder := []uuid.UUID{idKeep, idBarrack, idMarket, idShrine}
	for i, want := range wantOrder {
		if recs[i].Blueprint.ID != want {
			t.Fatalf("position %d: got %s, want %s", i, recs[i].Blueprint.ID, want)
		}
	}
}

func TestRecommendDeterministicAcrossInputOrder(t *testing.T) {
	eval := testEvaluator()
	settlement := &world.Settlement{Resources: map[uuid.UUID]int{timber: 100, stone: 100}}
	traits := []world.Trait{world.TraitDefensive, world.TraitEconomical}

	catalogue := defensiveCatalogue()
	reversed := make([]world.BuildingBlueprint, len(catalogue))
	for i := range catalogue {
		reversed[len(catalogue)-1-i] = catalogue[i]
	}

	a, err := eval.Recommend(settlement, traits, catalogue)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := eval.Recommend(settlement, traits, reversed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range a {
		if a[i].Blueprint.ID != b[i].Blueprint.ID || a[i].Score != b[i].Score {
			t.Fatalf("position %d differs across catalogue orderings: %s vs %s",
				i, a[i].Blueprint.Name, b[i].Blueprint.Name)
		}
	}
}

func TestRecommendDemotesUnaffordable(t *testing.T) {
	eval := testEvaluator()
	// Can afford the barracks, not the keep.
	settlement := &world.Settlement{Resources: map[uuid.UUID]int{timber: 30}}

	recs, err := eval.Recommend(settlement, []world.Trait{world.TraitDefensive}, defensiveCatalogue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The keep scores highest but cannot be built; every affordable entry
	// must rank ahead of it.
	seenUnaffordable := false
	for _, r := range recs {
		if !r.Affordable {
			seenUnaffordable = true
			continue
		}
		if seenUnaffordable {
			t.Fatalf("affordable %s ranked behind an unaffordable blueprint", r.Blueprint.Name)
		}
	}
	if recs[0].Blueprint.ID != idBarrack {
		t.Fatalf("expected affordable barracks first, got %s", recs[0].Blueprint.Name)
	}
	// Demotion keeps the true score for display.
	for _, r := range recs {
		if r.Blueprint.ID == idKeep {
			if r.Affordable {
				t.Fatalf("keep should be unaffordable")
			}
			if r.Score != 1.3 {
				t.Fatalf("keep retains score 1.3, got %g", r.Score)
			}
		}
	}
}

func TestRecommendValidation(t *testing.T) {
	eval := testEvaluator()

	t.Run("non-positive cost quantity", func(t *testing.T) {
		settlement := &world.Settlement{Resources: map[uuid.UUID]int{}}
		catalogue := []world.BuildingBlueprint{
			{ID: idKeep, Name: "Broken", Cost: map[uuid.UUID]int{timber: 0}},
		}
		_, err := eval.Recommend(settlement, nil, catalogue)
		var verr *world.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *world.ValidationError, got %v", err)
		}
	})

	t.Run("negative inventory quantity", func(t *testing.T) {
		settlement := &world.Settlement{Resources: map[uuid.UUID]int{timber: -5}}
		_, err := eval.Recommend(settlement, nil, defensiveCatalogue())
		var verr *world.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *world.ValidationError, got %v", err)
		}
	})
}
