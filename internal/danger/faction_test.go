package danger

import (
	"errors"
	"testing"

	"github.com/talgya/world-engine/internal/world"
)

func TestRelationshipAdjustment(t *testing.T) {
	calc := testCalculator()

	tests := []struct {
		name  string
		score int
		want  float64
	}{
		{name: "sworn ally", score: 100, want: -5},
		{name: "friendly", score: 40, want: -2},
		{name: "neutral", score: 0, want: 0},
		{name: "unfriendly", score: -40, want: 2},
		{name: "blood enemy", score: -100, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel := world.FactionRelationship{ReputationScore: tt.score}
			got, err := calc.RelationshipAdjustment(&rel)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("adjustment = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestRelationshipAdjustmentNilIsNeutral(t *testing.T) {
	calc := testCalculator()
	got, err := calc.RelationshipAdjustment(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("nil relationship should be neutral, got %g", got)
	}
}

func TestRelationshipAdjustmentMonotonic(t *testing.T) {
	calc := testCalculator()

	// Higher reputation must never mean more danger.
	prev, err := calc.RelationshipAdjustment(&world.FactionRelationship{ReputationScore: -100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for score := -99; score <= 100; score++ {
		adj, err := calc.RelationshipAdjustment(&world.FactionRelationship{ReputationScore: score})
		if err != nil {
			t.Fatalf("score %d: unexpected error: %v", score, err)
		}
		if adj > prev {
			t.Fatalf("adjustment rose from %g to %g at score %d", prev, adj, score)
		}
		prev = adj
	}
}

func TestRelationshipAdjustmentBounds(t *testing.T) {
	calc := testCalculator()

	for _, score := range []int{-101, 101, 500} {
		_, err := calc.RelationshipAdjustment(&world.FactionRelationship{ReputationScore: score})
		if err == nil {
			t.Fatalf("score %d: expected validation error", score)
		}
		var verr *world.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("score %d: expected *world.ValidationError, got %T", score, err)
		}
	}
}
