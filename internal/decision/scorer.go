// Package decision drives settlement-leader building choices: it maps leader
// traits onto building-attribute preferences, ranks the blueprint catalogue
// against them, and selects the next construction action. Like the danger
// package it is pure computation over passed-in snapshots — resource
// deduction and persistence stay with the caller.
package decision

import (
	"github.com/talgya/world-engine/internal/config"
	"github.com/talgya/world-engine/internal/world"
)

// Scorer converts a leader's trait set into weights over building-attribute
// categories using the injected weight table.
type Scorer struct {
	table config.WeightTable
}

// NewScorer creates a scorer over the given trait weight table.
func NewScorer(table config.WeightTable) *Scorer {
	return &Scorer{table: table}
}

// Weights sums the per-trait partial weights per attribute category. No
// normalization: a leader whose traits all pull toward one category ends up
// with a proportionally stronger preference. Duplicate traits in the input
// collapse, since a character holds a set.
func (s *Scorer) Weights(traits []world.Trait) map[world.Attribute]float64 {
	weights := make(map[world.Attribute]float64)
	seen := make(map[world.Trait]bool, len(traits))

	for _, trait := range traits {
		if seen[trait] {
			continue
		}
		seen[trait] = true
		for attr, w := range s.table[trait] {
			weights[attr] += w
		}
	}
	return weights
}
