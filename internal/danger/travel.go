package danger

import (
	"github.com/google/uuid"

	"github.com/talgya/world-engine/internal/world"
)

// TravelDanger computes the effective danger of a travel link for an optional
// traveling character.
//
// Composition: base danger scaled by terrain, plus the normalized sum of
// effective danger across the wildlife populations along the route, plus the
// adjustment for the traveler's most adverse standing among the link's
// factions. The standing with the lowest reputation decides the adjustment;
// standings are never averaged. The result is clamped to the non-negative
// scale.
//
// rels carries the traveling character's faction relationships; pass nil when
// no character is traveling. Relationships with factions that hold no
// influence over this link are ignored.
func (c *Calculator) TravelDanger(link *world.TravelLink, wildlife []world.WildlifePopulation, rels []world.FactionRelationship) (float64, error) {
	if err := link.Validate(); err != nil {
		return 0, err
	}

	level := float64(link.BaseDangerLevel) * link.TerrainModifier

	for i := range wildlife {
		d, err := c.WildlifeDanger(&wildlife[i])
		if err != nil {
			return 0, err
		}
		level += d / c.cfg.WildlifeNormalization
	}

	adverse, err := mostAdverse(link.FactionIDs, rels)
	if err != nil {
		return 0, err
	}
	adj, err := c.RelationshipAdjustment(adverse)
	if err != nil {
		return 0, err
	}
	level += adj

	return clamp(level), nil
}

// mostAdverse picks the applicable relationship with the lowest reputation.
// Every applicable record is validated up front so an out-of-range score
// fails the assessment even when a worse standing would have been picked.
func mostAdverse(factionIDs []uuid.UUID, rels []world.FactionRelationship) (*world.FactionRelationship, error) {
	onLink := make(map[uuid.UUID]bool, len(factionIDs))
	for _, id := range factionIDs {
		onLink[id] = true
	}

	var worst *world.FactionRelationship
	for i := range rels {
		rel := &rels[i]
		if !onLink[rel.FactionID] {
			continue
		}
		if err := rel.Validate(); err != nil {
			return nil, err
		}
		if worst == nil || rel.ReputationScore < worst.ReputationScore {
			worst = rel
		}
	}
	return worst, nil
}
