package danger

import (
	"github.com/talgya/world-engine/internal/world"
)

// RelationshipAdjustment converts a character's standing with a faction into
// a signed danger adjustment: higher reputation means lower danger. The
// mapping is linear, -reputation / divisor, so with the default divisor of 20
// a sworn ally (+100) shaves 5 levels off and a blood enemy (-100) adds 5.
//
// A nil relationship — the character has never dealt with the faction — is
// neutral and contributes zero.
func (c *Calculator) RelationshipAdjustment(rel *world.FactionRelationship) (float64, error) {
	if rel == nil {
		return 0, nil
	}
	if err := rel.Validate(); err != nil {
		return 0, err
	}
	return -float64(rel.ReputationScore) / c.cfg.ReputationDivisor, nil
}
