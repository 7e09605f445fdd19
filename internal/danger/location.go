package danger

import (
	"github.com/talgya/world-engine/internal/world"
)

// LocationDanger computes the resident danger of a location for an optional
// visiting character: base danger, plus the normalized danger of resident
// wildlife, plus the adjustment for the character's standing with the
// controlling faction. A location has at most one controller, so there is no
// worst-case selection here.
//
// rel is the character's relationship with the controlling faction; pass nil
// for an anonymous assessment. A relationship with anyone other than the
// current controller is ignored.
func (c *Calculator) LocationDanger(loc *world.LocationInstance, rel *world.FactionRelationship) (float64, error) {
	if err := loc.Validate(); err != nil {
		return 0, err
	}

	level := float64(loc.BaseDangerLevel)

	for i := range loc.Wildlife {
		d, err := c.WildlifeDanger(&loc.Wildlife[i])
		if err != nil {
			return 0, err
		}
		level += d / c.cfg.WildlifeNormalization
	}

	if rel != nil && loc.ControllingFactionID != nil && rel.FactionID == *loc.ControllingFactionID {
		adj, err := c.RelationshipAdjustment(rel)
		if err != nil {
			return 0, err
		}
		level += adj
	}

	return clamp(level), nil
}
