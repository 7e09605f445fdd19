package world

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError reports a malformed input snapshot. Malformed inputs are
// surfaced immediately rather than coerced to a zero-danger result.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the population record's internal consistency.
func (w *WildlifePopulation) Validate() error {
	if w.Population < 0 {
		return invalid("population", "negative count %d for %s", w.Population, w.Name)
	}
	if w.DangerRating < 0 {
		return invalid("danger_rating", "negative rating %d for %s", w.DangerRating, w.Name)
	}
	if w.PackBehavior {
		if w.PackSizeMin < 1 || w.PackSizeMax < 1 {
			return invalid("pack_size", "pack sizes must be positive for %s", w.Name)
		}
		if w.PackSizeMin > w.PackSizeMax {
			return invalid("pack_size", "min %d exceeds max %d for %s", w.PackSizeMin, w.PackSizeMax, w.Name)
		}
	}
	return nil
}

// Validate checks the reputation score is within the documented bounds.
func (r *FactionRelationship) Validate() error {
	if r.ReputationScore < -100 || r.ReputationScore > 100 {
		return invalid("reputation_score", "%d outside [-100, 100]", r.ReputationScore)
	}
	return nil
}

// Validate checks the link's danger inputs, its visibility value, and that
// the biome and faction id sets carry no duplicates. An unset visibility is
// the visible default.
func (l *TravelLink) Validate() error {
	if l.BaseDangerLevel < 0 {
		return invalid("base_danger_level", "negative level %d for %s", l.BaseDangerLevel, l.Name)
	}
	if l.TerrainModifier < 0 {
		return invalid("terrain_modifier", "negative modifier %g for %s", l.TerrainModifier, l.Name)
	}
	switch l.Visibility {
	case "", VisibilityVisible, VisibilityHidden, VisibilitySeasonal:
	default:
		return invalid("visibility", "unknown value %q for %s", l.Visibility, l.Name)
	}
	if dup, ok := firstDuplicate(l.BiomeIDs); ok {
		return invalid("biome_ids", "duplicate id %s for %s", dup, l.Name)
	}
	if dup, ok := firstDuplicate(l.FactionIDs); ok {
		return invalid("faction_ids", "duplicate id %s for %s", dup, l.Name)
	}
	return nil
}

func firstDuplicate(ids []uuid.UUID) (uuid.UUID, bool) {
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return id, true
		}
		seen[id] = true
	}
	return uuid.UUID{}, false
}

// Validate checks the location's danger inputs.
func (l *LocationInstance) Validate() error {
	if l.BaseDangerLevel < 0 {
		return invalid("base_danger_level", "negative level %d for %s", l.BaseDangerLevel, l.Name)
	}
	return nil
}

// Validate checks the cost table. A blueprint with a non-positive cost entry
// is malformed, not free.
func (b *BuildingBlueprint) Validate() error {
	for resource, qty := range b.Cost {
		if qty <= 0 {
			return invalid("cost", "non-positive quantity %d for resource %s in %s", qty, resource, b.Name)
		}
	}
	return nil
}

// Validate checks the resource inventory.
func (s *Settlement) Validate() error {
	for resource, qty := range s.Resources {
		if qty < 0 {
			return invalid("resources", "negative quantity %d for resource %s in %s", qty, resource, s.Name)
		}
	}
	return nil
}
