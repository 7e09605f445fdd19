// Package world defines the immutable data snapshots the danger and decision
// engines compute over. Entities here are plain values handed in by the store
// layer; nothing in this package performs I/O or holds state between calls.
package world

import (
	"github.com/google/uuid"
)

// Visibility describes whether a travel link is apparent to travelers.
type Visibility string

const (
	VisibilityVisible  Visibility = "visible"
	VisibilityHidden   Visibility = "hidden"
	VisibilitySeasonal Visibility = "seasonal"
)

// WildlifePopulation is a creature population resident at a location or
// encountered along a travel route.
type WildlifePopulation struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Population   int       `json:"population" db:"population"`
	DangerRating int       `json:"danger_rating" db:"danger_rating"` // per-creature severity
	PackBehavior bool      `json:"pack_behavior" db:"pack_behavior"`
	PackSizeMin  int       `json:"pack_size_min" db:"pack_size_min"`
	PackSizeMax  int       `json:"pack_size_max" db:"pack_size_max"`
}

// TravelLink connects two locations and carries the static travel parameters
// the danger aggregator composes over.
type TravelLink struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	FromLocationID  uuid.UUID   `json:"from_location_id"`
	ToLocationID    uuid.UUID   `json:"to_location_id"`
	Speed           float64     `json:"speed"`            // travel speed multiplier, 1.0 = normal
	PathType        string      `json:"path_type"`        // road, trail, forest path, ...
	Visibility      Visibility  `json:"visibility"`
	BaseDangerLevel int         `json:"base_danger_level"` // 0..DangerScaleMax
	TerrainModifier float64     `json:"terrain_modifier"`  // 0.5 easier, 2.0 harder
	DistanceKM      float64     `json:"distance_km"`
	IsActive        bool        `json:"is_active"`
	BiomeIDs        []uuid.UUID `json:"biome_ids"`   // biomes crossed en route, no duplicates
	FactionIDs      []uuid.UUID `json:"faction_ids"` // factions with influence on the route
}

// LocationInstance is a place in the world with a resident danger profile.
type LocationInstance struct {
	ID                   uuid.UUID            `json:"id"`
	Name                 string               `json:"name"`
	SubType              string               `json:"sub_type,omitempty"`
	BaseDangerLevel      int                  `json:"base_danger_level"`
	ControllingFactionID *uuid.UUID           `json:"controlling_faction_id,omitempty"`
	Wildlife             []WildlifePopulation `json:"wildlife,omitempty"`
}

// FactionRelationship records one character's standing with one faction.
type FactionRelationship struct {
	CharacterID     uuid.UUID          `json:"character_id" db:"character_id"`
	FactionID       uuid.UUID          `json:"faction_id" db:"faction_id"`
	ReputationScore int                `json:"reputation_score" db:"reputation_score"` // -100 (enemy) .. +100 (ally)
	Status          RelationshipStatus `json:"relationship_status" db:"relationship_status"`
}

// BuildingBlueprint is an available construction option in the catalogue.
type BuildingBlueprint struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	ThemeID    *uuid.UUID        `json:"theme_id,omitempty"`
	Attributes []Attribute       `json:"attributes"`
	Cost       map[uuid.UUID]int `json:"cost"` // resource id -> required quantity, all > 0
}

// Settlement is the decision engine's view of a population center: who leads
// it, what it has stockpiled, and what already stands.
type Settlement struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	LeaderID    *uuid.UUID        `json:"leader_id,omitempty"`
	Resources   map[uuid.UUID]int `json:"resources"` // resource id -> quantity on hand
	BuildingIDs []uuid.UUID       `json:"building_ids,omitempty"`
}

// CanAfford reports whether the settlement's inventory covers every entry of
// the cost table. Affordability is strict: one short resource fails the whole
// check.
func (s *Settlement) CanAfford(cost map[uuid.UUID]int) bool {
	for resource, required := range cost {
		if s.Resources[resource] < required {
			return false
		}
	}
	return true
}
