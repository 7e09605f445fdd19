// Package store provides the snapshot providers the engine reads from and
// the transactional write half the update cycle needs. The engine packages
// never touch a database; they see only the Store interface and the plain
// value snapshots it returns.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/talgya/world-engine/internal/world"
)

// Store is the engine's view of the world database.
//
// Read methods return value snapshots; absent records are (nil, nil) or an
// empty slice, never an error — the calculators treat missing data as
// neutral. Write methods exist for the update cycle: ApplyConstruction is the
// single atomic unit that deducts resources and records the new building, so
// two cycles can never double-spend the same stockpile.
type Store interface {
	Locations(ctx context.Context) ([]world.LocationInstance, error)
	Location(ctx context.Context, id uuid.UUID) (*world.LocationInstance, error)

	TravelLinks(ctx context.Context) ([]world.TravelLink, error)
	WildlifeForBiomes(ctx context.Context, biomeIDs []uuid.UUID) ([]world.WildlifePopulation, error)

	Relationship(ctx context.Context, characterID, factionID uuid.UUID) (*world.FactionRelationship, error)
	Relationships(ctx context.Context, characterID uuid.UUID) ([]world.FactionRelationship, error)

	Blueprints(ctx context.Context, themeID *uuid.UUID) ([]world.BuildingBlueprint, error)

	Settlements(ctx context.Context) ([]world.Settlement, error)
	LeaderTraits(ctx context.Context, characterID uuid.UUID) ([]world.Trait, error)

	ApplyConstruction(ctx context.Context, settlementID, blueprintID uuid.UUID, cost map[uuid.UUID]int) error
	SaveLocationDanger(ctx context.Context, locationID uuid.UUID, level float64) error
	SaveTravelDanger(ctx context.Context, linkID uuid.UUID, level float64) error

	Close() error
}
