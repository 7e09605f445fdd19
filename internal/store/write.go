package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/talgya/world-engine/internal/world"
)

// ApplyConstruction deducts the cost from the settlement's inventory and
// records the new building in one transaction. The re-check inside the
// transaction plus the guarded deduction stop two overlapping cycles from
// spending the same stockpile twice, on postgres as well as sqlite: under
// read committed both cycles can pass the affordability check on the same
// snapshot, so the deduction only lands if the inventory is still the one
// this transaction read.
func (s *SQL) ApplyConstruction(ctx context.Context, settlementID, blueprintID uuid.UUID, cost map[uuid.UUID]int) error {
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin construction: %w", err)
	}
	defer tx.Rollback()

	var raw string
	err = tx.GetContext(ctx, &raw, s.rebind(
		`SELECT resources_json FROM settlements WHERE id = ?`), settlementID.String())
	if err != nil {
		return fmt.Errorf("load settlement resources: %w", err)
	}
	resources, err := unmarshalCost(raw)
	if err != nil {
		return fmt.Errorf("settlement %s: %w", settlementID, err)
	}

	for resource, required := range cost {
		if resources[resource] < required {
			return fmt.Errorf("settlement %s cannot afford blueprint %s: resource %s short %d",
				settlementID, blueprintID, resource, required-resources[resource])
		}
		resources[resource] -= required
	}

	if err := s.settleInventory(ctx, tx, settlementID, raw, resources); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, s.rebind(
		`INSERT INTO settlement_buildings (settlement_id, blueprint_id) VALUES (?, ?)`),
		settlementID.String(), blueprintID.String())
	if err != nil {
		return fmt.Errorf("record building: %w", err)
	}

	return tx.Commit()
}

// settleInventory writes the deducted inventory with a guard on the value the
// transaction observed. A concurrent construction that committed first leaves
// the column changed, the guard matches zero rows, and this construction
// fails instead of overwriting the inventory with numbers derived from a
// stale read.
func (s *SQL) settleInventory(ctx context.Context, tx *sqlx.Tx, settlementID uuid.UUID, observed string, resources map[uuid.UUID]int) error {
	res, err := tx.ExecContext(ctx, s.rebind(
		`UPDATE settlements SET resources_json = ? WHERE id = ? AND resources_json = ?`),
		marshalCost(resources), settlementID.String(), observed)
	if err != nil {
		return fmt.Errorf("deduct resources: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deduct resources: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("settlement %s: inventory changed by a concurrent construction", settlementID)
	}
	return nil
}

// SaveLocationDanger persists a computed location danger level.
func (s *SQL) SaveLocationDanger(ctx context.Context, locationID uuid.UUID, level float64) error {
	_, err := s.conn.ExecContext(ctx, s.rebind(
		`UPDATE locations SET danger_level = ? WHERE id = ?`), level, locationID.String())
	if err != nil {
		return fmt.Errorf("save location danger: %w", err)
	}
	return nil
}

// SaveTravelDanger persists a computed travel-link danger level.
func (s *SQL) SaveTravelDanger(ctx context.Context, linkID uuid.UUID, level float64) error {
	_, err := s.conn.ExecContext(ctx, s.rebind(
		`UPDATE travel_links SET danger_level = ? WHERE id = ?`), level, linkID.String())
	if err != nil {
		return fmt.Errorf("save travel danger: %w", err)
	}
	return nil
}

// The Put methods below belong to whatever owns world mutation — seeding,
// admin tooling, tests. The engine never calls them.

func (s *SQL) PutLocation(ctx context.Context, loc *world.LocationInstance) error {
	var controller any
	if loc.ControllingFactionID != nil {
		controller = loc.ControllingFactionID.String()
	}
	_, err := s.conn.ExecContext(ctx, s.rebind(
		`INSERT INTO locations (id, name, sub_type, base_danger_level, controlling_faction_id)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name, sub_type = excluded.sub_type,
		   base_danger_level = excluded.base_danger_level,
		   controlling_faction_id = excluded.controlling_faction_id`),
		loc.ID.String(), loc.Name, loc.SubType, loc.BaseDangerLevel, controller)
	if err != nil {
		return fmt.Errorf("put location %s: %w", loc.Name, err)
	}
	for i := range loc.Wildlife {
		if err := s.putWildlife(ctx, &loc.Wildlife[i], &loc.ID, nil); err != nil {
			return err
		}
	}
	return nil
}

// PutWildlife stores a free-roaming population associated with biomes rather
// than a single location.
func (s *SQL) PutWildlife(ctx context.Context, pop *world.WildlifePopulation, biomeIDs []uuid.UUID) error {
	return s.putWildlife(ctx, pop, nil, biomeIDs)
}

func (s *SQL) putWildlife(ctx context.Context, pop *world.WildlifePopulation, locationID *uuid.UUID, biomeIDs []uuid.UUID) error {
	pack := 0
	if pop.PackBehavior {
		pack = 1
	}
	var loc any
	if locationID != nil {
		loc = locationID.String()
	}
	_, err := s.conn.ExecContext(ctx, s.rebind(
		`INSERT INTO wildlife
		 (id, name, location_id, population, danger_rating, pack_behavior,
		  pack_size_min, pack_size_max, biome_ids_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name, location_id = excluded.location_id,
		   population = excluded.population, danger_rating = excluded.danger_rating,
		   pack_behavior = excluded.pack_behavior, pack_size_min = excluded.pack_size_min,
		   pack_size_max = excluded.pack_size_max, biome_ids_json = excluded.biome_ids_json`),
		pop.ID.String(), pop.Name, loc, pop.Population, pop.DangerRating,
		pack, pop.PackSizeMin, pop.PackSizeMax, marshalIDs(biomeIDs))
	if err != nil {
		return fmt.Errorf("put wildlife %s: %w", pop.Name, err)
	}
	return nil
}

func (s *SQL) PutTravelLink(ctx context.Context, link *world.TravelLink) error {
	active := 0
	if link.IsActive {
		active = 1
	}
	_, err := s.conn.ExecContext(ctx, s.rebind(
		`INSERT INTO travel_links
		 (id, name, from_location_id, to_location_id, speed, path_type, visibility,
		  base_danger_level, terrain_modifier, distance_km, is_active,
		  biome_ids_json, faction_ids_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name, from_location_id = excluded.from_location_id,
		   to_location_id = excluded.to_location_id, speed = excluded.speed,
		   path_type = excluded.path_type, visibility = excluded.visibility,
		   base_danger_level = excluded.base_danger_level,
		   terrain_modifier = excluded.terrain_modifier, distance_km = excluded.distance_km,
		   is_active = excluded.is_active, biome_ids_json = excluded.biome_ids_json,
		   faction_ids_json = excluded.faction_ids_json`),
		link.ID.String(), link.Name, link.FromLocationID.String(), link.ToLocationID.String(),
		link.Speed, link.PathType, string(link.Visibility), link.BaseDangerLevel,
		link.TerrainModifier, link.DistanceKM, active,
		marshalIDs(link.BiomeIDs), marshalIDs(link.FactionIDs))
	if err != nil {
		return fmt.Errorf("put travel link %s: %w", link.Name, err)
	}
	return nil
}

func (s *SQL) PutRelationship(ctx context.Context, rel *world.FactionRelationship) error {
	_, err := s.conn.ExecContext(ctx, s.rebind(
		`INSERT INTO faction_relationships
		 (character_id, faction_id, reputation_score, relationship_status)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (character_id, faction_id) DO UPDATE SET
		   reputation_score = excluded.reputation_score,
		   relationship_status = excluded.relationship_status`),
		rel.CharacterID.String(), rel.FactionID.String(), rel.ReputationScore, string(rel.Status))
	if err != nil {
		return fmt.Errorf("put relationship: %w", err)
	}
	return nil
}

func (s *SQL) PutCharacter(ctx context.Context, id uuid.UUID, name string, traits []world.Trait) error {
	_, err := s.conn.ExecContext(ctx, s.rebind(
		`INSERT INTO characters (id, name, traits_json) VALUES (?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET name = excluded.name, traits_json = excluded.traits_json`),
		id.String(), name, marshalTraits(traits))
	if err != nil {
		return fmt.Errorf("put character %s: %w", name, err)
	}
	return nil
}

func (s *SQL) PutBlueprint(ctx context.Context, bp *world.BuildingBlueprint) error {
	var theme any
	if bp.ThemeID != nil {
		theme = bp.ThemeID.String()
	}
	_, err := s.conn.ExecContext(ctx, s.rebind(
		`INSERT INTO blueprints (id, name, theme_id, attributes_json, cost_json)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name, theme_id = excluded.theme_id,
		   attributes_json = excluded.attributes_json, cost_json = excluded.cost_json`),
		bp.ID.String(), bp.Name, theme, marshalAttrs(bp.Attributes), marshalCost(bp.Cost))
	if err != nil {
		return fmt.Errorf("put blueprint %s: %w", bp.Name, err)
	}
	return nil
}

func (s *SQL) PutSettlement(ctx context.Context, st *world.Settlement) error {
	var leader any
	if st.LeaderID != nil {
		leader = st.LeaderID.String()
	}
	_, err := s.conn.ExecContext(ctx, s.rebind(
		`INSERT INTO settlements (id, name, leader_id, resources_json)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name, leader_id = excluded.leader_id,
		   resources_json = excluded.resources_json`),
		st.ID.String(), st.Name, leader, marshalCost(st.Resources))
	if err != nil {
		return fmt.Errorf("put settlement %s: %w", st.Name, err)
	}
	return nil
}
