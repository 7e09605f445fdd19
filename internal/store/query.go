package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/world-engine/internal/world"
)

type locationRow struct {
	ID                   string          `db:"id"`
	Name                 string          `db:"name"`
	SubType              string          `db:"sub_type"`
	BaseDangerLevel      int             `db:"base_danger_level"`
	ControllingFactionID sql.NullString  `db:"controlling_faction_id"`
	DangerLevel          sql.NullFloat64 `db:"danger_level"`
}

func (r *locationRow) toDomain() (world.LocationInstance, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return world.LocationInstance{}, fmt.Errorf("location %s: %w", r.Name, err)
	}
	loc := world.LocationInstance{
		ID:              id,
		Name:            r.Name,
		SubType:         r.SubType,
		BaseDangerLevel: r.BaseDangerLevel,
	}
	if r.ControllingFactionID.Valid {
		fid, err := uuid.Parse(r.ControllingFactionID.String)
		if err != nil {
			return world.LocationInstance{}, fmt.Errorf("location %s controller: %w", r.Name, err)
		}
		loc.ControllingFactionID = &fid
	}
	return loc, nil
}

type wildlifeRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	LocationID   sql.NullString `db:"location_id"`
	Population   int            `db:"population"`
	DangerRating int            `db:"danger_rating"`
	PackBehavior int            `db:"pack_behavior"`
	PackSizeMin  int            `db:"pack_size_min"`
	PackSizeMax  int            `db:"pack_size_max"`
	BiomeIDs     string         `db:"biome_ids_json"`
}

func (r *wildlifeRow) toDomain() (world.WildlifePopulation, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return world.WildlifePopulation{}, fmt.Errorf("wildlife %s: %w", r.Name, err)
	}
	return world.WildlifePopulation{
		ID:           id,
		Name:         r.Name,
		Population:   r.Population,
		DangerRating: r.DangerRating,
		PackBehavior: r.PackBehavior != 0,
		PackSizeMin:  r.PackSizeMin,
		PackSizeMax:  r.PackSizeMax,
	}, nil
}

type travelLinkRow struct {
	ID              string          `db:"id"`
	Name            string          `db:"name"`
	FromLocationID  string          `db:"from_location_id"`
	ToLocationID    string          `db:"to_location_id"`
	Speed           float64         `db:"speed"`
	PathType        string          `db:"path_type"`
	Visibility      string          `db:"visibility"`
	BaseDangerLevel int             `db:"base_danger_level"`
	TerrainModifier float64         `db:"terrain_modifier"`
	DistanceKM      float64         `db:"distance_km"`
	IsActive        int             `db:"is_active"`
	BiomeIDs        string          `db:"biome_ids_json"`
	FactionIDs      string          `db:"faction_ids_json"`
	DangerLevel     sql.NullFloat64 `db:"danger_level"`
}

func (r *travelLinkRow) toDomain() (world.TravelLink, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return world.TravelLink{}, fmt.Errorf("travel link %s: %w", r.Name, err)
	}
	from, err := uuid.Parse(r.FromLocationID)
	if err != nil {
		return world.TravelLink{}, fmt.Errorf("travel link %s from: %w", r.Name, err)
	}
	to, err := uuid.Parse(r.ToLocationID)
	if err != nil {
		return world.TravelLink{}, fmt.Errorf("travel link %s to: %w", r.Name, err)
	}
	biomes, err := unmarshalIDs(r.BiomeIDs)
	if err != nil {
		return world.TravelLink{}, fmt.Errorf("travel link %s: %w", r.Name, err)
	}
	factions, err := unmarshalIDs(r.FactionIDs)
	if err != nil {
		return world.TravelLink{}, fmt.Errorf("travel link %s: %w", r.Name, err)
	}
	return world.TravelLink{
		ID:              id,
		Name:            r.Name,
		FromLocationID:  from,
		ToLocationID:    to,
		Speed:           r.Speed,
		PathType:        r.PathType,
		Visibility:      world.Visibility(r.Visibility),
		BaseDangerLevel: r.BaseDangerLevel,
		TerrainModifier: r.TerrainModifier,
		DistanceKM:      r.DistanceKM,
		IsActive:        r.IsActive != 0,
		BiomeIDs:        biomes,
		FactionIDs:      factions,
	}, nil
}

// Locations returns every location with its resident wildlife attached.
func (s *SQL) Locations(ctx context.Context) ([]world.LocationInstance, error) {
	var rows []locationRow
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT id, name, sub_type, base_danger_level, controlling_faction_id, danger_level
		 FROM locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select locations: %w", err)
	}

	wildlifeByLocation, err := s.residentWildlife(ctx)
	if err != nil {
		return nil, err
	}

	locations := make([]world.LocationInstance, 0, len(rows))
	for i := range rows {
		loc, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		loc.Wildlife = wildlifeByLocation[rows[i].ID]
		locations = append(locations, loc)
	}
	return locations, nil
}

// Location returns one location by id, or (nil, nil) when absent.
func (s *SQL) Location(ctx context.Context, id uuid.UUID) (*world.LocationInstance, error) {
	var row locationRow
	err := s.conn.GetContext(ctx, &row, s.rebind(
		`SELECT id, name, sub_type, base_danger_level, controlling_faction_id, danger_level
		 FROM locations WHERE id = ?`), id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select location: %w", err)
	}

	loc, err := row.toDomain()
	if err != nil {
		return nil, err
	}

	var wrows []wildlifeRow
	err = s.conn.SelectContext(ctx, &wrows, s.rebind(
		`SELECT id, name, location_id, population, danger_rating, pack_behavior,
		        pack_size_min, pack_size_max, biome_ids_json
		 FROM wildlife WHERE location_id = ? ORDER BY name`), id.String())
	if err != nil {
		return nil, fmt.Errorf("select resident wildlife: %w", err)
	}
	for i := range wrows {
		pop, err := wrows[i].toDomain()
		if err != nil {
			return nil, err
		}
		loc.Wildlife = append(loc.Wildlife, pop)
	}
	return &loc, nil
}

func (s *SQL) residentWildlife(ctx context.Context) (map[string][]world.WildlifePopulation, error) {
	var rows []wildlifeRow
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT id, name, location_id, population, danger_rating, pack_behavior,
		        pack_size_min, pack_size_max, biome_ids_json
		 FROM wildlife WHERE location_id IS NOT NULL ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select wildlife: %w", err)
	}

	byLocation := make(map[string][]world.WildlifePopulation)
	for i := range rows {
		pop, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		byLocation[rows[i].LocationID.String] = append(byLocation[rows[i].LocationID.String], pop)
	}
	return byLocation, nil
}

// TravelLinks returns every travel link.
func (s *SQL) TravelLinks(ctx context.Context) ([]world.TravelLink, error) {
	var rows []travelLinkRow
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT id, name, from_location_id, to_location_id, speed, path_type, visibility,
		        base_danger_level, terrain_modifier, distance_km, is_active,
		        biome_ids_json, faction_ids_json, danger_level
		 FROM travel_links ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select travel links: %w", err)
	}

	links := make([]world.TravelLink, 0, len(rows))
	for i := range rows {
		link, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

// WildlifeForBiomes returns wildlife populations found in any of the given
// biomes. Biome membership lives in a JSON column, so the overlap check
// happens here rather than in SQL.
func (s *SQL) WildlifeForBiomes(ctx context.Context, biomeIDs []uuid.UUID) ([]world.WildlifePopulation, error) {
	if len(biomeIDs) == 0 {
		return nil, nil
	}

	var rows []wildlifeRow
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT id, name, location_id, population, danger_rating, pack_behavior,
		        pack_size_min, pack_size_max, biome_ids_json
		 FROM wildlife ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select wildlife: %w", err)
	}

	wanted := make(map[uuid.UUID]bool, len(biomeIDs))
	for _, id := range biomeIDs {
		wanted[id] = true
	}

	var matched []world.WildlifePopulation
	for i := range rows {
		biomes, err := unmarshalIDs(rows[i].BiomeIDs)
		if err != nil {
			return nil, fmt.Errorf("wildlife %s: %w", rows[i].Name, err)
		}
		for _, b := range biomes {
			if wanted[b] {
				pop, err := rows[i].toDomain()
				if err != nil {
					return nil, err
				}
				matched = append(matched, pop)
				break
			}
		}
	}
	return matched, nil
}

type relationshipRow struct {
	CharacterID     string `db:"character_id"`
	FactionID       string `db:"faction_id"`
	ReputationScore int    `db:"reputation_score"`
	Status          string `db:"relationship_status"`
}

func (r *relationshipRow) toDomain() (world.FactionRelationship, error) {
	cid, err := uuid.Parse(r.CharacterID)
	if err != nil {
		return world.FactionRelationship{}, fmt.Errorf("relationship character: %w", err)
	}
	fid, err := uuid.Parse(r.FactionID)
	if err != nil {
		return world.FactionRelationship{}, fmt.Errorf("relationship faction: %w", err)
	}
	return world.FactionRelationship{
		CharacterID:     cid,
		FactionID:       fid,
		ReputationScore: r.ReputationScore,
		Status:          world.RelationshipStatus(r.Status),
	}, nil
}

// Relationship returns one character-faction standing, or (nil, nil) when the
// character has never dealt with the faction.
func (s *SQL) Relationship(ctx context.Context, characterID, factionID uuid.UUID) (*world.FactionRelationship, error) {
	var row relationshipRow
	err := s.conn.GetContext(ctx, &row, s.rebind(
		`SELECT character_id, faction_id, reputation_score, relationship_status
		 FROM faction_relationships WHERE character_id = ? AND faction_id = ?`),
		characterID.String(), factionID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select relationship: %w", err)
	}

	rel, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// Relationships returns every faction standing the character holds.
func (s *SQL) Relationships(ctx context.Context, characterID uuid.UUID) ([]world.FactionRelationship, error) {
	var rows []relationshipRow
	err := s.conn.SelectContext(ctx, &rows, s.rebind(
		`SELECT character_id, faction_id, reputation_score, relationship_status
		 FROM faction_relationships WHERE character_id = ? ORDER BY faction_id`),
		characterID.String())
	if err != nil {
		return nil, fmt.Errorf("select relationships: %w", err)
	}

	rels := make([]world.FactionRelationship, 0, len(rows))
	for i := range rows {
		rel, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, nil
}

type blueprintRow struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	ThemeID    sql.NullString `db:"theme_id"`
	Attributes string         `db:"attributes_json"`
	Cost       string         `db:"cost_json"`
}

// Blueprints returns the building catalogue, optionally filtered by theme.
// Ordered by id so downstream ranking sees a stable input.
func (s *SQL) Blueprints(ctx context.Context, themeID *uuid.UUID) ([]world.BuildingBlueprint, error) {
	query := `SELECT id, name, theme_id, attributes_json, cost_json FROM blueprints`
	args := []any{}
	if themeID != nil {
		query += ` WHERE theme_id = ?`
		args = append(args, themeID.String())
	}
	query += ` ORDER BY id`

	var rows []blueprintRow
	if err := s.conn.SelectContext(ctx, &rows, s.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select blueprints: %w", err)
	}

	blueprints := make([]world.BuildingBlueprint, 0, len(rows))
	for i := range rows {
		id, err := uuid.Parse(rows[i].ID)
		if err != nil {
			return nil, fmt.Errorf("blueprint %s: %w", rows[i].Name, err)
		}
		var attrs []world.Attribute
		if rows[i].Attributes != "" {
			if err := json.Unmarshal([]byte(rows[i].Attributes), &attrs); err != nil {
				return nil, fmt.Errorf("blueprint %s attributes: %w", rows[i].Name, err)
			}
		}
		cost, err := unmarshalCost(rows[i].Cost)
		if err != nil {
			return nil, fmt.Errorf("blueprint %s: %w", rows[i].Name, err)
		}
		bp := world.BuildingBlueprint{ID: id, Name: rows[i].Name, Attributes: attrs, Cost: cost}
		if rows[i].ThemeID.Valid {
			tid, err := uuid.Parse(rows[i].ThemeID.String)
			if err != nil {
				return nil, fmt.Errorf("blueprint %s theme: %w", rows[i].Name, err)
			}
			bp.ThemeID = &tid
		}
		blueprints = append(blueprints, bp)
	}
	return blueprints, nil
}

type settlementRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	LeaderID  sql.NullString `db:"leader_id"`
	Resources string         `db:"resources_json"`
}

// Settlements returns every settlement with its inventory and buildings.
func (s *SQL) Settlements(ctx context.Context) ([]world.Settlement, error) {
	var rows []settlementRow
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT id, name, leader_id, resources_json FROM settlements ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select settlements: %w", err)
	}

	settlements := make([]world.Settlement, 0, len(rows))
	for i := range rows {
		id, err := uuid.Parse(rows[i].ID)
		if err != nil {
			return nil, fmt.Errorf("settlement %s: %w", rows[i].Name, err)
		}
		resources, err := unmarshalCost(rows[i].Resources)
		if err != nil {
			return nil, fmt.Errorf("settlement %s: %w", rows[i].Name, err)
		}
		st := world.Settlement{ID: id, Name: rows[i].Name, Resources: resources}
		if rows[i].LeaderID.Valid {
			lid, err := uuid.Parse(rows[i].LeaderID.String)
			if err != nil {
				return nil, fmt.Errorf("settlement %s leader: %w", rows[i].Name, err)
			}
			st.LeaderID = &lid
		}

		var buildingIDs []string
		err = s.conn.SelectContext(ctx, &buildingIDs, s.rebind(
			`SELECT blueprint_id FROM settlement_buildings WHERE settlement_id = ? ORDER BY blueprint_id`),
			rows[i].ID)
		if err != nil {
			return nil, fmt.Errorf("select settlement buildings: %w", err)
		}
		for _, raw := range buildingIDs {
			bid, err := uuid.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("settlement %s building: %w", rows[i].Name, err)
			}
			st.BuildingIDs = append(st.BuildingIDs, bid)
		}

		settlements = append(settlements, st)
	}
	return settlements, nil
}

// LeaderTraits returns the trait set of a character. An unknown character has
// no traits.
func (s *SQL) LeaderTraits(ctx context.Context, characterID uuid.UUID) ([]world.Trait, error) {
	var raw string
	err := s.conn.GetContext(ctx, &raw, s.rebind(
		`SELECT traits_json FROM characters WHERE id = ?`), characterID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select character traits: %w", err)
	}

	var traits []world.Trait
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &traits); err != nil {
			return nil, fmt.Errorf("decode traits: %w", err)
		}
	}
	return traits, nil
}
