package store

import (
	"encoding/json"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/google/uuid"
	"github.com/talgya/world-engine/internal/world"
)

// SQL implements Store over sqlx. SQLite is the default backend; postgres is
// available for shared deployments. Collection-valued columns (biome ids,
// attribute tags, cost tables) are stored as JSON text.
type SQL struct {
	conn *sqlx.DB
}

// Open opens the world database. driver is "sqlite" or "postgres".
func Open(driver, dsn string) (*SQL, error) {
	var conn *sqlx.DB
	var err error

	switch driver {
	case "sqlite":
		conn, err = sqlx.Open("sqlite", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	case "postgres":
		conn, err = sqlx.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQL{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQL) Close() error {
	return s.conn.Close()
}

func (s *SQL) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		sub_type TEXT NOT NULL DEFAULT '',
		base_danger_level INTEGER NOT NULL DEFAULT 1,
		controlling_faction_id TEXT,
		danger_level REAL
	);

	CREATE TABLE IF NOT EXISTS wildlife (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location_id TEXT,
		population INTEGER NOT NULL DEFAULT 1,
		danger_rating INTEGER NOT NULL DEFAULT 1,
		pack_behavior INTEGER NOT NULL DEFAULT 0,
		pack_size_min INTEGER NOT NULL DEFAULT 1,
		pack_size_max INTEGER NOT NULL DEFAULT 1,
		biome_ids_json TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS travel_links (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		from_location_id TEXT NOT NULL,
		to_location_id TEXT NOT NULL,
		speed REAL NOT NULL DEFAULT 1.0,
		path_type TEXT NOT NULL DEFAULT 'trail',
		visibility TEXT NOT NULL DEFAULT 'visible',
		base_danger_level INTEGER NOT NULL DEFAULT 1,
		terrain_modifier REAL NOT NULL DEFAULT 1.0,
		distance_km REAL NOT NULL DEFAULT 0,
		is_active INTEGER NOT NULL DEFAULT 1,
		biome_ids_json TEXT NOT NULL DEFAULT '[]',
		faction_ids_json TEXT NOT NULL DEFAULT '[]',
		danger_level REAL
	);

	CREATE TABLE IF NOT EXISTS faction_relationships (
		character_id TEXT NOT NULL,
		faction_id TEXT NOT NULL,
		reputation_score INTEGER NOT NULL DEFAULT 0,
		relationship_status TEXT NOT NULL DEFAULT 'neutral',
		PRIMARY KEY (character_id, faction_id)
	);

	CREATE TABLE IF NOT EXISTS characters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		traits_json TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS blueprints (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		theme_id TEXT,
		attributes_json TEXT NOT NULL DEFAULT '[]',
		cost_json TEXT NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS settlements (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		leader_id TEXT,
		resources_json TEXT NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS settlement_buildings (
		settlement_id TEXT NOT NULL,
		blueprint_id TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_wildlife_location ON wildlife(location_id);
	CREATE INDEX IF NOT EXISTS idx_links_from ON travel_links(from_location_id);
	CREATE INDEX IF NOT EXISTS idx_buildings_settlement ON settlement_buildings(settlement_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// rebind adapts ? placeholders to the active driver.
func (s *SQL) rebind(query string) string {
	return s.conn.Rebind(query)
}

func marshalIDs(ids []uuid.UUID) string {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	b, _ := json.Marshal(ids)
	return string(b)
}

func unmarshalIDs(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode id list: %w", err)
	}
	return ids, nil
}

func marshalCost(cost map[uuid.UUID]int) string {
	if cost == nil {
		cost = map[uuid.UUID]int{}
	}
	b, _ := json.Marshal(cost)
	return string(b)
}

func unmarshalCost(raw string) (map[uuid.UUID]int, error) {
	cost := make(map[uuid.UUID]int)
	if raw == "" {
		return cost, nil
	}
	if err := json.Unmarshal([]byte(raw), &cost); err != nil {
		return nil, fmt.Errorf("decode cost table: %w", err)
	}
	return cost, nil
}

func marshalAttrs(attrs []world.Attribute) string {
	if attrs == nil {
		attrs = []world.Attribute{}
	}
	b, _ := json.Marshal(attrs)
	return string(b)
}

func marshalTraits(traits []world.Trait) string {
	if traits == nil {
		traits = []world.Trait{}
	}
	b, _ := json.Marshal(traits)
	return string(b)
}
