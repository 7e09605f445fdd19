package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/talgya/world-engine/internal/world"
)

func openTestStore(t *testing.T) *SQL {
	t.Helper()
	s, err := Open("sqlite", filepath.Join(t.TempDir(), "world.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLocationRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	faction := uuid.New()
	loc := world.LocationInstance{
		ID:                   uuid.New(),
		Name:                 "Thornwood",
		SubType:              "forest_village",
		BaseDangerLevel:      3,
		ControllingFactionID: &faction,
		Wildlife: []world.WildlifePopulation{
			{ID: uuid.New(), Name: "wolf", Population: 6, DangerRating: 3, PackBehavior: true, PackSizeMin: 3, PackSizeMax: 8},
		},
	}
	if err := s.PutLocation(ctx, &loc); err != nil {
		t.Fatalf("put location: %v", err)
	}

	got, err := s.Location(ctx, loc.ID)
	if err != nil {
		t.Fatalf("get location: %v", err)
	}
	if got == nil {
		t.Fatalf("location not found after put")
	}
	if got.Name != "Thornwood" || got.BaseDangerLevel != 3 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.ControllingFactionID == nil || *got.ControllingFactionID != faction {
		t.Fatalf("controller lost in round trip")
	}
	if len(got.Wildlife) != 1 || got.Wildlife[0].Name != "wolf" || !got.Wildlife[0].PackBehavior {
		t.Fatalf("resident wildlife lost: %+v", got.Wildlife)
	}
}

func TestLocationAbsent(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Location(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent location, got %+v", got)
	}
}

func TestWildlifeForBiomes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	forest := uuid.New()
	tundra := uuid.New()

	wolves := world.WildlifePopulation{ID: uuid.New(), Name: "wolf", Population: 6, DangerRating: 3, PackBehavior: true, PackSizeMin: 3, PackSizeMax: 8}
	bears := world.WildlifePopulation{ID: uuid.New(), Name: "polar bear", Population: 2, DangerRating: 8}

	if err := s.PutWildlife(ctx, &wolves, []uuid.UUID{forest}); err != nil {
		t.Fatalf("put wolves: %v", err)
	}
	if err := s.PutWildlife(ctx, &bears, []uuid.UUID{tundra}); err != nil {
		t.Fatalf("put bears: %v", err)
	}

	got, err := s.WildlifeForBiomes(ctx, []uuid.UUID{forest})
	if err != nil {
		t.Fatalf("wildlife for biomes: %v", err)
	}
	if len(got) != 1 || got[0].Name != "wolf" {
		t.Fatalf("expected only the forest wolves, got %+v", got)
	}

	none, err := s.WildlifeForBiomes(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("no biomes should match no wildlife, got %+v", none)
	}
}

func TestRelationshipRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	character := uuid.New()
	faction := uuid.New()

	rel := world.FactionRelationship{
		CharacterID:     character,
		FactionID:       faction,
		ReputationScore: -60,
		Status:          world.StatusForScore(-60),
	}
	if err := s.PutRelationship(ctx, &rel); err != nil {
		t.Fatalf("put relationship: %v", err)
	}

	got, err := s.Relationship(ctx, character, faction)
	if err != nil {
		t.Fatalf("get relationship: %v", err)
	}
	if got == nil || got.ReputationScore != -60 || got.Status != world.StatusHostile {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// Absent standing is neutral, not an error.
	missing, err := s.Relationship(ctx, character, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown faction, got %+v", missing)
	}
}

func TestBlueprintsByTheme(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	theme := uuid.New()
	timber := uuid.New()

	themed := world.BuildingBlueprint{
		ID: uuid.New(), Name: "Palisade", ThemeID: &theme,
		Attributes: []world.Attribute{world.AttrDefensive},
		Cost:       map[uuid.UUID]int{timber: 40},
	}
	unthemed := world.BuildingBlueprint{
		ID: uuid.New(), Name: "Granary",
		Attributes: []world.Attribute{world.AttrProduction},
		Cost:       map[uuid.UUID]int{timber: 20},
	}
	if err := s.PutBlueprint(ctx, &themed); err != nil {
		t.Fatalf("put blueprint: %v", err)
	}
	if err := s.PutBlueprint(ctx, &unthemed); err != nil {
		t.Fatalf("put blueprint: %v", err)
	}

	all, err := s.Blueprints(ctx, nil)
	if err != nil {
		t.Fatalf("blueprints: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 blueprints, got %d", len(all))
	}

	filtered, err := s.Blueprints(ctx, &theme)
	if err != nil {
		t.Fatalf("blueprints by theme: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Palisade" {
		t.Fatalf("theme filter failed: %+v", filtered)
	}
	if filtered[0].Cost[timber] != 40 {
		t.Fatalf("cost table lost in round trip: %+v", filtered[0].Cost)
	}
}

func TestApplyConstruction(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	timber := uuid.New()
	stone := uuid.New()
	blueprint := uuid.New()

	leader := uuid.New()
	st := world.Settlement{
		ID: uuid.New(), Name: "Ironhaven", LeaderID: &leader,
		Resources: map[uuid.UUID]int{timber: 50, stone: 30},
	}
	if err := s.PutSettlement(ctx, &st); err != nil {
		t.Fatalf("put settlement: %v", err)
	}

	cost := map[uuid.UUID]int{timber: 30, stone: 30}
	if err := s.ApplyConstruction(ctx, st.ID, blueprint, cost); err != nil {
		t.Fatalf("apply construction: %v", err)
	}

	settlements, err := s.Settlements(ctx)
	if err != nil {
		t.Fatalf("settlements: %v", err)
	}
	if len(settlements) != 1 {
		t.Fatalf("expected 1 settlement, got %d", len(settlements))
	}
	got := settlements[0]
	if got.Resources[timber] != 20 || got.Resources[stone] != 0 {
		t.Fatalf("resources not deducted: %+v", got.Resources)
	}
	if len(got.BuildingIDs) != 1 || got.BuildingIDs[0] != blueprint {
		t.Fatalf("building not recorded: %+v", got.BuildingIDs)
	}

	// A second, now unaffordable construction must fail atomically and leave
	// the inventory untouched.
	if err := s.ApplyConstruction(ctx, st.ID, uuid.New(), cost); err == nil {
		t.Fatalf("expected construction to fail on short resources")
	}
	settlements, err = s.Settlements(ctx)
	if err != nil {
		t.Fatalf("settlements: %v", err)
	}
	if settlements[0].Resources[timber] != 20 {
		t.Fatalf("failed construction mutated inventory: %+v", settlements[0].Resources)
	}
	if len(settlements[0].BuildingIDs) != 1 {
		t.Fatalf("failed construction recorded a building")
	}
}

func TestApplyConstructionStaleInventory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	timber := uuid.New()
	leader := uuid.New()
	st := world.Settlement{
		ID: uuid.New(), Name: "Ironhaven", LeaderID: &leader,
		Resources: map[uuid.UUID]int{timber: 50},
	}
	if err := s.PutSettlement(ctx, &st); err != nil {
		t.Fatalf("put settlement: %v", err)
	}

	// The inventory as an overlapping cycle would have read it before the
	// competing construction committed.
	var stale string
	if err := s.conn.GetContext(ctx, &stale, s.rebind(
		`SELECT resources_json FROM settlements WHERE id = ?`), st.ID.String()); err != nil {
		t.Fatalf("read inventory: %v", err)
	}

	// Competing construction lands first.
	if err := s.ApplyConstruction(ctx, st.ID, uuid.New(), map[uuid.UUID]int{timber: 30}); err != nil {
		t.Fatalf("apply construction: %v", err)
	}

	// Replaying a deduction computed from the stale read must fail, not
	// overwrite the inventory.
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	staleDerived := map[uuid.UUID]int{timber: 20}
	if err := s.settleInventory(ctx, tx, st.ID, stale, staleDerived); err == nil {
		t.Fatalf("expected stale deduction to fail")
	}
	tx.Rollback()

	settlements, err := s.Settlements(ctx)
	if err != nil {
		t.Fatalf("settlements: %v", err)
	}
	if settlements[0].Resources[timber] != 20 {
		t.Fatalf("stale deduction mutated inventory: %+v", settlements[0].Resources)
	}
}

func TestSaveDangerLevels(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	loc := world.LocationInstance{ID: uuid.New(), Name: "Deep Mire", BaseDangerLevel: 4}
	if err := s.PutLocation(ctx, &loc); err != nil {
		t.Fatalf("put location: %v", err)
	}
	if err := s.SaveLocationDanger(ctx, loc.ID, 6.5); err != nil {
		t.Fatalf("save location danger: %v", err)
	}

	link := world.TravelLink{
		ID: uuid.New(), Name: "Mire Crossing",
		FromLocationID: loc.ID, ToLocationID: uuid.New(),
		Speed: 0.5, PathType: "swamp", Visibility: world.VisibilityHidden,
		BaseDangerLevel: 5, TerrainModifier: 2.0, IsActive: true,
	}
	if err := s.PutTravelLink(ctx, &link); err != nil {
		t.Fatalf("put travel link: %v", err)
	}
	if err := s.SaveTravelDanger(ctx, link.ID, 9.1); err != nil {
		t.Fatalf("save travel danger: %v", err)
	}

	links, err := s.TravelLinks(ctx)
	if err != nil {
		t.Fatalf("travel links: %v", err)
	}
	if len(links) != 1 || links[0].Visibility != world.VisibilityHidden || links[0].TerrainModifier != 2.0 {
		t.Fatalf("travel link round trip mismatch: %+v", links)
	}
}

func TestLeaderTraits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	leader := uuid.New()
	traits := []world.Trait{world.TraitDefensive, world.TraitEconomical}
	if err := s.PutCharacter(ctx, leader, "Mara Stonehand", traits); err != nil {
		t.Fatalf("put character: %v", err)
	}

	got, err := s.LeaderTraits(ctx, leader)
	if err != nil {
		t.Fatalf("leader traits: %v", err)
	}
	if len(got) != 2 || got[0] != world.TraitDefensive {
		t.Fatalf("traits round trip mismatch: %v", got)
	}

	none, err := s.LeaderTraits(ctx, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("unknown character should have no traits, got %v", none)
	}
}

func TestNearest(t *testing.T) {
	candidates := []string{"Ironhaven", "Thornwood", "Deep Mire"}

	tests := []struct {
		query string
		want  int
		ok    bool
	}{
		{"Ironhaven", 0, true},
		{"ironhaven", 0, true},
		{"Thornwod", 1, true},
		{"deep mire", 2, true},
		{"Atlantis", -1, false},
		{"", -1, false},
	}
	for _, tt := range tests {
		got, ok := Nearest(tt.query, candidates)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("Nearest(%q) = (%d, %v), want (%d, %v)", tt.query, got, ok, tt.want, tt.ok)
		}
	}
}
