package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/world-engine/internal/danger"
	"github.com/talgya/world-engine/internal/decision"
	"github.com/talgya/world-engine/internal/store"
	"github.com/talgya/world-engine/internal/world"
)

// Updater executes one settlement-update cycle: expansion decisions for every
// settlement, then a danger refresh for every location and travel link.
type Updater struct {
	Store   store.Store
	Calc    *danger.Calculator
	Decider *decision.Engine

	// Theme restricts the blueprint catalogue when set.
	Theme *uuid.UUID
}

// CycleResult summarizes one cycle for logs and CLI output.
type CycleResult struct {
	Settlements int `json:"settlements"`
	Built       int `json:"built"`
	NoAction    int `json:"no_action"`
	Leaderless  int `json:"leaderless"`
	Errors      int `json:"errors"`

	LocationsAssessed int `json:"locations_assessed"`
	LinksAssessed     int `json:"links_assessed"`
}

// RunCycle runs expansion decisions and the danger refresh. A failure on one
// settlement is logged and counted, not fatal to the rest of the cycle;
// failures loading shared state abort the cycle.
func (u *Updater) RunCycle(ctx context.Context) (*CycleResult, error) {
	result := &CycleResult{}

	catalogue, err := u.Store.Blueprints(ctx, u.Theme)
	if err != nil {
		return nil, fmt.Errorf("load blueprint catalogue: %w", err)
	}

	settlements, err := u.Store.Settlements(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settlements: %w", err)
	}
	result.Settlements = len(settlements)

	for i := range settlements {
		st := &settlements[i]

		if st.LeaderID == nil {
			slog.Debug("settlement has no leader, skipping", "settlement", st.Name)
			result.Leaderless++
			continue
		}

		traits, err := u.Store.LeaderTraits(ctx, *st.LeaderID)
		if err != nil {
			slog.Error("loading leader traits failed", "settlement", st.Name, "error", err)
			result.Errors++
			continue
		}

		action, err := u.Decider.Decide(st, traits, catalogue)
		if err != nil {
			slog.Error("expansion decision failed", "settlement", st.Name, "error", err)
			result.Errors++
			continue
		}
		if action == nil {
			slog.Debug("nothing affordable this cycle", "settlement", st.Name)
			result.NoAction++
			continue
		}

		cost := costFor(catalogue, action.BlueprintID)
		if err := u.Store.ApplyConstruction(ctx, st.ID, action.BlueprintID, cost); err != nil {
			slog.Error("construction failed", "settlement", st.Name, "building", action.BlueprintName, "error", err)
			result.Errors++
			continue
		}

		slog.Info("construction started",
			"settlement", st.Name,
			"building", action.BlueprintName,
			"score", fmt.Sprintf("%.2f", action.Score),
		)
		result.Built++
	}

	if err := u.refreshDanger(ctx, result); err != nil {
		return nil, err
	}

	slog.Info("cycle complete",
		"settlements", humanize.Comma(int64(result.Settlements)),
		"built", result.Built,
		"no_action", result.NoAction,
		"leaderless", result.Leaderless,
		"errors", result.Errors,
		"locations", humanize.Comma(int64(result.LocationsAssessed)),
		"links", humanize.Comma(int64(result.LinksAssessed)),
	)
	return result, nil
}

// refreshDanger recomputes and persists the anonymous (no traveling
// character) danger level for every location and active travel link.
func (u *Updater) refreshDanger(ctx context.Context, result *CycleResult) error {
	locations, err := u.Store.Locations(ctx)
	if err != nil {
		return fmt.Errorf("load locations: %w", err)
	}
	for i := range locations {
		loc := &locations[i]
		level, err := u.Calc.LocationDanger(loc, nil)
		if err != nil {
			slog.Error("location assessment failed", "location", loc.Name, "error", err)
			result.Errors++
			continue
		}
		if err := u.Store.SaveLocationDanger(ctx, loc.ID, level); err != nil {
			return fmt.Errorf("save location danger: %w", err)
		}
		result.LocationsAssessed++
	}

	links, err := u.Store.TravelLinks(ctx)
	if err != nil {
		return fmt.Errorf("load travel links: %w", err)
	}
	for i := range links {
		link := &links[i]
		if !link.IsActive {
			continue
		}
		wildlife, err := u.Store.WildlifeForBiomes(ctx, link.BiomeIDs)
		if err != nil {
			return fmt.Errorf("load route wildlife: %w", err)
		}
		level, err := u.Calc.TravelDanger(link, wildlife, nil)
		if err != nil {
			slog.Error("travel assessment failed", "link", link.Name, "error", err)
			result.Errors++
			continue
		}
		if err := u.Store.SaveTravelDanger(ctx, link.ID, level); err != nil {
			return fmt.Errorf("save travel danger: %w", err)
		}
		result.LinksAssessed++
	}

	return nil
}

func costFor(catalogue []world.BuildingBlueprint, id uuid.UUID) map[uuid.UUID]int {
	for i := range catalogue {
		if catalogue[i].ID == id {
			return catalogue[i].Cost
		}
	}
	return nil
}
