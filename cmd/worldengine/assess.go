package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/talgya/world-engine/internal/danger"
	"github.com/talgya/world-engine/internal/store"
	"github.com/talgya/world-engine/internal/world"
)

func assessCmd() *cobra.Command {
	var character string
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Compute the current danger level of a location or travel route",
	}
	cmd.PersistentFlags().StringVar(&character, "character", "", "Character id whose faction standing modifies the assessment")

	location := &cobra.Command{
		Use:   "location <name>",
		Short: "Assess a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssessLocation(args[0], character)
		},
	}
	travel := &cobra.Command{
		Use:   "travel <name>",
		Short: "Assess a travel route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssessTravel(args[0], character)
		},
	}
	cmd.AddCommand(location)
	cmd.AddCommand(travel)
	return cmd
}

func parseOptionalID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func runAssessLocation(name, character string) error {
	ctx := context.Background()

	charID, err := parseOptionalID(character)
	if err != nil {
		return fmt.Errorf("invalid character id %q: %w", character, err)
	}

	cfg, err := loadTuning()
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	locations, err := db.Locations(ctx)
	if err != nil {
		return err
	}
	names := make([]string, len(locations))
	for i, loc := range locations {
		names[i] = loc.Name
	}
	idx, ok := store.Nearest(name, names)
	if !ok {
		return fmt.Errorf("no location matching %q", name)
	}
	loc := &locations[idx]

	var rel *world.FactionRelationship
	if charID != nil && loc.ControllingFactionID != nil {
		rel, err = db.Relationship(ctx, *charID, *loc.ControllingFactionID)
		if err != nil {
			return err
		}
	}

	calc := danger.NewCalculator(cfg.Danger)
	level, err := calc.LocationDanger(loc, rel)
	if err != nil {
		return err
	}

	fmt.Printf("%s: danger %.2f (%s)\n", loc.Name, level, calc.TierFor(level))
	for i := range loc.Wildlife {
		contribution, err := calc.WildlifeDanger(&loc.Wildlife[i])
		if err != nil {
			return err
		}
		fmt.Printf("  %s: population %d, danger %.1f\n", loc.Wildlife[i].Name, loc.Wildlife[i].Population, contribution)
	}
	return nil
}

func runAssessTravel(name, character string) error {
	ctx := context.Background()

	charID, err := parseOptionalID(character)
	if err != nil {
		return fmt.Errorf("invalid character id %q: %w", character, err)
	}

	cfg, err := loadTuning()
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	links, err := db.TravelLinks(ctx)
	if err != nil {
		return err
	}
	names := make([]string, len(links))
	for i, link := range links {
		names[i] = link.Name
	}
	idx, ok := store.Nearest(name, names)
	if !ok {
		return fmt.Errorf("no travel route matching %q", name)
	}
	link := &links[idx]

	wildlife, err := db.WildlifeForBiomes(ctx, link.BiomeIDs)
	if err != nil {
		return err
	}

	var rels []world.FactionRelationship
	if charID != nil {
		rels, err = db.Relationships(ctx, *charID)
		if err != nil {
			return err
		}
	}

	calc := danger.NewCalculator(cfg.Danger)
	level, err := calc.TravelDanger(link, wildlife, rels)
	if err != nil {
		return err
	}

	fmt.Printf("%s: danger %.2f (%s)\n", link.Name, level, calc.TierFor(level))
	if !link.IsActive {
		fmt.Println("  route is currently inactive")
	}
	return nil
}
