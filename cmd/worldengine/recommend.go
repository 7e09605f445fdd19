package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/talgya/world-engine/internal/decision"
	"github.com/talgya/world-engine/internal/store"
)

func recommendCmd() *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:   "recommend <settlement>",
		Short: "Rank building blueprints for a settlement by leader affinity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(args[0], theme)
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "Restrict the catalogue to a theme id")
	return cmd
}

func runRecommend(name, theme string) error {
	ctx := context.Background()

	themeID, err := parseOptionalID(theme)
	if err != nil {
		return fmt.Errorf("invalid theme id %q: %w", theme, err)
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

	settlements, err := db.Settlements(ctx)
	if err != nil {
		return err
	}
	names := make([]string, len(settlements))
	for i, st := range settlements {
		names[i] = st.Name
	}
	idx, ok := store.Nearest(name, names)
	if !ok {
		return fmt.Errorf("no settlement matching %q", name)
	}
	st := &settlements[idx]

	if st.LeaderID == nil {
		return fmt.Errorf("settlement %s has no leader to recommend for", st.Name)
	}
	traits, err := db.LeaderTraits(ctx, *st.LeaderID)
	if err != nil {
		return err
	}

	catalogue, err := db.Blueprints(ctx, themeID)
	if err != nil {
		return err
	}
	if len(catalogue) == 0 {
		fmt.Println("no blueprints available")
		return nil
	}

	eval := decision.NewEvaluator(decision.NewScorer(cfg.TraitWeights))
	recs, err := eval.Recommend(st, traits, catalogue)
	if err != nil {
		return err
	}

	fmt.Printf("%s (leader traits: %v)\n", st.Name, traits)
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tBLUEPRINT\tSCORE\tAFFORDABLE")
	for i, rec := range recs {
		affordable := "yes"
		if !rec.Affordable {
			affordable = "no"
		}
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\n", i+1, rec.Blueprint.Name, rec.Score, affordable)
	}
	return w.Flush()
}
