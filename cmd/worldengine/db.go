package main

import (
	"os"
	"path/filepath"

	"github.com/talgya/world-engine/internal/config"
	"github.com/talgya/world-engine/internal/danger"
	"github.com/talgya/world-engine/internal/decision"
	"github.com/talgya/world-engine/internal/engine"
	"github.com/talgya/world-engine/internal/store"
)

func loadTuning() (*config.Config, error) {
	if flagConfig == "" {
		return config.Default(), nil
	}
	return config.Load(flagConfig)
}

func openStore() (*store.SQL, error) {
	if flagDriver == "sqlite" {
		if dir := filepath.Dir(flagDSN); dir != "." {
			os.MkdirAll(dir, 0o755)
		}
	}
	return store.Open(flagDriver, flagDSN)
}

func newUpdater(db store.Store, cfg *config.Config) *engine.Updater {
	return &engine.Updater{
		Store:   db,
		Calc:    danger.NewCalculator(cfg.Danger),
		Decider: decision.NewEngine(decision.NewEvaluator(decision.NewScorer(cfg.TraitWeights))),
	}
}
