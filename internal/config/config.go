// Package config holds the engine's tuning tables: danger constants and the
// trait-to-attribute weight table. Everything the calculators and the scorer
// treat as policy lives here, loaded from yaml with sane defaults, so tuning
// stays data-driven and testable without touching the engine code.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/world-engine/internal/world"
)

// DangerConfig collects the scalar constants of the danger calculators.
type DangerConfig struct {
	// PackBonusFactor is the per-complete-pack multiplier bonus applied to a
	// pack-hunting population's base danger.
	PackBonusFactor float64 `yaml:"pack_bonus_factor"`

	// ReputationDivisor maps reputation linearly onto a danger adjustment:
	// adjustment = -reputation / divisor. With the default 20, +100
	// reputation yields -5 danger and -100 yields +5.
	ReputationDivisor float64 `yaml:"reputation_divisor"`

	// WildlifeNormalization scales summed wildlife danger down so creature
	// populations contribute a bounded delta on the base danger scale rather
	// than dominating it.
	WildlifeNormalization float64 `yaml:"wildlife_normalization"`

	// ScaleMax is the upper bound of the shared danger scale used for base
	// danger levels (0 = safe).
	ScaleMax int `yaml:"scale_max"`
}

// WeightTable maps each leader trait to the building-attribute categories it
// favors and how strongly.
type WeightTable map[world.Trait]map[world.Attribute]float64

// Config is the full tuning configuration.
type Config struct {
	Danger       DangerConfig `yaml:"danger"`
	TraitWeights WeightTable  `yaml:"trait_weights"`
}

// Default returns the built-in tuning values. The weight table gives each
// trait a primary category at 1.0 and secondary categories at 0.3.
func Default() *Config {
	return &Config{
		Danger: DangerConfig{
			PackBonusFactor:       0.5,
			ReputationDivisor:     20,
			WildlifeNormalization: 10,
			ScaleMax:              10,
		},
		TraitWeights: WeightTable{
			world.TraitDefensive: {
				world.AttrDefensive: 1.0,
				world.AttrMilitary:  0.3,
			},
			world.TraitAggressive: {
				world.AttrMilitary:  1.0,
				world.AttrExpansion: 0.3,
			},
			world.TraitSupportive: {
				world.AttrResidential:    1.0,
				world.AttrInfrastructure: 0.3,
			},
			world.TraitStrategic: {
				world.AttrDefensive:      1.0,
				world.AttrMilitary:       0.3,
				world.AttrAdministrative: 0.3,
			},
			world.TraitEconomical: {
				world.AttrEconomic:   1.0,
				world.AttrProduction: 0.3,
			},
			world.TraitExpansive: {
				world.AttrExpansion:   1.0,
				world.AttrEconomic:    0.3,
				world.AttrResidential: 0.3,
			},
			world.TraitCultural: {
				world.AttrCultural:  1.0,
				world.AttrSpiritual: 0.3,
			},
			world.TraitSpiritual: {
				world.AttrSpiritual: 1.0,
				world.AttrCultural:  0.3,
			},
		},
	}
}

// configFile mirrors Config with pointer scalars so Load can tell an absent
// key from an explicit zero. "pack_bonus_factor: 0" is a valid way to switch
// the pack bonus off, not a request for the default.
type configFile struct {
	Danger struct {
		PackBonusFactor       *float64 `yaml:"pack_bonus_factor"`
		ReputationDivisor     *float64 `yaml:"reputation_divisor"`
		WildlifeNormalization *float64 `yaml:"wildlife_normalization"`
		ScaleMax              *int     `yaml:"scale_max"`
	} `yaml:"danger"`
	TraitWeights WeightTable `yaml:"trait_weights"`
}

// Load reads a yaml tuning file over the defaults. A missing key keeps its
// default; a present trait_weights section replaces the default table
// wholesale so operators can remove mappings, not just add them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading tuning config: %w", err)
	}

	cfg := Default()

	var loaded configFile
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("loading tuning config: %w", err)
	}

	if loaded.Danger.PackBonusFactor != nil {
		cfg.Danger.PackBonusFactor = *loaded.Danger.PackBonusFactor
	}
	if loaded.Danger.ReputationDivisor != nil {
		cfg.Danger.ReputationDivisor = *loaded.Danger.ReputationDivisor
	}
	if loaded.Danger.WildlifeNormalization != nil {
		cfg.Danger.WildlifeNormalization = *loaded.Danger.WildlifeNormalization
	}
	if loaded.Danger.ScaleMax != nil {
		cfg.Danger.ScaleMax = *loaded.Danger.ScaleMax
	}
	if loaded.TraitWeights != nil {
		cfg.TraitWeights = loaded.TraitWeights
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading tuning config: %w", err)
	}

	return cfg, nil
}

// Validate checks the tuning values against the closed vocabularies.
func (c *Config) Validate() error {
	if c.Danger.PackBonusFactor < 0 {
		return fmt.Errorf("pack_bonus_factor must be >= 0, got %g", c.Danger.PackBonusFactor)
	}
	if c.Danger.ReputationDivisor <= 0 {
		return fmt.Errorf("reputation_divisor must be > 0, got %g", c.Danger.ReputationDivisor)
	}
	if c.Danger.WildlifeNormalization <= 0 {
		return fmt.Errorf("wildlife_normalization must be > 0, got %g", c.Danger.WildlifeNormalization)
	}
	if c.Danger.ScaleMax <= 0 {
		return fmt.Errorf("scale_max must be > 0, got %d", c.Danger.ScaleMax)
	}

	knownTraits := make(map[world.Trait]bool, len(world.Traits()))
	for _, t := range world.Traits() {
		knownTraits[t] = true
	}
	knownAttrs := make(map[world.Attribute]bool, len(world.Attributes()))
	for _, a := range world.Attributes() {
		knownAttrs[a] = true
	}

	for trait, weights := range c.TraitWeights {
		if !knownTraits[trait] {
			return fmt.Errorf("unknown trait in weight table: %s", trait)
		}
		for attr, weight := range weights {
			if !knownAttrs[attr] {
				return fmt.Errorf("unknown attribute for trait %s: %s", trait, attr)
			}
			if weight < 0 {
				return fmt.Errorf("negative weight %g for trait %s attribute %s", weight, trait, attr)
			}
		}
	}

	return nil
}
