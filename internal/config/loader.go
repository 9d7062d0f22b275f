package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if HANDELO_CONFIG is set
//  3. env (prefix HANDELO_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("HANDELO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables override top-level keys only, e.g.
	// HANDELO_OUTPUT_DIR -> output_dir. Underscores are preserved so keys
	// match the koanf tags; nested sections are file-only.
	envProvider := env.Provider("HANDELO_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "handelo_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Rating.MinRating >= c.Rating.MaxRating {
		return fmt.Errorf("%w: min_rating must be below max_rating", ErrInvalidConfig)
	}
	if c.Rating.MaxChangePerEvent <= 0 {
		return fmt.Errorf("%w: max_change_per_event must be positive", ErrInvalidConfig)
	}
	if c.Importance.MinMultiplier > c.Importance.MaxMultiplier {
		return fmt.Errorf("%w: multiplier clamp range is inverted", ErrInvalidConfig)
	}
	if c.Carryover.MaxCarryPenalty > 0 {
		return fmt.Errorf("%w: max_carry_penalty must not be positive", ErrInvalidConfig)
	}
	if c.RecentFormWindow <= 0 {
		return fmt.Errorf("%w: recent_form_window must be positive", ErrInvalidConfig)
	}
	for i, tier := range c.Team.GoalDiffTiers {
		if tier.Multiplier <= 0 {
			return fmt.Errorf("%w: goal_diff_tiers multipliers must be positive", ErrInvalidConfig)
		}
		if i > 0 && tier.MaxDiff <= c.Team.GoalDiffTiers[i-1].MaxDiff {
			return fmt.Errorf("%w: goal_diff_tiers margins must ascend", ErrInvalidConfig)
		}
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	return nil
}
