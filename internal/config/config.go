// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults.
//   - Every numeric rating threshold lives here or in a domain default table,
//     never as an inline literal at the call site.
//   - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration for a rating run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr exposes the Prometheus registry when non-empty, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// DatabaseURL is the PostgreSQL DSN of the event warehouse. When empty
	// the run uses the in-memory fixture source.
	DatabaseURL string `koanf:"database_url"`

	// OutputDir is where season, career, and audit CSV files are written.
	OutputDir string `koanf:"output_dir"`

	// WriteAudit enables the per-event audit CSV trail.
	WriteAudit bool `koanf:"write_audit"`

	// RecentFormWindow is the number of trailing per-match deltas retained
	// per entity for carryover momentum.
	RecentFormWindow int `koanf:"recent_form_window"`

	Rating     RatingConfig     `koanf:"rating"`
	Importance ImportanceConfig `koanf:"importance"`
	Carryover  CarryoverConfig  `koanf:"carryover"`
	Team       TeamConfig       `koanf:"team"`

	// ActionWeights overrides the built-in base weight table when non-empty.
	ActionWeights map[string]float64 `koanf:"action_weights"`

	// KeeperPenaltyWeights overrides the built-in goalkeeper penalty table
	// when non-empty.
	KeeperPenaltyWeights map[string]float64 `koanf:"keeper_penalty_weights"`
}

// RatingConfig holds the rating update constants.
type RatingConfig struct {
	MinRating          float64 `koanf:"min_rating"`
	MaxRating          float64 `koanf:"max_rating"`
	DefaultPlayer      float64 `koanf:"default_player"`
	DefaultGoalkeeper  float64 `koanf:"default_goalkeeper"`
	DefaultTeam        float64 `koanf:"default_team"`
	EliteThreshold     float64 `koanf:"elite_threshold"`
	LegendaryThreshold float64 `koanf:"legendary_threshold"`
	EliteDamping       float64 `koanf:"elite_damping"`
	LegendaryDamping   float64 `koanf:"legendary_damping"`
	PlayerScale        float64 `koanf:"player_scale"`
	GoalkeeperScale    float64 `koanf:"goalkeeper_scale"`
	MaxChangePerEvent  float64 `koanf:"max_change_per_event"`
	CareerDamping      float64 `koanf:"career_damping"`
}

// ImportanceConfig holds the context multiplier blend weights and clamps.
type ImportanceConfig struct {
	TimingWeight        float64 `koanf:"timing_weight"`
	ScoreWeight         float64 `koanf:"score_weight"`
	MomentumWeight      float64 `koanf:"momentum_weight"`
	ActionKindWeight    float64 `koanf:"action_kind_weight"`
	SituationWeight     float64 `koanf:"situation_weight"`
	KeeperClutchWeight  float64 `koanf:"keeper_clutch_weight"`
	MinMultiplier       float64 `koanf:"min_multiplier"`
	MaxMultiplier       float64 `koanf:"max_multiplier"`
	CriticalThreshold   float64 `koanf:"critical_threshold"`
	DefaultMatchMinutes float64 `koanf:"default_match_minutes"`
}

// CarryoverConfig holds the season regression constants.
type CarryoverConfig struct {
	FullCarryGames  int     `koanf:"full_carry_games"`
	MaxCarryBonus   float64 `koanf:"max_carry_bonus"`
	MaxCarryPenalty float64 `koanf:"max_carry_penalty"`
	EliteFactor     float64 `koanf:"elite_factor"`
	LegendaryFactor float64 `koanf:"legendary_factor"`
}

// TeamConfig holds the team rating constants.
type TeamConfig struct {
	KFactor          float64 `koanf:"k_factor"`
	HomeAdvantage    float64 `koanf:"home_advantage"`
	ExpectationBase  float64 `koanf:"expectation_base"`
	ExpectationSlope float64 `koanf:"expectation_slope"`
	CertainWinDiff   float64 `koanf:"certain_win_diff"`
	CertainLossDiff  float64 `koanf:"certain_loss_diff"`
	TrickleShare     float64 `koanf:"trickle_share"`
	TrickleCap       float64 `koanf:"trickle_cap"`

	// GoalDiffTiers maps goal margins to K multipliers; margins above the
	// last tier use GoalDiffCeiling.
	GoalDiffTiers   []GoalDiffTierConfig `koanf:"goal_diff_tiers"`
	GoalDiffCeiling float64              `koanf:"goal_diff_ceiling"`
}

// GoalDiffTierConfig is one goal-margin tier of the settlement K factor.
type GoalDiffTierConfig struct {
	MaxDiff    int     `koanf:"max_diff"`
	Multiplier float64 `koanf:"multiplier"`
}

// New creates a Config with the default parameter set.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		MetricsAddr:      "",
		DatabaseURL:      "",
		OutputDir:        "results",
		WriteAudit:       true,
		RecentFormWindow: 5,
		Rating: RatingConfig{
			MinRating:          800,
			MaxRating:          3000,
			DefaultPlayer:      1200,
			DefaultGoalkeeper:  1250,
			DefaultTeam:        1350,
			EliteThreshold:     1700,
			LegendaryThreshold: 2100,
			EliteDamping:       0.6,
			LegendaryDamping:   0.3,
			PlayerScale:        0.008,
			GoalkeeperScale:    0.010,
			MaxChangePerEvent:  16,
			CareerDamping:      0.7,
		},
		Importance: ImportanceConfig{
			TimingWeight:        0.25,
			ScoreWeight:         0.25,
			MomentumWeight:      0.25,
			ActionKindWeight:    0.10,
			SituationWeight:     0.10,
			KeeperClutchWeight:  0.05,
			MinMultiplier:       0.4,
			MaxMultiplier:       5.0,
			CriticalThreshold:   2.5,
			DefaultMatchMinutes: 30.0,
		},
		Carryover: CarryoverConfig{
			FullCarryGames:  12,
			MaxCarryBonus:   400,
			MaxCarryPenalty: -200,
			EliteFactor:     0.70,
			LegendaryFactor: 0.55,
		},
		Team: TeamConfig{
			KFactor:          14,
			HomeAdvantage:    25,
			ExpectationBase:  0.55,
			ExpectationSlope: 0.0012,
			CertainWinDiff:   300,
			CertainLossDiff:  -350,
			TrickleShare:     0.2,
			TrickleCap:       3,
			GoalDiffTiers: []GoalDiffTierConfig{
				{MaxDiff: 1, Multiplier: 1.0},
				{MaxDiff: 2, Multiplier: 1.1},
				{MaxDiff: 5, Multiplier: 1.3},
				{MaxDiff: 10, Multiplier: 1.6},
				{MaxDiff: 15, Multiplier: 1.8},
			},
			GoalDiffCeiling: 2.0,
		},
	}
}
