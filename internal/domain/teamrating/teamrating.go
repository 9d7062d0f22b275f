// Package teamrating moves team ratings two ways: a per-event trickle of
// player deltas during play, and a post-match linear-expectation settlement
// scaled by the final goal margin.
package teamrating

import (
	"github.com/hballab/handelo/internal/domain/rating"
)

// GoalDiffTier maps a maximum goal margin to a K multiplier.
type GoalDiffTier struct {
	MaxDiff    int
	Multiplier float64
}

// Params are the team rating constants.
type Params struct {
	KFactor          float64
	HomeAdvantage    float64
	ExpectationBase  float64
	ExpectationSlope float64

	// CertainWinDiff and CertainLossDiff short-circuit the expectation to
	// 1.0 and 0.0 at extreme rating gaps.
	CertainWinDiff  float64
	CertainLossDiff float64

	TrickleShare float64
	TrickleCap   float64

	MinRating float64
	MaxRating float64

	GoalDiffTiers   []GoalDiffTier
	GoalDiffCeiling float64
}

// DefaultParams returns the standard team constants.
func DefaultParams() Params {
	return Params{
		KFactor:          14,
		HomeAdvantage:    25,
		ExpectationBase:  0.55,
		ExpectationSlope: 0.0012,
		CertainWinDiff:   300,
		CertainLossDiff:  -350,
		TrickleShare:     0.2,
		TrickleCap:       3,
		MinRating:        800,
		MaxRating:        3000,
		GoalDiffTiers: []GoalDiffTier{
			{MaxDiff: 1, Multiplier: 1.0},
			{MaxDiff: 2, Multiplier: 1.1},
			{MaxDiff: 5, Multiplier: 1.3},
			{MaxDiff: 10, Multiplier: 1.6},
			{MaxDiff: 15, Multiplier: 1.8},
		},
		GoalDiffCeiling: 2.0,
	}
}

// Settlement is the audit record of one post-match adjustment.
type Settlement struct {
	Season    string
	MatchID   string
	HomeTeam  string
	AwayTeam  string
	HomeGoals int
	AwayGoals int

	ExpectedHome       float64
	ResultHome         float64
	GoalDiffMultiplier float64
	HomeDelta          float64
}

// Rater applies team rating movements.
type Rater struct {
	params Params
}

// Option applies a configuration option to the Rater.
type Option func(*Rater)

// WithParams replaces the parameter set.
func WithParams(p Params) Option {
	return func(r *Rater) { r.params = p }
}

// New creates a Rater with default constants.
func New(opts ...Option) *Rater {
	r := &Rater{params: DefaultParams()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Trickle moves a damped, capped share of a player's delta onto the team.
// Returns the applied team delta.
func (r *Rater) Trickle(team *rating.TeamState, playerDelta float64) float64 {
	p := r.params
	delta := playerDelta * p.TrickleShare
	if delta > p.TrickleCap {
		delta = p.TrickleCap
	} else if delta < -p.TrickleCap {
		delta = -p.TrickleCap
	}

	before := team.Rating
	after := bound(before+delta, p.MinRating, p.MaxRating)
	team.Rating = after
	applied := after - before
	team.AddMatchDelta(applied)
	return applied
}

// SettleMatch applies the zero-sum post-match adjustment and returns its
// record. Ratings stay within bounds.
func (r *Rater) SettleMatch(home, away *rating.TeamState, sett Settlement) Settlement {
	p := r.params

	diff := (home.Rating + p.HomeAdvantage) - away.Rating
	expected := r.expectation(diff)

	var result float64
	switch {
	case sett.HomeGoals > sett.AwayGoals:
		result = 1.0
	case sett.HomeGoals == sett.AwayGoals:
		result = 0.5
	default:
		result = 0.0
	}

	gd := sett.HomeGoals - sett.AwayGoals
	if gd < 0 {
		gd = -gd
	}
	mult := r.goalDiffMultiplier(gd)

	delta := p.KFactor * mult * (result - expected)

	home.Rating = bound(home.Rating+delta, p.MinRating, p.MaxRating)
	away.Rating = bound(away.Rating-delta, p.MinRating, p.MaxRating)
	home.AddMatchDelta(delta)
	away.AddMatchDelta(-delta)

	sett.ExpectedHome = expected
	sett.ResultHome = result
	sett.GoalDiffMultiplier = mult
	sett.HomeDelta = delta
	return sett
}

func (r *Rater) expectation(diff float64) float64 {
	p := r.params
	switch {
	case diff >= p.CertainWinDiff:
		return 1.0
	case diff <= p.CertainLossDiff:
		return 0.0
	}
	return bound(p.ExpectationBase+p.ExpectationSlope*diff, 0, 1)
}

func (r *Rater) goalDiffMultiplier(gd int) float64 {
	if gd == 0 {
		return 1.0
	}
	for _, t := range r.params.GoalDiffTiers {
		if gd <= t.MaxDiff {
			return t.Multiplier
		}
	}
	return r.params.GoalDiffCeiling
}

func bound(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
