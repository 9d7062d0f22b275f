// Package carryover computes season start ratings by regressing each
// entity's previous season toward the league mean.
//
// The carried distance is the previous distance from the mean scaled by
// four factors: how much the entity actually played, how elite it already
// was, how it trended late in the season, and how far out it sits. Strong
// finishers with a full season keep most of their distance; thin samples
// and extreme outliers regress hard.
package carryover

// Status labels an entity's tier going into the carryover.
type Status int

const (
	Normal Status = iota
	Elite
	Legendary
)

// Summary is what the previous season left behind for one entity.
type Summary struct {
	// Rating is the final rating of the previous season.
	Rating float64

	// Games is the number of matches played in the previous season.
	Games int

	// Status is the entity's tier at the previous season's end.
	Status Status

	// Momentum is the mean of the entity's late-season per-match deltas.
	Momentum float64
}

// Factors records every component of one carryover for the audit trail.
type Factors struct {
	GamesFactor      float64
	EliteFactor      float64
	MomentumFactor   float64
	DistanceFactor   float64
	Combined         float64
	ExceptionalBonus float64
	Capped           bool
}

// Params are the carryover constants.
type Params struct {
	FullCarryGames  int
	MaxCarryBonus   float64
	MaxCarryPenalty float64
	EliteFactor     float64
	LegendaryFactor float64

	DefaultPlayer     float64
	DefaultGoalkeeper float64
	DefaultTeam       float64
}

// DefaultParams returns the standard carryover constants.
func DefaultParams() Params {
	return Params{
		FullCarryGames:    12,
		MaxCarryBonus:     400,
		MaxCarryPenalty:   -200,
		EliteFactor:       0.70,
		LegendaryFactor:   0.55,
		DefaultPlayer:     1200,
		DefaultGoalkeeper: 1250,
		DefaultTeam:       1350,
	}
}

// Engine computes start ratings.
type Engine struct {
	params Params
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithParams replaces the parameter set.
func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p }
}

// New creates an Engine with default constants.
func New(opts ...Option) *Engine {
	e := &Engine{params: DefaultParams()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultPlayerRating returns the first-appearance rating for a player or
// goalkeeper.
func (e *Engine) DefaultPlayerRating(goalkeeper bool) float64 {
	if goalkeeper {
		return e.params.DefaultGoalkeeper
	}
	return e.params.DefaultPlayer
}

// DefaultTeamRating returns the first-appearance rating for a team.
func (e *Engine) DefaultTeamRating() float64 {
	return e.params.DefaultTeam
}

// StartRating computes the new season's start rating from the previous
// season and the league mean, with the factor breakdown.
func (e *Engine) StartRating(sum Summary, leagueMean float64) (float64, Factors) {
	p := e.params

	distance := sum.Rating - leagueMean

	f := Factors{
		GamesFactor:    e.gamesFactor(sum.Games),
		EliteFactor:    e.eliteFactor(sum.Status, distance),
		MomentumFactor: momentumFactor(sum.Momentum),
		DistanceFactor: distanceFactor(distance),
	}
	f.Combined = f.GamesFactor * f.EliteFactor * f.MomentumFactor * f.DistanceFactor
	f.ExceptionalBonus = e.exceptionalBonus(sum)

	start := leagueMean + distance*f.Combined + f.ExceptionalBonus

	// Asymmetric swing caps relative to the previous rating.
	if start > sum.Rating+p.MaxCarryBonus {
		start = sum.Rating + p.MaxCarryBonus
		f.Capped = true
	}
	if start < sum.Rating+p.MaxCarryPenalty {
		start = sum.Rating + p.MaxCarryPenalty
		f.Capped = true
	}

	return start, f
}

// A thin sample says little; carry shrinks fast below a full season.
func (e *Engine) gamesFactor(games int) float64 {
	full := float64(e.params.FullCarryGames)
	g := float64(games)
	switch {
	case g >= full:
		return 1.0
	case g >= full*2/3:
		return 0.7 + 0.3*(g-full*2/3)/(full/3)
	case g >= full/3:
		return 0.4 + 0.3*(g-full/3)/(full/3)
	default:
		return 0.25
	}
}

func (e *Engine) eliteFactor(status Status, distance float64) float64 {
	switch status {
	case Legendary:
		return e.params.LegendaryFactor
	case Elite:
		return e.params.EliteFactor
	default:
		if distance > 50 {
			return 0.85
		}
		return 0.95
	}
}

func momentumFactor(m float64) float64 {
	switch {
	case m > 10:
		return 1.15
	case m > 5:
		return 1.08
	case m > 1:
		return 1.02
	case m >= -1:
		return 1.0
	case m >= -5:
		return 0.95
	default:
		return 0.85
	}
}

// Far above the mean regresses gently; far below snaps back hard. Struggling
// entities get most of the way home.
func distanceFactor(distance float64) float64 {
	if distance >= 0 {
		switch {
		case distance > 500:
			return 0.85
		case distance > 400:
			return 0.90
		case distance > 300:
			return 0.95
		case distance > 200:
			return 0.97
		case distance > 100:
			return 0.98
		default:
			return 0.99
		}
	}
	d := -distance
	switch {
	case d > 400:
		return 0.15
	case d > 300:
		return 0.25
	case d > 200:
		return 0.35
	case d > 100:
		return 0.55
	default:
		return 0.75
	}
}

// exceptionalBonus rewards sustained hot finishes over a real sample.
func (e *Engine) exceptionalBonus(sum Summary) float64 {
	switch {
	case sum.Momentum > 8 && sum.Games >= e.params.FullCarryGames:
		return minf(120, (sum.Momentum-8)*8)
	case sum.Momentum > 5 && sum.Games >= e.params.FullCarryGames*2/3:
		return minf(60, (sum.Momentum-5)*6)
	default:
		return 0
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
