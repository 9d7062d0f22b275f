package rating

import (
	"github.com/google/uuid"
)

// Params are the rating update constants.
type Params struct {
	MinRating          float64
	MaxRating          float64
	DefaultPlayer      float64
	DefaultGoalkeeper  float64
	EliteThreshold     float64
	LegendaryThreshold float64
	EliteDamping       float64
	LegendaryDamping   float64
	PlayerScale        float64
	GoalkeeperScale    float64
	MaxChangePerEvent  float64
	CareerDamping      float64
}

// DefaultParams returns the standard parameter set.
func DefaultParams() Params {
	return Params{
		MinRating:          800,
		MaxRating:          3000,
		DefaultPlayer:      1200,
		DefaultGoalkeeper:  1250,
		EliteThreshold:     1700,
		LegendaryThreshold: 2100,
		EliteDamping:       0.6,
		LegendaryDamping:   0.3,
		PlayerScale:        0.008,
		GoalkeeperScale:    0.010,
		MaxChangePerEvent:  16,
		CareerDamping:      0.7,
	}
}

// ApplyInput carries everything one update needs, including the event
// coordinates recorded in the audit trail.
type ApplyInput struct {
	Season  string
	MatchID string
	Seq     int

	Team     string
	Action   string
	Kind     string
	Position string

	// Goalkeeper marks the participant as acting in the goalkeeper role.
	Goalkeeper bool

	// KeeperPenalty marks an update drawn from the goalkeeper penalty
	// table; its context multiplier is pinned to 1.0 upstream.
	KeeperPenalty bool

	BaseWeight        float64
	ContextMultiplier float64
	RoleMultiplier    float64
}

// Update is one audit record: every intermediate component of a single
// rating change.
type Update struct {
	ID      string
	Season  string
	MatchID string
	Seq     int

	Player     string
	Team       string
	Action     string
	Kind       string
	Position   string
	Goalkeeper bool

	BaseWeight        float64
	ContextMultiplier float64
	RoleMultiplier    float64
	EliteDamping      float64
	Scale             float64

	RawDelta     float64
	AppliedDelta float64
	RatingBefore float64
	RatingAfter  float64
	Clamped      bool
}

// Updater applies per-event rating changes.
type Updater struct {
	params Params
}

// Option applies a configuration option to the Updater.
type Option func(*Updater)

// WithParams replaces the parameter set.
func WithParams(p Params) Option {
	return func(u *Updater) { u.params = p }
}

// NewUpdater creates an Updater with default parameters.
func NewUpdater(opts ...Option) *Updater {
	u := &Updater{params: DefaultParams()}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Params returns the updater's parameter set.
func (u *Updater) Params() Params {
	return u.params
}

// Damping returns the elite damping factor for a rating.
func (u *Updater) Damping(rating float64) float64 {
	switch {
	case rating >= u.params.LegendaryThreshold:
		return u.params.LegendaryDamping
	case rating >= u.params.EliteThreshold:
		return u.params.EliteDamping
	default:
		return 1.0
	}
}

// Apply computes and applies one rating change. A zero base weight is a
// no-op: the second return is false and the state is untouched.
func (u *Updater) Apply(state *PlayerState, in ApplyInput) (Update, bool) {
	if in.BaseWeight == 0 {
		return Update{}, false
	}

	p := u.params

	if in.Goalkeeper {
		state.MarkGoalkeeper()
	}

	damping := u.Damping(state.Rating)
	scale := p.PlayerScale
	if state.Goalkeeper {
		scale = p.GoalkeeperScale
	}

	raw := in.BaseWeight * in.ContextMultiplier * in.RoleMultiplier * damping * scale

	applied := raw
	clamped := false
	if applied > p.MaxChangePerEvent {
		applied = p.MaxChangePerEvent
		clamped = true
	} else if applied < -p.MaxChangePerEvent {
		applied = -p.MaxChangePerEvent
		clamped = true
	}

	before := state.Rating
	after := before + applied
	if after > p.MaxRating {
		after = p.MaxRating
		clamped = true
	} else if after < p.MinRating {
		after = p.MinRating
		clamped = true
	}
	applied = after - before

	state.Rating = after
	state.CareerRating = bound(state.CareerRating+applied*p.CareerDamping, p.MinRating, p.MaxRating)
	state.AddMatchDelta(applied)

	if in.Goalkeeper {
		state.RecordKeeperAction(in.Action)
	}
	state.CountPosition(in.Position)
	state.CountClub(in.Team)

	return Update{
		ID:                uuid.NewString(),
		Season:            in.Season,
		MatchID:           in.MatchID,
		Seq:               in.Seq,
		Player:            state.Name,
		Team:              in.Team,
		Action:            in.Action,
		Kind:              in.Kind,
		Position:          in.Position,
		Goalkeeper:        in.Goalkeeper,
		BaseWeight:        in.BaseWeight,
		ContextMultiplier: in.ContextMultiplier,
		RoleMultiplier:    in.RoleMultiplier,
		EliteDamping:      damping,
		Scale:             scale,
		RawDelta:          raw,
		AppliedDelta:      applied,
		RatingBefore:      before,
		RatingAfter:       after,
		Clamped:           clamped,
	}, true
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
