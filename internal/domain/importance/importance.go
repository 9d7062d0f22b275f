// Package importance computes the blended context multiplier applied to an
// event's base weight: how much the moment mattered.
//
// Six components feed a fixed weighted blend: match timing, score proximity,
// momentum, action-kind scaling, a situational bonus, and a goalkeeper
// clutch bonus. The blend is clamped to a configured range so no single
// moment can dominate a season.
package importance

import (
	"math"

	"github.com/hballab/handelo/internal/domain/action"
)

// Input describes one attributed event in its match context. Scores are
// read after the event; for goal actions the engine rewinds one goal to
// reconstruct the pre-shot scoreboard.
type Input struct {
	// Minute is the match clock in minutes.
	Minute float64

	// ActorScore and OpponentScore are the goals for and against the
	// acting player's team.
	ActorScore    int
	OpponentScore int

	// Action is the label the participant is rated on.
	Action string

	// Kind is the action's impact direction.
	Kind action.Kind

	// Goalkeeper marks a goalkeeper-role participant.
	Goalkeeper bool
}

// Breakdown carries every component of the blend for the audit trail.
type Breakdown struct {
	Timing         float64
	ScoreProximity float64
	Momentum       float64
	ActionScale    float64
	Situation      float64
	KeeperClutch   float64
	Combined       float64
}

// Weights are the blend coefficients. They should sum to one.
type Weights struct {
	Timing       float64
	Score        float64
	Momentum     float64
	ActionKind   float64
	Situation    float64
	KeeperClutch float64
}

// DefaultWeights returns the standard blend.
func DefaultWeights() Weights {
	return Weights{
		Timing:       0.25,
		Score:        0.25,
		Momentum:     0.25,
		ActionKind:   0.10,
		Situation:    0.10,
		KeeperClutch: 0.05,
	}
}

// Window is a half-ordered match-clock interval with an associated factor.
// Evaluation is first-match-wins, bounds inclusive.
type Window struct {
	Min   float64
	Max   float64
	Value float64
}

// ProximityTier maps a maximum absolute score difference to a factor.
type ProximityTier struct {
	MaxDiff int
	Value   float64
}

// Engine computes context multipliers.
type Engine struct {
	weights           Weights
	minMultiplier     float64
	maxMultiplier     float64
	criticalThreshold float64
	defaultMinute     float64
	timingWindows     []Window
	proximityTiers    []ProximityTier
	proximityFloor    float64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights sets the blend coefficients.
func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithClamp sets the multiplier clamp range.
func WithClamp(minMult, maxMult float64) Option {
	return func(e *Engine) {
		if minMult <= maxMult {
			e.minMultiplier = minMult
			e.maxMultiplier = maxMult
		}
	}
}

// WithCriticalThreshold sets the combined value above which a moment counts
// as critical.
func WithCriticalThreshold(threshold float64) Option {
	return func(e *Engine) {
		if threshold > 0 {
			e.criticalThreshold = threshold
		}
	}
}

// WithDefaultMinute sets the clock value substituted for unparseable times.
func WithDefaultMinute(minute float64) Option {
	return func(e *Engine) {
		if minute >= 0 {
			e.defaultMinute = minute
		}
	}
}

// WithTimingWindows replaces the timing tier table.
func WithTimingWindows(windows []Window) Option {
	return func(e *Engine) {
		if len(windows) > 0 {
			e.timingWindows = windows
		}
	}
}

// New creates an Engine with the standard tier tables.
func New(opts ...Option) *Engine {
	e := &Engine{
		weights:           DefaultWeights(),
		minMultiplier:     0.4,
		maxMultiplier:     5.0,
		criticalThreshold: 2.5,
		defaultMinute:     30.0,
		timingWindows:     defaultTimingWindows(),
		proximityTiers:    defaultProximityTiers(),
		proximityFloor:    0.8,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// The dying minutes of either half weigh heaviest; a 60-minute match has its
// regular-time climax from minute 58.
func defaultTimingWindows() []Window {
	return []Window{
		{Min: 58, Max: math.Inf(1), Value: 3.0},
		{Min: 55, Max: 58, Value: 2.4},
		{Min: 50, Max: 55, Value: 1.8},
		{Min: 28, Max: 30, Value: 1.6},
		{Min: 25, Max: 28, Value: 1.4},
		{Min: 45, Max: 50, Value: 1.5},
		{Min: 40, Max: 45, Value: 1.2},
	}
}

func defaultProximityTiers() []ProximityTier {
	return []ProximityTier{
		{MaxDiff: 0, Value: 2.2},
		{MaxDiff: 1, Value: 1.9},
		{MaxDiff: 2, Value: 1.6},
		{MaxDiff: 4, Value: 1.3},
		{MaxDiff: 6, Value: 1.1},
	}
}

var goalActions = map[string]struct{}{
	"Mål":            {},
	"Mål på straffe": {},
}

var saveActions = map[string]struct{}{
	"Skud reddet":        {},
	"Straffekast reddet": {},
}

var cardActions = map[string]struct{}{
	"Advarsel":           {},
	"Udvisning":          {},
	"Udvisning (2x)":     {},
	"Blåt kort":          {},
	"Rødt kort":          {},
	"Rødt kort, direkte": {},
}

var turnoverActions = map[string]struct{}{
	"Fejlaflevering": {},
	"Tabt bold":      {},
	"Forårs. str.":   {},
}

var sloppyActions = map[string]struct{}{
	"Regelfejl":    {},
	"Passivt spil": {},
}

// Assess computes the full breakdown for one attributed event.
func (e *Engine) Assess(in Input) Breakdown {
	minute := in.Minute
	if minute < 0 || math.IsNaN(minute) {
		minute = e.defaultMinute
	}

	b := Breakdown{
		Timing:         e.timing(minute),
		ScoreProximity: e.proximity(in.ActorScore, in.OpponentScore),
		Momentum:       e.momentum(in),
		ActionScale:    actionScale(in.Kind),
		Situation:      e.situation(minute, in.ActorScore, in.OpponentScore),
	}
	b.KeeperClutch = e.keeperClutch(in, b.Timing)

	combined := b.Timing*e.weights.Timing +
		b.ScoreProximity*e.weights.Score +
		b.Momentum*e.weights.Momentum +
		b.ActionScale*e.weights.ActionKind +
		b.Situation*e.weights.Situation +
		b.KeeperClutch*e.weights.KeeperClutch

	b.Combined = clamp(combined, e.minMultiplier, e.maxMultiplier)
	return b
}

// Critical reports whether a combined multiplier marks a critical moment.
func (e *Engine) Critical(combined float64) bool {
	return combined >= e.criticalThreshold
}

func (e *Engine) timing(minute float64) float64 {
	for _, w := range e.timingWindows {
		if minute >= w.Min && minute <= w.Max {
			return w.Value
		}
	}
	return 1.0
}

func (e *Engine) proximity(actor, opponent int) float64 {
	diff := abs(actor - opponent)
	for _, t := range e.proximityTiers {
		if diff <= t.MaxDiff {
			return t.Value
		}
	}
	return e.proximityFloor
}

// momentum takes the strongest of four narratives: a comeback goal, a
// mistake that squanders a lead, a goal that flips the leader, and a
// critical error in a tight game.
func (e *Engine) momentum(in Input) float64 {
	m := 1.0
	m = math.Max(m, comeback(in))
	m = math.Max(m, leadLoss(in))
	m = math.Max(m, leaderFlip(in))
	m = math.Max(m, criticalError(in))
	return m
}

func comeback(in Input) float64 {
	if _, ok := goalActions[in.Action]; !ok {
		return 1.0
	}
	// Rewind the goal to read the deficit the shooter faced.
	deficit := in.OpponentScore - (in.ActorScore - 1)
	switch {
	case deficit >= 5:
		return 2.2
	case deficit >= 3:
		return 1.8
	case deficit >= 1:
		return 1.4
	default:
		return 1.0
	}
}

func leadLoss(in Input) float64 {
	if in.Kind != action.Negative {
		return 1.0
	}
	lead := in.ActorScore - in.OpponentScore
	switch {
	case lead >= 5:
		return 2.0
	case lead >= 3:
		return 1.6
	case lead >= 1:
		return 1.3
	default:
		return 1.0
	}
}

// A goal that flips or ties the lead from behind is the biggest swing a
// single goal can produce; breaking a tie ranks just below it.
func leaderFlip(in Input) float64 {
	if _, ok := goalActions[in.Action]; !ok {
		return 1.0
	}
	before := in.ActorScore - 1 - in.OpponentScore
	after := in.ActorScore - in.OpponentScore
	switch {
	case before < 0 && after >= 0:
		return 2.5
	case before == 0 && after > 0:
		return 1.8
	default:
		return 1.0
	}
}

func criticalError(in Input) float64 {
	if in.Kind != action.Negative || abs(in.ActorScore-in.OpponentScore) > 2 {
		return 1.0
	}
	if _, ok := cardActions[in.Action]; ok {
		return 2.0
	}
	if _, ok := turnoverActions[in.Action]; ok {
		return 1.6
	}
	if _, ok := sloppyActions[in.Action]; ok {
		return 1.4
	}
	return 1.0
}

// Negative actions sting a little extra; neutral ones barely register.
func actionScale(k action.Kind) float64 {
	switch k {
	case action.Negative:
		return 1.2
	case action.Positive:
		return 1.0
	default:
		return 0.9
	}
}

func (e *Engine) situation(minute float64, actor, opponent int) float64 {
	diff := abs(actor - opponent)
	switch {
	case minute >= 55 && diff <= 2:
		return 1.4
	case minute >= 50 && diff <= 1:
		return 1.3
	case diff <= 1 && minute >= 25 && minute <= 32:
		return 1.25
	default:
		return 1.0
	}
}

func (e *Engine) keeperClutch(in Input, timing float64) float64 {
	if !in.Goalkeeper {
		return 1.0
	}
	if _, ok := saveActions[in.Action]; !ok {
		return 1.0
	}
	diff := abs(in.ActorScore - in.OpponentScore)
	switch {
	case timing >= 2.0 && diff <= 1:
		return 1.8
	case timing >= 1.8 && diff <= 2:
		return 1.5
	case timing >= 1.5 && diff <= 1:
		return 1.3
	default:
		return 1.0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
