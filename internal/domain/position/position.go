// Package position normalizes raw report position codes and provides the
// role multiplier table applied to rating deltas.
package position

// Goalkeeper is the goalkeeper position code.
const Goalkeeper = "MV"

// Field position codes.
const (
	LeftWing  = "VF"
	RightWing = "HF"
	LeftBack  = "VB"
	RightBack = "HB"
	Playmaker = "PL"
	Pivot     = "ST"
)

// Situational codes the extractor emits in place of a position. These say
// where the player stood in a set piece, not what role they play, so they
// normalize to a wing default.
var situational = map[string]struct{}{
	"Gbr":    {},
	"1:e":    {},
	"2:e":    {},
	"Indsk.": {},
	"Udsk.":  {},
	"Str.":   {},
	"":       {},
}

var pure = map[string]struct{}{
	Goalkeeper: {},
	LeftWing:   {},
	RightWing:  {},
	LeftBack:   {},
	RightBack:  {},
	Playmaker:  {},
	Pivot:      {},
}

// Normalize maps a raw report code to a canonical position. Situational and
// unknown codes default to right wing.
func Normalize(raw string) string {
	if _, ok := pure[raw]; ok {
		return raw
	}
	if _, ok := situational[raw]; ok {
		return RightWing
	}
	return RightWing
}

// IsPure reports whether code is a canonical playing position.
func IsPure(code string) bool {
	_, ok := pure[code]
	return ok
}

// RoleTable holds per-position, per-action multipliers. Only the goalkeeper
// row is populated by default; field positions multiply by 1.0 unless a
// richer table is configured.
type RoleTable struct {
	byPosition map[string]map[string]float64
	defaults   map[string]float64
}

// Option applies a configuration option to the RoleTable.
type Option func(*RoleTable)

// WithPositionMultipliers sets the multiplier table for one position.
func WithPositionMultipliers(position string, multipliers map[string]float64) Option {
	return func(t *RoleTable) {
		if len(multipliers) > 0 {
			t.byPosition[position] = multipliers
		}
	}
}

// WithPositionDefault sets the fallback multiplier used for a position when
// the action has no specific entry.
func WithPositionDefault(position string, multiplier float64) Option {
	return func(t *RoleTable) {
		t.defaults[position] = multiplier
	}
}

// NewRoleTable builds a role multiplier table with the goalkeeper row
// populated.
func NewRoleTable(opts ...Option) *RoleTable {
	t := &RoleTable{
		byPosition: map[string]map[string]float64{
			Goalkeeper: goalkeeperMultipliers(),
		},
		defaults: map[string]float64{
			Goalkeeper: 1.2,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Multiplier returns the role multiplier for an action at a position.
// Positions without a configured row return 1.0.
func (t *RoleTable) Multiplier(position, action string) float64 {
	row, ok := t.byPosition[position]
	if !ok {
		return 1.0
	}
	if m, ok := row[action]; ok {
		return m
	}
	if d, ok := t.defaults[position]; ok {
		return d
	}
	return 1.0
}

// Goalkeepers live on saves; their save actions amplify strongly and routine
// ball-handling mistakes attenuate.
func goalkeeperMultipliers() map[string]float64 {
	return map[string]float64{
		"Skud reddet":           2.2,
		"Straffekast reddet":    2.8,
		"Skud på stolpe":        1.8,
		"Straffekast på stolpe": 2.2,
		"Mål":                   2.0,
		"Assist":                1.5,
		"Bold erobret":          1.3,
		"Fejlaflevering":        0.8,
		"Tabt bold":             0.8,
		"Regelfejl":             0.9,
	}
}
