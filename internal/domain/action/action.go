// Package action classifies match report action labels into signed base
// weights and impact kinds. The vocabulary is closed: unknown labels fail
// closed to weight zero and neutral kind so a new upstream label can never
// move a rating until it is added to the table.
package action

// Kind partitions actions by impact direction.
type Kind int

const (
	Neutral Kind = iota
	Positive
	Negative
)

// String returns the kind name used in audit output.
func (k Kind) String() string {
	switch k {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}

// Classification is the result of a table lookup.
type Classification struct {
	Weight float64
	Kind   Kind

	// Known is false for labels outside the vocabulary.
	Known bool
}

// Table maps action labels to weights and kinds.
type Table struct {
	weights        map[string]float64
	keeperPenalty  map[string]float64
	positive       map[string]struct{}
	negative       map[string]struct{}
	administrative map[string]struct{}
}

// Option applies a configuration option to the Table.
type Option func(*Table)

// WithWeights replaces the base weight table.
func WithWeights(weights map[string]float64) Option {
	return func(t *Table) {
		if len(weights) > 0 {
			t.weights = weights
		}
	}
}

// WithKeeperPenaltyWeights replaces the goalkeeper penalty-situation table.
func WithKeeperPenaltyWeights(weights map[string]float64) Option {
	return func(t *Table) {
		if len(weights) > 0 {
			t.keeperPenalty = weights
		}
	}
}

// NewTable builds a classification table. Defaults cover the full Danish
// league report vocabulary.
func NewTable(opts ...Option) *Table {
	t := &Table{
		weights:        defaultWeights(),
		keeperPenalty:  defaultKeeperPenaltyWeights(),
		positive:       defaultPositive(),
		negative:       defaultNegative(),
		administrative: defaultAdministrative(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Classify looks up a label. Unknown labels return weight 0, Neutral, and
// Known=false.
func (t *Table) Classify(label string) Classification {
	w, ok := t.weights[label]
	if !ok {
		return Classification{Weight: 0, Kind: Neutral, Known: false}
	}
	return Classification{Weight: w, Kind: t.kind(label), Known: true}
}

func (t *Table) kind(label string) Kind {
	if _, ok := t.positive[label]; ok {
		return Positive
	}
	if _, ok := t.negative[label]; ok {
		return Negative
	}
	return Neutral
}

// KeeperPenalty returns the goalkeeper-perspective weight for a
// penalty-situation action, and whether the label belongs to that table.
// These actions bypass the context multiplier entirely.
func (t *Table) KeeperPenalty(label string) (float64, bool) {
	w, ok := t.keeperPenalty[label]
	return w, ok
}

// IsAdministrative reports whether the label is match administration
// (timeouts, period markers, video proof) that never touches a rating.
func (t *Table) IsAdministrative(label string) bool {
	_, ok := t.administrative[label]
	return ok
}

func defaultWeights() map[string]float64 {
	return map[string]float64{
		// Scoring and creation
		"Mål":              65,
		"Assist":           55,
		"Mål på straffe":   60,
		"Bold erobret":     40,
		"Blok af (ret)":    35,
		"Blokeret af":      30,
		"Tilkendt straffe": 25,
		"Retur":            20,
		"Forårs. str.":     -35,

		// Goalkeeper actions
		"Skud reddet":        45,
		"Straffekast reddet": 65,

		// Missed or blocked attempts
		"Skud på stolpe":        -5,
		"Straffekast på stolpe": -10,
		"Skud blokeret":         -8,
		"Skud forbi":            -15,
		"Straffekast forbi":     -25,

		// Errors and discipline
		"Passivt spil":       -20,
		"Regelfejl":          -22,
		"Tabt bold":          -25,
		"Fejlaflevering":     -30,
		"Advarsel":           -15,
		"Udvisning":          -45,
		"Udvisning (2x)":     -75,
		"Blåt kort":          -60,
		"Rødt kort":          -90,
		"Rødt kort, direkte": -90,
		"Protest":            -20,

		// Match administration
		"Time out":          0,
		"Start 1:e halvleg": 0,
		"Halvleg":           0,
		"Start 2:e halvleg": 0,
		"Fuld tid":          0,
		"Kamp slut":         0,
		"Video Proof":       0,
		"Video Proof slut":  0,
		"Start":             0,
	}
}

// Goalkeeper perspective on penalty situations: conceding is mildly negative,
// forcing the shooter onto the post is positive.
func defaultKeeperPenaltyWeights() map[string]float64 {
	return map[string]float64{
		"Mål":                   -25,
		"Mål på straffe":        -30,
		"Skud på stolpe":        15,
		"Straffekast på stolpe": 20,
	}
}

func defaultPositive() map[string]struct{} {
	return labelSet(
		"Mål",
		"Assist",
		"Mål på straffe",
		"Bold erobret",
		"Skud reddet",
		"Straffekast reddet",
		"Blok af (ret)",
		"Blokeret af",
		"Retur",
		"Tilkendt straffe",
	)
}

func defaultNegative() map[string]struct{} {
	return labelSet(
		"Fejlaflevering",
		"Tabt bold",
		"Skud forbi",
		"Straffekast forbi",
		"Regelfejl",
		"Passivt spil",
		"Udvisning",
		"Udvisning (2x)",
		"Advarsel",
		"Rødt kort",
		"Rødt kort, direkte",
		"Blåt kort",
		"Forårs. str.",
	)
}

func defaultAdministrative() map[string]struct{} {
	return labelSet(
		"Time out",
		"Start 1:e halvleg",
		"Halvleg",
		"Start 2:e halvleg",
		"Fuld tid",
		"Kamp slut",
		"Video Proof",
		"Video Proof slut",
		"Start",
	)
}

func labelSet(labels ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}
