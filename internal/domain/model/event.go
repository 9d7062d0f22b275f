// Package model defines the core data types that flow through the rating
// pipeline: match events, match descriptors, and resolved participants.
package model

// Blank-name sentinels produced by the upstream report extractor. Names
// matching these are treated as absent.
const (
	BlankName    = ""
	NanName      = "nan"
	NoneName     = "None"
	BlankShirtNo = "0"
)

// MatchEvent is a single chronological row of a match report.
type MatchEvent struct {
	// Seq orders events within a match; lower is earlier.
	Seq int

	// Time is the match clock in minutes from kickoff.
	Time float64

	// Team is the code of the team the event is recorded against.
	Team string

	// Action is the primary action label, e.g. "Mål" or "Fejlaflevering".
	Action string

	// Player is the primary actor's name. May be blank.
	Player string

	// SecondaryAction and SecondaryPlayer describe a linked action on the
	// same row, e.g. the assist on a goal or the steal that forced it.
	SecondaryAction string
	SecondaryPlayer string

	// Position is the raw position code of the primary actor.
	Position string

	// Goalkeeper and GoalkeeperNumber identify the opposing goalkeeper on
	// shot rows. Both must be present for the goalkeeper to be credited.
	Goalkeeper       string
	GoalkeeperNumber string

	// Score is the scoreboard reading at the event, formatted "H-A".
	Score string
}

// MatchInfo describes one match report.
type MatchInfo struct {
	MatchID  string
	Season   string
	Date     string
	HomeTeam string
	AwayTeam string
	Result   string
}

// TeamPair holds the two team codes of a match.
type TeamPair struct {
	Home string
	Away string
}

// Other returns the opposing team code. The second return is false when the
// given code matches neither side.
func (p TeamPair) Other(team string) (string, bool) {
	switch team {
	case p.Home:
		return p.Away, true
	case p.Away:
		return p.Home, true
	default:
		return "", false
	}
}

// Contains reports whether team is one of the pair.
func (p TeamPair) Contains(team string) bool {
	return team == p.Home || team == p.Away
}

// Participant is one rating-relevant actor extracted from an event.
type Participant struct {
	Name string
	Team string

	// Action is the label this participant is rated on. For secondary
	// actors this differs from the event's primary action.
	Action string

	// Goalkeeper marks the participant as acting in the goalkeeper role
	// for this event.
	Goalkeeper bool
}

// Named reports whether a player name is present and usable.
func Named(name string) bool {
	switch name {
	case BlankName, NanName, NoneName:
		return false
	default:
		return true
	}
}
