// Package rating holds entity rating state and the per-event update
// function.
package rating

import (
	"sort"
)

// PlayerState is the mutable rating state of one player. Season bookkeeping
// (games, positions, clubs, recent form) resets at each season boundary;
// CareerRating persists for the player's whole history.
type PlayerState struct {
	Name string

	// Rating is the current season rating.
	Rating float64

	// CareerRating is the damped all-time aggregate.
	CareerRating float64

	// Goalkeeper is sticky: once a player is observed in the goalkeeper
	// role it never reverts within the player's history.
	Goalkeeper bool

	// Positions counts events per normalized position this season.
	Positions map[string]int

	// Clubs counts events per club this season (transfer tracking).
	Clubs map[string]int

	// Games is the number of matches the player appeared in this season.
	Games int

	// SeasonsPlayed counts seasons with at least one appearance; it
	// survives season resets.
	SeasonsPlayed int

	// CareerGames counts appearances across all seasons.
	CareerGames int

	// RecentDeltas holds the last few per-match rating deltas, newest
	// last, for carryover momentum.
	RecentDeltas []float64

	// Goalkeeper stat counters, career-wide.
	Saves         int
	PenaltySaves  int
	GoalsConceded int

	matchDelta float64
	inMatch    bool
}

// NewPlayerState creates a player at the given start rating.
func NewPlayerState(name string, start float64) *PlayerState {
	return &PlayerState{
		Name:         name,
		Rating:       start,
		CareerRating: start,
		Positions:    make(map[string]int),
		Clubs:        make(map[string]int),
	}
}

// MarkGoalkeeper sets the sticky goalkeeper flag.
func (s *PlayerState) MarkGoalkeeper() {
	s.Goalkeeper = true
}

// CountPosition records one event at a position.
func (s *PlayerState) CountPosition(position string) {
	s.Positions[position]++
}

// CountClub records one event for a club.
func (s *PlayerState) CountClub(club string) {
	s.Clubs[club]++
}

// AddMatchDelta accumulates an applied delta into the current match and
// marks the player as having appeared.
func (s *PlayerState) AddMatchDelta(delta float64) {
	s.matchDelta += delta
	s.inMatch = true
}

// FinishMatch closes the current match: the accumulated delta joins the
// recent-form window and the appearance counts toward the season.
func (s *PlayerState) FinishMatch(window int) {
	if !s.inMatch {
		return
	}
	s.Games++
	s.CareerGames++
	s.RecentDeltas = append(s.RecentDeltas, s.matchDelta)
	if len(s.RecentDeltas) > window {
		s.RecentDeltas = s.RecentDeltas[len(s.RecentDeltas)-window:]
	}
	s.matchDelta = 0
	s.inMatch = false
}

// RecentForm is the mean of the retained per-match deltas; zero when none.
func (s *PlayerState) RecentForm() float64 {
	if len(s.RecentDeltas) == 0 {
		return 0
	}
	var sum float64
	for _, d := range s.RecentDeltas {
		sum += d
	}
	return sum / float64(len(s.RecentDeltas))
}

// PrimaryPosition is the plurality position this season. Ties break on byte
// order so runs are deterministic.
func (s *PlayerState) PrimaryPosition() string {
	return plurality(s.Positions)
}

// PrimaryClub is the plurality club this season.
func (s *PlayerState) PrimaryClub() string {
	return plurality(s.Clubs)
}

// RecordKeeperAction updates the goalkeeper stat counters.
func (s *PlayerState) RecordKeeperAction(action string) {
	switch action {
	case "Skud reddet":
		s.Saves++
	case "Straffekast reddet":
		s.Saves++
		s.PenaltySaves++
	case "Mål", "Mål på straffe":
		s.GoalsConceded++
	}
}

// ResetSeason clears season bookkeeping and sets the new start rating.
func (s *PlayerState) ResetSeason(start float64) {
	s.Rating = start
	s.Positions = make(map[string]int)
	s.Clubs = make(map[string]int)
	s.Games = 0
	s.RecentDeltas = nil
	s.matchDelta = 0
	s.inMatch = false
}

// TeamState is the mutable rating state of one team.
type TeamState struct {
	Name   string
	Rating float64
	Games  int

	// RecentDeltas holds recent per-match deltas for carryover momentum.
	RecentDeltas []float64

	matchDelta float64
}

// NewTeamState creates a team at the given start rating.
func NewTeamState(name string, start float64) *TeamState {
	return &TeamState{Name: name, Rating: start}
}

// AddMatchDelta accumulates an applied delta into the current match.
func (s *TeamState) AddMatchDelta(delta float64) {
	s.matchDelta += delta
}

// FinishMatch closes the current match for the team.
func (s *TeamState) FinishMatch(window int) {
	s.Games++
	s.RecentDeltas = append(s.RecentDeltas, s.matchDelta)
	if len(s.RecentDeltas) > window {
		s.RecentDeltas = s.RecentDeltas[len(s.RecentDeltas)-window:]
	}
	s.matchDelta = 0
}

// RecentForm is the mean of the retained per-match deltas; zero when none.
func (s *TeamState) RecentForm() float64 {
	if len(s.RecentDeltas) == 0 {
		return 0
	}
	var sum float64
	for _, d := range s.RecentDeltas {
		sum += d
	}
	return sum / float64(len(s.RecentDeltas))
}

// ResetSeason clears season bookkeeping and sets the new start rating.
func (s *TeamState) ResetSeason(start float64) {
	s.Rating = start
	s.Games = 0
	s.RecentDeltas = nil
	s.matchDelta = 0
}

func plurality(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := ""
	bestCount := 0
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best
}
