package source

import (
	"context"
	"fmt"
	"sort"

	"github.com/hballab/handelo/internal/domain/model"
)

// Match bundles a descriptor with its events for in-memory use.
type Match struct {
	Info   model.MatchInfo
	Events []model.MatchEvent
}

// MemorySource serves matches from memory. It backs tests and fixture runs.
type MemorySource struct {
	bySeason map[string]map[string]Match
}

// NewMemorySource creates an empty in-memory source.
func NewMemorySource() *MemorySource {
	return &MemorySource{bySeason: make(map[string]map[string]Match)}
}

// Add stores one match under its season and ID.
func (s *MemorySource) Add(m Match) {
	season := m.Info.Season
	if s.bySeason[season] == nil {
		s.bySeason[season] = make(map[string]Match)
	}
	s.bySeason[season][m.Info.MatchID] = m
}

// Seasons lists all season codes present, ascending.
func (s *MemorySource) Seasons(_ context.Context) ([]string, error) {
	seasons := make([]string, 0, len(s.bySeason))
	for season := range s.bySeason {
		seasons = append(seasons, season)
	}
	sort.Strings(seasons)
	return seasons, nil
}

// Matches lists the match IDs of a season, ascending.
func (s *MemorySource) Matches(_ context.Context, season string) ([]string, error) {
	matches := s.bySeason[season]
	ids := make([]string, 0, len(matches))
	for id := range matches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Load returns one match's descriptor and its events.
func (s *MemorySource) Load(_ context.Context, season, matchID string) (model.MatchInfo, []model.MatchEvent, error) {
	m, ok := s.bySeason[season][matchID]
	if !ok {
		return model.MatchInfo{}, nil, fmt.Errorf("%w: %s/%s", ErrMatchNotFound, season, matchID)
	}
	return m.Info, m.Events, nil
}
