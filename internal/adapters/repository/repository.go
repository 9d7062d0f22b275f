// Package repository owns the in-run rating state for players and teams.
// All access goes through one create-with-default code path, and iteration
// order is insertion order so identical event streams produce identical
// outputs.
package repository

import (
	"sort"

	"github.com/hballab/handelo/internal/domain/rating"
)

// Store provides keyed access to rating states.
type Store interface {
	// Player returns the state for a name, creating it at the default
	// supplied by the factory on first appearance.
	Player(name string, create func() *rating.PlayerState) *rating.PlayerState

	// Team returns the state for a code, creating it on first appearance.
	Team(code string, create func() *rating.TeamState) *rating.TeamState

	// HasPlayer and HasTeam report existence without creating.
	HasPlayer(name string) bool
	HasTeam(code string) bool

	// Players and Teams iterate states in insertion order.
	Players(fn func(*rating.PlayerState))
	Teams(fn func(*rating.TeamState))

	// TopPlayers returns up to n players ordered by rating descending,
	// names ascending on ties.
	TopPlayers(n int) []*rating.PlayerState

	// PlayerCount and TeamCount return the number of tracked entities.
	PlayerCount() int
	TeamCount() int
}

// memStore is the in-memory Store implementation.
type memStore struct {
	players     map[string]*rating.PlayerState
	playerOrder []string
	teams       map[string]*rating.TeamState
	teamOrder   []string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() Store {
	return &memStore{
		players: make(map[string]*rating.PlayerState),
		teams:   make(map[string]*rating.TeamState),
	}
}

func (s *memStore) Player(name string, create func() *rating.PlayerState) *rating.PlayerState {
	if p, ok := s.players[name]; ok {
		return p
	}
	p := create()
	s.players[name] = p
	s.playerOrder = append(s.playerOrder, name)
	return p
}

func (s *memStore) Team(code string, create func() *rating.TeamState) *rating.TeamState {
	if t, ok := s.teams[code]; ok {
		return t
	}
	t := create()
	s.teams[code] = t
	s.teamOrder = append(s.teamOrder, code)
	return t
}

func (s *memStore) HasPlayer(name string) bool {
	_, ok := s.players[name]
	return ok
}

func (s *memStore) HasTeam(code string) bool {
	_, ok := s.teams[code]
	return ok
}

func (s *memStore) Players(fn func(*rating.PlayerState)) {
	for _, name := range s.playerOrder {
		fn(s.players[name])
	}
}

func (s *memStore) Teams(fn func(*rating.TeamState)) {
	for _, code := range s.teamOrder {
		fn(s.teams[code])
	}
}

func (s *memStore) TopPlayers(n int) []*rating.PlayerState {
	all := make([]*rating.PlayerState, 0, len(s.playerOrder))
	for _, name := range s.playerOrder {
		all = append(all, s.players[name])
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Rating != all[j].Rating {
			return all[i].Rating > all[j].Rating
		}
		return all[i].Name < all[j].Name
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

func (s *memStore) PlayerCount() int { return len(s.players) }

func (s *memStore) TeamCount() int { return len(s.teams) }
