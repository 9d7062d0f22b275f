// Package resolve extracts the rating-relevant participants from a raw match
// event: the primary actor, an optional secondary actor, and the opposing
// goalkeeper on shot rows.
//
// Resolution degrades best-effort: a malformed attribution drops that single
// participant, never the whole event.
package resolve

import (
	"github.com/hballab/handelo/internal/domain/model"
)

// Table is the subset of the action table resolution needs.
type Table interface {
	IsAdministrative(label string) bool
}

// Resolver turns raw events into participants.
type Resolver struct {
	table Table

	// discarded is called once per attribution dropped during resolution.
	discarded func()
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithDiscardedHook sets a callback invoked for each dropped attribution.
func WithDiscardedHook(hook func()) Option {
	return func(r *Resolver) {
		if hook != nil {
			r.discarded = hook
		}
	}
}

// New creates a Resolver over the given action table.
func New(table Table, opts ...Option) *Resolver {
	r := &Resolver{
		table:     table,
		discarded: func() {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Secondary actions credited to the same team as the event.
var sameTeamSecondary = map[string]struct{}{
	"Assist": {},
}

// Secondary actions credited to the opposing team (a steal or block recorded
// on the attacking team's row).
var opposingSecondary = map[string]struct{}{
	"Bold erobret":  {},
	"Forårs. str.":  {},
	"Blokeret af":   {},
	"Blok af (ret)": {},
}

// Resolve extracts participants from one event. Administrative events
// resolve to nothing. The returned slice preserves attribution order:
// primary, secondary, goalkeeper.
func (r *Resolver) Resolve(ev model.MatchEvent, teams model.TeamPair) []model.Participant {
	if r.table.IsAdministrative(ev.Action) {
		return nil
	}

	out := make([]model.Participant, 0, 3)

	if p, ok := r.primary(ev, teams); ok {
		out = append(out, p)
	}
	if p, ok := r.secondary(ev, teams); ok {
		out = append(out, p)
	}
	if p, ok := r.goalkeeper(ev, teams); ok {
		out = append(out, p)
	}

	return out
}

func (r *Resolver) primary(ev model.MatchEvent, teams model.TeamPair) (model.Participant, bool) {
	if !model.Named(ev.Player) {
		return model.Participant{}, false
	}
	if !teams.Contains(ev.Team) {
		r.discarded()
		return model.Participant{}, false
	}
	return model.Participant{
		Name:   ev.Player,
		Team:   ev.Team,
		Action: ev.Action,
	}, true
}

func (r *Resolver) secondary(ev model.MatchEvent, teams model.TeamPair) (model.Participant, bool) {
	if !model.Named(ev.SecondaryPlayer) || ev.SecondaryAction == "" {
		return model.Participant{}, false
	}

	if _, ok := sameTeamSecondary[ev.SecondaryAction]; ok {
		if !teams.Contains(ev.Team) {
			r.discarded()
			return model.Participant{}, false
		}
		return model.Participant{
			Name:   ev.SecondaryPlayer,
			Team:   ev.Team,
			Action: ev.SecondaryAction,
		}, true
	}

	if _, ok := opposingSecondary[ev.SecondaryAction]; ok {
		other, ok := teams.Other(ev.Team)
		if !ok {
			r.discarded()
			return model.Participant{}, false
		}
		return model.Participant{
			Name:   ev.SecondaryPlayer,
			Team:   other,
			Action: ev.SecondaryAction,
		}, true
	}

	// Unrecognized linked action: skip the attribution, keep the event.
	r.discarded()
	return model.Participant{}, false
}

func (r *Resolver) goalkeeper(ev model.MatchEvent, teams model.TeamPair) (model.Participant, bool) {
	if !model.Named(ev.Goalkeeper) || ev.Goalkeeper == model.BlankShirtNo {
		return model.Participant{}, false
	}
	if !model.Named(ev.GoalkeeperNumber) || ev.GoalkeeperNumber == model.BlankShirtNo {
		return model.Participant{}, false
	}

	// The keeper faces the shot, so they belong to the opposing team.
	other, ok := teams.Other(ev.Team)
	if !ok {
		r.discarded()
		return model.Participant{}, false
	}
	return model.Participant{
		Name:       ev.Goalkeeper,
		Team:       other,
		Action:     ev.Action,
		Goalkeeper: true,
	}, true
}
