// Package fixture generates deterministic synthetic match reports. It backs
// tests and runs without a warehouse connection: the same seed always yields
// the same seasons, matches, and event streams.
package fixture

import (
	"fmt"
	"math/rand"

	"github.com/hballab/handelo/internal/adapters/source"
	"github.com/hballab/handelo/internal/domain/model"
)

// Generator produces synthetic match reports from a seeded PRNG.
type Generator struct {
	rng            *rand.Rand
	teams          []string
	playersPerTeam int
	eventsPerMatch int
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithTeams sets the team codes used in generated fixtures.
func WithTeams(teams []string) Option {
	return func(g *Generator) {
		if len(teams) >= 2 {
			g.teams = teams
		}
	}
}

// WithPlayersPerTeam sets the squad size.
func WithPlayersPerTeam(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.playersPerTeam = n
		}
	}
}

// WithEventsPerMatch sets the rough number of rated events per match.
func WithEventsPerMatch(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.eventsPerMatch = n
		}
	}
}

// New creates a Generator. The same seed and options always produce the same
// output.
func New(seed int64, opts ...Option) *Generator {
	g := &Generator{
		rng:            rand.New(rand.NewSource(seed)),
		teams:          []string{"AAH", "GOG", "KIF", "BSH", "SKH", "TTH"},
		playersPerTeam: 9,
		eventsPerMatch: 60,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var fieldActions = []string{
	"Mål", "Mål", "Mål", "Skud forbi", "Skud reddet",
	"Fejlaflevering", "Tabt bold", "Bold erobret", "Regelfejl",
	"Udvisning", "Skud på stolpe", "Tilkendt straffe",
}

var positions = []string{"VF", "HF", "VB", "HB", "PL", "ST"}

// Season generates a round of matches for one season and feeds them into an
// in-memory source.
func (g *Generator) Season(src *source.MemorySource, season string, matches int) {
	for i := 0; i < matches; i++ {
		home := g.teams[g.rng.Intn(len(g.teams))]
		away := home
		for away == home {
			away = g.teams[g.rng.Intn(len(g.teams))]
		}
		id := fmt.Sprintf("%s-%04d", season, i+1)
		src.Add(g.match(season, id, home, away))
	}
}

func (g *Generator) match(season, id, home, away string) source.Match {
	events := make([]model.MatchEvent, 0, g.eventsPerMatch+4)
	seq := 1
	homeGoals, awayGoals := 0, 0

	push := func(ev model.MatchEvent) {
		ev.Seq = seq
		seq++
		events = append(events, ev)
	}

	push(model.MatchEvent{Time: 0, Action: "Start 1:e halvleg"})

	for i := 0; i < g.eventsPerMatch; i++ {
		minute := 60 * float64(i) / float64(g.eventsPerMatch)
		team, opp := home, away
		if g.rng.Intn(2) == 1 {
			team, opp = away, home
		}

		act := fieldActions[g.rng.Intn(len(fieldActions))]
		if act == "Mål" {
			if team == home {
				homeGoals++
			} else {
				awayGoals++
			}
		}

		ev := model.MatchEvent{
			Time:     minute,
			Team:     team,
			Action:   act,
			Player:   g.playerName(team, g.rng.Intn(g.playersPerTeam)),
			Position: positions[g.rng.Intn(len(positions))],
			Score:    fmt.Sprintf("%d-%d", homeGoals, awayGoals),
		}

		switch act {
		case "Mål":
			if g.rng.Intn(3) > 0 {
				ev.SecondaryAction = "Assist"
				ev.SecondaryPlayer = g.playerName(team, g.rng.Intn(g.playersPerTeam))
			}
			ev.Goalkeeper = g.keeperName(opp)
			ev.GoalkeeperNumber = "1"
		case "Skud reddet", "Skud på stolpe":
			ev.Goalkeeper = g.keeperName(opp)
			ev.GoalkeeperNumber = "1"
		case "Fejlaflevering", "Tabt bold":
			if g.rng.Intn(2) == 0 {
				ev.SecondaryAction = "Bold erobret"
				ev.SecondaryPlayer = g.playerName(opp, g.rng.Intn(g.playersPerTeam))
			}
		}

		push(ev)
		if i == g.eventsPerMatch/2 {
			push(model.MatchEvent{Time: 30, Action: "Halvleg", Score: ev.Score})
		}
	}

	final := fmt.Sprintf("%d-%d", homeGoals, awayGoals)
	push(model.MatchEvent{Time: 60, Action: "Kamp slut", Score: final})

	return source.Match{
		Info: model.MatchInfo{
			MatchID:  id,
			Season:   season,
			HomeTeam: home,
			AwayTeam: away,
			Result:   final,
		},
		Events: events,
	}
}

func (g *Generator) playerName(team string, n int) string {
	return fmt.Sprintf("%s Spiller %d", team, n+1)
}

func (g *Generator) keeperName(team string) string {
	return team + " Keeper"
}
