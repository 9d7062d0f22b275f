package engine

import (
	"sort"

	"github.com/hballab/handelo/internal/adapters/export"
	"github.com/hballab/handelo/internal/adapters/repository"
	"github.com/hballab/handelo/internal/domain/rating"
)

// SeasonReport builds the player snapshot rows for a finished season,
// ranked by rating. Players without an appearance this season are omitted.
func SeasonReport(season string, store repository.Store, params rating.Params) []export.SeasonRow {
	var rows []export.SeasonRow
	for _, p := range store.TopPlayers(0) {
		if p.Games == 0 {
			continue
		}
		rows = append(rows, export.SeasonRow{
			Season:     season,
			Rank:       len(rows) + 1,
			Name:       p.Name,
			Club:       p.PrimaryClub(),
			Position:   p.PrimaryPosition(),
			Goalkeeper: p.Goalkeeper,
			Rating:     p.Rating,
			Games:      p.Games,
			Momentum:   p.RecentForm(),
			Status:     statusLabel(p.Rating, params),
		})
	}
	return rows
}

// TeamReport builds the team snapshot rows for a finished season.
func TeamReport(season string, store repository.Store) []export.TeamRow {
	var teams []*rating.TeamState
	store.Teams(func(t *rating.TeamState) {
		if t.Games > 0 {
			teams = append(teams, t)
		}
	})
	sortTeams(teams)

	rows := make([]export.TeamRow, 0, len(teams))
	for i, t := range teams {
		rows = append(rows, export.TeamRow{
			Season: season,
			Rank:   i + 1,
			Code:   t.Name,
			Rating: t.Rating,
			Games:  t.Games,
		})
	}
	return rows
}

// CareerReport builds the all-time player rows, ranked by career rating.
func CareerReport(store repository.Store) []export.CareerRow {
	var players []*rating.PlayerState
	store.Players(func(p *rating.PlayerState) {
		players = append(players, p)
	})
	sortPlayersByCareer(players)

	rows := make([]export.CareerRow, 0, len(players))
	for _, p := range players {
		rows = append(rows, export.CareerRow{
			Name:          p.Name,
			CareerRating:  p.CareerRating,
			Seasons:       p.SeasonsPlayed,
			Games:         p.CareerGames,
			Goalkeeper:    p.Goalkeeper,
			Saves:         p.Saves,
			PenaltySaves:  p.PenaltySaves,
			GoalsConceded: p.GoalsConceded,
		})
	}
	return rows
}

func statusLabel(r float64, p rating.Params) string {
	switch {
	case r >= p.LegendaryThreshold:
		return "legendary"
	case r >= p.EliteThreshold:
		return "elite"
	default:
		return "normal"
	}
}

func sortTeams(teams []*rating.TeamState) {
	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].Rating != teams[j].Rating {
			return teams[i].Rating > teams[j].Rating
		}
		return teams[i].Name < teams[j].Name
	})
}

func sortPlayersByCareer(players []*rating.PlayerState) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].CareerRating != players[j].CareerRating {
			return players[i].CareerRating > players[j].CareerRating
		}
		return players[i].Name < players[j].Name
	})
}
