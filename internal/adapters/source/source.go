// Package source provides the match event warehouse behind the pipeline: a
// PostgreSQL implementation for production runs and an in-memory one for
// tests and fixtures.
package source

import (
	"context"

	"github.com/hballab/handelo/internal/domain/model"
)

// Source exposes the event warehouse in the order the orchestrator consumes
// it: seasons chronologically, matches within a season, events within a
// match.
type Source interface {
	// Seasons lists all season codes present, ascending.
	Seasons(ctx context.Context) ([]string, error)

	// Matches lists the match IDs of a season, ascending.
	Matches(ctx context.Context, season string) ([]string, error)

	// Load returns one match's descriptor and its events ordered by
	// sequence.
	Load(ctx context.Context, season, matchID string) (model.MatchInfo, []model.MatchEvent, error)
}
