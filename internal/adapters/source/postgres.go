package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/hballab/handelo/internal/domain/model"
)

// PostgresSource reads match reports from the scrape warehouse.
//
// Expected schema:
//
//	matches(match_id, season, match_date, home_team, away_team, result)
//	match_events(match_id, seq, minute, team, action, player,
//	             secondary_action, secondary_player, position,
//	             goalkeeper, goalkeeper_number, score)
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource opens a connection pool against the warehouse DSN and
// verifies connectivity.
func NewPostgresSource(ctx context.Context, dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open event warehouse: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping event warehouse: %w", err)
	}

	return &PostgresSource{db: db}, nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

// Seasons lists all season codes present, ascending.
func (s *PostgresSource) Seasons(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT season FROM matches ORDER BY season ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: seasons: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	var seasons []string
	for rows.Next() {
		var season string
		if err := rows.Scan(&season); err != nil {
			return nil, fmt.Errorf("%w: seasons scan: %w", ErrQueryFailed, err)
		}
		seasons = append(seasons, season)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: seasons rows: %w", ErrQueryFailed, err)
	}
	return seasons, nil
}

// Matches lists the match IDs of a season, ascending.
func (s *PostgresSource) Matches(ctx context.Context, season string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT match_id FROM matches WHERE season = $1 ORDER BY match_id ASC`, season)
	if err != nil {
		return nil, fmt.Errorf("%w: matches %s: %w", ErrQueryFailed, season, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: matches scan: %w", ErrQueryFailed, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: matches rows: %w", ErrQueryFailed, err)
	}
	return ids, nil
}

// Load returns one match's descriptor and its events ordered by sequence.
func (s *PostgresSource) Load(ctx context.Context, season, matchID string) (model.MatchInfo, []model.MatchEvent, error) {
	var info model.MatchInfo
	err := s.db.QueryRowContext(ctx,
		`SELECT match_id, season, match_date, home_team, away_team, result
		 FROM matches WHERE season = $1 AND match_id = $2`,
		season, matchID,
	).Scan(&info.MatchID, &info.Season, &info.Date, &info.HomeTeam, &info.AwayTeam, &info.Result)
	if err == sql.ErrNoRows {
		return model.MatchInfo{}, nil, fmt.Errorf("%w: %s/%s", ErrMatchNotFound, season, matchID)
	}
	if err != nil {
		return model.MatchInfo{}, nil, fmt.Errorf("%w: match %s: %w", ErrQueryFailed, matchID, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, minute, team, action,
		        COALESCE(player, ''), COALESCE(secondary_action, ''),
		        COALESCE(secondary_player, ''), COALESCE(position, ''),
		        COALESCE(goalkeeper, ''), COALESCE(goalkeeper_number, ''),
		        COALESCE(score, '')
		 FROM match_events WHERE match_id = $1 ORDER BY seq ASC`, matchID)
	if err != nil {
		return model.MatchInfo{}, nil, fmt.Errorf("%w: events %s: %w", ErrQueryFailed, matchID, err)
	}
	defer rows.Close()

	var events []model.MatchEvent
	for rows.Next() {
		var ev model.MatchEvent
		if err := rows.Scan(
			&ev.Seq, &ev.Time, &ev.Team, &ev.Action,
			&ev.Player, &ev.SecondaryAction, &ev.SecondaryPlayer, &ev.Position,
			&ev.Goalkeeper, &ev.GoalkeeperNumber, &ev.Score,
		); err != nil {
			return model.MatchInfo{}, nil, fmt.Errorf("%w: events scan: %w", ErrQueryFailed, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return model.MatchInfo{}, nil, fmt.Errorf("%w: events rows: %w", ErrQueryFailed, err)
	}

	return info, events, nil
}
