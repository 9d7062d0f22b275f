// Package export writes the run's outputs as CSV: per-season snapshots,
// career aggregates, team tables, and the streaming per-event audit trail.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hballab/handelo/internal/domain/rating"
)

// SeasonRow is one player line of a season snapshot.
type SeasonRow struct {
	Season     string
	Rank       int
	Name       string
	Club       string
	Position   string
	Goalkeeper bool
	Rating     float64
	Games      int
	Momentum   float64
	Status     string
}

// CareerRow is one player line of the career table.
type CareerRow struct {
	Name          string
	CareerRating  float64
	Seasons       int
	Games         int
	Goalkeeper    bool
	Saves         int
	PenaltySaves  int
	GoalsConceded int
}

// TeamRow is one team line of a season snapshot.
type TeamRow struct {
	Season string
	Rank   int
	Code   string
	Rating float64
	Games  int
}

// WriteSeasonCSV writes a season snapshot to w.
func WriteSeasonCSV(w io.Writer, rows []SeasonRow) error {
	cw := csv.NewWriter(w)
	header := []string{
		"season", "rank", "player", "club", "position",
		"goalkeeper", "rating", "games", "momentum", "status",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write season header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Season,
			strconv.Itoa(r.Rank),
			r.Name,
			r.Club,
			r.Position,
			strconv.FormatBool(r.Goalkeeper),
			formatRating(r.Rating),
			strconv.Itoa(r.Games),
			strconv.FormatFloat(r.Momentum, 'f', 2, 64),
			r.Status,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write season row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCareerCSV writes the career table to w.
func WriteCareerCSV(w io.Writer, rows []CareerRow) error {
	cw := csv.NewWriter(w)
	header := []string{
		"player", "career_rating", "seasons", "games",
		"goalkeeper", "saves", "penalty_saves", "goals_conceded",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write career header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Name,
			formatRating(r.CareerRating),
			strconv.Itoa(r.Seasons),
			strconv.Itoa(r.Games),
			strconv.FormatBool(r.Goalkeeper),
			strconv.Itoa(r.Saves),
			strconv.Itoa(r.PenaltySaves),
			strconv.Itoa(r.GoalsConceded),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write career row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTeamCSV writes a team season snapshot to w.
func WriteTeamCSV(w io.Writer, rows []TeamRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"season", "rank", "team", "rating", "games"}); err != nil {
		return fmt.Errorf("write team header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Season,
			strconv.Itoa(r.Rank),
			r.Code,
			formatRating(r.Rating),
			strconv.Itoa(r.Games),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write team row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SeasonFile and friends place outputs under dir with stable names.
func SeasonFile(dir, season string) string {
	return filepath.Join(dir, "season_"+season+".csv")
}

func TeamFile(dir, season string) string {
	return filepath.Join(dir, "teams_"+season+".csv")
}

func CareerFile(dir string) string {
	return filepath.Join(dir, "career.csv")
}

func AuditFile(dir string) string {
	return filepath.Join(dir, "audit.csv")
}

// WriteFile writes rows through fn into a freshly created file, creating dir
// first.
func WriteFile(path string, fn func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// AuditWriter streams rating updates to CSV as they happen.
type AuditWriter struct {
	cw *csv.Writer
}

// NewAuditWriter writes the header and returns a streaming writer.
func NewAuditWriter(w io.Writer) (*AuditWriter, error) {
	cw := csv.NewWriter(w)
	header := []string{
		"id", "season", "match_id", "seq", "player", "team", "action", "kind",
		"position", "goalkeeper", "base_weight", "context_multiplier",
		"role_multiplier", "elite_damping", "scale", "raw_delta",
		"applied_delta", "rating_before", "rating_after", "clamped",
	}
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("write audit header: %w", err)
	}
	return &AuditWriter{cw: cw}, nil
}

// Write appends one audit record.
func (a *AuditWriter) Write(up rating.Update) error {
	rec := []string{
		up.ID,
		up.Season,
		up.MatchID,
		strconv.Itoa(up.Seq),
		up.Player,
		up.Team,
		up.Action,
		up.Kind,
		up.Position,
		strconv.FormatBool(up.Goalkeeper),
		formatFactor(up.BaseWeight),
		formatFactor(up.ContextMultiplier),
		formatFactor(up.RoleMultiplier),
		formatFactor(up.EliteDamping),
		strconv.FormatFloat(up.Scale, 'f', 4, 64),
		formatFactor(up.RawDelta),
		formatFactor(up.AppliedDelta),
		formatRating(up.RatingBefore),
		formatRating(up.RatingAfter),
		strconv.FormatBool(up.Clamped),
	}
	if err := a.cw.Write(rec); err != nil {
		return fmt.Errorf("write audit row: %w", err)
	}
	return nil
}

// Flush drains buffered rows and reports any pending write error.
func (a *AuditWriter) Flush() error {
	a.cw.Flush()
	return a.cw.Error()
}

func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatFactor(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
