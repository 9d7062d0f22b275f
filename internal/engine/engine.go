// Package engine orchestrates a full rating run: seasons in chronological
// order, a carryover barrier between them, matches and events strictly in
// report order. Processing is single-threaded; ordering is the correctness
// guarantee, not throughput.
package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hballab/handelo/internal/adapters/repository"
	"github.com/hballab/handelo/internal/adapters/source"
	"github.com/hballab/handelo/internal/domain/action"
	"github.com/hballab/handelo/internal/domain/carryover"
	"github.com/hballab/handelo/internal/domain/dedupe"
	"github.com/hballab/handelo/internal/domain/importance"
	"github.com/hballab/handelo/internal/domain/model"
	"github.com/hballab/handelo/internal/domain/position"
	"github.com/hballab/handelo/internal/domain/rating"
	"github.com/hballab/handelo/internal/domain/resolve"
	"github.com/hballab/handelo/internal/domain/teamrating"
	"github.com/hballab/handelo/pkg/logger"
	"github.com/hballab/handelo/pkg/metrics"
)

// AuditSink receives every applied rating update.
type AuditSink interface {
	Write(up rating.Update) error
}

// SeasonHook runs after each season's matches, before the next carryover.
// It sees the finished season's code and the store in its end-of-season
// state.
type SeasonHook func(season string, store repository.Store) error

// Result summarizes a finished run.
type Result struct {
	Seasons          int
	Matches          int
	DuplicateMatches int
	SkippedMatches   int
	Events           int
	Players          int
	Teams            int
}

// Engine drives a rating run.
type Engine struct {
	src        source.Source
	store      repository.Store
	deduper    dedupe.Deduper
	actions    *action.Table
	roles      *position.RoleTable
	resolver   *resolve.Resolver
	context    *importance.Engine
	updater    *rating.Updater
	carry      *carryover.Engine
	teams      *teamrating.Rater
	log        logger.Logger
	audit      AuditSink
	seasonHook SeasonHook
	formWindow int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithActionTable replaces the action classification table.
func WithActionTable(t *action.Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.actions = t
		}
	}
}

// WithRoleTable replaces the role multiplier table.
func WithRoleTable(t *position.RoleTable) Option {
	return func(e *Engine) {
		if t != nil {
			e.roles = t
		}
	}
}

// WithImportanceEngine replaces the context multiplier engine.
func WithImportanceEngine(c *importance.Engine) Option {
	return func(e *Engine) {
		if c != nil {
			e.context = c
		}
	}
}

// WithUpdater replaces the rating updater.
func WithUpdater(u *rating.Updater) Option {
	return func(e *Engine) {
		if u != nil {
			e.updater = u
		}
	}
}

// WithCarryover replaces the carryover engine.
func WithCarryover(c *carryover.Engine) Option {
	return func(e *Engine) {
		if c != nil {
			e.carry = c
		}
	}
}

// WithTeamRater replaces the team rater.
func WithTeamRater(r *teamrating.Rater) Option {
	return func(e *Engine) {
		if r != nil {
			e.teams = r
		}
	}
}

// WithAuditSink streams every applied update to sink.
func WithAuditSink(sink AuditSink) Option {
	return func(e *Engine) { e.audit = sink }
}

// WithSeasonHook runs hook at each season boundary.
func WithSeasonHook(hook SeasonHook) Option {
	return func(e *Engine) { e.seasonHook = hook }
}

// WithFormWindow sets the trailing per-match delta window.
func WithFormWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.formWindow = n
		}
	}
}

// New creates an Engine over a source and a store.
func New(src source.Source, store repository.Store, log logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		src:        src,
		store:      store,
		deduper:    dedupe.NewInMemoryDeduper(),
		actions:    action.NewTable(),
		roles:      position.NewRoleTable(),
		context:    importance.New(),
		updater:    rating.NewUpdater(),
		carry:      carryover.New(),
		teams:      teamrating.New(),
		log:        log,
		formWindow: 5,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resolver = resolve.New(e.actions, resolve.WithDiscardedHook(func() {
		metrics.RecordEventDiscarded()
	}))
	return e
}

// Run processes every season in order and returns the run summary.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	seasons, err := e.src.Seasons(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list seasons: %w", err)
	}
	sort.Strings(seasons)

	var res Result
	for i, season := range seasons {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if i > 0 {
			e.carryoverBarrier(ctx, season)
		}

		e.log.Info(ctx, "season start",
			logger.String("season", season),
			logger.Int("players", e.store.PlayerCount()),
			logger.Int("teams", e.store.TeamCount()))

		matchIDs, err := e.src.Matches(ctx, season)
		if err != nil {
			return res, fmt.Errorf("list matches %s: %w", season, err)
		}
		sort.Strings(matchIDs)

		for _, id := range matchIDs {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			switch e.processMatch(ctx, season, id, &res) {
			case matchProcessed:
				res.Matches++
			case matchDuplicate:
				res.DuplicateMatches++
			case matchSkipped:
				res.SkippedMatches++
			}
		}

		res.Seasons++
		metrics.UpdateSeasonsProcessed(res.Seasons)
		metrics.UpdatePlayersTracked(e.store.PlayerCount())
		metrics.UpdateTeamsTracked(e.store.TeamCount())

		e.closeSeason(ctx, season)
	}

	res.Players = e.store.PlayerCount()
	res.Teams = e.store.TeamCount()
	return res, nil
}

// closeSeason counts season participation and hands the finished season to
// the hook before any reset touches it.
func (e *Engine) closeSeason(ctx context.Context, season string) {
	e.store.Players(func(p *rating.PlayerState) {
		if p.Games > 0 {
			p.SeasonsPlayed++
		}
	})

	if e.seasonHook != nil {
		if err := e.seasonHook(season, e.store); err != nil {
			e.log.Warn(ctx, "season hook failed",
				logger.String("season", season), logger.Error(err))
		}
	}
}

// carryoverBarrier regresses every entity that appeared last season toward
// its league mean before the first event of the new season. Entities dormant
// last season keep their rating untouched; they regress again only after
// their next appearance.
func (e *Engine) carryoverBarrier(ctx context.Context, season string) {
	playerMean := e.playerMean()
	teamMean := e.teamMean()
	params := e.updater.Params()

	e.store.Players(func(p *rating.PlayerState) {
		if p.Games == 0 {
			return
		}
		sum := carryover.Summary{
			Rating:   p.Rating,
			Games:    p.Games,
			Status:   statusOf(p.Rating, params),
			Momentum: p.RecentForm(),
		}
		start, f := e.carry.StartRating(sum, playerMean)
		p.ResetSeason(start)
		metrics.RecordCarryover()
		if f.ExceptionalBonus > 0 {
			metrics.RecordExceptionalBonus()
		}
	})

	e.store.Teams(func(t *rating.TeamState) {
		if t.Games == 0 {
			return
		}
		sum := carryover.Summary{
			Rating:   t.Rating,
			Games:    t.Games,
			Status:   statusOf(t.Rating, params),
			Momentum: t.RecentForm(),
		}
		start, f := e.carry.StartRating(sum, teamMean)
		t.ResetSeason(start)
		metrics.RecordCarryover()
		if f.ExceptionalBonus > 0 {
			metrics.RecordExceptionalBonus()
		}
	})

	e.log.Info(ctx, "carryover applied",
		logger.String("season", season),
		logger.Float64("player_mean", playerMean),
		logger.Float64("team_mean", teamMean))
}

type matchOutcome int

const (
	matchProcessed matchOutcome = iota
	matchDuplicate
	matchSkipped
)

func (e *Engine) processMatch(ctx context.Context, season, id string, res *Result) matchOutcome {
	begin := time.Now()

	if e.deduper.SeenAndRecord(ctx, season+"/"+id) {
		e.log.Warn(ctx, "duplicate match report",
			logger.String("season", season), logger.String("match", id))
		metrics.RecordMatchDuplicate()
		return matchDuplicate
	}

	info, events, err := e.src.Load(ctx, season, id)
	if err != nil {
		e.log.Warn(ctx, "unreadable match skipped",
			logger.String("season", season), logger.String("match", id),
			logger.Error(err))
		metrics.RecordMatchSkipped()
		return matchSkipped
	}

	teams := model.TeamPair{Home: info.HomeTeam, Away: info.AwayTeam}
	home := e.teamState(info.HomeTeam)
	away := e.teamState(info.AwayTeam)

	homeGoals, awayGoals := 0, 0
	for _, ev := range events {
		if h, a, ok := parseScore(ev.Score); ok {
			homeGoals, awayGoals = h, a
		}
		e.processEvent(ctx, season, info, ev, teams, homeGoals, awayGoals)
		res.Events++
		metrics.RecordEventProcessed()
	}

	if h, a, ok := parseScore(info.Result); ok {
		homeGoals, awayGoals = h, a
	}
	e.teams.SettleMatch(home, away, teamrating.Settlement{
		Season:    season,
		MatchID:   id,
		HomeTeam:  info.HomeTeam,
		AwayTeam:  info.AwayTeam,
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
	})

	e.store.Players(func(p *rating.PlayerState) {
		p.FinishMatch(e.formWindow)
	})
	home.FinishMatch(e.formWindow)
	away.FinishMatch(e.formWindow)

	metrics.RecordMatchProcessed()
	metrics.RecordMatchProcessDuration(float64(time.Since(begin).Milliseconds()))
	return matchProcessed
}

func (e *Engine) processEvent(ctx context.Context, season string, info model.MatchInfo,
	ev model.MatchEvent, teams model.TeamPair, homeGoals, awayGoals int,
) {
	for _, part := range e.resolver.Resolve(ev, teams) {
		actorGoals, oppGoals := homeGoals, awayGoals
		if part.Team == teams.Away {
			actorGoals, oppGoals = awayGoals, homeGoals
		}

		state := e.store.Player(part.Name, func() *rating.PlayerState {
			return rating.NewPlayerState(part.Name, e.carry.DefaultPlayerRating(part.Goalkeeper))
		})

		in := e.buildInput(season, info, ev, part, actorGoals, oppGoals)

		up, ok := e.updater.Apply(state, in)
		if !ok {
			continue
		}

		metrics.RecordRatingUpdate()
		metrics.RecordRatingDelta(up.AppliedDelta)
		metrics.RecordContextMultiplier(up.ContextMultiplier)
		if up.Clamped {
			metrics.RecordUpdateClamped()
		}
		if e.context.Critical(up.ContextMultiplier) {
			metrics.RecordCriticalMoment()
		}

		if e.audit != nil {
			if err := e.audit.Write(up); err != nil {
				e.log.Warn(ctx, "audit write failed", logger.Error(err))
			}
		}

		e.teams.Trickle(e.teamState(part.Team), up.AppliedDelta)
	}
}

// buildInput assembles one participant's update: base weight, context
// multiplier, and role multiplier. Goalkeeper penalty-situation actions pin
// context and role to 1.0.
func (e *Engine) buildInput(season string, info model.MatchInfo, ev model.MatchEvent,
	part model.Participant, actorGoals, oppGoals int,
) rating.ApplyInput {
	in := rating.ApplyInput{
		Season:     season,
		MatchID:    info.MatchID,
		Seq:        ev.Seq,
		Team:       part.Team,
		Action:     part.Action,
		Goalkeeper: part.Goalkeeper,
	}

	cls := e.actions.Classify(part.Action)
	in.Kind = cls.Kind.String()

	pos := position.Normalize(ev.Position)
	if part.Goalkeeper {
		pos = position.Goalkeeper
	}
	in.Position = pos

	if part.Goalkeeper {
		if w, ok := e.actions.KeeperPenalty(part.Action); ok {
			in.KeeperPenalty = true
			in.BaseWeight = w
			in.ContextMultiplier = 1.0
			in.RoleMultiplier = 1.0
			return in
		}
	}

	in.BaseWeight = cls.Weight
	b := e.context.Assess(importance.Input{
		Minute:        ev.Time,
		ActorScore:    actorGoals,
		OpponentScore: oppGoals,
		Action:        part.Action,
		Kind:          cls.Kind,
		Goalkeeper:    part.Goalkeeper,
	})
	in.ContextMultiplier = b.Combined
	in.RoleMultiplier = e.roles.Multiplier(pos, part.Action)
	return in
}

func (e *Engine) teamState(code string) *rating.TeamState {
	return e.store.Team(code, func() *rating.TeamState {
		return rating.NewTeamState(code, e.carry.DefaultTeamRating())
	})
}

func (e *Engine) playerMean() float64 {
	var sum float64
	var n int
	e.store.Players(func(p *rating.PlayerState) {
		sum += p.Rating
		n++
	})
	if n == 0 {
		return e.carry.DefaultPlayerRating(false)
	}
	return sum / float64(n)
}

func (e *Engine) teamMean() float64 {
	var sum float64
	var n int
	e.store.Teams(func(t *rating.TeamState) {
		sum += t.Rating
		n++
	})
	if n == 0 {
		return e.carry.DefaultTeamRating()
	}
	return sum / float64(n)
}

func statusOf(r float64, p rating.Params) carryover.Status {
	switch {
	case r >= p.LegendaryThreshold:
		return carryover.Legendary
	case r >= p.EliteThreshold:
		return carryover.Elite
	default:
		return carryover.Normal
	}
}

// parseScore reads a scoreboard string like "24-23".
func parseScore(s string) (int, int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return h, a, true
}
