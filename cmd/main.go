package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hballab/handelo/internal/adapters/export"
	"github.com/hballab/handelo/internal/adapters/repository"
	"github.com/hballab/handelo/internal/adapters/source"
	"github.com/hballab/handelo/internal/config"
	"github.com/hballab/handelo/internal/domain/action"
	"github.com/hballab/handelo/internal/domain/carryover"
	"github.com/hballab/handelo/internal/domain/importance"
	"github.com/hballab/handelo/internal/domain/rating"
	"github.com/hballab/handelo/internal/domain/teamrating"
	"github.com/hballab/handelo/internal/engine"
	"github.com/hballab/handelo/internal/fixture"
	"github.com/hballab/handelo/pkg/logger"
	"github.com/hballab/handelo/pkg/metrics"
)

// Metrics listener timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	fixtureSeed       = 1
	fixtureSeasons    = 3
	fixtureMatches    = 132
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Optional Prometheus listener for long runs.
	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, log, cfg.MetricsAddr)
	}

	src, cleanup, err := openSource(ctx, log, cfg)
	if err != nil {
		log.Error(ctx, "open event source failed", logger.Error(err))
		return
	}
	defer cleanup()

	if err := run(ctx, log, cfg, src); err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
	}
}

func run(ctx context.Context, log logger.Logger, cfg *config.Config, src source.Source) error {
	store := repository.NewMemStore()

	ratingParams := ratingParams(cfg)
	opts := []engine.Option{
		engine.WithActionTable(actionTable(cfg)),
		engine.WithImportanceEngine(importanceEngine(cfg)),
		engine.WithUpdater(rating.NewUpdater(rating.WithParams(ratingParams))),
		engine.WithCarryover(carryover.New(carryover.WithParams(carryoverParams(cfg)))),
		engine.WithTeamRater(teamrating.New(teamrating.WithParams(teamParams(cfg)))),
		engine.WithFormWindow(cfg.RecentFormWindow),
		engine.WithSeasonHook(func(season string, store repository.Store) error {
			if err := export.WriteFile(export.SeasonFile(cfg.OutputDir, season), func(w io.Writer) error {
				return export.WriteSeasonCSV(w, engine.SeasonReport(season, store, ratingParams))
			}); err != nil {
				return err
			}
			return export.WriteFile(export.TeamFile(cfg.OutputDir, season), func(w io.Writer) error {
				return export.WriteTeamCSV(w, engine.TeamReport(season, store))
			})
		}),
	}

	var auditClose func() error
	if cfg.WriteAudit {
		sink, closeFn, err := openAudit(cfg.OutputDir)
		if err != nil {
			return err
		}
		auditClose = closeFn
		opts = append(opts, engine.WithAuditSink(sink))
	}

	e := engine.New(src, store, log, opts...)

	res, err := e.Run(ctx)
	if err != nil {
		return err
	}

	if auditClose != nil {
		if err := auditClose(); err != nil {
			log.Warn(ctx, "audit close failed", logger.Error(err))
		}
	}

	if err := export.WriteFile(export.CareerFile(cfg.OutputDir), func(w io.Writer) error {
		return export.WriteCareerCSV(w, engine.CareerReport(store))
	}); err != nil {
		return err
	}

	log.Info(ctx, "run finished",
		logger.Int("seasons", res.Seasons),
		logger.Int("matches", res.Matches),
		logger.Int("duplicates", res.DuplicateMatches),
		logger.Int("skipped", res.SkippedMatches),
		logger.Int("events", res.Events),
		logger.Int("players", res.Players),
		logger.Int("teams", res.Teams))
	return nil
}

// openSource connects to the event warehouse, or falls back to the
// deterministic fixture generator when no DSN is configured.
func openSource(ctx context.Context, log logger.Logger, cfg *config.Config) (source.Source, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := source.NewPostgresSource(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, func() { _ = pg.Close() }, nil
	}

	log.Info(ctx, "no database configured; using generated fixtures")
	mem := source.NewMemorySource()
	g := fixture.New(fixtureSeed)
	for i := 0; i < fixtureSeasons; i++ {
		season := seasonCode(2021 + i)
		g.Season(mem, season, fixtureMatches)
	}
	return mem, func() {}, nil
}

func seasonCode(startYear int) string {
	return fmt.Sprintf("%d-%d", startYear, startYear+1)
}

func openAudit(dir string) (engine.AuditSink, func() error, error) {
	path := export.AuditFile(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create audit file: %w", err)
	}
	aw, err := export.NewAuditWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	closeFn := func() error {
		if err := aw.Flush(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}
	return aw, closeFn, nil
}

func serveMetrics(ctx context.Context, log logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), readHeaderTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "metrics listener starting", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn(ctx, "metrics listener failed", logger.Error(err))
	}
}

func actionTable(cfg *config.Config) *action.Table {
	var opts []action.Option
	if len(cfg.ActionWeights) > 0 {
		opts = append(opts, action.WithWeights(cfg.ActionWeights))
	}
	if len(cfg.KeeperPenaltyWeights) > 0 {
		opts = append(opts, action.WithKeeperPenaltyWeights(cfg.KeeperPenaltyWeights))
	}
	return action.NewTable(opts...)
}

func importanceEngine(cfg *config.Config) *importance.Engine {
	imp := cfg.Importance
	return importance.New(
		importance.WithWeights(importance.Weights{
			Timing:       imp.TimingWeight,
			Score:        imp.ScoreWeight,
			Momentum:     imp.MomentumWeight,
			ActionKind:   imp.ActionKindWeight,
			Situation:    imp.SituationWeight,
			KeeperClutch: imp.KeeperClutchWeight,
		}),
		importance.WithClamp(imp.MinMultiplier, imp.MaxMultiplier),
		importance.WithCriticalThreshold(imp.CriticalThreshold),
		importance.WithDefaultMinute(imp.DefaultMatchMinutes),
	)
}

func ratingParams(cfg *config.Config) rating.Params {
	r := cfg.Rating
	return rating.Params{
		MinRating:          r.MinRating,
		MaxRating:          r.MaxRating,
		DefaultPlayer:      r.DefaultPlayer,
		DefaultGoalkeeper:  r.DefaultGoalkeeper,
		EliteThreshold:     r.EliteThreshold,
		LegendaryThreshold: r.LegendaryThreshold,
		EliteDamping:       r.EliteDamping,
		LegendaryDamping:   r.LegendaryDamping,
		PlayerScale:        r.PlayerScale,
		GoalkeeperScale:    r.GoalkeeperScale,
		MaxChangePerEvent:  r.MaxChangePerEvent,
		CareerDamping:      r.CareerDamping,
	}
}

func carryoverParams(cfg *config.Config) carryover.Params {
	c := cfg.Carryover
	r := cfg.Rating
	return carryover.Params{
		FullCarryGames:    c.FullCarryGames,
		MaxCarryBonus:     c.MaxCarryBonus,
		MaxCarryPenalty:   c.MaxCarryPenalty,
		EliteFactor:       c.EliteFactor,
		LegendaryFactor:   c.LegendaryFactor,
		DefaultPlayer:     r.DefaultPlayer,
		DefaultGoalkeeper: r.DefaultGoalkeeper,
		DefaultTeam:       r.DefaultTeam,
	}
}

func teamParams(cfg *config.Config) teamrating.Params {
	t := cfg.Team
	r := cfg.Rating
	p := teamrating.DefaultParams()
	p.KFactor = t.KFactor
	p.HomeAdvantage = t.HomeAdvantage
	p.ExpectationBase = t.ExpectationBase
	p.ExpectationSlope = t.ExpectationSlope
	p.CertainWinDiff = t.CertainWinDiff
	p.CertainLossDiff = t.CertainLossDiff
	p.TrickleShare = t.TrickleShare
	p.TrickleCap = t.TrickleCap
	p.MinRating = r.MinRating
	p.MaxRating = r.MaxRating
	if len(t.GoalDiffTiers) > 0 {
		tiers := make([]teamrating.GoalDiffTier, len(t.GoalDiffTiers))
		for i, tier := range t.GoalDiffTiers {
			tiers[i] = teamrating.GoalDiffTier{MaxDiff: tier.MaxDiff, Multiplier: tier.Multiplier}
		}
		p.GoalDiffTiers = tiers
	}
	if t.GoalDiffCeiling > 0 {
		p.GoalDiffCeiling = t.GoalDiffCeiling
	}
	return p
}
