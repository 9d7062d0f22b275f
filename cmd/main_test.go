package main

import (
	"testing"

	"github.com/hballab/handelo/internal/config"
	"github.com/hballab/handelo/internal/domain/importance"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConfigMappers(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := config.New()

		Convey("Then rating params mirror the config values", func() {
			p := ratingParams(cfg)
			So(p.MinRating, ShouldEqual, cfg.Rating.MinRating)
			So(p.MaxRating, ShouldEqual, cfg.Rating.MaxRating)
			So(p.MaxChangePerEvent, ShouldEqual, cfg.Rating.MaxChangePerEvent)
			So(p.GoalkeeperScale, ShouldEqual, cfg.Rating.GoalkeeperScale)
		})

		Convey("And carryover params pick up the rating defaults", func() {
			p := carryoverParams(cfg)
			So(p.FullCarryGames, ShouldEqual, cfg.Carryover.FullCarryGames)
			So(p.DefaultPlayer, ShouldEqual, cfg.Rating.DefaultPlayer)
			So(p.DefaultGoalkeeper, ShouldEqual, cfg.Rating.DefaultGoalkeeper)
			So(p.DefaultTeam, ShouldEqual, cfg.Rating.DefaultTeam)
		})

		Convey("And team params mirror the configured goal-diff tiers", func() {
			p := teamParams(cfg)
			So(p.KFactor, ShouldEqual, cfg.Team.KFactor)
			So(p.MinRating, ShouldEqual, cfg.Rating.MinRating)
			So(len(p.GoalDiffTiers), ShouldEqual, len(cfg.Team.GoalDiffTiers))
			for i, tier := range cfg.Team.GoalDiffTiers {
				So(p.GoalDiffTiers[i].MaxDiff, ShouldEqual, tier.MaxDiff)
				So(p.GoalDiffTiers[i].Multiplier, ShouldEqual, tier.Multiplier)
			}
			So(p.GoalDiffCeiling, ShouldEqual, cfg.Team.GoalDiffCeiling)
		})

		Convey("And overridden goal-diff tiers flow through", func() {
			cfg.Team.GoalDiffTiers = []config.GoalDiffTierConfig{
				{MaxDiff: 3, Multiplier: 1.2},
			}
			cfg.Team.GoalDiffCeiling = 1.5
			p := teamParams(cfg)
			So(p.GoalDiffTiers, ShouldHaveLength, 1)
			So(p.GoalDiffTiers[0].MaxDiff, ShouldEqual, 3)
			So(p.GoalDiffCeiling, ShouldEqual, 1.5)
		})

		Convey("And weight tables only override when configured", func() {
			tbl := actionTable(cfg)
			So(tbl.Classify("Mål").Weight, ShouldEqual, 65)

			cfg.ActionWeights = map[string]float64{"Mål": 70}
			tbl = actionTable(cfg)
			So(tbl.Classify("Mål").Weight, ShouldEqual, 70)
		})

		Convey("And the importance engine honors the configured clamp", func() {
			cfg.Importance.MinMultiplier = 1.5
			imp := importanceEngine(cfg)
			b := imp.Assess(importance.Input{Minute: 10, ActorScore: 4, OpponentScore: 12})
			So(b.Combined, ShouldBeGreaterThanOrEqualTo, 1.5)
		})
	})
}

func TestSeasonCode(t *testing.T) {
	Convey("Season codes span two calendar years", t, func() {
		So(seasonCode(2021), ShouldEqual, "2021-2022")
		So(seasonCode(2024), ShouldEqual, "2024-2025")
	})
}
