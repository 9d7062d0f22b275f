package config_test

import (
	"testing"

	"github.com/hballab/handelo/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should carry the standard rating constants", func() {
			convey.So(cfg.Rating.MinRating, convey.ShouldEqual, 800)
			convey.So(cfg.Rating.MaxRating, convey.ShouldEqual, 3000)
			convey.So(cfg.Rating.DefaultPlayer, convey.ShouldEqual, 1200)
			convey.So(cfg.Rating.DefaultGoalkeeper, convey.ShouldEqual, 1250)
			convey.So(cfg.Rating.DefaultTeam, convey.ShouldEqual, 1350)
			convey.So(cfg.Rating.MaxChangePerEvent, convey.ShouldEqual, 16)
			convey.So(cfg.Rating.CareerDamping, convey.ShouldEqual, 0.7)
		})

		convey.Convey("And the context blend weights should sum to one", func() {
			sum := cfg.Importance.TimingWeight +
				cfg.Importance.ScoreWeight +
				cfg.Importance.MomentumWeight +
				cfg.Importance.ActionKindWeight +
				cfg.Importance.SituationWeight +
				cfg.Importance.KeeperClutchWeight
			convey.So(sum, convey.ShouldAlmostEqual, 1.0, 1e-9)
		})

		convey.Convey("And the carryover caps should be asymmetric", func() {
			convey.So(cfg.Carryover.MaxCarryBonus, convey.ShouldEqual, 400)
			convey.So(cfg.Carryover.MaxCarryPenalty, convey.ShouldEqual, -200)
		})
	})
}
