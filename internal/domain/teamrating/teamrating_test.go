package teamrating_test

import (
	"testing"

	"github.com/hballab/handelo/internal/domain/rating"
	"github.com/hballab/handelo/internal/domain/teamrating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTrickle(t *testing.T) {
	Convey("Given a team rater", t, func() {
		r := teamrating.New()

		Convey("When a player delta trickles onto the team", func() {
			team := rating.NewTeamState("AAH", 1350)
			applied := r.Trickle(team, 10)

			Convey("Then the team gains the damped share", func() {
				So(applied, ShouldEqual, 2)
				So(team.Rating, ShouldEqual, 1352)
			})
		})

		Convey("When the share would exceed the trickle cap", func() {
			team := rating.NewTeamState("AAH", 1350)
			applied := r.Trickle(team, 100)
			So(applied, ShouldEqual, 3)

			applied = r.Trickle(team, -100)
			So(applied, ShouldEqual, -3)
		})
	})
}

func TestSettleMatch(t *testing.T) {
	Convey("Given a team rater", t, func() {
		r := teamrating.New()

		Convey("When evenly matched teams draw", func() {
			home := rating.NewTeamState("AAH", 1350)
			away := rating.NewTeamState("GOG", 1350)
			sett := r.SettleMatch(home, away, teamrating.Settlement{HomeGoals: 25, AwayGoals: 25})

			Convey("Then the home side pays for its advantage", func() {
				// expected = 0.55 + 0.0012*25 = 0.58; draw scores 0.5.
				So(sett.ExpectedHome, ShouldAlmostEqual, 0.58, 1e-9)
				So(sett.HomeDelta, ShouldAlmostEqual, 14*(0.5-0.58), 1e-9)
				So(home.Rating+away.Rating, ShouldAlmostEqual, 2700, 1e-9)
			})
		})

		Convey("When the favorite wins big", func() {
			home := rating.NewTeamState("AAH", 1500)
			away := rating.NewTeamState("GOG", 1350)
			sett := r.SettleMatch(home, away, teamrating.Settlement{HomeGoals: 35, AwayGoals: 22})

			Convey("Then the margin scales the K factor", func() {
				So(sett.GoalDiffMultiplier, ShouldEqual, 1.8)
				So(sett.HomeDelta, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the underdog wins away", func() {
			home := rating.NewTeamState("AAH", 1500)
			away := rating.NewTeamState("GOG", 1350)
			sett := r.SettleMatch(home, away, teamrating.Settlement{HomeGoals: 24, AwayGoals: 25})

			Convey("Then the away side gains what the home side loses", func() {
				So(sett.HomeDelta, ShouldBeLessThan, 0)
				So(home.Rating, ShouldEqual, 1500+sett.HomeDelta)
				So(away.Rating, ShouldEqual, 1350-sett.HomeDelta)
			})
		})

		Convey("When the rating gap passes the certainty cutoff", func() {
			home := rating.NewTeamState("AAH", 1800)
			away := rating.NewTeamState("GOG", 1400)
			sett := r.SettleMatch(home, away, teamrating.Settlement{HomeGoals: 30, AwayGoals: 20})

			Convey("Then an expected win moves nothing", func() {
				So(sett.ExpectedHome, ShouldEqual, 1.0)
				So(sett.HomeDelta, ShouldEqual, 0)
			})
		})
	})
}
