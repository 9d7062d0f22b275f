package carryover_test

import (
	"testing"

	"github.com/hballab/handelo/internal/domain/carryover"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStartRating(t *testing.T) {
	Convey("Given the carryover engine", t, func() {
		e := carryover.New()

		Convey("When an elite player carried a full season", func() {
			sum := carryover.Summary{Rating: 1690, Games: 20, Status: carryover.Elite, Momentum: 0}
			start, f := e.StartRating(sum, 1400)

			Convey("Then the start lands strictly between the mean and the old rating", func() {
				So(start, ShouldBeGreaterThan, 1400)
				So(start, ShouldBeLessThan, 1690)
				So(start, ShouldAlmostEqual, 1400+290*0.679, 0.5)
			})

			Convey("And the factor breakdown is recorded", func() {
				So(f.GamesFactor, ShouldEqual, 1.0)
				So(f.EliteFactor, ShouldEqual, 0.70)
				So(f.MomentumFactor, ShouldEqual, 1.0)
				So(f.DistanceFactor, ShouldEqual, 0.97)
				So(f.Capped, ShouldBeFalse)
			})

			Convey("And a thin sample regresses much harder", func() {
				thin := carryover.Summary{Rating: 1690, Games: 2, Status: carryover.Elite}
				thinStart, tf := e.StartRating(thin, 1400)
				So(tf.GamesFactor, ShouldEqual, 0.25)
				So(thinStart, ShouldBeLessThan, start)
				So(thinStart, ShouldBeGreaterThan, 1400)
			})
		})

		Convey("When games ramp toward a full season", func() {
			prev := 0.0
			for _, games := range []int{0, 4, 6, 8, 10, 12, 20} {
				sum := carryover.Summary{Rating: 1500, Games: games}
				start, _ := e.StartRating(sum, 1400)
				So(start, ShouldBeGreaterThanOrEqualTo, prev)
				prev = start
			}
		})

		Convey("When an entity sits far below the mean", func() {
			sum := carryover.Summary{Rating: 950, Games: 15}
			start, f := e.StartRating(sum, 1400)

			Convey("Then it snaps most of the way back", func() {
				So(f.DistanceFactor, ShouldEqual, 0.15)
				So(start, ShouldBeGreaterThan, 950)
				So(start, ShouldBeLessThan, 1400)
			})
		})

		Convey("When a hot finish meets a full sample", func() {
			sum := carryover.Summary{Rating: 1500, Games: 14, Momentum: 12}
			_, f := e.StartRating(sum, 1400)

			Convey("Then the exceptional bonus applies and is capped", func() {
				So(f.ExceptionalBonus, ShouldEqual, 32)
				So(f.MomentumFactor, ShouldEqual, 1.15)
			})

			big := carryover.Summary{Rating: 1500, Games: 14, Momentum: 30}
			_, fb := e.StartRating(big, 1400)
			So(fb.ExceptionalBonus, ShouldEqual, 120)
		})

		Convey("When the regression would swing past the caps", func() {
			crashed := carryover.Summary{Rating: 850, Games: 1}
			start, f := e.StartRating(crashed, 1400)

			Convey("Then the bonus cap holds the climb to +400", func() {
				So(f.Capped, ShouldBeTrue)
				So(start, ShouldEqual, 850+400)
			})
		})

		Convey("Then first appearances use role defaults", func() {
			So(e.DefaultPlayerRating(false), ShouldEqual, 1200)
			So(e.DefaultPlayerRating(true), ShouldEqual, 1250)
			So(e.DefaultTeamRating(), ShouldEqual, 1350)
		})
	})
}
