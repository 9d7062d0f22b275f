package resolve_test

import (
	"testing"

	"github.com/hballab/handelo/internal/domain/action"
	"github.com/hballab/handelo/internal/domain/model"
	"github.com/hballab/handelo/internal/domain/resolve"
	. "github.com/smartystreets/goconvey/convey"
)

var teams = model.TeamPair{Home: "AAH", Away: "GOG"}

func TestResolvePrimary(t *testing.T) {
	Convey("Given a resolver", t, func() {
		r := resolve.New(action.NewTable())

		Convey("When resolving a goal with a named scorer", func() {
			ev := model.MatchEvent{Team: "AAH", Action: "Mål", Player: "Sander Sagosen"}
			parts := r.Resolve(ev, teams)

			Convey("Then the scorer is attributed to the event team", func() {
				So(parts, ShouldHaveLength, 1)
				So(parts[0].Name, ShouldEqual, "Sander Sagosen")
				So(parts[0].Team, ShouldEqual, "AAH")
				So(parts[0].Goalkeeper, ShouldBeFalse)
			})
		})

		Convey("When the scorer name is a blank sentinel", func() {
			for _, name := range []string{"", "nan", "None"} {
				ev := model.MatchEvent{Team: "AAH", Action: "Mål", Player: name}
				So(r.Resolve(ev, teams), ShouldBeEmpty)
			}
		})

		Convey("When the event is administrative", func() {
			ev := model.MatchEvent{Team: "AAH", Action: "Halvleg", Player: "Sander Sagosen"}
			So(r.Resolve(ev, teams), ShouldBeEmpty)
		})
	})
}

func TestResolveSecondary(t *testing.T) {
	Convey("Given a resolver counting discards", t, func() {
		discarded := 0
		r := resolve.New(action.NewTable(), resolve.WithDiscardedHook(func() { discarded++ }))

		Convey("When a goal carries an assist", func() {
			ev := model.MatchEvent{
				Team: "AAH", Action: "Mål", Player: "Sander Sagosen",
				SecondaryAction: "Assist", SecondaryPlayer: "Mathias Gidsel",
			}
			parts := r.Resolve(ev, teams)

			Convey("Then the assister joins the scorer's team", func() {
				So(parts, ShouldHaveLength, 2)
				So(parts[1].Name, ShouldEqual, "Mathias Gidsel")
				So(parts[1].Team, ShouldEqual, "AAH")
				So(parts[1].Action, ShouldEqual, "Assist")
			})
		})

		Convey("When a turnover carries a steal credit", func() {
			ev := model.MatchEvent{
				Team: "AAH", Action: "Fejlaflevering", Player: "Sander Sagosen",
				SecondaryAction: "Bold erobret", SecondaryPlayer: "Simon Pytlick",
			}
			parts := r.Resolve(ev, teams)

			Convey("Then the stealer belongs to the opposing team", func() {
				So(parts, ShouldHaveLength, 2)
				So(parts[1].Name, ShouldEqual, "Simon Pytlick")
				So(parts[1].Team, ShouldEqual, "GOG")
			})
		})

		Convey("When the event team matches neither side", func() {
			ev := model.MatchEvent{
				Team: "KIF", Action: "Fejlaflevering", Player: "Sander Sagosen",
				SecondaryAction: "Bold erobret", SecondaryPlayer: "Simon Pytlick",
			}
			parts := r.Resolve(ev, teams)

			Convey("Then both attributions are dropped and counted", func() {
				So(parts, ShouldBeEmpty)
				So(discarded, ShouldEqual, 2)
			})
		})
	})
}

func TestResolveGoalkeeper(t *testing.T) {
	Convey("Given a resolver", t, func() {
		r := resolve.New(action.NewTable())

		Convey("When a shot row names the opposing keeper", func() {
			ev := model.MatchEvent{
				Team: "AAH", Action: "Mål", Player: "Sander Sagosen",
				Goalkeeper: "Niklas Landin", GoalkeeperNumber: "16",
			}
			parts := r.Resolve(ev, teams)

			Convey("Then the keeper is attributed to the other team", func() {
				So(parts, ShouldHaveLength, 2)
				So(parts[1].Name, ShouldEqual, "Niklas Landin")
				So(parts[1].Team, ShouldEqual, "GOG")
				So(parts[1].Goalkeeper, ShouldBeTrue)
			})
		})

		Convey("When the keeper number is the zero sentinel", func() {
			ev := model.MatchEvent{
				Team: "AAH", Action: "Mål", Player: "Sander Sagosen",
				Goalkeeper: "Niklas Landin", GoalkeeperNumber: "0",
			}
			parts := r.Resolve(ev, teams)

			Convey("Then no keeper is credited", func() {
				So(parts, ShouldHaveLength, 1)
			})
		})
	})
}
