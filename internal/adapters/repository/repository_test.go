package repository_test

import (
	"testing"

	"github.com/hballab/handelo/internal/adapters/repository"
	"github.com/hballab/handelo/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStore(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		store := repository.NewMemStore()

		Convey("When a player is fetched twice", func() {
			created := 0
			factory := func() *rating.PlayerState {
				created++
				return rating.NewPlayerState("A", 1200)
			}
			p1 := store.Player("A", factory)
			p2 := store.Player("A", factory)

			Convey("Then the default factory runs exactly once", func() {
				So(created, ShouldEqual, 1)
				So(p1, ShouldEqual, p2)
				So(store.HasPlayer("A"), ShouldBeTrue)
				So(store.PlayerCount(), ShouldEqual, 1)
			})
		})

		Convey("When players are added out of name order", func() {
			for _, name := range []string{"Zoe", "Anna", "Mia"} {
				n := name
				store.Player(n, func() *rating.PlayerState { return rating.NewPlayerState(n, 1200) })
			}

			Convey("Then iteration follows insertion order", func() {
				var seen []string
				store.Players(func(p *rating.PlayerState) { seen = append(seen, p.Name) })
				So(seen, ShouldResemble, []string{"Zoe", "Anna", "Mia"})
			})
		})

		Convey("When ratings diverge", func() {
			for name, r := range map[string]float64{"A": 1300, "B": 1500, "C": 1500, "D": 1100} {
				n, start := name, r
				store.Player(n, func() *rating.PlayerState { return rating.NewPlayerState(n, start) })
			}

			Convey("Then TopPlayers orders by rating then name", func() {
				top := store.TopPlayers(3)
				So(top, ShouldHaveLength, 3)
				So(top[0].Name, ShouldEqual, "B")
				So(top[1].Name, ShouldEqual, "C")
				So(top[2].Name, ShouldEqual, "A")
			})
		})

		Convey("When teams are added", func() {
			store.Team("AAH", func() *rating.TeamState { return rating.NewTeamState("AAH", 1350) })
			So(store.HasTeam("AAH"), ShouldBeTrue)
			So(store.HasTeam("GOG"), ShouldBeFalse)
			So(store.TeamCount(), ShouldEqual, 1)
		})
	})
}
