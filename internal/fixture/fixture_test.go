package fixture_test

import (
	"context"
	"testing"

	"github.com/hballab/handelo/internal/adapters/source"
	"github.com/hballab/handelo/internal/fixture"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGeneratorDeterminism(t *testing.T) {
	Convey("Given two generators with the same seed", t, func() {
		ctx := context.Background()

		build := func() *source.MemorySource {
			src := source.NewMemorySource()
			g := fixture.New(42)
			g.Season(src, "2022-2023", 10)
			g.Season(src, "2023-2024", 10)
			return src
		}

		a, b := build(), build()

		Convey("Then they produce identical seasons and matches", func() {
			sa, _ := a.Seasons(ctx)
			sb, _ := b.Seasons(ctx)
			So(sa, ShouldResemble, sb)

			for _, season := range sa {
				ma, _ := a.Matches(ctx, season)
				mb, _ := b.Matches(ctx, season)
				So(ma, ShouldResemble, mb)

				for _, id := range ma {
					ia, ea, err := a.Load(ctx, season, id)
					So(err, ShouldBeNil)
					ib, eb, err := b.Load(ctx, season, id)
					So(err, ShouldBeNil)
					So(ia, ShouldResemble, ib)
					So(ea, ShouldResemble, eb)
				}
			}
		})
	})
}

func TestGeneratorShape(t *testing.T) {
	Convey("Given a generated season", t, func() {
		ctx := context.Background()
		src := source.NewMemorySource()
		fixture.New(7).Season(src, "2023-2024", 5)

		ids, err := src.Matches(ctx, "2023-2024")
		So(err, ShouldBeNil)
		So(ids, ShouldHaveLength, 5)

		Convey("Then every match is well-formed", func() {
			for _, id := range ids {
				info, events, err := src.Load(ctx, "2023-2024", id)
				So(err, ShouldBeNil)
				So(info.HomeTeam, ShouldNotEqual, info.AwayTeam)
				So(len(events), ShouldBeGreaterThan, 10)

				Convey("And events are sequenced in order for "+id, func() {
					for i := 1; i < len(events); i++ {
						So(events[i].Seq, ShouldBeGreaterThan, events[i-1].Seq)
					}
					So(events[len(events)-1].Action, ShouldEqual, "Kamp slut")
				})
			}
		})
	})
}
