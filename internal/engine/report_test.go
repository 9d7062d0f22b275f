package engine_test

import (
	"context"
	"testing"

	"github.com/hballab/handelo/internal/adapters/repository"
	"github.com/hballab/handelo/internal/adapters/source"
	"github.com/hballab/handelo/internal/domain/rating"
	"github.com/hballab/handelo/internal/engine"
	"github.com/hballab/handelo/internal/fixture"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSeasonAndCareerReports(t *testing.T) {
	Convey("Given a processed season", t, func() {
		ctx := context.Background()
		log := testLogger(t)

		src := source.NewMemorySource()
		fixture.New(11).Season(src, "2023-2024", 10)

		store := repository.NewMemStore()
		captured := make(map[string][]string)
		e := engine.New(src, store, log,
			engine.WithSeasonHook(func(season string, st repository.Store) error {
				rows := engine.SeasonReport(season, st, rating.DefaultParams())
				for _, r := range rows {
					captured[season] = append(captured[season], r.Name)
				}
				return nil
			}))

		_, err := e.Run(ctx)
		So(err, ShouldBeNil)

		Convey("Then the snapshot ranks players by rating", func() {
			rows := engine.SeasonReport("2023-2024", store, rating.DefaultParams())
			So(len(rows), ShouldBeGreaterThan, 0)
			for i := 1; i < len(rows); i++ {
				So(rows[i].Rating, ShouldBeLessThanOrEqualTo, rows[i-1].Rating)
				So(rows[i].Rank, ShouldEqual, i+1)
			}
			for _, r := range rows {
				So(r.Games, ShouldBeGreaterThan, 0)
				So(r.Position, ShouldNotBeEmpty)
				So(r.Club, ShouldNotBeEmpty)
			}
		})

		Convey("And the season hook saw the same season", func() {
			So(captured["2023-2024"], ShouldNotBeEmpty)
		})

		Convey("And the team report covers participating teams", func() {
			teams := engine.TeamReport("2023-2024", store)
			So(len(teams), ShouldBeGreaterThan, 0)
			for i := 1; i < len(teams); i++ {
				So(teams[i].Rating, ShouldBeLessThanOrEqualTo, teams[i-1].Rating)
			}
		})

		Convey("And the career report includes keeper stats", func() {
			careers := engine.CareerReport(store)
			So(len(careers), ShouldBeGreaterThan, 0)

			sawKeeper := false
			for _, c := range careers {
				So(c.Seasons, ShouldBeGreaterThanOrEqualTo, 1)
				if c.Goalkeeper && c.Saves > 0 {
					sawKeeper = true
				}
			}
			So(sawKeeper, ShouldBeTrue)
		})
	})
}
