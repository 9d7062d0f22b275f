package model_test

import (
	"testing"

	"github.com/hballab/handelo/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTeamPair(t *testing.T) {
	Convey("Given a team pair", t, func() {
		pair := model.TeamPair{Home: "AAH", Away: "GOG"}

		Convey("Then Other returns the opposing side", func() {
			other, ok := pair.Other("AAH")
			So(ok, ShouldBeTrue)
			So(other, ShouldEqual, "GOG")

			other, ok = pair.Other("GOG")
			So(ok, ShouldBeTrue)
			So(other, ShouldEqual, "AAH")
		})

		Convey("And an unknown code resolves to nothing", func() {
			_, ok := pair.Other("KIF")
			So(ok, ShouldBeFalse)
			So(pair.Contains("KIF"), ShouldBeFalse)
		})
	})
}

func TestNamed(t *testing.T) {
	Convey("Given extractor name sentinels", t, func() {
		Convey("Then blank variants are not usable names", func() {
			So(model.Named(""), ShouldBeFalse)
			So(model.Named("nan"), ShouldBeFalse)
			So(model.Named("None"), ShouldBeFalse)
		})

		Convey("And real names are", func() {
			So(model.Named("Mikkel Hansen"), ShouldBeTrue)
		})
	})
}
