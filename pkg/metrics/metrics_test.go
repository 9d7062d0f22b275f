package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithDurationBuckets([]float64{1, 5, 10}),
				WithMultiplierBuckets([]float64{0.5, 1.0, 2.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording pipeline throughput", func() {
			So(func() {
				RecordMatchProcessed()
				RecordMatchSkipped()
				RecordMatchDuplicate()
				RecordEventProcessed()
				RecordEventDiscarded()
			}, ShouldNotPanic)
		})

		Convey("When recording rating update metrics", func() {
			So(func() {
				RecordRatingUpdate()
				RecordUpdateClamped()
				RecordCriticalMoment()
				RecordCarryover()
				RecordExceptionalBonus()
			}, ShouldNotPanic)
		})

		Convey("When updating scale gauges", func() {
			So(func() {
				UpdatePlayersTracked(250)
				UpdateTeamsTracked(14)
				UpdateSeasonsProcessed(8)
			}, ShouldNotPanic)
		})

		Convey("When observing distributions", func() {
			So(func() {
				RecordContextMultiplier(1.35)
				RecordRatingDelta(4.2)
				RecordRatingDelta(-2.8)
				RecordMatchProcessDuration(12.0)
			}, ShouldNotPanic)
		})

		Convey("Then the registry should be available", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
