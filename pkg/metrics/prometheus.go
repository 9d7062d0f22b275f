// Package metrics provides Prometheus metrics for the handball rating pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the rating pipeline.
type Manager struct {
	namespace         string
	subsystem         string
	durationBuckets   []float64
	multiplierBuckets []float64
	registry          prometheus.Registerer

	// Pipeline throughput
	matchesProcessed prometheus.Counter
	matchesSkipped   prometheus.Counter
	matchesDuplicate prometheus.Counter
	eventsProcessed  prometheus.Counter
	eventsDiscarded  prometheus.Counter

	// Rating updates
	ratingUpdates      prometheus.Counter
	updatesClamped     prometheus.Counter
	criticalMoments    prometheus.Counter
	carryovers         prometheus.Counter
	exceptionalBonuses prometheus.Counter

	// Scale gauges
	playersTracked   prometheus.Gauge
	teamsTracked     prometheus.Gauge
	seasonsProcessed prometheus.Gauge

	// Distributions
	contextMultiplier    prometheus.Histogram
	ratingDelta          prometheus.Histogram
	matchProcessDuration prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:         "handelo",
		subsystem:         "rating",
		durationBuckets:   prometheus.DefBuckets,
		multiplierBuckets: []float64{0.4, 0.6, 0.8, 1.0, 1.25, 1.5, 2.0, 2.5, 3.0, 4.0, 5.0},
		registry:          prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.matchesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_processed_total",
		Help:      "Total number of matches successfully processed",
	})

	m.matchesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_skipped_total",
		Help:      "Total number of matches skipped due to load failures",
	})

	m.matchesDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_duplicate_total",
		Help:      "Total number of duplicate match reports detected",
	})

	m.eventsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_processed_total",
		Help:      "Total number of match events processed",
	})

	m.eventsDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_discarded_total",
		Help:      "Total number of events or attributions dropped during resolution",
	})

	m.ratingUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rating_updates_total",
		Help:      "Total number of rating updates applied",
	})

	m.updatesClamped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "updates_clamped_total",
		Help:      "Total number of rating updates clipped by the per-event cap or bounds",
	})

	m.criticalMoments = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "critical_moments_total",
		Help:      "Total number of events whose context multiplier crossed the critical threshold",
	})

	m.carryovers = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "carryovers_total",
		Help:      "Total number of season carryover computations",
	})

	m.exceptionalBonuses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exceptional_bonuses_total",
		Help:      "Total number of exceptional-performer carryover bonuses granted",
	})

	m.playersTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_tracked",
		Help:      "Number of distinct players currently tracked",
	})

	m.teamsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams_tracked",
		Help:      "Number of distinct teams currently tracked",
	})

	m.seasonsProcessed = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seasons_processed",
		Help:      "Number of seasons processed so far in this run",
	})

	m.contextMultiplier = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "context_multiplier",
		Help:      "Distribution of blended context multipliers",
		Buckets:   m.multiplierBuckets,
	})

	m.ratingDelta = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rating_delta",
		Help:      "Distribution of applied per-event rating deltas",
		Buckets:   []float64{-16, -8, -4, -2, -1, -0.5, 0, 0.5, 1, 2, 4, 8, 16},
	})

	m.matchProcessDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_process_duration_milliseconds",
		Help:      "Per-match processing duration in milliseconds",
		Buckets:   m.durationBuckets,
	})
}

// RecordMatchProcessed increments the matches processed counter.
func RecordMatchProcessed() {
	globalManager.matchesProcessed.Inc()
}

// RecordMatchSkipped increments the matches skipped counter.
func RecordMatchSkipped() {
	globalManager.matchesSkipped.Inc()
}

// RecordMatchDuplicate increments the duplicate matches counter.
func RecordMatchDuplicate() {
	globalManager.matchesDuplicate.Inc()
}

// RecordEventProcessed increments the events processed counter.
func RecordEventProcessed() {
	globalManager.eventsProcessed.Inc()
}

// RecordEventDiscarded increments the events discarded counter.
func RecordEventDiscarded() {
	globalManager.eventsDiscarded.Inc()
}

// RecordRatingUpdate increments the rating updates counter.
func RecordRatingUpdate() {
	globalManager.ratingUpdates.Inc()
}

// RecordUpdateClamped increments the clamped updates counter.
func RecordUpdateClamped() {
	globalManager.updatesClamped.Inc()
}

// RecordCriticalMoment increments the critical moments counter.
func RecordCriticalMoment() {
	globalManager.criticalMoments.Inc()
}

// RecordCarryover increments the carryover counter.
func RecordCarryover() {
	globalManager.carryovers.Inc()
}

// RecordExceptionalBonus increments the exceptional bonus counter.
func RecordExceptionalBonus() {
	globalManager.exceptionalBonuses.Inc()
}

// UpdatePlayersTracked sets the tracked player count.
func UpdatePlayersTracked(count int) {
	globalManager.playersTracked.Set(float64(count))
}

// UpdateTeamsTracked sets the tracked team count.
func UpdateTeamsTracked(count int) {
	globalManager.teamsTracked.Set(float64(count))
}

// UpdateSeasonsProcessed sets the processed season count.
func UpdateSeasonsProcessed(count int) {
	globalManager.seasonsProcessed.Set(float64(count))
}

// RecordContextMultiplier records a blended context multiplier observation.
func RecordContextMultiplier(multiplier float64) {
	globalManager.contextMultiplier.Observe(multiplier)
}

// RecordRatingDelta records an applied rating delta observation.
func RecordRatingDelta(delta float64) {
	globalManager.ratingDelta.Observe(delta)
}

// RecordMatchProcessDuration records per-match processing duration in milliseconds.
func RecordMatchProcessDuration(durationMs float64) {
	globalManager.matchProcessDuration.Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
