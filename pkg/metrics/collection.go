// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	searchesStarted prometheus.CounterVec
	searchOutcomes  prometheus.CounterVec
	roomsCreated    prometheus.Counter
	joinFailures    prometheus.CounterVec
	runsStarted     prometheus.CounterVec
	runOutcomes     prometheus.CounterVec
	stepsEmitted    prometheus.CounterVec
	runElapsedTime  prometheus.HistogramVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)

	searchesStarted := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_mm_searches_started_total",
			Help: "A counter of quick-match searches initiated by the client",
		}, []string{"difficulty"})

	searchOutcomes := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_mm_search_outcomes_total",
			Help: "A counter of quick-match search outcomes by reason",
		}, []string{"difficulty", "outcome"})

	roomsCreated := factory.NewCounter(
		prometheus.CounterOpts{
			Name: "arena_mm_rooms_created_total",
			Help: "A counter of private rooms created by the client",
		})

	joinFailures := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_mm_room_join_failures_total",
			Help: "A counter of failed room join attempts by reason",
		}, []string{"reason"})

	runsStarted := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_viz_runs_started_total",
			Help: "A counter of visualizer runs started per algorithm",
		}, []string{"algorithm"})

	runOutcomes := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_viz_run_outcomes_total",
			Help: "A counter of visualizer run outcomes per algorithm",
		}, []string{"algorithm", "outcome"})

	stepsEmitted := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_viz_steps_emitted_total",
			Help: "A counter of visualization steps emitted per algorithm and tag",
		}, []string{"algorithm", "tag"})

	//nolint:promlinter
	runElapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arena_viz_run_elapsed_time_ms",
			Help:    "A histogram of completed visualizer run durations in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}, []string{"algorithm"})

	return prometheusMetrics{
		searchesStarted: *searchesStarted,
		searchOutcomes:  *searchOutcomes,
		roomsCreated:    roomsCreated,
		joinFailures:    *joinFailures,
		runsStarted:     *runsStarted,
		runOutcomes:     *runOutcomes,
		stepsEmitted:    *stepsEmitted,
		runElapsedTime:  *runElapsedTime,
	}
}

func (metrics prometheusMetrics) AddSearchStarted(difficulty string) {
	metrics.searchesStarted.With(prometheus.Labels{"difficulty": difficulty}).Add(1)
}

func (metrics prometheusMetrics) AddSearchOutcome(difficulty string, outcome string) {
	metrics.searchOutcomes.With(prometheus.Labels{"difficulty": difficulty, "outcome": outcome}).Add(1)
}

func (metrics prometheusMetrics) AddRoomCreated() {
	metrics.roomsCreated.Add(1)
}

func (metrics prometheusMetrics) AddRoomJoinFailure(reason string) {
	metrics.joinFailures.With(prometheus.Labels{"reason": reason}).Add(1)
}

func (metrics prometheusMetrics) AddRunStarted(algorithm string) {
	metrics.runsStarted.With(prometheus.Labels{"algorithm": algorithm}).Add(1)
}

func (metrics prometheusMetrics) AddRunOutcome(algorithm string, outcome string) {
	metrics.runOutcomes.With(prometheus.Labels{"algorithm": algorithm, "outcome": outcome}).Add(1)
}

func (metrics prometheusMetrics) AddStepEmitted(algorithm string, tag string) {
	metrics.stepsEmitted.With(prometheus.Labels{"algorithm": algorithm, "tag": tag}).Add(1)
}

func (metrics prometheusMetrics) AddRunElapsedTimeMs(algorithm string, elapsedTime time.Duration) {
	metrics.runElapsedTime.With(prometheus.Labels{"algorithm": algorithm}).Observe(float64(elapsedTime.Milliseconds()))
}
