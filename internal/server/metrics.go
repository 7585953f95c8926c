package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/at-ishikawa/momentum/internal/tracker"
)

const metricsNamespace = "momentum"

type metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	finalizedDays prometheus.Counter
	momentumScore prometheus.Gauge
	currentStreak prometheus.Gauge
	skipsLeft     prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		finalizedDays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "finalized_days_total",
			Help:      "Study days finalized since the server started.",
		}),
		momentumScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "score",
			Help:      "Momentum score of the learner, from 0 to 100.",
		}),
		currentStreak: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "current_streak_days",
			Help:      "Current study streak of the learner.",
		}),
		skipsLeft: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "skips_left",
			Help:      "Skip credits available to the learner.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.finalizedDays,
		m.momentumScore,
		m.currentStreak,
		m.skipsLeft,
	)
	return m
}

func (m *metrics) observeProfile(profile tracker.Profile) {
	m.momentumScore.Set(float64(profile.MomentumScore))
	m.currentStreak.Set(float64(profile.CurrentStreak))
	m.skipsLeft.Set(float64(profile.SkipsLeft))
}
