package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// serverMetrics holds the collectors of one Server. Each server registers
// its own set, so several servers in a process report separate values.
type serverMetrics struct {
	sessionsCreatedTotal *prometheus.CounterVec
	sessionsActive       prometheus.Gauge
	transitionsTotal     *prometheus.CounterVec
	plansRenderedTotal   *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
}

func newServerMetrics() *serverMetrics {
	return &serverMetrics{
		sessionsCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sv2wizard",
				Subsystem: "server",
				Name:      "sessions_created_total",
				Help:      "Total number of wizard sessions created by wizard",
			},
			[]string{"wizard"},
		),
		sessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "sv2wizard",
				Subsystem: "server",
				Name:      "sessions_active",
				Help:      "Number of sessions held in memory",
			},
		),
		transitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sv2wizard",
				Subsystem: "server",
				Name:      "transitions_total",
				Help:      "Total number of session actions by wizard, action and result",
			},
			[]string{"wizard", "action", "result"},
		),
		plansRenderedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sv2wizard",
				Subsystem: "server",
				Name:      "plans_rendered_total",
				Help:      "Total number of deployment plans rendered by wizard and method",
			},
			[]string{"wizard", "method"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sv2wizard",
				Subsystem: "server",
				Name:      "request_duration_seconds",
				Help:      "Duration of API requests in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
			},
			[]string{"route", "method", "code"},
		),
	}
}

func (m *serverMetrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.sessionsCreatedTotal,
		m.sessionsActive,
		m.transitionsTotal,
		m.plansRenderedTotal,
		m.requestDuration,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// recordSessionCreated records a new session.
func (m *serverMetrics) recordSessionCreated(wizard string) {
	m.sessionsCreatedTotal.WithLabelValues(wizard).Inc()
	m.sessionsActive.Inc()
}

// recordSessionsDeleted records n removed sessions.
func (m *serverMetrics) recordSessionsDeleted(n int) {
	m.sessionsActive.Sub(float64(n))
}

// recordTransition records the outcome of a session action.
func (m *serverMetrics) recordTransition(wizard, action string, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	m.transitionsTotal.WithLabelValues(wizard, action, result).Inc()
}

// recordPlan records a rendered deployment plan.
func (m *serverMetrics) recordPlan(wizard, method string) {
	m.plansRenderedTotal.WithLabelValues(wizard, method).Inc()
}
