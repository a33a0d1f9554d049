package npclient

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/srediag/plugin-npclient/api"
)

// Metrics counts bridge activity. The zero value is not usable; use NewMetrics.
type Metrics struct {
	Polls              *prometheus.CounterVec
	IdentityMismatch   prometheus.Counter
	MappingUnavailable prometheus.Counter
	Countdown          prometheus.Gauge
}

// NewMetrics creates the bridge collectors and registers them on reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "npclient",
			Name:      "polls_total",
			Help:      "Data requests served, by reported status.",
		}, []string{"status"}),
		IdentityMismatch: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "npclient",
			Name:      "identity_mismatch_total",
			Help:      "Polls that found the shared record stale, foreign or mid-write.",
		}),
		MappingUnavailable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "npclient",
			Name:      "mapping_unavailable_total",
			Help:      "Polls that could not attach the shared segment.",
		}),
		Countdown: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "npclient",
			Name:      "countdown",
			Help:      "Last countdown value observed in the shared record.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Polls, m.IdentityMismatch, m.MappingUnavailable, m.Countdown)
	}
	return m
}

func (m *Metrics) observe(status api.Status, step Step, mapped bool) {
	m.Polls.WithLabelValues(status.String()).Inc()
	if !mapped {
		m.MappingUnavailable.Inc()
		return
	}
	m.Countdown.Set(float64(step.Countdown))
	if step.Phase == PhaseNoSession {
		m.IdentityMismatch.Inc()
	}
}
