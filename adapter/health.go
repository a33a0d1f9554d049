// Package adapter exposes a bridge to external monitoring systems.
package adapter

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/srediag/plugin-npclient/pkg/npclient"
	"github.com/srediag/plugin-npclient/pkg/shm"
)

// ErrBridgeClosed is reported by the liveness check once the bridge is closed.
var ErrBridgeClosed = errors.New("bridge closed")

// DefaultMaxGoroutines bounds the goroutine count liveness check.
const DefaultMaxGoroutines = 1000

// Observer is the part of a bridge the health checks look at. Checks only read
// the outcome of past polls so probing never consumes the producer's countdown.
type Observer interface {
	Observed() (npclient.Step, bool)
	Closed() bool
}

var _ Observer = (*npclient.Bridge)(nil)

// HealthAdapter serves liveness and readiness of a bridge over HTTP.
//
// The process is live while the bridge is open and its goroutine count stays
// bounded. It is ready while the latest poll delivered tracking data.
type HealthAdapter struct {
	handler healthcheck.Handler
}

// HealthOption configures NewHealthAdapter.
type HealthOption func(*healthOptions)

type healthOptions struct {
	registry      prometheus.Registerer
	namespace     string
	maxGoroutines int
}

// WithHealthMetrics publishes the check outcomes as a gauge on reg.
func WithHealthMetrics(reg prometheus.Registerer, namespace string) HealthOption {
	return func(o *healthOptions) {
		o.registry = reg
		o.namespace = namespace
	}
}

// WithMaxGoroutines overrides DefaultMaxGoroutines.
func WithMaxGoroutines(n int) HealthOption {
	return func(o *healthOptions) { o.maxGoroutines = n }
}

// NewHealthAdapter builds the checks for obs.
func NewHealthAdapter(obs Observer, opts ...HealthOption) *HealthAdapter {
	o := healthOptions{maxGoroutines: DefaultMaxGoroutines}
	for _, opt := range opts {
		opt(&o)
	}

	var h healthcheck.Handler
	if o.registry != nil {
		h = healthcheck.NewMetricsHandler(o.registry, o.namespace)
	} else {
		h = healthcheck.NewHandler()
	}

	h.AddLivenessCheck("bridge-open", func() error {
		if obs.Closed() {
			return ErrBridgeClosed
		}
		return nil
	})
	h.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(o.maxGoroutines))

	h.AddReadinessCheck("shared-record", func() error {
		return ReadinessError(obs.Observed())
	})
	return &HealthAdapter{handler: h}
}

// ReadinessError maps the outcome of a poll to the reason it carried no data.
func ReadinessError(step npclient.Step, mapped bool) error {
	switch {
	case step.Running():
		return nil
	case !mapped:
		return shm.ErrMappingUnavailable
	case step.Phase == npclient.PhaseNoSession:
		return npclient.ErrIdentityMismatch
	default:
		return fmt.Errorf("%w: countdown %d", npclient.ErrDisabled, step.Countdown)
	}
}

// ServeHTTP implements http.Handler, serving /live and /ready.
func (a *HealthAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// LiveEndpoint serves only the liveness checks.
func (a *HealthAdapter) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	a.handler.LiveEndpoint(w, r)
}

// ReadyEndpoint serves liveness and readiness checks.
func (a *HealthAdapter) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	a.handler.ReadyEndpoint(w, r)
}
