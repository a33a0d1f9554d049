package adapter

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsAdapter exposes collected bridge metrics in the prometheus text format.
type MetricsAdapter struct {
	handler http.Handler
}

// NewMetricsAdapter serves g. A nil g serves prometheus.DefaultGatherer.
func NewMetricsAdapter(g prometheus.Gatherer) *MetricsAdapter {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return &MetricsAdapter{
		handler: promhttp.HandlerFor(g, promhttp.HandlerOpts{}),
	}
}

// ServeHTTP implements http.Handler.
func (a *MetricsAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// NewServeMux routes /live, /ready and /metrics.
func NewServeMux(health *HealthAdapter, metrics *MetricsAdapter) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/live", health.LiveEndpoint)
	mux.HandleFunc("/ready", health.ReadyEndpoint)
	mux.Handle("/metrics", metrics)
	return mux
}
