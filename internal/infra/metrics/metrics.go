// Package metrics exposes account activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/config"
	"storefront/internal/domain/service"
)

const namespace = "storefront"

// Collector is the Prometheus implementation of service.MetricsCollector.
type Collector struct {
	registrations   *prometheus.CounterVec
	logins          *prometheus.CounterVec
	sessionRejected prometheus.Counter
}

var _ service.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		sessionRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_rejected_total",
			Help:      "Session cookies that failed verification.",
		}),
	}

	reg.MustRegister(c.registrations, c.logins, c.sessionRejected)

	return c
}

// RecordRegistration counts one registration attempt.
func (c *Collector) RecordRegistration(outcome string) {
	c.registrations.WithLabelValues(outcome).Inc()
}

// RecordLogin counts one login attempt.
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordSessionRejected counts one rejected session token.
func (c *Collector) RecordSessionRejected() {
	c.sessionRejected.Inc()
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NewMetricsCollector picks the Prometheus collector when metrics are enabled
// and a no-op otherwise.
func NewMetricsCollector(cfg *config.Config, reg *prometheus.Registry) service.MetricsCollector {
	if cfg.Metrics == nil || !cfg.Metrics.Enabled {
		return Noop{}
	}

	return NewCollector(reg)
}

// Noop discards every observation.
type Noop struct{}

func (Noop) RecordRegistration(string) {}
func (Noop) RecordLogin(string)        {}
func (Noop) RecordSessionRejected()    {}
