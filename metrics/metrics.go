package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/use-agent/folio/controller"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SubmissionsTotal    *prometheus.CounterVec
	ExtractionDuration  *prometheus.HistogramVec
	ActiveSessions      prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "folio_http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_submissions_total",
				Help: "Portfolio submissions by lifecycle event and error code.",
			},
			[]string{"event", "code"}, // event: submitted, succeeded, failed, superseded
		),
		ExtractionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "folio_extraction_duration_seconds",
				Help:    "Time spent waiting on the extraction service.",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"outcome"},
		),
		ActiveSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "folio_active_sessions",
				Help: "Current number of browser sessions holding a controller.",
			},
		),
		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveSubmission records one controller event. code is the error code
// for failures and "" otherwise; elapsed is ignored when zero.
func (m *Metrics) ObserveSubmission(event, code string, elapsedSeconds float64) {
	m.SubmissionsTotal.WithLabelValues(event, code).Inc()
	if elapsedSeconds > 0 {
		m.ExtractionDuration.WithLabelValues(event).Observe(elapsedSeconds)
	}
}

// Observer records controller events.
func (m *Metrics) Observer() controller.Observer {
	return func(ev controller.Event) {
		code := ""
		if ev.Kind == controller.EventFailed && ev.State.Err != nil {
			code = ev.State.Err.Code
		}
		m.ObserveSubmission(ev.Kind.String(), code, ev.Elapsed.Seconds())
	}
}
