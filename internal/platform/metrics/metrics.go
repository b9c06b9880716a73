package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "numerology"

// Failure kinds recorded by IncFailure.
const (
	FailureInvalidDate    = "invalid_date"
	FailureUnknownKind    = "unknown_kind"
	FailureStore          = "store"
	FailureInterpretation = "interpretation"
	FailureOther          = "other"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	reportsComputed       *prometheus.CounterVec
	compatibilityComputed prometheus.Counter
	calculationFailures   *prometheus.CounterVec
	requestDuration       *prometheus.HistogramVec
	gatherer              prometheus.Gatherer
}

// MustNewMetrics registers the collectors on reg. A nil reg uses a fresh
// registry. Registering twice on the same registry panics.
func MustNewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		reportsComputed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_computed_total",
				Help:      "Number of reports computed, by source (single, batch, number).",
			},
			[]string{"source"},
		),
		compatibilityComputed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "compatibility_computed_total",
				Help:      "Number of compatibility scores computed.",
			},
		),
		calculationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calculation_failures_total",
				Help:      "Number of failed calculations, by failure kind.",
			},
			[]string{"kind"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
		gatherer: reg,
	}

	// ALLOW-PANIC: duplicate registration is a wiring bug
	reg.MustRegister(m.reportsComputed, m.compatibilityComputed, m.calculationFailures, m.requestDuration)
	return m
}

// IncReports records n computed reports from source.
func (m *Metrics) IncReports(source string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.reportsComputed.WithLabelValues(source).Add(float64(n))
}

// IncCompatibility records one computed compatibility score.
func (m *Metrics) IncCompatibility() {
	if m == nil {
		return
	}
	m.compatibilityComputed.Inc()
}

// IncFailure records one failed calculation of the given kind.
func (m *Metrics) IncFailure(kind string) {
	if m == nil {
		return
	}
	m.calculationFailures.WithLabelValues(kind).Inc()
}

// ObserveRequest records the duration of one HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the Prometheus exposition format for the registry the
// collectors were registered on.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware times every request. The route label is the chi route pattern,
// so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.ObserveRequest(route, r.Method, status, time.Since(start))
	})
}
