// Package metrics exposes the Prometheus registry for the HTTP surface and
// the analytics and sentiment workloads.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Journal metrics
	tradesTotal       *prometheus.CounterVec
	accountsTotal     prometheus.Gauge
	dashboardsTotal   *prometheus.CounterVec
	dashboardDuration prometheus.Histogram
	sentimentTotal    *prometheus.CounterVec
	sentimentDuration *prometheus.HistogramVec
	snapshotsTotal    *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	r.tradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_trades_total",
			Help: "Trade mutations by operation",
		},
		[]string{"op"},
	)
	r.accountsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "journal_accounts",
			Help: "Number of accounts in the journal",
		},
	)
	r.dashboardsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_dashboards_total",
			Help: "Dashboard computations by timeframe",
		},
		[]string{"timeframe"},
	)
	r.dashboardDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "journal_dashboard_duration_seconds",
			Help:    "Time spent computing a dashboard",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)
	r.sentimentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_sentiment_scored_total",
			Help: "Texts scored by kind and resulting label",
		},
		[]string{"kind", "label"},
	)
	r.sentimentDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "journal_sentiment_duration_seconds",
			Help:    "Time spent scoring a text",
			Buckets: []float64{.00001, .0001, .001, .01, .1},
		},
		[]string{"kind"},
	)
	r.snapshotsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_snapshots_total",
			Help: "Account snapshot exports and imports",
		},
		[]string{"op", "status"},
	)

	reg.MustRegister(r.tradesTotal)
	reg.MustRegister(r.accountsTotal)
	reg.MustRegister(r.dashboardsTotal)
	reg.MustRegister(r.dashboardDuration)
	reg.MustRegister(r.sentimentTotal)
	reg.MustRegister(r.sentimentDuration)
	reg.MustRegister(r.snapshotsTotal)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordTrade counts a trade mutation ("add", "update", "delete").
func (r *Registry) RecordTrade(op string) {
	r.tradesTotal.WithLabelValues(op).Inc()
}

// SetAccounts sets the account count.
func (r *Registry) SetAccounts(n int) {
	r.accountsTotal.Set(float64(n))
}

// RecordDashboard records one dashboard computation.
func (r *Registry) RecordDashboard(timeframe string, d time.Duration) {
	r.dashboardsTotal.WithLabelValues(timeframe).Inc()
	r.dashboardDuration.Observe(d.Seconds())
}

// RecordSentiment records one scored text. kind is "text" or "financial".
func (r *Registry) RecordSentiment(kind, label string, d time.Duration) {
	r.sentimentTotal.WithLabelValues(kind, label).Inc()
	r.sentimentDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// RecordSnapshot records an export or import outcome.
func (r *Registry) RecordSnapshot(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.snapshotsTotal.WithLabelValues(op, status).Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
