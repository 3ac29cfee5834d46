// Package telemetry provides OpenTelemetry instrumentation for the
// grievance service. It exports Prometheus metrics and provides tracing.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "grievancesense"

// Metrics holds all grievance service Prometheus metrics.
type Metrics struct {
	// Analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysesFailed   *prometheus.CounterVec
	AnalyzeDuration  prometheus.Histogram
	UrgencyTotal     *prometheus.CounterVec
	CredibilityScore prometheus.Histogram

	// Submission metrics
	SubmissionsTotal  prometheus.Counter
	SubmissionsFailed prometheus.Counter

	// Batch metrics
	BatchSize     prometheus.Histogram
	ActiveWorkers prometheus.Gauge
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initAnalysisMetrics(m)
	initSubmissionMetrics(m)
	initBatchMetrics(m)
	return m
}

func initAnalysisMetrics(m *Metrics) {
	m.AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grievance_analyses_total",
		Help: "Total complaints analyzed, by predicted category",
	}, []string{"category"})

	m.AnalysesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grievance_analyses_failed_total",
		Help: "Total complaint analyses that failed",
	}, []string{"reason"})

	m.AnalyzeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "grievance_analyze_duration_seconds",
		Help:    "Time to analyze a single complaint",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	m.UrgencyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grievance_urgency_total",
		Help: "Total complaints analyzed, by urgency level",
	}, []string{"urgency"})

	m.CredibilityScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "grievance_credibility_score",
		Help:    "Distribution of credibility scores",
		Buckets: []float64{30, 40, 50, 60, 70, 80, 90, 100},
	})
}

func initSubmissionMetrics(m *Metrics) {
	m.SubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grievance_submissions_total",
		Help: "Total complaints appended to the submission store",
	})

	m.SubmissionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grievance_submissions_failed_total",
		Help: "Total submission store appends that failed",
	})
}

func initBatchMetrics(m *Metrics) {
	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "grievance_batch_size",
		Help:    "Number of complaints per batch analysis",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200},
	})

	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "grievance_active_workers",
		Help: "Currently active batch analysis workers",
	})
}
