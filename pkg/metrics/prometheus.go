// Package metrics provides Prometheus metrics for the comparison service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Default latency buckets in milliseconds. Comparisons are in-memory and fast.
var defaultLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100}

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Comparison metrics
	comparisons       *prometheus.CounterVec
	comparisonErrors  *prometheus.CounterVec
	comparisonLatency *prometheus.HistogramVec
	validations       *prometheus.CounterVec

	// Dataset metrics
	datasetRecords         prometheus.Gauge
	datasetCompleteRecords prometheus.Gauge
	datasetLoadDuration    prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "horsepower",
		subsystem:        "compare",
		histogramBuckets: defaultLatencyBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.comparisons = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "comparisons_total",
		Help:        "Total number of comparisons computed by mode",
		ConstLabels: labels,
	}, []string{"mode"})

	m.comparisonErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "comparison_errors_total",
		Help:        "Total number of failed comparisons by mode and error kind",
		ConstLabels: labels,
	}, []string{"mode", "kind"})

	m.comparisonLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "comparison_latency_milliseconds",
		Help:        "Comparison latency in milliseconds by mode",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"mode"})

	m.validations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "validations_total",
		Help:        "Subject input validations by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.datasetRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "dataset",
		Name:        "records",
		Help:        "Rows in the reference dataset",
		ConstLabels: labels,
	})

	m.datasetCompleteRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "dataset",
		Name:        "complete_records",
		Help:        "Rows with every metric present (nearest-match candidates)",
		ConstLabels: labels,
	})

	m.datasetLoadDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "dataset",
		Name:        "load_duration_milliseconds",
		Help:        "Time taken to load the reference dataset",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "errors_total",
		Help:        "HTTP error responses by endpoint, method and type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Allocated heap bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutines",
		Help:        "Current number of goroutines",
		ConstLabels: labels,
	})
}

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval returns how often gauges should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// RecordComparison counts a successful comparison.
func (m *Manager) RecordComparison(mode string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.comparisons.WithLabelValues(mode).Inc()
	m.comparisonLatency.WithLabelValues(mode).Observe(latencyMs)
}

// RecordComparisonError counts a failed comparison.
func (m *Manager) RecordComparisonError(mode, kind string) {
	if !m.enabled {
		return
	}
	m.comparisonErrors.WithLabelValues(mode, kind).Inc()
}

// RecordValidation counts a subject validation outcome.
func (m *Manager) RecordValidation(complete bool) {
	if !m.enabled {
		return
	}
	outcome := "incomplete"
	if complete {
		outcome = "complete"
	}
	m.validations.WithLabelValues(outcome).Inc()
}

// UpdateDataset sets the dataset gauges.
func (m *Manager) UpdateDataset(total, complete int, loadMs float64) {
	if !m.enabled {
		return
	}
	m.datasetRecords.Set(float64(total))
	m.datasetCompleteRecords.Set(float64(complete))
	m.datasetLoadDuration.Set(loadMs)
}

// RecordHTTPRequest counts a request and observes its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint counts an HTTP error response.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystem sets the memory and goroutine gauges.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// RecordComparison counts a successful comparison on the global manager.
func RecordComparison(mode string, latencyMs float64) {
	globalManager.RecordComparison(mode, latencyMs)
}

// RecordComparisonError counts a failed comparison on the global manager.
func RecordComparisonError(mode, kind string) {
	globalManager.RecordComparisonError(mode, kind)
}

// RecordValidation counts a validation outcome on the global manager.
func RecordValidation(complete bool) {
	globalManager.RecordValidation(complete)
}

// UpdateDataset sets the dataset gauges on the global manager.
func UpdateDataset(total, complete int, loadMs float64) {
	globalManager.UpdateDataset(total, complete, loadMs)
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint records an HTTP error on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystem sets system gauges on the global manager.
func UpdateSystem(memBytes uint64, goroutines int) {
	globalManager.UpdateSystem(memBytes, goroutines)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval returns how often the global manager's gauges should be refreshed.
func RefreshInterval() time.Duration {
	return globalManager.RefreshInterval()
}
