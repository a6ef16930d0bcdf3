package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiops",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aiops",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "aiops",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Telemetry feed metrics
	feedSamplesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiops",
			Subsystem: "feed",
			Name:      "samples_total",
			Help:      "Total number of metric samples produced by the feed",
		},
		[]string{"service"},
	)

	feedErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aiops",
			Subsystem: "feed",
			Name:      "errors_total",
			Help:      "Total number of failed feed iterations",
		},
	)

	// Anomaly detection metrics
	detectionPassesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aiops",
			Subsystem: "detector",
			Name:      "passes_total",
			Help:      "Total number of detection passes",
		},
	)

	anomaliesDetectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiops",
			Subsystem: "detector",
			Name:      "anomalies_total",
			Help:      "Total number of anomalies detected",
		},
		[]string{"service", "severity"},
	)

	trainingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiops",
			Subsystem: "detector",
			Name:      "training_runs_total",
			Help:      "Total number of model training runs",
		},
		[]string{"result"},
	)

	trainingSamples = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "aiops",
			Subsystem: "detector",
			Name:      "training_samples",
			Help:      "Number of samples used in the last training run",
		},
	)

	// Narrative generator metrics
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiops",
			Subsystem: "ai",
			Name:      "requests_total",
			Help:      "Total number of narrative generator calls",
		},
		[]string{"purpose", "status"},
	)
)

// RecordFeedSample increments the feed sample counter for a service
func RecordFeedSample(service string) {
	feedSamplesTotal.WithLabelValues(service).Inc()
}

// RecordFeedError increments the feed error counter
func RecordFeedError() {
	feedErrorsTotal.Inc()
}

// RecordDetectionPass increments the detection pass counter
func RecordDetectionPass() {
	detectionPassesTotal.Inc()
}

// RecordAnomaly increments the anomaly counter for a service and severity
func RecordAnomaly(service, severity string) {
	anomaliesDetectedTotal.WithLabelValues(service, severity).Inc()
}

// RecordTrainingRun records the outcome of a training run
func RecordTrainingRun(result string, samples int) {
	trainingRunsTotal.WithLabelValues(result).Inc()
	if result == "success" {
		trainingSamples.Set(float64(samples))
	}
}

// RecordAIRequest records a narrative generator call outcome
func RecordAIRequest(purpose, status string) {
	aiRequestsTotal.WithLabelValues(purpose, status).Inc()
}

// Handler returns the prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// statusRecorder captures the response status for instrumentation
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware instruments HTTP requests with prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		// Use the chi route pattern so path cardinality stays bounded
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		status := strconv.Itoa(recorder.status)
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}
