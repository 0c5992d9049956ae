// Package metrics records invocation metrics for a run and writes them in
// the Prometheus text format, for node_exporter's textfile collector or for
// upload as a CI artifact.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AndreyAkinshin/uetest/internal/runner"
)

const (
	MetricsNamespace = "uetest"
)

// Recorder collects metrics for a single run in its own registry.
type Recorder struct {
	registry *prometheus.Registry
	runID    string

	invocationsTotal   *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec
	testResults        *prometheus.GaugeVec
	failedTests        *prometheus.GaugeVec
}

var _ runner.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder whose series carry runID.
func NewRecorder(runID string) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		runID:    runID,

		invocationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "invocations_total",
			Help:      "Editor invocations by hierarchy level and result",
		}, []string{
			"run_id",
			"level",
			"result",
		}),

		invocationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "invocation_duration_seconds",
			Help:      "Wall time of editor invocations",
			Buckets:   []float64{5, 15, 30, 60, 120, 300, 600, 1200, 2400},
		}, []string{
			"run_id",
			"level",
		}),

		testResults: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "test_results",
			Help:      "Aggregated automation test counters of the run",
		}, []string{
			"run_id",
			"result",
		}),

		failedTests: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "failed_testset",
			Help:      "Number of tests whose own invocation failed",
		}, []string{
			"run_id",
		}),
	}
}

// Registry returns the registry holding the run's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe implements runner.Observer.
func (r *Recorder) Observe(e runner.Entry) {
	result := string(e.Status)
	if e.Kind != "" {
		result = e.Kind
	}
	r.invocationsTotal.WithLabelValues(r.runID, e.Level, result).Inc()
	r.invocationDuration.WithLabelValues(r.runID, e.Level).Observe(e.Duration().Seconds())
}

// RecordSummary sets the run-level gauges from s.
func (r *Recorder) RecordSummary(s *runner.Summary) {
	r.testResults.WithLabelValues(r.runID, "succeeded").Set(float64(s.Succeeded))
	r.testResults.WithLabelValues(r.runID, "succeeded_with_warnings").Set(float64(s.SucceededWithWarnings))
	r.testResults.WithLabelValues(r.runID, "failed").Set(float64(s.Counts.Failed))
	r.testResults.WithLabelValues(r.runID, "not_run").Set(float64(s.NotRun))
	r.testResults.WithLabelValues(r.runID, "in_process").Set(float64(s.InProcess))
	r.failedTests.WithLabelValues(r.runID).Set(float64(len(s.FailedTestset)))
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
