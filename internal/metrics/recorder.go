// Package metrics counts calculator, export and login activity and writes the
// counters in the node-exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "coalcarbon"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder owns a private registry so repeated construction in tests never
// collides with the global one.
type Recorder struct {
	registry      *prometheus.Registry
	calculations  *prometheus.CounterVec
	exports       *prometheus.CounterVec
	loginAttempts *prometheus.CounterVec
}

// NewRecorder creates and registers the counters.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Emission calculations by outcome",
		}, []string{"outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Report exports by format, kind and outcome",
		}, []string{"format", "kind", "outcome"}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(r.calculations, r.exports, r.loginAttempts)
	return r
}

// Registry exposes the underlying registry as a Gatherer.
func (r *Recorder) Registry() prometheus.Gatherer {
	return r.registry
}

// ObserveCalculation counts one calculation.
func (r *Recorder) ObserveCalculation(err error) {
	r.calculations.WithLabelValues(outcome(err)).Inc()
}

// ObserveExport counts one export attempt.
func (r *Recorder) ObserveExport(format, kind string, err error) {
	r.exports.WithLabelValues(format, kind, outcome(err)).Inc()
}

// ObserveLogin counts one login attempt.
func (r *Recorder) ObserveLogin(success bool) {
	result := OutcomeSuccess
	if !success {
		result = OutcomeError
	}
	r.loginAttempts.WithLabelValues(result).Inc()
}

// WriteTextfile writes the counters to path for the textfile collector.
// An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
