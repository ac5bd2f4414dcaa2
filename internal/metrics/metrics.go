// Package metrics exposes Prometheus instruments for the orchestration core.
// All Recorder methods are safe on a nil receiver so instrumented code never
// has to guard for a disabled recorder.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder registers and updates the core's Prometheus collectors.
type Recorder struct {
	orchestrations    *prometheus.CounterVec
	duration          prometheus.Histogram
	providerFailures  *prometheus.CounterVec
	synthesisFallback prometheus.Counter
}

// NewRecorder builds a recorder and registers its collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		orchestrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bloomcore_orchestrations_total",
			Help: "Completed orchestration requests, partitioned by outcome.",
		}, []string{"degraded"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bloomcore_orchestration_duration_seconds",
			Help:    "End to end orchestration latency.",
			Buckets: prometheus.DefBuckets,
		}),
		providerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bloomcore_search_provider_failures_total",
			Help: "Search provider calls that returned an error.",
		}, []string{"provider"}),
		synthesisFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloomcore_synthesis_fallbacks_total",
			Help: "Explanations served from the deterministic fallback.",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.orchestrations, r.duration, r.providerFailures, r.synthesisFallback)
	}
	return r
}

// Orchestration records one completed request.
func (r *Recorder) Orchestration(degraded bool, elapsed time.Duration) {
	if r == nil {
		return
	}
	label := "false"
	if degraded {
		label = "true"
	}
	r.orchestrations.WithLabelValues(label).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// ProviderFailure records one failed search provider call.
func (r *Recorder) ProviderFailure(provider string) {
	if r == nil {
		return
	}
	r.providerFailures.WithLabelValues(provider).Inc()
}

// SynthesisFallback records one deterministic fallback explanation.
func (r *Recorder) SynthesisFallback() {
	if r == nil {
		return
	}
	r.synthesisFallback.Inc()
}
