// Package metrics exposes the decode pipeline's Prometheus counters,
// following the promauto registration pattern used throughout the
// examples' SDR metrics collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecodeCycles counts every Decoding cycle as it starts, labeled by
	// waveform variant.
	DecodeCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "acoustipipe_decode_cycles_total",
		Help: "Total number of decode cycles run, by waveform variant.",
	}, []string{"variant"})

	// DecodeOutcomes counts each cycle's terminal outcome: "message" for a
	// successfully assembled OK record, "error" for an ERROR-status
	// record (corrupt data, auth failure, malformed plaintext, or
	// unsupported cipher), and "none" for a silent NoSignal/MalformedFrame
	// result.
	DecodeOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "acoustipipe_decode_outcomes_total",
		Help: "Decode cycle outcomes, by waveform variant and outcome.",
	}, []string{"variant", "outcome"})
)

// RecordCycle marks the start of one decode cycle for variant.
func RecordCycle(variant string) {
	DecodeCycles.WithLabelValues(variant).Inc()
}

// RecordOutcome marks a decode cycle's terminal outcome.
func RecordOutcome(variant, outcome string) {
	DecodeOutcomes.WithLabelValues(variant, outcome).Inc()
}
