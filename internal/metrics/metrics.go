// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation"
	OutcomeBusy       = "busy"
	OutcomeTimeout    = "timeout"
	OutcomeError      = "error"
)

var (
	// Submissions counts generate and publish attempts by outcome.
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postbot_submissions_total",
			Help: "Generate and publish attempts by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// SubmissionDuration tracks how long the submission effect took.
	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "postbot_submission_duration_seconds",
			Help:    "Duration of the submission effect in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	// StorageDegraded counts storage failures and discarded slots that were
	// absorbed instead of reported.
	StorageDegraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postbot_storage_degraded_total",
			Help: "Storage operations that fell back to defaults",
		},
		[]string{"op", "reason"},
	)
)

// RecordSubmission records one attempt and, when the effect ran, its duration.
func RecordSubmission(kind, outcome string, seconds float64) {
	Submissions.WithLabelValues(kind, outcome).Inc()
	if seconds > 0 {
		SubmissionDuration.WithLabelValues(kind).Observe(seconds)
	}
}

// RecordStorageDegraded records one absorbed storage problem.
func RecordStorageDegraded(op, reason string) {
	StorageDegraded.WithLabelValues(op, reason).Inc()
}
