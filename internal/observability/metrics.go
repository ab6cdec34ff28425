// Package observability registers Prometheus collectors for training summaries.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"example.com/fittracker/internal/training"
)

// Rejection reasons used as the reason label.
const (
	ReasonUnknownWorkout = "unknown_workout"
	ReasonArityMismatch  = "arity_mismatch"
	ReasonZeroDuration   = "zero_duration"
	ReasonInvalidRequest = "invalid_request"
)

var (
	reportsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "training",
		Name:      "reports_total",
		Help:      "Number of training summaries computed, labeled by workout type.",
	}, []string{"workout_type"})

	rejectedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "training",
		Name:      "rejected_total",
		Help:      "Number of sensor packages rejected before a summary could be computed.",
	}, []string{"reason"})

	caloriesHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fittracker",
		Subsystem: "training",
		Name:      "calories",
		Help:      "Distribution of calories burned per computed summary.",
		Buckets:   prometheus.ExponentialBuckets(25, 2, 8),
	}, []string{"workout_type"})

	lastReportGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittracker",
		Subsystem: "training",
		Name:      "last_report_timestamp_seconds",
		Help:      "Unix timestamp of the most recent computed summary.",
	})
)

func init() {
	prometheus.MustRegister(reportsCounter, rejectedCounter, caloriesHistogram, lastReportGauge)
}

// RecordReport counts a computed summary.
func RecordReport(msg training.InfoMessage, ts time.Time) {
	reportsCounter.WithLabelValues(msg.TrainingType).Inc()
	caloriesHistogram.WithLabelValues(msg.TrainingType).Observe(msg.Calories)
	if !ts.IsZero() {
		lastReportGauge.Set(float64(ts.Unix()))
	}
}

// RecordRejected counts a package that could not be turned into a summary.
func RecordRejected(reason string) {
	rejectedCounter.WithLabelValues(reason).Inc()
}
