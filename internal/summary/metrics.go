package summary

import "github.com/prometheus/client_golang/prometheus"

var (
	publishedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "summary",
		Name:      "events_published_total",
		Help:      "Number of training summary events written to Kafka.",
	})

	publishFailedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "summary",
		Name:      "publish_failures_total",
		Help:      "Number of training summary events that could not be written to Kafka.",
	})

	publishDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fittracker",
		Subsystem: "summary",
		Name:      "publish_duration_seconds",
		Help:      "Time spent resolving the schema and writing a summary event.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(publishedCounter, publishFailedCounter, publishDuration)
}
