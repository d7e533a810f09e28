// Package observability holds the Prometheus metrics recorded by fitlog.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	submissionsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitlog",
		Subsystem: "form",
		Name:      "submissions_total",
		Help:      "Number of activities accepted by the entry form.",
	})
	validationFailureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitlog",
		Subsystem: "form",
		Name:      "validation_failures_total",
		Help:      "Number of rejected form submissions grouped by the failing field.",
	}, []string{"field"})
	storageFailureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitlog",
		Subsystem: "persistence",
		Name:      "failures_total",
		Help:      "Number of storage failures grouped by operation and kind.",
	}, []string{"op", "kind"})
	snapshotPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitlog",
		Subsystem: "persistence",
		Name:      "last_snapshot_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent snapshot written to the store.",
	})
	snapshotSizeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitlog",
		Subsystem: "persistence",
		Name:      "last_snapshot_activities",
		Help:      "Number of activities in the most recent snapshot written to the store.",
	})
)

func init() {
	prometheus.MustRegister(submissionsCounter, validationFailureCounter, storageFailureCounter, snapshotPersistGauge, snapshotSizeGauge)
}

// RecordSubmission counts an accepted activity.
func RecordSubmission() {
	submissionsCounter.Inc()
}

// RecordValidationFailure counts a rejected submission for the given field.
func RecordValidationFailure(field string) {
	validationFailureCounter.WithLabelValues(field).Inc()
}

// RecordStorageFailure counts a failed store operation.
func RecordStorageFailure(op, kind string) {
	storageFailureCounter.WithLabelValues(op, kind).Inc()
}

// RecordSnapshotPersisted updates the persistence watermark gauges.
func RecordSnapshotPersisted(ts time.Time, count int) {
	if ts.IsZero() {
		return
	}
	snapshotPersistGauge.Set(float64(ts.Unix()))
	snapshotSizeGauge.Set(float64(count))
}
