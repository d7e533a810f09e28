package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func readValue(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	switch {
	case out.Counter != nil:
		return out.Counter.GetValue()
	case out.Gauge != nil:
		return out.Gauge.GetValue()
	}
	t.Fatalf("unsupported metric type")
	return 0
}

func TestRecordStorageFailure(t *testing.T) {
	counter := storageFailureCounter.WithLabelValues("save", "write")
	before := readValue(t, counter)

	RecordStorageFailure("save", "write")
	RecordStorageFailure("save", "write")

	require.Equal(t, before+2, readValue(t, counter))
}

func TestRecordValidationFailure(t *testing.T) {
	counter := validationFailureCounter.WithLabelValues("Calories")
	before := readValue(t, counter)

	RecordValidationFailure("Calories")

	require.Equal(t, before+1, readValue(t, counter))
}

func TestRecordSnapshotPersisted(t *testing.T) {
	ts := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	RecordSnapshotPersisted(ts, 7)
	require.Equal(t, float64(ts.Unix()), readValue(t, snapshotPersistGauge))
	require.Equal(t, float64(7), readValue(t, snapshotSizeGauge))

	RecordSnapshotPersisted(time.Time{}, 99)
	require.Equal(t, float64(7), readValue(t, snapshotSizeGauge), "zero timestamp is ignored")
}
