package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheus(reg, "test")

	c.RecordGeneration(4, 6, 0.01)
	c.RecordGeneration(2, 2, 0.01)
	c.RecordLoad(3, 2)
	c.RecordOverrideIgnored("malformed_label")
	c.RecordOverrideIgnored("malformed_label")
	c.RecordOverrideIgnored("worker_out_of_range")
	c.RecordWorkerLoad("worker-1", 3, 8)
	c.RecordFileWritten(8, 32, 0.001)
	c.RecordWriteFailure()

	require.Equal(t, 6.0, testutil.ToFloat64(c.genPairs))
	require.Equal(t, 8.0, testutil.ToFloat64(c.genDraws))
	require.Equal(t, 3.0, testutil.ToFloat64(c.loadLines))
	require.Equal(t, 2.0, testutil.ToFloat64(c.loadSkipped))
	require.Equal(t, 2.0, testutil.ToFloat64(c.overrideIgnored.WithLabelValues("malformed_label")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.overrideIgnored.WithLabelValues("worker_out_of_range")))
	require.Equal(t, 3.0, testutil.ToFloat64(c.workerVertices.WithLabelValues("worker-1")))
	require.Equal(t, 8.0, testutil.ToFloat64(c.workerEdges.WithLabelValues("worker-1")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.filesWritten))
	require.Equal(t, 32.0, testutil.ToFloat64(c.bytesWritten))
	require.Equal(t, 1.0, testutil.ToFloat64(c.writeFailures))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
	for _, f := range families {
		require.Contains(t, f.GetName(), "test_")
	}
}

func TestPrometheusCollector_Defaults(t *testing.T) {
	c := NewPrometheus(prometheus.NewRegistry(), "")

	require.Equal(t, "edgepart", c.namespace)
	require.NotNil(t, c.reg)
}
