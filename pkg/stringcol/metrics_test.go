package stringcol

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics()

	require.NoError(t, m.Register(reg))
	require.NoError(t, m.Register(reg), "registering twice is not an error")

	c := buildColumn(t, strs("abc"), WithMetrics(m))
	require.Equal(t, int64(1), c.Len())

	count, err := testutil.GatherAndCount(reg, "arrowstring_column_rows_appended_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, float64(3), testutil.ToFloat64(m.bytesAppended))

	m.Unregister(reg)
	count, err = testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.observeAppend(1)
		m.observeSeal()
		m.observeExport()
	})
}
