package stringcol

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments column construction and export. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	chunksSealed  prometheus.Counter
	rowsAppended  prometheus.Counter
	bytesAppended prometheus.Counter
	exports       prometheus.Counter
}

// NewMetrics creates a new set of unregistered metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		chunksSealed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arrowstring_column_chunks_sealed_total",
			Help: "Total number of column chunks sealed because they reached their capacity.",
		}),
		rowsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arrowstring_column_rows_appended_total",
			Help: "Total number of rows appended while building derived columns.",
		}),
		bytesAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arrowstring_column_bytes_appended_total",
			Help: "Total number of value bytes appended while building derived columns.",
		}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arrowstring_column_exports_total",
			Help: "Total number of Arrow arrays exported from columns.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.chunksSealed,
		m.rowsAppended,
		m.bytesAppended,
		m.exports,
	}
}

// Register registers m with reg. Metrics which are already registered are
// ignored.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, collector := range m.collectors() {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

// Unregister unregisters m from reg.
func (m *Metrics) Unregister(reg prometheus.Registerer) {
	for _, collector := range m.collectors() {
		reg.Unregister(collector)
	}
}

func (m *Metrics) observeAppend(size int) {
	if m == nil {
		return
	}
	m.rowsAppended.Inc()
	m.bytesAppended.Add(float64(size))
}

func (m *Metrics) observeSeal() {
	if m != nil {
		m.chunksSealed.Inc()
	}
}

func (m *Metrics) observeExport() {
	if m != nil {
		m.exports.Inc()
	}
}
