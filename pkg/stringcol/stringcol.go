// Package stringcol implements an immutable column of nullable UTF-8 strings
// stored in the Apache Arrow variable-length binary layout.
//
// A column is split into chunks. Each chunk holds three parallel buffers: the
// concatenated bytes of its values, int32 offsets delimiting each value, and
// a validity bitmap with one bit per row. A chunk never holds more value
// bytes than the configured capacity; building a column that grows past it
// starts a new chunk. Any range of rows within a single chunk can be exported
// as an arrow-go [array.String] without copying.
//
// Columns are created by wrapping existing buffers ([NewFromBuffers],
// [FromArrow]) or derived from another column ([Column.Clone]). Once created,
// a column never changes; operations that would change it in place return
// [ErrUnsupported]. Completed columns are safe for concurrent use.
package stringcol

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/grafana/arrowstring/pkg/columnar"
)

// Column is an immutable, chunked column of nullable strings.
type Column struct {
	name string
	opts options

	// chunks is nil until the first row is appended, which keeps an empty
	// column distinct from one holding a single empty chunk.
	chunks []chunk

	length    int64
	nullCount int64
}

// New returns an empty column.
func New(name string, opts ...Option) *Column {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Column{name: name, opts: o}
}

// derive returns an empty column with the same name and options as c.
func (c *Column) derive() *Column {
	return &Column{name: c.name, opts: c.opts}
}

// Name returns the name of the column.
func (c *Column) Name() string { return c.name }

// Len returns the number of rows in the column.
func (c *Column) Len() int64 { return c.length }

// NullCount returns the number of null rows in the column.
func (c *Column) NullCount() int64 { return c.nullCount }

// Kind always returns [columnar.KindUTF8].
func (c *Column) Kind() columnar.Kind { return columnar.KindUTF8 }

// DataType returns the Arrow type of exported arrays.
func (c *Column) DataType() arrow.DataType { return arrow.BinaryTypes.String }

// NumChunks returns the number of chunks backing the column.
func (c *Column) NumChunks() int { return len(c.chunks) }

// ChunkStats describes a single chunk of a column.
type ChunkStats struct {
	Rows      int
	Nulls     int
	DataBytes int
}

// Chunks reports statistics for each chunk of the column, in row order.
func (c *Column) Chunks() []ChunkStats {
	stats := make([]ChunkStats, 0, len(c.chunks))
	for i := range c.chunks {
		ch := &c.chunks[i]
		stats = append(stats, ChunkStats{
			Rows:      ch.rows(),
			Nulls:     ch.nulls(c.nullCount),
			DataBytes: int(ch.lastOffset()),
		})
	}
	return stats
}

// DataSize returns the number of value bytes referenced by the column.
func (c *Column) DataSize() int64 {
	var size int64
	for i := range c.chunks {
		size += int64(c.chunks[i].lastOffset())
	}
	return size
}
