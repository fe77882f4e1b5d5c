package stringcol

import (
	"fmt"

	"github.com/go-kit/log/level"

	"github.com/grafana/arrowstring/pkg/memory"
)

// chunk is one segment of a column. The three buffers are always aligned:
// offsets holds rows+1 entries starting at 0, and validity holds one bit per
// row (or no bits at all for an ingested chunk without nulls).
type chunk struct {
	data     memory.Buffer[byte]
	offsets  memory.Buffer[int32]
	validity memory.Bitmap

	// readOnly chunks wrap memory owned by the caller and are never appended
	// to.
	readOnly bool
}

func newChunk() chunk {
	ch := chunk{
		data:     memory.MakeBuffer[byte](nil, 0),
		offsets:  memory.MakeBuffer[int32](nil, 1),
		validity: memory.NewBitmap(nil, 0),
	}
	ch.offsets.Append(0)
	return ch
}

func (ch *chunk) rows() int { return ch.offsets.Len() - 1 }

func (ch *chunk) lastOffset() int32 { return ch.offsets.Get(ch.offsets.Len() - 1) }

// value returns the bytes of row i without checking validity.
func (ch *chunk) value(i int) []byte {
	offsets := ch.offsets.Data()
	return ch.data.Data()[offsets[i]:offsets[i+1]]
}

// nulls counts the null rows of ch. columnNulls short-circuits the count for
// columns without nulls, whose chunks may have no validity bits.
func (ch *chunk) nulls(columnNulls int64) int {
	if columnNulls == 0 || ch.validity.Len() == 0 {
		return 0
	}
	return ch.rows() - ch.validity.SetCount(0, ch.rows())
}

// resolve maps row to the index of the chunk holding it and the row's
// position within that chunk.
//
// Chunks hold a variable number of rows, so resolve scans them linearly.
// Columns only have more than one chunk after gigabytes of data, which keeps
// the scan short.
func (c *Column) resolve(row int64) (chunkIndex, local int, err error) {
	if row < 0 || row >= c.length {
		return 0, 0, fmt.Errorf("%w: row %d in column %q of length %d", ErrOutOfRange, row, c.name, c.length)
	}

	remaining := row
	for i := range c.chunks {
		rows := int64(c.chunks[i].rows())
		if remaining < rows {
			return i, int(remaining), nil
		}
		remaining -= rows
	}
	return 0, 0, fmt.Errorf("%w: row %d not found in %d chunks of column %q", ErrOutOfRange, row, len(c.chunks), c.name)
}

// activeChunk returns the chunk that appends go to, creating it if the
// column has no writable chunk yet.
func (c *Column) activeChunk() *chunk {
	if len(c.chunks) == 0 || c.chunks[len(c.chunks)-1].readOnly {
		c.chunks = append(c.chunks, newChunk())
	}
	return &c.chunks[len(c.chunks)-1]
}

// sealChunk closes the active chunk to further appends and opens a new one.
func (c *Column) sealChunk() *chunk {
	sealed := &c.chunks[len(c.chunks)-1]
	level.Debug(c.opts.logger).Log(
		"msg", "sealed column chunk",
		"column", c.name,
		"chunk", len(c.chunks)-1,
		"rows", sealed.rows(),
		"bytes", sealed.lastOffset(),
	)
	c.opts.metrics.observeSeal()

	c.chunks = append(c.chunks, newChunk())
	return &c.chunks[len(c.chunks)-1]
}
