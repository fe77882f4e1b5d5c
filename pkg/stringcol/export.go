package stringcol

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	arrowmemory "github.com/apache/arrow-go/v18/arrow/memory"
)

// Field describes the column as an Arrow field. The field is nullable only
// if the column holds nulls.
func (c *Column) Field() arrow.Field {
	return arrow.Field{
		Name:     c.name,
		Type:     arrow.BinaryTypes.String,
		Nullable: c.nullCount != 0,
	}
}

// MaxRecordBatchLength returns the number of rows from start to the end of
// the chunk holding start: the largest count [Column.Export] accepts for
// start. It returns 0 for an empty column.
func (c *Column) MaxRecordBatchLength(start int64) (int, error) {
	if c.length == 0 {
		return 0, nil
	}
	chunkIndex, local, err := c.resolve(start)
	if err != nil {
		return 0, err
	}
	return c.chunks[chunkIndex].rows() - local, nil
}

// Export returns count rows starting at start as an Arrow string array. The
// array references the column's buffers directly; the column must outlive
// it. Callers should Release the array once done, as with any arrow-go
// array.
//
// All rows must be in the same chunk, otherwise Export returns
// [ErrSpansChunks]; use [Column.MaxRecordBatchLength] to iterate over a
// column chunk by chunk. A count of 0 always returns an empty array.
func (c *Column) Export(start int64, count int) (*array.String, error) {
	switch {
	case count < 0:
		return nil, fmt.Errorf("%w: negative count %d", ErrInvalidArgument, count)
	case count == 0:
		return emptyArray(), nil
	}

	chunkIndex, local, err := c.resolve(start)
	if err != nil {
		return nil, err
	}
	ch := &c.chunks[chunkIndex]
	if avail := ch.rows() - local; count > avail {
		return nil, fmt.Errorf("%w: %d rows requested from row %d, chunk %d has %d remaining", ErrSpansChunks, count, start, chunkIndex, avail)
	}

	// The column-wide null count can't be reused: the range may cover only
	// part of the chunk. A column without nulls ignores its bitmap, as
	// IsValid does.
	var (
		validity *arrowmemory.Buffer
		nulls    int
	)
	if c.nullCount != 0 && ch.validity.Len() >= local+count {
		validity = arrowmemory.NewBufferBytes(ch.validity.Bytes())
		nulls = count - ch.validity.SetCount(local, count)
	}

	data := array.NewData(
		arrow.BinaryTypes.String,
		count,
		[]*arrowmemory.Buffer{
			validity,
			arrowmemory.NewBufferBytes(ch.offsets.Bytes()),
			arrowmemory.NewBufferBytes(ch.data.Data()),
		},
		nil,
		nulls,
		local,
	)
	defer data.Release()

	c.opts.metrics.observeExport()
	return array.NewStringData(data), nil
}

func emptyArray() *array.String {
	data := array.NewData(
		arrow.BinaryTypes.String,
		0,
		[]*arrowmemory.Buffer{
			nil,
			arrowmemory.NewBufferBytes([]byte{}),
			arrowmemory.NewBufferBytes([]byte{}),
		},
		nil,
		0,
		0,
	)
	defer data.Release()
	return array.NewStringData(data)
}

// Chunked exports the whole column as one array per chunk.
func (c *Column) Chunked() (*arrow.Chunked, error) {
	arrs := make([]arrow.Array, 0, len(c.chunks))
	defer func() {
		for _, arr := range arrs {
			arr.Release()
		}
	}()

	var start int64
	for i := range c.chunks {
		rows := c.chunks[i].rows()
		if rows == 0 {
			continue
		}
		arr, err := c.Export(start, rows)
		if err != nil {
			return nil, err
		}
		arrs = append(arrs, arr)
		start += int64(rows)
	}

	return arrow.NewChunked(arrow.BinaryTypes.String, arrs), nil
}
