package stringcol

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/bitutil"
	"github.com/go-kit/log/level"

	"github.com/grafana/arrowstring/pkg/memory"
)

// NewFromBuffers creates a column of length rows by wrapping Arrow-formatted
// buffers without copying them:
//
//   - values holds the concatenated UTF-8 bytes of every row;
//   - offsets holds length+1 little-endian int32 offsets into values;
//   - validity holds one bit per row, least significant bit first. It may be
//     empty when nullCount is 0.
//
// The buffers become owned by the column and must not be modified afterwards.
// NewFromBuffers returns [ErrInvalidArgument] if the buffers do not describe
// a valid column. nullCount is trusted and not checked against validity.
func NewFromBuffers(name string, values, offsets, validity []byte, length, nullCount int, opts ...Option) (*Column, error) {
	c := New(name, opts...)

	switch {
	case length < 0:
		return nil, fmt.Errorf("%w: negative length %d", ErrInvalidArgument, length)
	case nullCount < 0 || nullCount > length:
		return nil, fmt.Errorf("%w: null count %d for %d rows", ErrInvalidArgument, nullCount, length)
	case len(offsets)%arrow.Int32SizeBytes != 0:
		return nil, fmt.Errorf("%w: offsets buffer of %d bytes is not a multiple of %d", ErrInvalidArgument, len(offsets), arrow.Int32SizeBytes)
	case len(offsets)/arrow.Int32SizeBytes != length+1:
		return nil, fmt.Errorf("%w: %d offsets for %d rows, expected %d", ErrInvalidArgument, len(offsets)/arrow.Int32SizeBytes, length, length+1)
	}

	offs := arrow.Int32Traits.CastFromBytes(offsets)
	if offs[0] != 0 {
		return nil, fmt.Errorf("%w: first offset is %d, expected 0", ErrInvalidArgument, offs[0])
	}
	for i := 1; i < len(offs); i++ {
		if offs[i] < offs[i-1] {
			return nil, fmt.Errorf("%w: offset %d (%d) is smaller than offset %d (%d)", ErrInvalidArgument, i, offs[i], i-1, offs[i-1])
		}
	}
	if last := int(offs[length]); last > len(values) {
		return nil, fmt.Errorf("%w: offsets reference %d bytes, values buffer holds %d", ErrInvalidArgument, last, len(values))
	}

	var bmap memory.Bitmap
	switch need := int(bitutil.BytesForBits(int64(length))); {
	case len(validity) >= need:
		bmap = memory.NewBitmapFromBytes(validity, length)
	case nullCount > 0:
		return nil, fmt.Errorf("%w: validity bitmap of %d bytes for %d rows, expected at least %d", ErrInvalidArgument, len(validity), length, need)
	}

	c.chunks = []chunk{{
		data:     memory.BufferFrom(values),
		offsets:  memory.BufferFrom(offs),
		validity: bmap,
		readOnly: true,
	}}
	c.length = int64(length)
	c.nullCount = int64(nullCount)

	level.Debug(c.opts.logger).Log("msg", "ingested column", "column", name, "rows", length, "nulls", nullCount, "bytes", len(values))
	return c, nil
}

// FromArrow creates a column from an Arrow string array. Arrays starting at
// offset 0 are wrapped without copying; the column then shares arr's memory,
// which must stay allocated for as long as the column is used. Sliced arrays
// are copied.
func FromArrow(name string, arr *array.String, opts ...Option) (*Column, error) {
	data := arr.Data()
	if data.Offset() != 0 {
		return copyArrow(name, arr, opts...)
	}

	var validity, offsets, values []byte
	buffers := data.Buffers()
	if buf := buffers[0]; buf != nil {
		validity = buf.Bytes()
	}
	if buf := buffers[1]; buf != nil {
		offsets = buf.Bytes()
	}
	if buf := buffers[2]; buf != nil {
		values = buf.Bytes()
	}

	// Empty arrays may omit their offsets entirely, and builders may pad the
	// offsets buffer past the final entry.
	need := (arr.Len() + 1) * arrow.Int32SizeBytes
	switch {
	case arr.Len() == 0 && len(offsets) < need:
		offsets = make([]byte, need)
	case len(offsets) < need:
		return nil, fmt.Errorf("%w: arrow offsets buffer of %d bytes for %d rows", ErrInvalidArgument, len(offsets), arr.Len())
	}

	return NewFromBuffers(name, values, offsets[:need], validity, arr.Len(), arr.NullN(), opts...)
}

// Concat creates a single column holding the rows of every array in order.
// A single array is passed to [FromArrow]; otherwise rows are copied into
// chunks of the configured capacity.
func Concat(name string, arrs []*array.String, opts ...Option) (*Column, error) {
	if len(arrs) == 1 {
		return FromArrow(name, arrs[0], opts...)
	}

	c := New(name, opts...)
	for _, arr := range arrs {
		if err := c.appendArrow(arr); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func copyArrow(name string, arr *array.String, opts ...Option) (*Column, error) {
	c := New(name, opts...)
	if err := c.appendArrow(arr); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Column) appendArrow(arr *array.String) error {
	for i := range arr.Len() {
		var err error
		if arr.IsNull(i) {
			err = c.appendNull()
		} else {
			err = c.appendValue([]byte(arr.Value(i)))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
