package stringcol

import (
	"fmt"
	"iter"
)

// bytes returns the raw bytes of row and whether the row is valid. The
// returned slice aliases the column's memory.
func (c *Column) bytes(row int64) ([]byte, bool, error) {
	chunkIndex, local, err := c.resolve(row)
	if err != nil {
		return nil, false, err
	}

	ch := &c.chunks[chunkIndex]
	if c.nullCount > 0 && !ch.validity.Get(local) {
		return nil, false, nil
	}
	return ch.value(local), true, nil
}

// Get returns the value of row, or nil if row is null. Get returns
// [ErrOutOfRange] if row is not in [0, Len).
func (c *Column) Get(row int64) (*string, error) {
	b, ok, err := c.bytes(row)
	if err != nil || !ok {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// GetRange returns count consecutive values starting at start. The range may
// span chunks.
func (c *Column) GetRange(start int64, count int) ([]*string, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrInvalidArgument, count)
	}

	values := make([]*string, 0, count)
	for row := start; row < start+int64(count); row++ {
		v, err := c.Get(row)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// All returns an iterator over every row of the column in order. Null rows
// yield a nil value.
func (c *Column) All() iter.Seq2[int64, *string] {
	return func(yield func(int64, *string) bool) {
		var row int64
		for i := range c.chunks {
			ch := &c.chunks[i]
			for local := range ch.rows() {
				var value *string
				if c.nullCount == 0 || ch.validity.Get(local) {
					s := string(ch.value(local))
					value = &s
				}
				if !yield(row, value) {
					return
				}
				row++
			}
		}
	}
}

// RowCursor exposes the current row of a consumer reading a column row by
// row.
type RowCursor interface {
	Position() int64
}

// Getter returns a function which reads the row cursor currently points to.
// Null rows read as the empty string.
func (c *Column) Getter(cursor RowCursor) func() (string, error) {
	return func() (string, error) {
		v, err := c.Get(cursor.Position())
		if err != nil || v == nil {
			return "", err
		}
		return *v, nil
	}
}
