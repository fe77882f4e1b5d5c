package stringcol

import "fmt"

// The append methods are the only way rows are added to a column. They are
// used while building derived columns and are never exposed: a column which
// has been handed to a caller is complete.

func (c *Column) appendValue(value []byte) error { return c.append(value, true) }

func (c *Column) appendNull() error { return c.append(nil, false) }

func (c *Column) append(value []byte, valid bool) error {
	if valid && len(value) > c.opts.maxChunkSize {
		return fmt.Errorf("%w: %d byte value in column %q, capacity is %d bytes", ErrValueTooLarge, len(value), c.name, c.opts.maxChunkSize)
	}

	ch := c.activeChunk()

	// The row is counted before its bitmap bit exists; setValidity relies on
	// the row being in range.
	c.length++

	if !valid {
		ch.offsets.Append(ch.lastOffset())
	} else {
		if ch.data.Len()+len(value) > c.opts.maxChunkSize {
			ch = c.sealChunk()
		}
		ch.data.AppendValues(value...)
		ch.offsets.Append(ch.lastOffset() + int32(len(value)))
	}

	c.opts.metrics.observeAppend(len(value))
	return c.setValidity(c.length-1, valid)
}
