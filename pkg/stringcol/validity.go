package stringcol

import "fmt"

// IsValid reports whether row holds a value. It returns [ErrOutOfRange] if
// row is not in [0, Len).
func (c *Column) IsValid(row int64) (bool, error) {
	chunkIndex, local, err := c.resolve(row)
	if err != nil {
		return false, err
	}
	if c.nullCount == 0 {
		return true, nil
	}
	return c.chunks[chunkIndex].validity.Get(local), nil
}

// setValidity records whether row holds a value and keeps the running null
// count in sync. A row whose bit has not been written yet counts as valid,
// so appending a valid row leaves the null count unchanged.
func (c *Column) setValidity(row int64, valid bool) error {
	chunkIndex, local, err := c.resolve(row)
	if err != nil {
		return err
	}

	ch := &c.chunks[chunkIndex]
	if ch.readOnly {
		return fmt.Errorf("%w: chunk %d of column %q is read-only", ErrUnsupported, chunkIndex, c.name)
	}

	if local == ch.validity.Len() {
		// Bitmap.Append adds a zero byte whenever local starts a new byte.
		ch.validity.Append(valid)
		if !valid {
			c.nullCount++
		}
		return nil
	}

	if ch.validity.Get(local) == valid {
		return nil
	}
	ch.validity.Set(local, valid)
	if valid {
		c.nullCount--
	} else {
		c.nullCount++
	}
	return nil
}
