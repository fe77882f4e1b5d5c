package stringcol

import (
	"fmt"

	"github.com/grafana/arrowstring/pkg/columnar"
)

// Clone derives a new column from c. mapping selects the rows of the new
// column:
//
//   - nil copies every row in order.
//   - A [columnar.Number] of int64 or int32 gathers rows by index: position p
//     of the new column holds row mapping[p] of c, or row Len-1-mapping[p]
//     when invert is set. Null indices produce null rows. Indices may repeat
//     or be omitted.
//   - A [columnar.Bool] keeps the rows whose mask value is true, in order.
//     Null mask values count as false. The mask must not be longer than c.
//
// trailingNulls null rows are appended after the selected rows. Clone returns
// [ErrArgumentType] for any other kind of mapping and never returns a
// partially built column.
func (c *Column) Clone(mapping columnar.Array, invert bool, trailingNulls int64) (*Column, error) {
	if trailingNulls < 0 {
		return nil, fmt.Errorf("%w: negative trailing null count %d", ErrInvalidArgument, trailingNulls)
	}

	var (
		ret *Column
		err error
	)
	switch mapping := mapping.(type) {
	case nil:
		ret, err = c.cloneAll()
	case *columnar.Number[int64]:
		if mapping == nil {
			return nil, errNilMap
		}
		ret, err = gather(c, mapping, invert)
	case *columnar.Number[int32]:
		if mapping == nil {
			return nil, errNilMap
		}
		ret, err = gather(c, mapping, invert)
	case *columnar.Bool:
		if mapping == nil {
			return nil, errNilMap
		}
		ret, err = c.cloneMasked(mapping)
	default:
		return nil, fmt.Errorf("%w: map of kind %s, expected %s, %s or %s", ErrArgumentType, mapping.Kind(), columnar.KindInt64, columnar.KindInt32, columnar.KindBool)
	}
	if err != nil {
		return nil, err
	}

	for range trailingNulls {
		if err := ret.appendNull(); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

var errNilMap = fmt.Errorf("%w: nil map", ErrInvalidArgument)

// copyRow appends row of c to dst.
func (c *Column) copyRow(dst *Column, row int64) error {
	value, ok, err := c.bytes(row)
	if err != nil {
		return err
	}
	if !ok {
		return dst.appendNull()
	}
	return dst.appendValue(value)
}

func (c *Column) cloneAll() (*Column, error) {
	ret := c.derive()
	for row := range c.length {
		if err := c.copyRow(ret, row); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func gather[T columnar.Numeric](c *Column, indices *columnar.Number[T], invert bool) (*Column, error) {
	ret := c.derive()
	for i := range indices.Len() {
		if indices.IsNull(i) {
			if err := ret.appendNull(); err != nil {
				return nil, err
			}
			continue
		}

		row := int64(indices.Get(i))
		if invert {
			row = c.length - 1 - row
		}
		if err := c.copyRow(ret, row); err != nil {
			return nil, fmt.Errorf("map index %d: %w", i, err)
		}
	}
	return ret, nil
}

func (c *Column) cloneMasked(mask *columnar.Bool) (*Column, error) {
	if int64(mask.Len()) > c.length {
		return nil, fmt.Errorf("%w: mask of length %d is longer than column %q of length %d", ErrInvalidArgument, mask.Len(), c.name, c.length)
	}

	ret := c.derive()
	for i := range mask.Len() {
		if mask.IsNull(i) || !mask.Get(i) {
			continue
		}
		if err := c.copyRow(ret, int64(i)); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
