package stringcol

import "fmt"

// Set always returns [ErrUnsupported]: existing rows can't be modified.
func (c *Column) Set(row int64, value *string) error {
	return fmt.Errorf("%w: set row %d of column %q", ErrUnsupported, row, c.name)
}

// Sort always returns [ErrUnsupported]. Reorder rows by passing a permutation
// to [Column.Clone] instead.
func (c *Column) Sort(ascending bool) (*Column, error) {
	return nil, fmt.Errorf("%w: sort column %q", ErrUnsupported, c.name)
}

// FillNulls always returns [ErrUnsupported].
func (c *Column) FillNulls(value string, inPlace bool) (*Column, error) {
	return nil, fmt.Errorf("%w: fill nulls of column %q", ErrUnsupported, c.name)
}
