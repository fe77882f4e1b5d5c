// Package columnar provides Arrow-compatible in-memory arrays built on
// [memory.Buffer] and [memory.Bitmap].
//
// The arrays in this package are the fixed-width companions of
// [github.com/grafana/arrowstring/pkg/stringcol]: integer arrays are used as
// gather maps and boolean arrays as filter masks when deriving new string
// columns.
package columnar

import "github.com/grafana/arrowstring/pkg/memory"

// An Array is a sequence of elements of the same data type.
type Array interface {
	// Len returns the total number of elements in the array.
	Len() int

	// Nulls returns the number of null elements in the array. The number of
	// non-null elements can be calculated from Len() - Nulls().
	Nulls() int

	// IsNull returns true if the element at index i is null.
	IsNull(i int) bool

	// Validity returns the validity bitmap of the array. The returned bitmap
	// may be of length 0 if there are no nulls.
	//
	// A value of 1 in the Validity bitmap indicates that the corresponding
	// element at that position is valid (not null).
	Validity() memory.Bitmap

	// Kind returns the kind of Array being represented.
	Kind() Kind
}

// validity is embedded by arrays to implement the null-tracking half of
// [Array].
type validity struct {
	bmap  memory.Bitmap
	nulls int
}

func newValidity(bmap memory.Bitmap) validity {
	return validity{
		bmap:  bmap,
		nulls: bmap.Len() - bmap.SetCount(0, bmap.Len()),
	}
}

func (v validity) Nulls() int { return v.nulls }

func (v validity) IsNull(i int) bool {
	if v.bmap.Len() == 0 {
		return false
	}
	return !v.bmap.Get(i)
}

func (v validity) Validity() memory.Bitmap { return v.bmap }
