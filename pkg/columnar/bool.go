package columnar

import (
	"fmt"

	"github.com/grafana/arrowstring/pkg/memory"
)

// Bool is an array of bit-packed booleans.
type Bool struct {
	validity
	values memory.Bitmap
}

var _ Array = (*Bool)(nil)

// NewBool creates a Bool array from values. valid may be empty to indicate
// that every value is valid.
func NewBool(values, valid memory.Bitmap) *Bool {
	if valid.Len() > 0 && valid.Len() != values.Len() {
		panic(fmt.Sprintf("columnar: validity length %d does not match %d values", valid.Len(), values.Len()))
	}
	return &Bool{
		validity: newValidity(valid),
		values:   values,
	}
}

// Len returns the number of elements in arr.
func (arr *Bool) Len() int { return arr.values.Len() }

// Get returns the value at index i. The result is meaningless if i is null.
func (arr *Bool) Get(i int) bool { return arr.values.Get(i) }

// Values returns the value bitmap of arr.
func (arr *Bool) Values() memory.Bitmap { return arr.values }

// Kind returns [KindBool].
func (arr *Bool) Kind() Kind { return KindBool }

// BoolBuilder accumulates booleans into a [Bool] array.
type BoolBuilder struct {
	alloc *memory.Allocator

	values   memory.Bitmap
	validity memory.Bitmap
	nulls    int
}

// NewBoolBuilder returns a BoolBuilder which allocates from alloc.
func NewBoolBuilder(alloc *memory.Allocator) *BoolBuilder {
	return &BoolBuilder{
		alloc:    alloc,
		values:   memory.NewBitmap(alloc, 0),
		validity: memory.NewBitmap(alloc, 0),
	}
}

// Grow reserves room for n more values.
func (b *BoolBuilder) Grow(n int) {
	b.values.Grow(n)
	b.validity.Grow(n)
}

// AppendValue appends a non-null value.
func (b *BoolBuilder) AppendValue(v bool) {
	b.values.Append(v)
	b.validity.Append(true)
}

// AppendNull appends a null.
func (b *BoolBuilder) AppendNull() {
	b.values.Append(false)
	b.validity.Append(false)
	b.nulls++
}

// AppendNulls appends count nulls.
func (b *BoolBuilder) AppendNulls(count int) {
	b.values.AppendCount(false, count)
	b.validity.AppendCount(false, count)
	b.nulls += max(count, 0)
}

// Build returns the accumulated array and resets the builder.
func (b *BoolBuilder) Build() *Bool {
	valid := b.validity
	if b.nulls == 0 {
		valid = memory.Bitmap{}
	}
	arr := NewBool(b.values, valid)

	*b = *NewBoolBuilder(b.alloc)
	return arr
}
