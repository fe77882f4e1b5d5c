package columnar

import (
	"fmt"

	"github.com/grafana/arrowstring/pkg/memory"
)

// Numeric is the set of integer types that can be stored in a [Number]
// array.
type Numeric interface {
	~int32 | ~int64
}

// Number is an array of integers.
type Number[T Numeric] struct {
	validity
	values []T
}

var (
	_ Array = (*Number[int32])(nil)
	_ Array = (*Number[int64])(nil)
)

// NewNumber creates a Number array from values. valid may be empty to
// indicate that every value is valid; otherwise it must have the same length
// as values.
func NewNumber[T Numeric](values []T, valid memory.Bitmap) *Number[T] {
	if valid.Len() > 0 && valid.Len() != len(values) {
		panic(fmt.Sprintf("columnar: validity length %d does not match %d values", valid.Len(), len(values)))
	}
	return &Number[T]{
		validity: newValidity(valid),
		values:   values,
	}
}

// Len returns the number of elements in arr.
func (arr *Number[T]) Len() int { return len(arr.values) }

// Get returns the value at index i. The result is meaningless if i is null.
func (arr *Number[T]) Get(i int) T { return arr.values[i] }

// Values returns the raw values of arr, including slots which are null.
func (arr *Number[T]) Values() []T { return arr.values }

// Kind returns [KindInt32] or [KindInt64].
func (arr *Number[T]) Kind() Kind {
	var zero T
	switch any(zero).(type) {
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	default:
		return KindInvalid
	}
}
