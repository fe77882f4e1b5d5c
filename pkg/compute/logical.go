package compute

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/bitutil"

	"github.com/grafana/arrowstring/pkg/columnar"
	"github.com/grafana/arrowstring/pkg/memory"
)

// Not negates input.
//
// Special cases:
//
//   - The negation of null is null.
func Not(alloc *memory.Allocator, input *columnar.Bool) *columnar.Bool {
	count := input.Len()

	var validity memory.Bitmap
	if input.Nulls() > 0 {
		// Only copy the validity bitmap from input if it has any nulls.
		validity = memory.NewBitmap(alloc, count)
		validity.AppendBitmap(input.Validity())
	}

	values := memory.NewBitmap(alloc, count)
	values.Resize(count)
	if count > 0 {
		bitutil.InvertBitmap(input.Values().Bytes(), 0, count, values.Bytes(), 0)
	}

	return columnar.NewBool(values, validity)
}

// bitmapOp combines length bits of left and right into out.
type bitmapOp func(left, right []byte, lOffset, rOffset int64, out []byte, outOffset int64, length int64)

// And computes the logical AND of two masks of the same length.
//
// Special cases:
//
//   - If either side of the AND is null, the result is null.
func And(alloc *memory.Allocator, left, right *columnar.Bool) (*columnar.Bool, error) {
	return logical(alloc, bitutil.BitmapAnd, left, right)
}

// Or computes the logical OR of two masks of the same length.
//
// Special cases:
//
//   - If either side of the OR is null, the result is null.
func Or(alloc *memory.Allocator, left, right *columnar.Bool) (*columnar.Bool, error) {
	return logical(alloc, bitutil.BitmapOr, left, right)
}

func logical(alloc *memory.Allocator, op bitmapOp, left, right *columnar.Bool) (*columnar.Bool, error) {
	if left.Len() != right.Len() {
		return nil, fmt.Errorf("array length mismatch: %d != %d", left.Len(), right.Len())
	}

	validity, err := computeValidityAA(alloc, left.Validity(), right.Validity())
	if err != nil {
		return nil, err
	}

	count := left.Len()
	values := memory.NewBitmap(alloc, count)
	values.Resize(count)
	if count > 0 {
		op(left.Values().Bytes(), right.Values().Bytes(), 0, 0, values.Bytes(), 0, int64(count))
	}

	return columnar.NewBool(values, validity), nil
}
