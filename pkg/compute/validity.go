package compute

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/bitutil"

	"github.com/grafana/arrowstring/pkg/memory"
)

// computeValidityAA determines an output validity bitmap from two input
// validity bitmaps. The result is a logical AND of the validity; a slot is only
// valid if both inputs are valid.
func computeValidityAA(alloc *memory.Allocator, left, right memory.Bitmap) (memory.Bitmap, error) {
	leftLen, rightLen := left.Len(), right.Len()

	// A validity bitmap can have a length of zero to indicate that all values
	// are valid. We only want to validate the length of two non-empty bitmaps.
	if leftLen > 0 && rightLen > 0 && leftLen != rightLen {
		return memory.Bitmap{}, fmt.Errorf("validity bitmap length mismatch: %d != %d", leftLen, rightLen)
	}

	switch {
	case leftLen > 0 && rightLen > 0:
		validity := memory.NewBitmap(alloc, leftLen)
		validity.Resize(leftLen)
		bitutil.BitmapAnd(left.Bytes(), right.Bytes(), 0, 0, validity.Bytes(), 0, int64(leftLen))
		return validity, nil

	case leftLen > 0:
		// Everything from right is valid.
		validity := memory.NewBitmap(alloc, leftLen)
		validity.AppendBitmap(left)
		return validity, nil

	case rightLen > 0:
		// Everything from left is valid.
		validity := memory.NewBitmap(alloc, rightLen)
		validity.AppendBitmap(right)
		return validity, nil

	default:
		return memory.Bitmap{}, nil
	}
}
