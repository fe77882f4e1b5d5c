// Package unsafecast reinterprets slices of fixed-width values without
// copying them.
package unsafecast

import "unsafe"

// Sizeof returns the size of T in bytes.
func Sizeof[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// Slice reinterprets in as a slice of To. The length and capacity of the
// result are scaled by the sizes of From and To; trailing bytes which do not
// fill a whole To are dropped.
func Slice[From, To any](in []From) []To {
	if cap(in) == 0 {
		return nil
	}

	var (
		fromSize = int(Sizeof[From]())
		toSize   = int(Sizeof[To]())

		toLen = len(in) * fromSize / toSize
		toCap = cap(in) * fromSize / toSize
	)

	outPointer := (*To)(unsafe.Pointer(unsafe.SliceData(in)))
	return unsafe.Slice(outPointer, toCap)[:toLen]
}

// Bytes returns the raw memory backing in.
func Bytes[T any](in []T) []byte { return Slice[T, byte](in) }
