// Package memory provides the growable buffers and bitmaps which back
// columnar arrays.
//
// Buffers and bitmaps are laid out exactly as Apache Arrow expects: buffers
// are contiguous little-endian values, and bitmaps are bit-packed with the
// least significant bit first. The raw memory of either can be handed to
// arrow-go without copying.
package memory

import "github.com/grafana/arrowstring/pkg/memory/internal/unsafecast"

// Allocator tracks the memory handed out to buffers and bitmaps created from
// it. The zero value is ready for use. A nil *Allocator is valid and tracks
// nothing.
//
// Allocator is not goroutine-safe.
type Allocator struct {
	allocated int
}

// Allocated returns the number of bytes allocated since the last call to
// [Allocator.Reset].
func (a *Allocator) Allocated() int {
	if a == nil {
		return 0
	}
	return a.allocated
}

// Reset forgets all previously tracked allocations.
func (a *Allocator) Reset() {
	if a != nil {
		a.allocated = 0
	}
}

func (a *Allocator) track(n int) {
	if a != nil {
		a.allocated += n
	}
}

func allocate[T any](alloc *Allocator, capacity int) []T {
	alloc.track(capacity * int(unsafecast.Sizeof[T]()))
	return make([]T, 0, capacity)
}
