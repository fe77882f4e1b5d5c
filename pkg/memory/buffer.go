package memory

import (
	"github.com/grafana/arrowstring/pkg/memory/internal/unsafecast"
)

// Buffer is a growable sequence of fixed-width values.
//
// The zero value is an empty buffer with no allocator.
type Buffer[T any] struct {
	alloc *Allocator
	data  []T
}

// MakeBuffer returns an empty Buffer with room for capacity values.
func MakeBuffer[T any](alloc *Allocator, capacity int) Buffer[T] {
	return Buffer[T]{
		alloc: alloc,
		data:  allocate[T](alloc, capacity),
	}
}

// BufferFrom wraps data as a Buffer without copying. The caller must not
// modify data afterwards.
func BufferFrom[T any](data []T) Buffer[T] {
	return Buffer[T]{data: data}
}

// Len returns the number of values in the buffer.
func (b *Buffer[T]) Len() int { return len(b.data) }

// Cap returns how many values the buffer can hold before it must grow.
func (b *Buffer[T]) Cap() int { return cap(b.data) }

// Grow ensures that at least n more values can be appended without another
// allocation.
func (b *Buffer[T]) Grow(n int) {
	if n <= 0 || cap(b.data)-len(b.data) >= n {
		return
	}

	// Double the capacity to amortize appends, the same way append does.
	newCap := max(2*cap(b.data), len(b.data)+n)
	grown := allocate[T](b.alloc, newCap)
	b.data = append(grown, b.data...)
}

// Resize sets the length of the buffer to n. Values exposed by growing are
// zeroed.
func (b *Buffer[T]) Resize(n int) {
	if n <= len(b.data) {
		b.data = b.data[:n]
		return
	}

	oldLen := len(b.data)
	b.Grow(n - oldLen)
	b.data = b.data[:n]
	clear(b.data[oldLen:])
}

// Append appends a single value.
func (b *Buffer[T]) Append(v T) {
	b.Grow(1)
	b.data = append(b.data, v)
}

// AppendValues appends vs in order.
func (b *Buffer[T]) AppendValues(vs ...T) {
	b.Grow(len(vs))
	b.data = append(b.data, vs...)
}

// Get returns the value at index i.
func (b *Buffer[T]) Get(i int) T { return b.data[i] }

// Set overwrites the value at index i.
func (b *Buffer[T]) Set(i int, v T) { b.data[i] = v }

// Data returns the values of the buffer. The returned slice aliases the
// buffer and is invalidated by the next call which grows it.
func (b *Buffer[T]) Data() []T { return b.data }

// Bytes returns the raw little-endian memory of the buffer without copying.
func (b *Buffer[T]) Bytes() []byte { return unsafecast.Bytes(b.data) }
