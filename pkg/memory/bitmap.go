package memory

import (
	"iter"

	"github.com/apache/arrow-go/v18/arrow/bitutil"
)

// Bitmap is a bit-packed sequence of booleans. Bit i lives in byte i/8 at
// position i%8, least significant bit first, which matches Arrow validity
// bitmaps.
//
// The zero value is an empty bitmap.
type Bitmap struct {
	alloc *Allocator
	data  []byte
	len   int // Number of bits.
}

// NewBitmap returns an empty Bitmap with room for capacity bits.
func NewBitmap(alloc *Allocator, capacity int) Bitmap {
	return Bitmap{
		alloc: alloc,
		data:  allocate[byte](alloc, bytesForBits(capacity)),
	}
}

// NewBitmapFromBytes wraps data as a Bitmap of length bits without copying.
// NewBitmapFromBytes panics if data is too short to hold length bits.
func NewBitmapFromBytes(data []byte, length int) Bitmap {
	if need := bytesForBits(length); len(data) < need {
		panic("memory: bitmap data too short")
	}
	return Bitmap{
		data: data[:bytesForBits(length)],
		len:  length,
	}
}

func bytesForBits(n int) int { return int(bitutil.BytesForBits(int64(n))) }

// Len returns the number of bits in the bitmap.
func (bmap Bitmap) Len() int { return bmap.len }

// Cap returns the number of bits the bitmap can hold before it must grow.
func (bmap Bitmap) Cap() int { return cap(bmap.data) * 8 }

// Bytes returns the packed bytes of the bitmap: exactly ceil(Len/8) bytes.
func (bmap Bitmap) Bytes() []byte { return bmap.data }

// Get returns the bit at index i.
func (bmap Bitmap) Get(i int) bool {
	if i < 0 || i >= bmap.len {
		panic("memory: bitmap index out of range")
	}
	return bitutil.BitIsSet(bmap.data, i)
}

// Set sets the bit at index i to value. i must be less than Len.
func (bmap *Bitmap) Set(i int, value bool) {
	if i < 0 || i >= bmap.len {
		panic("memory: bitmap index out of range")
	}
	bitutil.SetBitTo(bmap.data, i, value)
}

// SetRange sets the bits in [from, to) to value.
func (bmap *Bitmap) SetRange(from, to int, value bool) {
	if from < 0 || to > bmap.len || from > to {
		panic("memory: bitmap range out of range")
	}
	bitutil.SetBitsTo(bmap.data, int64(from), int64(to-from), value)
}

// Grow ensures there is room for n more bits without another allocation.
func (bmap *Bitmap) Grow(n int) {
	need := bytesForBits(bmap.len + n)
	if need <= cap(bmap.data) {
		return
	}
	grown := allocate[byte](bmap.alloc, max(2*cap(bmap.data), need))
	bmap.data = append(grown, bmap.data...)
}

// Resize sets the length of the bitmap to n bits. Bits exposed by growing
// are zero.
func (bmap *Bitmap) Resize(n int) {
	oldLen := bmap.len
	if n < oldLen {
		bmap.data = bmap.data[:bytesForBits(n)]
		bmap.len = n
		bmap.clearTail()
		return
	}

	bmap.Grow(n - oldLen)
	oldBytes := len(bmap.data)
	bmap.data = bmap.data[:bytesForBits(n)]
	clear(bmap.data[oldBytes:])
	bmap.len = n
}

// clearTail zeroes the unused bits of the final byte.
func (bmap *Bitmap) clearTail() {
	if rem := bmap.len % 8; rem != 0 {
		bmap.data[len(bmap.data)-1] &= byte(1)<<rem - 1
	}
}

// Append appends a single bit. A new zero byte is added when the bit starts
// a new byte.
func (bmap *Bitmap) Append(value bool) {
	if bmap.len%8 == 0 {
		bmap.Grow(1)
		bmap.data = append(bmap.data, 0)
	}
	bmap.len++
	bitutil.SetBitTo(bmap.data, bmap.len-1, value)
}

// AppendCount appends value count times.
func (bmap *Bitmap) AppendCount(value bool, count int) {
	if count <= 0 {
		return
	}
	start := bmap.len
	bmap.Resize(start + count)
	if value {
		bitutil.SetBitsTo(bmap.data, int64(start), int64(count), true)
	}
}

// AppendValues appends each of values in order.
func (bmap *Bitmap) AppendValues(values ...bool) {
	bmap.Grow(len(values))
	for _, v := range values {
		bmap.Append(v)
	}
}

// AppendBitmap appends all bits of other.
func (bmap *Bitmap) AppendBitmap(other Bitmap) {
	if other.len == 0 {
		return
	}
	start := bmap.len
	bmap.Resize(start + other.len)
	bitutil.CopyBitmap(other.data, 0, other.len, bmap.data, start)
}

// SetCount returns the number of set bits in [offset, offset+n).
func (bmap Bitmap) SetCount(offset, n int) int {
	if n <= 0 {
		return 0
	}
	if offset < 0 || offset+n > bmap.len {
		panic("memory: bitmap range out of range")
	}
	return bitutil.CountSetBits(bmap.data, offset, n)
}

// IterValues returns an iterator over the indices of bits equal to value.
func (bmap Bitmap) IterValues(value bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range bmap.len {
			if bitutil.BitIsSet(bmap.data, i) != value {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
