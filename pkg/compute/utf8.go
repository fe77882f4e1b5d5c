package compute

import (
	"bytes"
	"unicode/utf8"

	"github.com/grafana/arrowstring/pkg/columnar"
	"github.com/grafana/arrowstring/pkg/memory"
	"github.com/grafana/arrowstring/pkg/stringcol"
)

// Equal reports for every row of haystack whether it equals needle.
//
// Special cases:
//
//   - Null rows produce null.
//   - If the needle is null, every result is null.
func Equal(alloc *memory.Allocator, haystack *stringcol.Column, needle *string) *columnar.Bool {
	results := columnar.NewBoolBuilder(alloc)
	results.Grow(int(haystack.Len()))

	if needle == nil {
		results.AppendNulls(int(haystack.Len()))
		return results.Build()
	}

	for _, value := range haystack.All() {
		if value == nil {
			results.AppendNull()
			continue
		}
		results.AppendValue(*value == *needle)
	}
	return results.Build()
}

// SubstrInsensitive reports for every row of haystack whether it contains
// needle, ignoring case.
//
// Special cases:
//
//   - Null rows produce null.
//   - If the needle is null, every result is null.
func SubstrInsensitive(alloc *memory.Allocator, haystack *stringcol.Column, needle *string) *columnar.Bool {
	results := columnar.NewBoolBuilder(alloc)
	results.Grow(int(haystack.Len()))

	if needle == nil {
		results.AppendNulls(int(haystack.Len()))
		return results.Build()
	}

	biggestHaystackValue := 0
	for _, value := range haystack.All() {
		if value != nil {
			biggestHaystackValue = max(biggestHaystackValue, len(*value))
		}
	}

	needleBuffer := memory.MakeBuffer[byte](alloc, len(*needle))
	needleBuffer.Resize(len(*needle))
	needleUpper := toUpper(*needle, needleBuffer.Data())

	workBuffer := memory.MakeBuffer[byte](alloc, biggestHaystackValue)
	workBuffer.Resize(biggestHaystackValue)
	workBytes := workBuffer.Data()

	for _, value := range haystack.All() {
		if value == nil {
			results.AppendNull()
			continue
		}
		valueUpper := toUpper(*value, workBytes[:len(*value)])
		results.AppendValue(bytes.Contains(valueUpper, needleUpper))
	}
	return results.Build()
}

// IsNull reports for every row of input whether it is null. The result has
// no nulls.
func IsNull(alloc *memory.Allocator, input *stringcol.Column) *columnar.Bool {
	results := columnar.NewBoolBuilder(alloc)
	results.Grow(int(input.Len()))

	for _, value := range input.All() {
		results.AppendValue(value == nil)
	}
	return results.Build()
}

// toUpper is an optimized version of bytes.ToUpper that uses a fast path for
// ASCII-only strings. For strings containing non-ASCII characters, it falls
// back to bytes.ToUpper.
//
// The result is written to the provided result buffer. toUpper panics if the
// buffer length does not match s.
func toUpper(s string, result []byte) []byte {
	if len(s) == 0 {
		return nil
	}
	if len(s) != len(result) {
		panic("buffer length mismatch")
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= utf8.RuneSelf {
			return bytes.ToUpper([]byte(s))
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		result[i] = c
	}
	return result
}
