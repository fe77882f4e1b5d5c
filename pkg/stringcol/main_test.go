package stringcol

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/grafana/arrowstring/pkg/columnar"
	"github.com/grafana/arrowstring/pkg/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func ptr(s string) *string { return &s }

// strs returns non-null values for each of ss.
func strs(ss ...string) []*string {
	values := make([]*string, 0, len(ss))
	for _, s := range ss {
		values = append(values, ptr(s))
	}
	return values
}

// buildColumn builds a column through the append path. nil values are
// appended as nulls.
func buildColumn(t testing.TB, values []*string, opts ...Option) *Column {
	t.Helper()

	c := New("test", opts...)
	for _, v := range values {
		if v == nil {
			require.NoError(t, c.appendNull())
			continue
		}
		require.NoError(t, c.appendValue([]byte(*v)))
	}
	return c
}

func readAll(t testing.TB, c *Column) []*string {
	t.Helper()

	values, err := c.GetRange(0, int(c.Len()))
	require.NoError(t, err)
	return values
}

// recountNulls counts null rows by scanning every validity bitmap.
func recountNulls(c *Column) int64 {
	var nulls int64
	for i := range c.chunks {
		ch := &c.chunks[i]
		if ch.validity.Len() == 0 {
			continue
		}
		nulls += int64(ch.rows() - ch.validity.SetCount(0, ch.rows()))
	}
	return nulls
}

// requireInvariants checks the structural invariants every column must
// uphold.
func requireInvariants(t testing.TB, c *Column) {
	t.Helper()

	var rows int64
	for i := range c.chunks {
		ch := &c.chunks[i]
		offsets := ch.offsets.Data()

		require.NotEmpty(t, offsets, "chunk %d has no offsets", i)
		require.Equal(t, int32(0), offsets[0], "chunk %d must start at offset 0", i)
		for j := 1; j < len(offsets); j++ {
			require.LessOrEqual(t, offsets[j-1], offsets[j], "chunk %d offsets must not decrease", i)
		}
		require.LessOrEqual(t, int(ch.lastOffset()), c.opts.maxChunkSize, "chunk %d exceeds capacity", i)
		if !ch.readOnly {
			require.Equal(t, ch.rows(), ch.validity.Len(), "chunk %d must have one validity bit per row", i)
		}
		rows += int64(ch.rows())
	}

	require.Equal(t, c.Len(), rows, "chunk rows must add up to the column length")
	require.Equal(t, recountNulls(c), c.NullCount(), "running null count must match a full recount")
}

func numberMap[T columnar.Numeric](values []T, nullAt ...int) *columnar.Number[T] {
	var valid memory.Bitmap
	if len(nullAt) > 0 {
		valid.AppendCount(true, len(values))
		for _, i := range nullAt {
			valid.Set(i, false)
		}
	}
	return columnar.NewNumber(values, valid)
}

func boolMask(values []bool, nullAt ...int) *columnar.Bool {
	var bits, valid memory.Bitmap
	bits.AppendValues(values...)
	if len(nullAt) > 0 {
		valid.AppendCount(true, len(values))
		for _, i := range nullAt {
			valid.Set(i, false)
		}
	}
	return columnar.NewBool(bits, valid)
}
