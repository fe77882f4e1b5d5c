package stringcol

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	arrowmemory "github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"
)

func offsetBytes(offsets ...int32) []byte {
	return arrow.Int32Traits.CastToBytes(offsets)
}

func TestNewFromBuffers(t *testing.T) {
	values := []byte("foobar")
	c, err := NewFromBuffers("ingest", values, offsetBytes(0, 3, 3, 6), []byte{0b101}, 3, 1)
	require.NoError(t, err)
	requireInvariants(t, c)

	require.Equal(t, int64(3), c.Len())
	require.Equal(t, int64(1), c.NullCount())
	require.Equal(t, 1, c.NumChunks())
	require.Equal(t, []*string{ptr("foo"), nil, ptr("bar")}, readAll(t, c))

	require.Same(t, &values[0], &c.chunks[0].data.Data()[0], "ingest must not copy values")
}

func TestNewFromBuffers_NoValidity(t *testing.T) {
	c, err := NewFromBuffers("ingest", []byte("ab"), offsetBytes(0, 1, 2), nil, 2, 0)
	require.NoError(t, err)

	valid, err := c.IsValid(1)
	require.NoError(t, err)
	require.True(t, valid)
	require.Equal(t, strs("a", "b"), readAll(t, c))
}

func TestNewFromBuffers_Empty(t *testing.T) {
	c, err := NewFromBuffers("ingest", nil, offsetBytes(0), nil, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(0), c.Len())

	_, err = c.Get(0)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestNewFromBuffers_Invalid(t *testing.T) {
	tt := []struct {
		name      string
		values    []byte
		offsets   []byte
		validity  []byte
		length    int
		nullCount int
	}{
		{"too few offsets", []byte("ab"), offsetBytes(0, 2), nil, 2, 0},
		{"too many offsets", []byte("ab"), offsetBytes(0, 1, 2, 2), nil, 2, 0},
		{"partial offset", []byte("ab"), append(offsetBytes(0, 1, 2), 0), nil, 2, 0},
		{"first offset not zero", []byte("ab"), offsetBytes(1, 1, 2), nil, 2, 0},
		{"decreasing offsets", []byte("ab"), offsetBytes(0, 2, 1), nil, 2, 0},
		{"offsets past values", []byte("ab"), offsetBytes(0, 1, 3), nil, 2, 0},
		{"missing validity", []byte("ab"), offsetBytes(0, 1, 2), nil, 2, 1},
		{"negative length", nil, offsetBytes(0), nil, -1, 0},
		{"null count above length", []byte("ab"), offsetBytes(0, 1, 2), []byte{0}, 2, 3},
		{"negative null count", []byte("ab"), offsetBytes(0, 1, 2), nil, 2, -1},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewFromBuffers("ingest", tc.values, tc.offsets, tc.validity, tc.length, tc.nullCount)
			require.ErrorIs(t, err, ErrInvalidArgument)
			require.Nil(t, c)
		})
	}
}

func TestNewFromBuffers_CloneIsWritable(t *testing.T) {
	c, err := NewFromBuffers("ingest", []byte("xy"), offsetBytes(0, 1, 2), nil, 2, 0)
	require.NoError(t, err)

	clone, err := c.Clone(nil, false, 1)
	require.NoError(t, err)
	requireInvariants(t, clone)
	require.False(t, clone.chunks[0].readOnly)
	require.Equal(t, []*string{ptr("x"), ptr("y"), nil}, readAll(t, clone))
}

func TestNewFromBuffers_ZeroNullCountIgnoresValidity(t *testing.T) {
	// The bitmap marks row 1 null, but the caller reports no nulls.
	c, err := NewFromBuffers("ingest", []byte("ab"), offsetBytes(0, 1, 2), []byte{0b01}, 2, 0)
	require.NoError(t, err)

	valid, err := c.IsValid(1)
	require.NoError(t, err)
	require.True(t, valid)
	require.Equal(t, strs("a", "b"), readAll(t, c))

	arr, err := c.Export(0, 2)
	require.NoError(t, err)
	defer arr.Release()

	require.Equal(t, 0, arr.NullN())
	require.False(t, arr.IsNull(1))
	require.Equal(t, "b", arr.Value(1))
}

func buildArrow(t testing.TB, values []*string) *array.String {
	t.Helper()

	b := array.NewStringBuilder(arrowmemory.DefaultAllocator)
	defer b.Release()

	for _, v := range values {
		if v == nil {
			b.AppendNull()
			continue
		}
		b.Append(*v)
	}
	return b.NewStringArray()
}

func TestFromArrow(t *testing.T) {
	values := []*string{ptr("alpha"), nil, ptr(""), ptr("omega")}
	arr := buildArrow(t, values)
	defer arr.Release()

	c, err := FromArrow("arrow", arr)
	require.NoError(t, err)
	requireInvariants(t, c)

	require.True(t, c.chunks[0].readOnly, "unsliced arrays are wrapped")
	require.Equal(t, int64(1), c.NullCount())
	require.Equal(t, values, readAll(t, c))
}

func TestFromArrow_Sliced(t *testing.T) {
	arr := buildArrow(t, []*string{ptr("a"), nil, ptr("b"), ptr("c")})
	defer arr.Release()

	sliced := array.NewSlice(arr, 1, 3).(*array.String)
	defer sliced.Release()

	c, err := FromArrow("arrow", sliced)
	require.NoError(t, err)
	requireInvariants(t, c)

	require.False(t, c.chunks[0].readOnly, "sliced arrays are copied")
	require.Equal(t, []*string{nil, ptr("b")}, readAll(t, c))
}

func TestFromArrow_Empty(t *testing.T) {
	arr := buildArrow(t, nil)
	defer arr.Release()

	c, err := FromArrow("arrow", arr)
	require.NoError(t, err)
	require.Equal(t, int64(0), c.Len())
}

func TestConcat(t *testing.T) {
	first := buildArrow(t, []*string{ptr("aa"), nil})
	defer first.Release()
	second := buildArrow(t, strs("bb", "cc"))
	defer second.Release()

	c, err := Concat("concat", []*array.String{first, second}, WithMaxChunkSize(4))
	require.NoError(t, err)
	requireInvariants(t, c)

	require.Equal(t, 2, c.NumChunks())
	require.Equal(t, int64(1), c.NullCount())
	require.Equal(t, []*string{ptr("aa"), nil, ptr("bb"), ptr("cc")}, readAll(t, c))

	single, err := Concat("concat", []*array.String{first})
	require.NoError(t, err)
	require.True(t, single.chunks[0].readOnly)

	empty, err := Concat("concat", nil)
	require.NoError(t, err)
	require.Equal(t, int64(0), empty.Len())
}
