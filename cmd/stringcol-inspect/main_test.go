package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/grafana/arrowstring/pkg/arrowconv"
	"github.com/grafana/arrowstring/pkg/stringcol"
)

func init() {
	color.NoColor = true
}

func ptr(s string) *string { return &s }

func testFlags(t *testing.T, maxChunkSize string) *globalFlags {
	t.Helper()

	g := &globalFlags{logLevel: "info", maxChunkSize: maxChunkSize}
	require.NoError(t, g.setup(nil))
	return g
}

// mustRead builds a column from input. A chunkSize of 0 keeps the default.
func mustRead(t *testing.T, input string, chunkSize int, opts ...stringcol.Option) *stringcol.Column {
	t.Helper()

	if chunkSize > 0 {
		opts = append([]stringcol.Option{stringcol.WithMaxChunkSize(chunkSize)}, opts...)
	}
	col, err := readValues(strings.NewReader(input), "test", `\N`, chunkSize, opts...)
	require.NoError(t, err)
	return col
}

func readColumn(t *testing.T, col *stringcol.Column) []*string {
	t.Helper()

	values, err := col.GetRange(0, int(col.Len()))
	require.NoError(t, err)
	return values
}

func TestReadValues(t *testing.T) {
	col := mustRead(t, "alpha\n\\N\n\nbeta\n", 5)

	require.Equal(t, []*string{ptr("alpha"), nil, ptr(""), ptr("beta")}, readColumn(t, col))
	require.Equal(t, int64(1), col.NullCount())
	require.Equal(t, 2, col.NumChunks(), "rows are split into chunks of the configured size")
}

func TestStageValues_SplitsAtChunkSize(t *testing.T) {
	g := testFlags(t, "4B")

	staged, err := stageValues(strings.NewReader("ab\ncd\n\\N\nefg\nh\nij\n"), `\N`, g.chunkSize())
	require.NoError(t, err)
	defer releaseStaged(staged)

	require.Len(t, staged, 3)
	var rows int
	for _, arr := range staged {
		require.LessOrEqual(t, len(arr.ValueBytes()), 4)
		rows += arr.Len()
	}
	require.Equal(t, 6, rows)
	require.Equal(t, 1, staged[0].NullN(), "nulls stay in the array being built")

	col := mustRead(t, "ab\ncd\n\\N\nefg\nh\nij\n", g.chunkSize(), g.columnOptions()...)
	require.Equal(t, []*string{ptr("ab"), ptr("cd"), nil, ptr("efg"), ptr("h"), ptr("ij")}, readColumn(t, col))
	require.Equal(t, 3, col.NumChunks())
}

func TestReadValues_ValueTooLarge(t *testing.T) {
	for _, input := range []string{"abcdef\n", "a\nabcdef\n"} {
		_, err := readValues(strings.NewReader(input), "test", `\N`, 4, stringcol.WithMaxChunkSize(4))
		require.ErrorIs(t, err, stringcol.ErrValueTooLarge, "input %q", input)
	}
}

func TestReadValues_Empty(t *testing.T) {
	col := mustRead(t, "", 0)
	require.Equal(t, int64(0), col.Len())
}

func TestDigest_IgnoresChunking(t *testing.T) {
	input := "a\nbb\n\\N\nccc\n\nbb\n"

	small := mustRead(t, input, 3)
	large := mustRead(t, input, 0)
	require.Greater(t, small.NumChunks(), large.NumChunks())
	require.Equal(t, digest(large), digest(small))

	require.NotEqual(t, digest(large), digest(mustRead(t, "a\nbb\n\nccc\n\nbb\n", 0)), "null and empty differ")
	require.NotEqual(t, digest(mustRead(t, "ab\nc\n", 0)), digest(mustRead(t, "a\nbc\n", 0)))
}

func TestSummarize(t *testing.T) {
	col := mustRead(t, "x\ny\nx\n\\N\nz\n\\N\nx\n", 0)

	s := summarize(col, 3)
	require.Equal(t, int64(7), s.Rows)
	require.Equal(t, int64(2), s.Nulls)
	require.Equal(t, int64(5), s.DataBytes)
	require.Equal(t, []group{
		{Key: stringcol.GroupKey{Value: "x"}, Count: 3},
		{Key: stringcol.NullKey, Count: 2},
		{Key: stringcol.GroupKey{Value: "y"}, Count: 1},
	}, s.Top)

	require.Empty(t, summarize(col, 0).Top)
}

func TestSummary_Print(t *testing.T) {
	col := mustRead(t, "x\n\\N\nx\n", 0)

	var buf bytes.Buffer
	summarize(col, 5).print(&buf, "NULL")

	out := buf.String()
	require.Contains(t, out, "Column test:")
	require.Contains(t, out, "rows: 3, nulls: 1, chunks: 1, data size: 2 B")
	require.Contains(t, out, `"x": 2`)
	require.Contains(t, out, "NULL: 1")
}

func TestFilter(t *testing.T) {
	col := mustRead(t, "Error: disk\ninfo\n\\N\nerror: net\nerror\n", 0)

	tt := []struct {
		name   string
		cmd    filterCommand
		expect []*string
	}{
		{
			name:   "no predicates",
			expect: []*string{ptr("Error: disk"), ptr("info"), nil, ptr("error: net"), ptr("error")},
		},
		{
			name:   "contains",
			cmd:    filterCommand{contains: "ERROR", containsSet: true},
			expect: []*string{ptr("Error: disk"), ptr("error: net"), ptr("error")},
		},
		{
			name:   "equals",
			cmd:    filterCommand{equals: "error", equalsSet: true},
			expect: []*string{ptr("error")},
		},
		{
			name:   "contains and equals",
			cmd:    filterCommand{contains: "net", containsSet: true, equals: "error: net", equalsSet: true},
			expect: []*string{ptr("error: net")},
		},
		{
			name:   "inverted",
			cmd:    filterCommand{contains: "error", containsSet: true, invert: true},
			expect: []*string{ptr("info")},
		},
		{
			name:   "drop nulls",
			cmd:    filterCommand{dropNulls: true},
			expect: []*string{ptr("Error: disk"), ptr("info"), ptr("error: net"), ptr("error")},
		},
		{
			name:   "empty contains matches everything but nulls",
			cmd:    filterCommand{containsSet: true},
			expect: []*string{ptr("Error: disk"), ptr("info"), ptr("error: net"), ptr("error")},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			filtered, err := tc.cmd.filter(col)
			require.NoError(t, err)
			require.Equal(t, tc.expect, readColumn(t, filtered))
		})
	}
}

func TestFilter_InvertWithoutPredicate(t *testing.T) {
	col := mustRead(t, "a\nb\n", 0)

	cmd := filterCommand{invert: true}
	filtered, err := cmd.filter(col)
	require.ErrorIs(t, err, errInvertWithoutPredicate)
	require.Nil(t, filtered)
}

func TestPrintValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printValues(&buf, mustRead(t, "a\n\\N\n\nb\n", 0), "NULL"))
	require.Equal(t, "a\nNULL\n\nb\n", buf.String())
}

func TestExportAndInspect(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	out := filepath.Join(dir, "out.arrow")
	require.NoError(t, os.WriteFile(first, []byte("aa\nbb\n\\N\ncc\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("1\n2\n3\n\\N\n"), 0o644))

	g := testFlags(t, "4B")

	export := exportCommand{g: g, files: []string{first, second}, nullToken: `\N`, out: out, compression: "zstd"}
	require.NoError(t, export.export())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	cols, err := arrowconv.ReadIPC(f)
	require.NoError(t, err)
	require.Len(t, cols, 2)
	require.Equal(t, first, cols[0].Name())

	col, err := readFile(first, `\N`, 0)
	require.NoError(t, err)
	require.Equal(t, digest(col), digest(cols[0]), "reading the file back yields the same rows")

	var buf bytes.Buffer
	inspect := inspectCommand{g: g, nullToken: `\N`, top: 1}
	require.NoError(t, inspect.inspect(&buf, out))
	require.Contains(t, buf.String(), "Column "+second+":")
}

func TestExport_LengthMismatch(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte("a\nb\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("a\n"), 0o644))

	export := exportCommand{g: testFlags(t, ""), files: []string{first, second}, out: filepath.Join(dir, "out.arrow"), compression: "none"}
	require.ErrorIs(t, export.export(), stringcol.ErrInvalidArgument)
}

func TestPrintMetrics(t *testing.T) {
	g := testFlags(t, "2B")
	mustRead(t, "aa\nbb\n", g.chunkSize(), g.columnOptions()...)

	var buf bytes.Buffer
	require.NoError(t, printMetrics(&buf, g.registry))
	require.Contains(t, buf.String(), "arrowstring_column_chunks_sealed_total 1")
	require.Contains(t, buf.String(), "arrowstring_column_rows_appended_total 2")

	require.NoError(t, printMetrics(&buf, prometheus.NewRegistry()))
}
