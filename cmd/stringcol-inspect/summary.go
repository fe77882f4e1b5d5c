package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/grafana/arrowstring/pkg/stringcol"
)

// summary describes the contents of a column.
type summary struct {
	Name      string
	Rows      int64
	Nulls     int64
	Chunks    []stringcol.ChunkStats
	DataBytes int64
	Digest    uint64
	Top       []group
}

type group struct {
	Key   stringcol.GroupKey
	Count int
}

// summarize computes the summary of col, keeping the top most common values.
func summarize(col *stringcol.Column, top int) summary {
	s := summary{
		Name:      col.Name(),
		Rows:      col.Len(),
		Nulls:     col.NullCount(),
		Chunks:    col.Chunks(),
		DataBytes: col.DataSize(),
		Digest:    digest(col),
	}

	for key, rows := range col.GroupColumnValues() {
		s.Top = append(s.Top, group{Key: key, Count: len(rows)})
	}
	slices.SortFunc(s.Top, func(a, b group) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if a.Key.Null != b.Key.Null {
			// Nulls sort last among equal counts.
			if a.Key.Null {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Key.Value, b.Key.Value)
	})
	if len(s.Top) > top {
		s.Top = s.Top[:max(top, 0)]
	}
	return s
}

// digest hashes every row of col in order. Columns with the same rows have
// the same digest regardless of how they are chunked.
func digest(col *stringcol.Column) uint64 {
	h := xxhash.New()
	for _, value := range col.All() {
		if value == nil {
			_, _ = h.Write([]byte{0})
			continue
		}
		_, _ = h.Write([]byte{1})
		_, _ = h.WriteString(*value)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

func (s summary) print(w io.Writer, nullToken string) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Column %s:\n", s.Name)
	fmt.Fprintf(
		w,
		"\trows: %s, nulls: %s, chunks: %d, data size: %v, digest: %016x\n",
		humanize.Comma(s.Rows),
		humanize.Comma(s.Nulls),
		len(s.Chunks),
		humanize.Bytes(uint64(s.DataBytes)),
		s.Digest,
	)
	for i, chunk := range s.Chunks {
		fmt.Fprintf(
			w,
			"\t\tchunk %d: rows: %s, nulls: %s, data size: %v\n",
			i,
			humanize.Comma(int64(chunk.Rows)),
			humanize.Comma(int64(chunk.Nulls)),
			humanize.Bytes(uint64(chunk.DataBytes)),
		)
	}

	if len(s.Top) == 0 {
		return
	}
	bold.Fprintln(w, "\tmost common values:")
	for _, g := range s.Top {
		value := fmt.Sprintf("%q", g.Key.Value)
		if g.Key.Null {
			value = color.New(color.Faint).Sprint(nullToken)
		}
		fmt.Fprintf(w, "\t\t%s: %s\n", value, humanize.Comma(int64(g.Count)))
	}
}
