package main

import (
	"bufio"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow/array"
	arrowmemory "github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/grafana/arrowstring/pkg/stringcol"
	util_log "github.com/grafana/arrowstring/pkg/util/log"
)

// maxLineSize is the longest line readValues accepts.
const maxLineSize = 64 << 20

// openInput opens path for reading. "-" reads from stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	return f, nil
}

// stageValues reads r one row per line into Arrow arrays. Lines equal to
// nullToken are null rows. A new array is started whenever the next line
// would take the current one past chunkSize value bytes, which keeps every
// array within the int32 offsets of the Arrow string layout.
func stageValues(r io.Reader, nullToken string, chunkSize int) ([]*array.String, error) {
	if chunkSize <= 0 || chunkSize > stringcol.DefaultMaxChunkSize {
		chunkSize = stringcol.DefaultMaxChunkSize
	}

	var staged []*array.String
	b := array.NewStringBuilder(arrowmemory.DefaultAllocator)
	defer b.Release()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if line == nullToken {
			b.AppendNull()
			continue
		}
		if b.Len() > 0 && b.DataLen()+len(line) > chunkSize {
			staged = append(staged, b.NewStringArray())
		}
		b.Append(line)
	}
	if err := scanner.Err(); err != nil {
		releaseStaged(staged)
		return nil, errors.Wrap(err, "failed to read values")
	}
	if b.Len() > 0 {
		staged = append(staged, b.NewStringArray())
	}
	return staged, nil
}

func releaseStaged(staged []*array.String) {
	for _, arr := range staged {
		arr.Release()
	}
}

// readValues builds a column named name from r, one row per line. Lines
// equal to nullToken are null rows. chunkSize should match the column's
// configured chunk size.
func readValues(r io.Reader, name, nullToken string, chunkSize int, opts ...stringcol.Option) (*stringcol.Column, error) {
	staged, err := stageValues(r, nullToken, chunkSize)
	if err != nil {
		return nil, err
	}
	defer releaseStaged(staged)

	col, err := stringcol.Concat(name, staged, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build column")
	}
	if len(staged) == 1 {
		// Concat ingested the staged buffers as they are.
		if col, err = col.Clone(nil, false, 0); err != nil {
			return nil, errors.Wrap(err, "failed to build column")
		}
	}

	level.Debug(util_log.Logger).Log("msg", "read column", "column", name, "rows", col.Len(), "nulls", col.NullCount(), "chunks", col.NumChunks(), "staged", len(staged))
	return col, nil
}

// readFile builds a column from the file at path, named after the file.
func readFile(path, nullToken string, chunkSize int, opts ...stringcol.Option) (*stringcol.Column, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return readValues(f, path, nullToken, chunkSize, opts...)
}
