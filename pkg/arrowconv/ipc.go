package arrowconv

import (
	"fmt"
	"io"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	arrowmemory "github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/pkg/errors"

	"github.com/grafana/arrowstring/pkg/stringcol"
)

// Compression selects the codec used for IPC record batch bodies.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

// CompressionNames lists the accepted names of [ParseCompression].
var CompressionNames = []string{"none", "zstd", "lz4"}

// String returns the name of c.
func (c Compression) String() string {
	if c < 0 || int(c) >= len(CompressionNames) {
		return fmt.Sprintf("Compression(%d)", int(c))
	}
	return CompressionNames[c]
}

// ParseCompression returns the Compression called name.
func ParseCompression(name string) (Compression, error) {
	for i, n := range CompressionNames {
		if strings.EqualFold(n, name) {
			return Compression(i), nil
		}
	}
	return CompressionNone, fmt.Errorf("unknown compression %q, expected one of %s", name, strings.Join(CompressionNames, ", "))
}

// WriteOptions configures [WriteIPC].
type WriteOptions struct {
	Compression Compression
}

func (opts WriteOptions) ipcOptions(schema *arrow.Schema) ([]ipc.Option, error) {
	ipcOpts := []ipc.Option{ipc.WithSchema(schema)}
	switch opts.Compression {
	case CompressionNone:
	case CompressionZstd:
		ipcOpts = append(ipcOpts, ipc.WithZstd())
	case CompressionLZ4:
		ipcOpts = append(ipcOpts, ipc.WithLZ4())
	default:
		return nil, fmt.Errorf("unsupported compression %s", opts.Compression)
	}
	return ipcOpts, nil
}

// WriteIPC writes cols to w as an Arrow IPC file with one field per column.
// All columns must have the same length.
func WriteIPC(w io.Writer, cols []*stringcol.Column, opts WriteOptions) error {
	schema := Schema(cols...)
	ipcOpts, err := opts.ipcOptions(schema)
	if err != nil {
		return err
	}

	batches, err := RecordBatches(cols...)
	if err != nil {
		return err
	}
	defer releaseAll(batches)

	writer, err := ipc.NewFileWriter(w, ipcOpts...)
	if err != nil {
		return errors.Wrap(err, "creating IPC file writer")
	}
	for i, batch := range batches {
		if err := writer.Write(batch); err != nil {
			_ = writer.Close()
			return errors.Wrapf(err, "writing record batch %d", i)
		}
	}
	return errors.Wrap(writer.Close(), "closing IPC file writer")
}

// ReadIPC reads every column of the Arrow IPC file in r. Every field of the
// file must be a string field.
//
// Files holding a single record batch are ingested without copying, so the
// returned columns reference memory read from r. Record batches of larger
// files are concatenated into chunks of the configured capacity.
func ReadIPC(r ipc.ReadAtSeeker, opts ...stringcol.Option) ([]*stringcol.Column, error) {
	return readIPC(r, arrowmemory.DefaultAllocator, opts...)
}

func readIPC(r ipc.ReadAtSeeker, mem arrowmemory.Allocator, opts ...stringcol.Option) ([]*stringcol.Column, error) {
	reader, err := ipc.NewFileReader(r, ipc.WithAllocator(mem))
	if err != nil {
		return nil, errors.Wrap(err, "opening IPC file")
	}
	defer reader.Close()

	schema := reader.Schema()
	for i, field := range schema.Fields() {
		if field.Type.ID() != arrow.STRING {
			return nil, fmt.Errorf("%w: field %d (%q) is %s, expected %s", stringcol.ErrArgumentType, i, field.Name, field.Type, arrow.BinaryTypes.String)
		}
	}

	arrs := make([][]*array.String, schema.NumFields())
	for i := range reader.NumRecords() {
		batch, err := reader.Record(i)
		if err != nil {
			for _, colArrs := range arrs {
				releaseStrings(colArrs)
			}
			return nil, errors.Wrapf(err, "reading record batch %d", i)
		}
		for col := range arrs {
			arr := batch.Column(col).(*array.String)
			arr.Retain()
			arrs[col] = append(arrs[col], arr)
		}
	}

	cols := make([]*stringcol.Column, 0, len(arrs))
	for i, colArrs := range arrs {
		col, err := stringcol.Concat(schema.Field(i).Name, colArrs, opts...)
		if err != nil {
			for _, rest := range arrs[i:] {
				releaseStrings(rest)
			}
			return nil, errors.Wrapf(err, "ingesting field %q", schema.Field(i).Name)
		}
		if len(colArrs) != 1 {
			// Concatenated rows were copied.
			releaseStrings(colArrs)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func releaseStrings(arrs []*array.String) {
	for _, arr := range arrs {
		arr.Release()
	}
}
