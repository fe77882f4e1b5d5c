package stringcol

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a row index is outside [0, Len).
	ErrOutOfRange = errors.New("row index out of range")

	// ErrInvalidArgument is returned for malformed input, such as ingest
	// buffers which do not describe a valid column or a filter mask longer than
	// the column.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrArgumentType is returned by [Column.Clone] for maps which are not
	// int64, int32 or bool arrays.
	ErrArgumentType = errors.New("unsupported argument type")

	// ErrUnsupported is returned by every operation that would modify a
	// column in place. Columns are immutable once built.
	ErrUnsupported = errors.New("operation not supported by immutable column")

	// ErrSpansChunks is returned by [Column.Export] when the requested rows
	// are not all stored in the same chunk.
	ErrSpansChunks = errors.New("row range spans multiple chunks")

	// ErrValueTooLarge is returned when a single value cannot fit in an empty
	// chunk.
	ErrValueTooLarge = fmt.Errorf("%w: value larger than chunk capacity", ErrInvalidArgument)
)
