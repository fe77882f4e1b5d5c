// Package arrowconv converts string columns to and from Arrow record batches
// and the Arrow IPC file format.
package arrowconv

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/grafana/arrowstring/pkg/stringcol"
)

// Schema returns the Arrow schema of a record batch holding cols in order.
func Schema(cols ...*stringcol.Column) *arrow.Schema {
	fields := make([]arrow.Field, 0, len(cols))
	for _, col := range cols {
		fields = append(fields, col.Field())
	}
	return arrow.NewSchema(fields, nil)
}

// RecordBatches exports cols as a sequence of record batches. All columns
// must have the same length. Batch boundaries are placed wherever any column
// starts a new chunk, so every array is exported without copying.
//
// Callers must Release the returned record batches.
func RecordBatches(cols ...*stringcol.Column) ([]arrow.RecordBatch, error) {
	if len(cols) == 0 {
		return nil, nil
	}

	rows := cols[0].Len()
	for _, col := range cols[1:] {
		if col.Len() != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, column %q has %d", stringcol.ErrInvalidArgument, col.Name(), col.Len(), cols[0].Name(), rows)
		}
	}

	var (
		schema  = Schema(cols...)
		batches []arrow.RecordBatch
	)
	for start := int64(0); start < rows; {
		count, err := batchLength(cols, start)
		if err != nil {
			releaseAll(batches)
			return nil, err
		}

		batch, err := exportBatch(schema, cols, start, count)
		if err != nil {
			releaseAll(batches)
			return nil, err
		}
		batches = append(batches, batch)
		start += int64(count)
	}
	return batches, nil
}

// batchLength returns the largest number of rows from start which every
// column can export from a single chunk.
func batchLength(cols []*stringcol.Column, start int64) (int, error) {
	count := -1
	for _, col := range cols {
		n, err := col.MaxRecordBatchLength(start)
		if err != nil {
			return 0, err
		}
		if count < 0 || n < count {
			count = n
		}
	}
	if count <= 0 {
		return 0, errors.New("no rows left to export")
	}
	return count, nil
}

func exportBatch(schema *arrow.Schema, cols []*stringcol.Column, start int64, count int) (arrow.RecordBatch, error) {
	arrs := make([]arrow.Array, 0, len(cols))
	defer func() {
		for _, arr := range arrs {
			arr.Release()
		}
	}()

	for _, col := range cols {
		arr, err := col.Export(start, count)
		if err != nil {
			return nil, fmt.Errorf("exporting column %q: %w", col.Name(), err)
		}
		arrs = append(arrs, arr)
	}
	return array.NewRecordBatch(schema, arrs, int64(count)), nil
}

func releaseAll(batches []arrow.RecordBatch) {
	for _, batch := range batches {
		batch.Release()
	}
}
