// Package compute implements kernels which produce boolean masks over string
// columns and combine them.
//
// The masks returned by this package are [columnar.Bool] arrays and can be
// passed directly to [stringcol.Column.Clone] to filter a column. A null mask
// value drops the row, the same as false.
package compute
