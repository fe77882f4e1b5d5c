// Package log holds the process-wide logger of the command line tools.
package log

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	dslog "github.com/grafana/dskit/log"
)

// Logger is the logger used by the command line tools. It discards
// everything until InitLogger is called.
var Logger = log.NewNopLogger()

// InitLogger replaces Logger with a logger writing logfmt lines to w,
// dropping lines below lvl.
func InitLogger(w io.Writer, lvl dslog.Level) log.Logger {
	Logger = NewLogger(w, lvl)
	return Logger
}

// NewLogger returns a logger writing logfmt lines to w, dropping lines below
// lvl. Every line carries a UTC timestamp.
func NewLogger(w io.Writer, lvl dslog.Level) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, lvl.Option)
	return log.With(logger, "ts", log.DefaultTimestampUTC)
}
