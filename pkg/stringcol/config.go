package stringcol

import (
	"errors"
	"flag"
	"fmt"
	"math"

	"github.com/go-kit/log"
	"github.com/grafana/dskit/flagext"
)

// DefaultMaxChunkSize is the largest number of value bytes a single chunk
// can address with 32-bit offsets.
const DefaultMaxChunkSize = math.MaxInt32

// Config configures how columns are built.
type Config struct {
	// MaxChunkSize is the capacity in bytes of a chunk's data buffer. Building
	// a column starts a new chunk whenever the next value would not fit.
	MaxChunkSize flagext.Bytes `yaml:"max_chunk_size"`
}

// RegisterFlags registers flags with the "column." prefix.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("column.", f)
}

// RegisterFlagsWithPrefix registers flags with the given prefix.
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	cfg.MaxChunkSize = flagext.Bytes(DefaultMaxChunkSize)

	f.Var(&cfg.MaxChunkSize, prefix+"max-chunk-size", "Maximum number of value bytes stored in a single column chunk.")
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	var errs []error

	if cfg.MaxChunkSize <= 0 {
		errs = append(errs, errors.New("MaxChunkSize must be greater than 0"))
	} else if cfg.MaxChunkSize > DefaultMaxChunkSize {
		errs = append(errs, fmt.Errorf("MaxChunkSize must not exceed %d bytes", DefaultMaxChunkSize))
	}

	return errors.Join(errs...)
}

// Options returns the column options described by cfg.
func (cfg Config) Options() []Option {
	return []Option{WithMaxChunkSize(int(cfg.MaxChunkSize))}
}

type options struct {
	maxChunkSize int
	logger       log.Logger
	metrics      *Metrics
}

func defaultOptions() options {
	return options{
		maxChunkSize: DefaultMaxChunkSize,
		logger:       log.NewNopLogger(),
	}
}

// An Option customizes a [Column].
type Option func(*options)

// WithMaxChunkSize sets the data capacity of each chunk. Values outside of
// [1, DefaultMaxChunkSize] are clamped.
func WithMaxChunkSize(size int) Option {
	return func(o *options) {
		o.maxChunkSize = min(max(size, 1), DefaultMaxChunkSize)
	}
}

// WithLogger sets the logger used for debug logging.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics updated by the column.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}
