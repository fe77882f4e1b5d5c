package main

import (
	"flag"
	"os"

	dslog "github.com/grafana/dskit/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/grafana/arrowstring/pkg/stringcol"
)

// Config is the configuration file of stringcol-inspect.
type Config struct {
	LogLevel dslog.Level      `yaml:"log_level"`
	Column   stringcol.Config `yaml:"column"`
}

// RegisterFlags sets the defaults of cfg.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.LogLevel.RegisterFlags(f)
	cfg.Column.RegisterFlags(f)
}

// loadConfig builds the configuration from its defaults, the file at path
// (if any) and finally the command-line overrides. Empty overrides are
// ignored.
func loadConfig(path, logLevel, maxChunkSize string) (Config, error) {
	var cfg Config
	cfg.RegisterFlags(flag.NewFlagSet("defaults", flag.ContinueOnError))

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "reading config file")
		}
		if err := yaml.UnmarshalStrict(buf, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parsing config file %s", path)
		}
	}

	if logLevel != "" {
		if err := cfg.LogLevel.Set(logLevel); err != nil {
			return cfg, errors.Wrap(err, "invalid -log.level")
		}
	}
	if maxChunkSize != "" {
		if err := cfg.Column.MaxChunkSize.Set(maxChunkSize); err != nil {
			return cfg, errors.Wrap(err, "invalid -column.max-chunk-size")
		}
	}

	if err := cfg.Column.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid column configuration")
	}
	return cfg, nil
}
