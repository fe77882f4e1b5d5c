// Command stringcol-inspect builds string columns from newline-delimited
// text or Arrow IPC files and prints what they hold.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/grafana/arrowstring/pkg/stringcol"
	util_log "github.com/grafana/arrowstring/pkg/util/log"
)

func main() {
	app := kingpin.New("stringcol-inspect", "A command-line tool to build and inspect Arrow string columns.")
	app.HelpFlag.Short('h')

	g := registerGlobalFlags(app)
	app.PreAction(g.setup)

	addStatsCommand(app, g)
	addFilterCommand(app, g)
	addExportCommand(app, g)
	addInspectCommand(app, g)

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	level.Debug(util_log.Logger).Log("msg", "command finished", "command", cmd)

	if g.printMetrics {
		if err := printMetrics(os.Stdout, g.registry); err != nil {
			exitWithErr(err)
		}
	}
}

// globalFlags holds the flags shared by every command and the state derived
// from them.
type globalFlags struct {
	configFile   string
	logLevel     string
	maxChunkSize string
	printMetrics bool

	cfg      Config
	metrics  *stringcol.Metrics
	registry *prometheus.Registry
}

func registerGlobalFlags(app *kingpin.Application) *globalFlags {
	g := &globalFlags{}
	app.Flag("config.file", "YAML file to load column configuration from.").StringVar(&g.configFile)
	app.Flag("log.level", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error]. Defaults to info.").StringVar(&g.logLevel)
	app.Flag("column.max-chunk-size", "Maximum number of value bytes stored in a single column chunk. Overrides the config file.").StringVar(&g.maxChunkSize)
	app.Flag("print-metrics", "Print column metrics after the command has run.").BoolVar(&g.printMetrics)
	return g
}

// setup loads the configuration and sets up logging and metrics. It runs
// before any command.
func (g *globalFlags) setup(_ *kingpin.ParseContext) error {
	cfg, err := loadConfig(g.configFile, g.logLevel, g.maxChunkSize)
	if err != nil {
		return err
	}
	g.cfg = cfg

	util_log.InitLogger(os.Stderr, cfg.LogLevel)

	g.registry = prometheus.NewRegistry()
	g.metrics = stringcol.NewMetrics()
	return g.metrics.Register(g.registry)
}

// columnOptions returns the options every column built by a command uses.
func (g *globalFlags) columnOptions() []stringcol.Option {
	return append(g.cfg.Column.Options(),
		stringcol.WithLogger(util_log.Logger),
		stringcol.WithMetrics(g.metrics),
	)
}

// chunkSize returns the configured chunk capacity in bytes.
func (g *globalFlags) chunkSize() int {
	return int(g.cfg.Column.MaxChunkSize)
}

func exitWithErr(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
