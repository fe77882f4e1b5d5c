package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/grafana/arrowstring/pkg/arrowconv"
	"github.com/grafana/arrowstring/pkg/stringcol"
	util_log "github.com/grafana/arrowstring/pkg/util/log"
)

// exportCommand writes newline-delimited files to an Arrow IPC file, one
// field per input file.
type exportCommand struct {
	g           *globalFlags
	files       []string
	nullToken   string
	out         string
	compression string
}

func addExportCommand(app *kingpin.Application, g *globalFlags) {
	cmd := &exportCommand{g: g}
	c := app.Command("export", "Write newline-delimited files to an Arrow IPC file with one string field per input file.")
	c.Arg("file", "Files to read, one value per line. All files must have the same number of lines.").Required().StringsVar(&cmd.files)
	registerNullTokenFlag(c, &cmd.nullToken)
	c.Flag("out", "Path of the Arrow IPC file to write.").Short('o').Required().StringVar(&cmd.out)
	c.Flag("compression", "Compression of the record batches.").Default(arrowconv.CompressionNone.String()).EnumVar(&cmd.compression, arrowconv.CompressionNames...)
	c.Action(cmd.run)
}

func (cmd *exportCommand) run(_ *kingpin.ParseContext) error {
	if err := cmd.export(); err != nil {
		exitWithErr(err)
	}
	return nil
}

func (cmd *exportCommand) export() error {
	compression, err := arrowconv.ParseCompression(cmd.compression)
	if err != nil {
		return err
	}

	cols := make([]*stringcol.Column, 0, len(cmd.files))
	for _, path := range cmd.files {
		col, err := readFile(path, cmd.nullToken, cmd.g.chunkSize(), cmd.g.columnOptions()...)
		if err != nil {
			return errors.Wrap(err, path)
		}
		cols = append(cols, col)
	}

	f, err := os.Create(cmd.out)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	if err := arrowconv.WriteIPC(f, cols, arrowconv.WriteOptions{Compression: compression}); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write %s", cmd.out)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", cmd.out)
	}

	level.Info(util_log.Logger).Log("msg", "wrote arrow file", "path", cmd.out, "columns", len(cols), "compression", compression)
	return nil
}
