package main

import (
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"

	"github.com/grafana/arrowstring/pkg/arrowconv"
)

// inspectCommand prints a summary of every column of Arrow IPC files.
type inspectCommand struct {
	g         *globalFlags
	files     []string
	nullToken string
	top       int
}

func addInspectCommand(app *kingpin.Application, g *globalFlags) {
	cmd := &inspectCommand{g: g}
	c := app.Command("inspect", "Read Arrow IPC files and print a summary of each string field.")
	c.Arg("file", "Arrow IPC files to read.").Required().ExistingFilesVar(&cmd.files)
	c.Flag("null-token", "Token printed for null values.").Default(`\N`).StringVar(&cmd.nullToken)
	c.Flag("top", "Number of most common values to print.").Default("5").IntVar(&cmd.top)
	c.Action(cmd.run)
}

func (cmd *inspectCommand) run(_ *kingpin.ParseContext) error {
	for _, f := range cmd.files {
		if err := cmd.inspect(os.Stdout, f); err != nil {
			exitWithErr(errors.Wrap(err, f))
		}
	}
	return nil
}

func (cmd *inspectCommand) inspect(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer func() { _ = f.Close() }()

	cols, err := arrowconv.ReadIPC(f, cmd.g.columnOptions()...)
	if err != nil {
		return errors.Wrap(err, "failed to read arrow file")
	}
	for _, col := range cols {
		summarize(col, cmd.top).print(w, cmd.nullToken)
	}
	return nil
}
