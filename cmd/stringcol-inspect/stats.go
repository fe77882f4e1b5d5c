package main

import (
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"
)

// statsCommand prints a summary of each newline-delimited file.
type statsCommand struct {
	g         *globalFlags
	files     []string
	nullToken string
	top       int
}

func addStatsCommand(app *kingpin.Application, g *globalFlags) {
	cmd := &statsCommand{g: g}
	c := app.Command("stats", "Build a column from each newline-delimited file and print its summary.")
	c.Arg("file", "Files to read, one value per line. - reads from stdin.").Required().StringsVar(&cmd.files)
	registerNullTokenFlag(c, &cmd.nullToken)
	c.Flag("top", "Number of most common values to print.").Default("5").IntVar(&cmd.top)
	c.Action(cmd.run)
}

func registerNullTokenFlag(c *kingpin.CmdClause, target *string) {
	c.Flag("null-token", "Lines equal to this token are read as null.").Default(`\N`).StringVar(target)
}

func (cmd *statsCommand) run(_ *kingpin.ParseContext) error {
	for _, f := range cmd.files {
		if err := cmd.printStats(os.Stdout, f); err != nil {
			exitWithErr(err)
		}
	}
	return nil
}

func (cmd *statsCommand) printStats(w io.Writer, path string) error {
	col, err := readFile(path, cmd.nullToken, cmd.g.chunkSize(), cmd.g.columnOptions()...)
	if err != nil {
		return errors.Wrap(err, path)
	}
	summarize(col, cmd.top).print(w, cmd.nullToken)
	return nil
}
