package main

import (
	"bufio"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"

	"github.com/grafana/arrowstring/pkg/columnar"
	"github.com/grafana/arrowstring/pkg/compute"
	"github.com/grafana/arrowstring/pkg/memory"
	"github.com/grafana/arrowstring/pkg/stringcol"
)

// filterCommand prints the rows of a file which match a set of predicates.
type filterCommand struct {
	g         *globalFlags
	file      string
	nullToken string

	equals      string
	equalsSet   bool
	contains    string
	containsSet bool
	dropNulls   bool
	invert      bool
}

func addFilterCommand(app *kingpin.Application, g *globalFlags) {
	cmd := &filterCommand{g: g}
	c := app.Command("filter", "Print the values of a newline-delimited file which match every predicate.")
	c.Arg("file", "File to read, one value per line. - reads from stdin.").Required().StringVar(&cmd.file)
	registerNullTokenFlag(c, &cmd.nullToken)
	c.Flag("equals", "Keep values equal to this string.").IsSetByUser(&cmd.equalsSet).StringVar(&cmd.equals)
	c.Flag("contains", "Keep values containing this string, ignoring case.").IsSetByUser(&cmd.containsSet).StringVar(&cmd.contains)
	c.Flag("drop-nulls", "Drop null values.").BoolVar(&cmd.dropNulls)
	c.Flag("invert", "Print the values which do not match instead.").BoolVar(&cmd.invert)
	c.Action(cmd.run)
}

func (cmd *filterCommand) run(_ *kingpin.ParseContext) error {
	col, err := readFile(cmd.file, cmd.nullToken, cmd.g.chunkSize(), cmd.g.columnOptions()...)
	if err != nil {
		exitWithErr(errors.Wrap(err, cmd.file))
	}

	filtered, err := cmd.filter(col)
	if err != nil {
		exitWithErr(errors.Wrap(err, "failed to filter column"))
	}
	if err := printValues(os.Stdout, filtered, cmd.nullToken); err != nil {
		exitWithErr(err)
	}
	return nil
}

var errInvertWithoutPredicate = errors.New("--invert requires at least one of --equals, --contains or --drop-nulls")

// filter returns the rows of col which match every predicate.
func (cmd *filterCommand) filter(col *stringcol.Column) (*stringcol.Column, error) {
	var alloc memory.Allocator

	var masks []*columnar.Bool
	if cmd.equalsSet {
		masks = append(masks, compute.Equal(&alloc, col, &cmd.equals))
	}
	if cmd.containsSet {
		masks = append(masks, compute.SubstrInsensitive(&alloc, col, &cmd.contains))
	}
	if cmd.dropNulls {
		masks = append(masks, compute.Not(&alloc, compute.IsNull(&alloc, col)))
	}
	if len(masks) == 0 {
		if cmd.invert {
			return nil, errInvertWithoutPredicate
		}
		return col, nil
	}

	mask := masks[0]
	for _, next := range masks[1:] {
		var err error
		if mask, err = compute.And(&alloc, mask, next); err != nil {
			return nil, err
		}
	}
	if cmd.invert {
		// A null match is neither kept nor inverted.
		mask = compute.Not(&alloc, mask)
	}
	return col.Clone(mask, false, 0)
}

// printValues writes every row of col on its own line, nulls as nullToken.
func printValues(w io.Writer, col *stringcol.Column, nullToken string) error {
	bw := bufio.NewWriter(w)
	for _, value := range col.All() {
		line := nullToken
		if value != nil {
			line = *value
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
