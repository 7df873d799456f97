package commands

import (
	"io"

	"github.com/de-tools/tzlab/pkg/services/tasks"
	"github.com/fatih/color"
)

// Banner prints task begin and done lines on the console. Verbose prints
// both, terse only the done line, quiet nothing.
type Banner struct {
	out    io.Writer
	format tasks.OutputFormat
	begin  *color.Color
	done   *color.Color
}

func NewBanner(out io.Writer, format tasks.OutputFormat) *Banner {
	return &Banner{
		out:    out,
		format: format,
		begin:  color.New(color.FgCyan, color.Bold),
		done:   color.New(color.FgGreen),
	}
}

func (b *Banner) Begin(label string) {
	if b.format != tasks.Verbose {
		return
	}
	_, _ = b.begin.Fprintf(b.out, "Begin: %s\n", label)
}

func (b *Banner) Done(label string) {
	if b.format == tasks.Quiet {
		return
	}
	_, _ = b.done.Fprintf(b.out, "Done: %s\n", label)
}
