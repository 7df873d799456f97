package main

import (
	"fmt"
	"os"

	"github.com/de-tools/tzlab/pkg/runtime/terminal"
	"github.com/de-tools/tzlab/pkg/services/tasks"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Output:    os.Stdout,
		ErrOutput: os.Stderr,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(tasks.ExitCode(err))
	}
}
