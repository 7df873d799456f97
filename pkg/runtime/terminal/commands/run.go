package commands

import (
	"github.com/de-tools/tzlab/pkg/runtime/terminal/export"
	"github.com/de-tools/tzlab/pkg/services/tasks"
	"github.com/spf13/cobra"
)

// RunCmd runs a task, or all of them.
type RunCmd struct {
	globals *Globals
}

func NewRunCmd(globals *Globals) *RunCmd {
	return &RunCmd{globals: globals}
}

// Run is the RunE of the root command: tzlab [task] [zone].
func (rc *RunCmd) Run(cmd *cobra.Command, args []string) error {
	var req tasks.Request
	if len(args) > 0 {
		t, err := tasks.ParseTask(args[0])
		if err != nil {
			return err
		}
		req.Task = t
	}
	if len(args) > 1 {
		req.Zone = args[1]
	}

	session, err := rc.globals.Open(cmd)
	if err != nil {
		return err
	}
	ctx := session.Logger.WithContext(cmd.Context())

	settings := session.Settings
	reporter := export.NewReporter(cmd.OutOrStdout(), export.TableConfig{
		Encoding:   settings.Report.FileEncoding(),
		BufferSize: settings.Report.BufferSize,
		ShowTitle:  session.Format == tasks.Verbose,
	})

	runner := tasks.NewRunner(tasks.Config{
		Settings: settings,
		Resolver: session.Resolver,
		Handler:  reporter,
		Banner:   NewBanner(cmd.OutOrStdout(), session.Format),
	})

	session.Logger.Debug().
		Stringer("task", req.Task).
		Str("zone", req.Zone).
		Stringer("format", session.Format).
		Msg("running")
	return runner.Run(ctx, req)
}
