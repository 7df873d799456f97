package commands

import (
	"fmt"
	"time"

	"github.com/de-tools/tzlab/pkg/models/domain"
	"github.com/de-tools/tzlab/pkg/services/tasks"
	"github.com/spf13/cobra"
)

// SheetHandler renders a zone property sheet.
type SheetHandler interface {
	Handle(sheet *domain.ZoneSheet) error
}

type ShowCmd struct {
	globals *Globals
	handler SheetHandler
	at      string
}

func NewShowCmd(globals *Globals, handler SheetHandler) *cobra.Command {
	sc := &ShowCmd{globals: globals, handler: handler}
	cmd := &cobra.Command{
		Use:   "show <zone>",
		Short: "Show the properties of a time zone",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.at, "at", "", "Instant to evaluate the zone at, RFC 3339 (default now)")

	return cmd
}

func (sc *ShowCmd) run(cmd *cobra.Command, args []string) error {
	at := time.Now()
	if sc.at != "" {
		parsed, err := time.Parse(time.RFC3339, sc.at)
		if err != nil {
			return fmt.Errorf("invalid --at value %q: %w", sc.at, err)
		}
		at = parsed
	}

	session, err := sc.globals.Open(cmd)
	if err != nil {
		return err
	}
	ctx := session.Logger.WithContext(cmd.Context())

	zone, err := session.Resolver.Resolve(ctx, args[0])
	if err != nil {
		return err
	}
	return sc.handler.Handle(tasks.Sheet(zone, at))
}
