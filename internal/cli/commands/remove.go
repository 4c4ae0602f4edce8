package commands

import (
	"context"
	"fmt"

	"ListKeeper/internal/cli/bootstrap"
	"ListKeeper/internal/config"
)

type removeCmd struct{}

func (removeCmd) Name() string        { return "remove" }
func (removeCmd) Description() string { return "Delete a list after confirmation" }
func (removeCmd) Usage() string       { return "remove [--yes] <id>" }

func (removeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("remove")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}
	id := fs.Arg(0)

	return withSession(ctx, cfg, func(app *bootstrap.App) error {
		if !*yes && !confirm(fmt.Sprintf("Remove list %s?", id)) {
			fmt.Fprintln(Out, "Cancelled")
			return nil
		}
		if err := app.Lists.Remove(ctx, id); err != nil {
			return describe(err, "list not found")
		}
		fmt.Fprintf(Out, "Removed list %s\n", id)
		return nil
	})
}

func init() { RegisterCmd(removeCmd{}) }
