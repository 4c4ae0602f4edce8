package commands

import (
	"context"
	"fmt"

	"ListKeeper/internal/cli/bootstrap"
	"ListKeeper/internal/config"
)

type listsCmd struct{}

func (listsCmd) Name() string { return "lists" }
func (listsCmd) Description() string {
	return "Show your lists, newest first"
}
func (listsCmd) Usage() string { return "lists [--state onHold|execution|executed]" }

func (listsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("lists")
	stateFlag := fs.String("state", "", "filter by state")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	state, err := parseState(*stateFlag)
	if err != nil {
		return err
	}

	return withSession(ctx, cfg, func(app *bootstrap.App) error {
		lists, err := app.Lists.List(ctx, state)
		if err != nil {
			return describe(err, "lists not found")
		}
		if len(lists) == 0 {
			fmt.Fprintln(Out, "No lists")
			return nil
		}
		for _, l := range lists {
			printList(l)
		}
		fmt.Fprintf(Out, "Total: %d\n", len(lists))
		return nil
	})
}

func init() { RegisterCmd(listsCmd{}) }
