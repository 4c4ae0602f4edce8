package commands

import (
	"context"

	"ListKeeper/internal/cli/bootstrap"
	"ListKeeper/internal/config"
)

type getCmd struct{}

func (getCmd) Name() string        { return "get" }
func (getCmd) Description() string { return "Show list details" }
func (getCmd) Usage() string       { return "get <id>" }

func (getCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withSession(ctx, cfg, func(app *bootstrap.App) error {
		l, err := app.Lists.Get(ctx, args[0])
		if err != nil {
			return describe(err, "list not found")
		}
		printDetails(l)
		return nil
	})
}

func init() { RegisterCmd(getCmd{}) }
