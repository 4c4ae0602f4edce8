package commands

import (
	"context"
	"fmt"

	"ListKeeper/internal/cli/bootstrap"
	"ListKeeper/internal/config"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Sign out and forget the stored token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Session.SignOut(ctx); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Logged out")
		return nil
	})
}

func init() { RegisterCmd(logoutCmd{}) }
