package commands

import (
	"context"
	"fmt"

	"ListKeeper/internal/cli/bootstrap"
	"ListKeeper/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show server availability and the signed-in user" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Client.Health(ctx); err != nil {
			if p := app.Session.Profile(); p != nil && app.Session.Offline() {
				fmt.Fprintf(Out, "Cached login %s <%s> (offline, not verified)\n", p.Name, p.Email)
			}
			return fmt.Errorf("server %s unavailable: %w", cfg.ServerURL, err)
		}
		fmt.Fprintf(Out, "Server: %s (ok)\n", cfg.ServerURL)

		if !app.Session.SignedIn() {
			fmt.Fprintln(Out, "Not signed in")
			return nil
		}
		p, err := app.Session.Refresh(ctx)
		if err != nil {
			return describe(err, "profile not found")
		}
		fmt.Fprintf(Out, "Signed in as %s <%s>\n", p.Name, p.Email)
		return nil
	})
}

func init() { RegisterCmd(statusCmd{}) }
