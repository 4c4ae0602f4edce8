package commands

import (
	"context"
	"errors"
	"fmt"

	"ListKeeper/internal/cli/api"
	"ListKeeper/internal/cli/bootstrap"
	"ListKeeper/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth cookie" }
func (loginCmd) Usage() string       { return "login <email> [password]" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	email := args[0]
	var password string
	if len(args) == 2 {
		password = args[1]
	} else {
		var err error
		if password, err = readPassword("Password: "); err != nil {
			return err
		}
	}

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		p, err := app.Session.SignIn(ctx, email, password)
		if errors.Is(err, api.ErrUnauthorized) {
			return errors.New("invalid email or password")
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Logged in as %s <%s>\n", p.Name, p.Email)
		return nil
	})
}

func init() { RegisterCmd(loginCmd{}) }
