package commands

import (
	"context"
	"errors"
	"fmt"

	"ListKeeper/internal/cli/api"
	"ListKeeper/internal/cli/bootstrap"
	"ListKeeper/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and sign in" }
func (registerCmd) Usage() string       { return "register <email> <name> [password]" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}
	email, name := args[0], args[1]
	var password string
	if len(args) == 3 {
		password = args[2]
	} else {
		var err error
		if password, err = readPassword("Password: "); err != nil {
			return err
		}
	}

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		p, err := app.Session.SignUp(ctx, email, password, name)
		if errors.Is(err, api.ErrConflict) {
			return errors.New("email already in use")
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Registered and signed in as %s <%s>\n", p.Name, p.Email)
		return nil
	})
}

func init() { RegisterCmd(registerCmd{}) }
