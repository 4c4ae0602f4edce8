package commands

import (
	"context"
	"errors"
	"fmt"

	"ListKeeper/internal/cli/bootstrap"
	"ListKeeper/internal/cli/service"
	"ListKeeper/internal/config"
)

type addCmd struct{}

func (addCmd) Name() string { return "add" }
func (addCmd) Description() string {
	return "Upload a photo and create a list (date defaults to today)"
}
func (addCmd) Usage() string {
	return "add [--date YYYY-MM-DD] [--text T] [--state S] <image-file>"
}

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("add")
	date := fs.String("date", "", "list date")
	text := fs.String("text", "", "note")
	stateFlag := fs.String("state", "", "state")
	if err := fs.Parse(args); err != nil || fs.NArg() > 1 {
		return ErrUsage
	}
	state, err := parseState(*stateFlag)
	if err != nil {
		return err
	}
	in := service.CreateInput{Date: *date, Text: *text, ImagePath: fs.Arg(0)}
	if state != nil {
		in.State = *state
	}

	return withSession(ctx, cfg, func(app *bootstrap.App) error {
		l, err := app.Lists.Create(ctx, in)
		if errors.Is(err, service.ErrImageRequired) {
			return errors.New("please select an image")
		}
		if err != nil {
			return describe(err, "list not found")
		}
		fmt.Fprintf(Out, "Created list %s\n", l.ID)
		return nil
	})
}

func init() { RegisterCmd(addCmd{}) }
