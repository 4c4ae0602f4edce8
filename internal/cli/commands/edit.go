package commands

import (
	"context"
	"flag"
	"fmt"

	"ListKeeper/internal/cli/bootstrap"
	"ListKeeper/internal/cli/service"
	"ListKeeper/internal/config"
)

type editCmd struct{}

func (editCmd) Name() string { return "edit" }
func (editCmd) Description() string {
	return "Update date/image of a list; a local image file is uploaded first"
}
func (editCmd) Usage() string {
	return "edit [--date D] [--image FILE|URL] [--text T] [--state S] <id>"
}

func (editCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("edit")
	date := fs.String("date", "", "new date")
	image := fs.String("image", "", "new image file or URL")
	text := fs.String("text", "", "new note")
	stateFlag := fs.String("state", "", "new state")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}

	in := service.UpdateInput{Date: *date, Image: *image}
	// пустой --text "" очищает заметку, отсутствие флага оставляет её
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "text" {
			in.Text = text
		}
	})
	if *stateFlag != "" {
		st, err := parseState(*stateFlag)
		if err != nil {
			return err
		}
		in.State = st
	}

	return withSession(ctx, cfg, func(app *bootstrap.App) error {
		l, err := app.Lists.Update(ctx, fs.Arg(0), in)
		if err != nil {
			return describe(err, "list not found")
		}
		fmt.Fprintf(Out, "Updated list %s\n", l.ID)
		printDetails(l)
		return nil
	})
}

func init() { RegisterCmd(editCmd{}) }
