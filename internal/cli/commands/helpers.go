package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"ListKeeper/internal/cli/api"
	"ListKeeper/internal/cli/bootstrap"
	"ListKeeper/internal/cli/model"
	"ListKeeper/internal/config"

	"golang.org/x/term"
)

// withApp открывает приложение на время выполнения команды.
func withApp(ctx context.Context, cfg *config.Config, fn func(app *bootstrap.App) error) error {
	app, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

// withSession как withApp, но требует выполненного входа.
func withSession(ctx context.Context, cfg *config.Config, fn func(app *bootstrap.App) error) error {
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.RequireSession(); err != nil {
			return err
		}
		return fn(app)
	})
}

// newFlagSet — флаги команды; ошибки разбора превращаются в ErrUsage.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseState(s string) (*model.ListState, error) {
	if s == "" {
		return nil, nil
	}
	st, ok := model.ParseState(s)
	if !ok {
		return nil, fmt.Errorf("unknown state %q (onHold, execution, executed)", s)
	}
	return &st, nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword читает пароль без эха, если ввод — терминал.
var readPassword = func(prompt string) (string, error) {
	fmt.Fprint(Out, prompt)
	if f, ok := In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(Out)
		return string(b), err
	}
	return readLine(In)
}

// confirm спрашивает y/N.
func confirm(prompt string) bool {
	fmt.Fprintf(Out, "%s [y/N]: ", prompt)
	answer, err := readLine(In)
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func stateLabel(s model.ListState) string {
	if s == model.StateUnset {
		return "-"
	}
	return string(s)
}

func printList(l model.List) {
	fmt.Fprintf(Out, "- %s  %s  %-9s  %s\n", l.ID, l.Date, stateLabel(l.State), l.Text)
}

func printDetails(l *model.List) {
	fmt.Fprintf(Out, "ID:      %s\n", l.ID)
	fmt.Fprintf(Out, "Date:    %s\n", l.Date)
	fmt.Fprintf(Out, "State:   %s\n", stateLabel(l.State))
	fmt.Fprintf(Out, "Text:    %s\n", l.Text)
	fmt.Fprintf(Out, "Image:   %s\n", l.Image)
	if !l.CreatedAt.IsZero() {
		fmt.Fprintf(Out, "Created: %s\n", l.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

// describe переводит ошибки API в сообщения для пользователя.
func describe(err error, notFound string) error {
	switch {
	case errors.Is(err, api.ErrNotFound):
		return errors.New(notFound)
	case errors.Is(err, api.ErrUnauthorized):
		return errors.New("session expired: run login again")
	}
	return err
}
