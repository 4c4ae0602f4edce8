package commands

import (
	"context"
	"errors"
	"fmt"

	"ListKeeper/internal/config"
)

// Коды выхода lkcli.
const (
	exitOK          = 0
	exitFailed      = 1
	exitUsage       = 2
	exitInterrupted = 130
)

// Dispatch выполняет команду из args (аргументы после глобальных флагов)
// и возвращает код выхода процесса.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitUsage
	}

	name := args[0]
	switch name {
	case "help", "-h", "--help":
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return exitOK
		}
		return commandHelp(args[1])
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitUsage
	}
	if wantsHelp(args[1:]) {
		return commandHelp(name)
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return exitUsage
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		fmt.Fprintf(Out, "%s interrupted\n", c.Name())
		return exitInterrupted
	default:
		fmt.Fprintf(Out, "%s error: %v\n", c.Name(), err)
		return exitFailed
	}
}

func commandHelp(name string) int {
	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitUsage
	}
	fmt.Fprintf(Out, "Usage: %s\n  %s\n", c.Usage(), c.Description())
	return exitOK
}

// wantsHelp — флаг справки до "--"; после него аргументы принадлежат команде.
func wantsHelp(args []string) bool {
	for _, a := range args {
		switch a {
		case "--":
			return false
		case "-h", "--help":
			return true
		}
	}
	return false
}
