// Command lkcli — консольный клиент ListKeeper.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"ListKeeper/internal/cli/commands"
	"ListKeeper/internal/config"
)

// Заполняются при сборке: -ldflags "-X main.version=... -X main.buildDate=..."
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprint(out, commands.FormatGlobalUsage())
		fmt.Fprintln(out, "\nGlobal flags:")
		flag.PrintDefaults()
	}

	cfg := config.NewConfig()
	if cfg.Version {
		printVersion(os.Stdout, cfg)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Dispatch(ctx, cfg, flag.Args())
	cancel()
	os.Exit(code)
}

func printVersion(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "lkcli %s (built %s, %s %s/%s)\n", version, buildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "server:     %s\n", cfg.ServerURL)
	fmt.Fprintf(w, "client dir: %s\n", cfg.ClientDir)
}
