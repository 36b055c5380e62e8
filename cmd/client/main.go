// Command fkcli is the terminal client for the FriendKeeper API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"FriendKeeper/internal/cli/commands"
	"FriendKeeper/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// -h before the command prints the grouped command list, not bare flag defaults
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), commands.FormatGlobalUsage())
	}
	cfg := config.NewConfig()

	if cfg.Version {
		fmt.Printf("fkcli %s (built %s)\n", version, buildDate)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(commands.Dispatch(ctx, cfg, flag.Args()))
}
