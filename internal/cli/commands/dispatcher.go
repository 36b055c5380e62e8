package commands

import (
	"FriendKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"strings"
)

// Dispatch runs the command named by args[0] and returns a process exit code:
// 0 on success, 1 when the command failed, 2 on usage errors.
// Global flags are already parsed by config.NewConfig; args are what is left.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" {
		return help(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		unknown(name)
		return 2
	}
	if wantsHelp(args[1:]) {
		fmt.Fprint(Out, FormatCommandUsage(c))
		return 0
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return 2
	default:
		fmt.Fprintf(Out, "%s: %v\n", name, err)
		return 1
	}
}

// help handles "fkcli help [command]".
func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 0
	}
	c, ok := Get(strings.ToLower(args[0]))
	if !ok {
		unknown(args[0])
		return 2
	}
	fmt.Fprint(Out, FormatCommandUsage(c))
	return 0
}

func unknown(name string) {
	fmt.Fprintf(Out, "Unknown command: %s\n", name)
	if s := Suggest(name); len(s) > 0 {
		fmt.Fprintf(Out, "Did you mean: %s?\n", strings.Join(s, ", "))
		return
	}
	fmt.Fprint(Out, "\n", FormatGlobalUsage())
}

// wantsHelp reports a -h/--help among command args, e.g. "fkcli log --help".
func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-h" || a == "--help" || a == "-help" {
			return true
		}
	}
	return false
}
