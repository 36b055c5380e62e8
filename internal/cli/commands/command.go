package commands

import (
	"FriendKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// Command represents a CLI subcommand.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "login".
	Name() string
	// Description is a short human-readable description shown in help.
	Description() string
	// Usage returns the exact usage string, e.g. "login <login> <password>".
	Usage() string
	// Run executes the command with provided args (without the command name).
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// Topic groups commands in the help output.
type Topic string

const (
	TopicAccount      Topic = "Account"
	TopicFriends      Topic = "Friends"
	TopicInteractions Topic = "Interactions"
	TopicOverview     Topic = "Overview"
	TopicOther        Topic = "Other"
)

// topics is the order of sections in FormatGlobalUsage.
var topics = []Topic{TopicAccount, TopicFriends, TopicInteractions, TopicOverview, TopicOther}

// Helper is implemented by commands that print extra text under "help <command>".
type Helper interface {
	Help() string
}

type entry struct {
	cmd   Command
	topic Topic
}

// registry holds available commands by name.
var registry = map[string]entry{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// Register adds commands to the registry under a help topic. Called from init() of each command file.
func Register(topic Topic, cmds ...Command) {
	for _, c := range cmds {
		registry[c.Name()] = entry{cmd: c, topic: topic}
	}
}

// Get returns a command by name.
func Get(name string) (Command, bool) {
	e, ok := registry[name]
	return e.cmd, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, e := range registry {
		list = append(list, e.cmd)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Suggest returns names of commands that start with prefix or that prefix starts with,
// e.g. "friend-" -> friend, friend-add, friend-rm.
func Suggest(prefix string) []string {
	prefix = strings.ToLower(prefix)
	if len(prefix) < 2 {
		return nil
	}
	var out []string
	for _, c := range List() {
		if strings.HasPrefix(c.Name(), prefix) || strings.HasPrefix(prefix, c.Name()) {
			out = append(out, c.Name())
		}
	}
	return out
}

// FormatGlobalUsage builds a help text for all commands, grouped by topic.
func FormatGlobalUsage() string {
	byTopic := map[Topic][]Command{}
	width := 0
	for _, c := range List() {
		t := registry[c.Name()].topic
		byTopic[t] = append(byTopic[t], c)
		width = max(width, len(c.Usage()))
	}

	var b strings.Builder
	b.WriteString("FriendKeeper CLI: keep in touch with the people you care about.\n\n")
	b.WriteString("Usage:\n  fkcli [flags] <command> [args]\n")
	for _, t := range topics {
		cmds := byTopic[t]
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", t)
		for _, c := range cmds {
			fmt.Fprintf(&b, "  %-*s  %s\n", width, c.Usage(), c.Description())
		}
	}
	b.WriteString("\nFlags:\n")
	b.WriteString("  -base-url <host:port>   server address\n")
	b.WriteString("  -https                  use https for the server address\n")
	b.WriteString("  -token-file <path>      where the session token is kept\n")
	b.WriteString("  -version                print version and exit\n")
	b.WriteString("\nRun 'fkcli help <command>' for details on a command.\n")
	return b.String()
}

// FormatCommandUsage builds the help text for one command.
func FormatCommandUsage(c Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s\n", c.Usage())
	if d := c.Description(); d != "" {
		fmt.Fprintf(&b, "\n%s\n", d)
	}
	if h, ok := c.(Helper); ok {
		fmt.Fprintf(&b, "\n%s\n", strings.TrimRight(h.Help(), "\n"))
	}
	return b.String()
}
