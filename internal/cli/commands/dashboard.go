package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"FriendKeeper/internal/config"
)

type dashboardCmd struct{}

func (dashboardCmd) Name() string        { return "dashboard" }
func (dashboardCmd) Description() string { return "Overview: stats, birthdays, who to contact" }
func (dashboardCmd) Usage() string       { return "dashboard [YYYY-MM-DD]" }

func (dashboardCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	path := "/api/dashboard"
	if len(args) == 1 {
		if _, err := time.Parse(time.DateOnly, args[0]); err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[0])
		}
		path += "?" + url.Values{"as_of": {args[0]}}.Encode()
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	var d dashboardView
	if _, err := c.Call(ctx, http.MethodGet, path, nil, &d); err != nil {
		return explain(err)
	}

	fmt.Fprintf(Out, "Dashboard as of %s\n", d.AsOf)
	fmt.Fprintf(Out, "Friends: %d  Interactions this month: %d  Upcoming birthdays: %d  Needs contact: %d\n",
		d.Stats.TotalFriends, d.Stats.InteractionsThisMonth, d.Stats.UpcomingBirthdays, d.Stats.NeedsContact)

	section := func(title string, n int, print func()) {
		fmt.Fprintf(Out, "\n%s\n", title)
		if n == 0 {
			fmt.Fprintln(Out, "  none")
			return
		}
		print()
	}
	section("Upcoming birthdays", len(d.UpcomingBirthdays), func() { printBirthdays(Out, d.UpcomingBirthdays) })
	section("Needs contact", len(d.NeedsContact), func() { printFriends(Out, d.NeedsContact) })
	section("Recent interactions", len(d.RecentInteractions), func() { printInteractions(Out, d.RecentInteractions, true) })
	section("Recently added", len(d.RecentFriends), func() { printFriends(Out, d.RecentFriends) })
	return nil
}

func init() { Register(TopicOverview, dashboardCmd{}) }
