package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"FriendKeeper/internal/config"
)

// friendFields — ключи, допустимые в friend-add key=value.
var friendFields = map[string]bool{
	"email": true, "phone": true, "birthday": true, "anniversary": true,
	"partner": true, "kids": true, "job_title": true, "company": true,
	"address": true, "notes": true, "last_contact_date": true, "profile_picture": true,
}

func friendFieldNames() string {
	names := make([]string, 0, len(friendFields))
	for k := range friendFields {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// parseFriendArgs builds a create payload from a name and key=value pairs.
// kids is a comma-separated list.
func parseFriendArgs(name string, pairs []string) (map[string]any, error) {
	payload := map[string]any{"name": name}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, ErrUsage
		}
		k = strings.ToLower(strings.ReplaceAll(k, "-", "_"))
		if !friendFields[k] {
			return nil, fmt.Errorf("unknown field %q (known: %s)", k, friendFieldNames())
		}
		if k == "kids" {
			kids := []string{}
			for _, kid := range strings.Split(v, ",") {
				if kid = strings.TrimSpace(kid); kid != "" {
					kids = append(kids, kid)
				}
			}
			payload[k] = kids
			continue
		}
		payload[k] = v
	}
	return payload, nil
}

type friendsCmd struct{}

func (friendsCmd) Name() string        { return "friends" }
func (friendsCmd) Description() string { return "List friends, newest first" }
func (friendsCmd) Usage() string       { return "friends [page]" }

func (friendsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	page, err := optionalInt(args, 1)
	if err != nil {
		return err
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	var res pageView[friendView]
	if _, err := c.Call(ctx, http.MethodGet, "/api/friends?page="+strconv.Itoa(page), nil, &res); err != nil {
		return explain(err)
	}
	if len(res.Data) == 0 {
		fmt.Fprintln(Out, "No friends yet")
		return nil
	}
	printFriends(Out, res.Data)
	printPageFooter(Out, res)
	return nil
}

type friendCmd struct{}

func (friendCmd) Name() string        { return "friend" }
func (friendCmd) Description() string { return "Show a friend with interactions" }
func (friendCmd) Usage() string       { return "friend <id>" }

func (friendCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	var f friendView
	if _, err := c.Call(ctx, http.MethodGet, "/api/friends/"+strconv.FormatInt(id, 10), nil, &f); err != nil {
		return explain(err)
	}
	printFriend(Out, f)
	return nil
}

type friendAddCmd struct{}

func (friendAddCmd) Name() string        { return "friend-add" }
func (friendAddCmd) Description() string { return "Add a friend (kids=a,b for a list)" }
func (friendAddCmd) Usage() string       { return "friend-add <name> [key=value...]" }

func (friendAddCmd) Help() string {
	return "Keys: " + friendFieldNames() + `
Dates are YYYY-MM-DD. kids takes a comma-separated list.

Example:
  fkcli friend-add "Alice Smith" birthday=1990-04-12 kids=Tom,Ann`
}

func (friendAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return ErrUsage
	}
	payload, err := parseFriendArgs(args[0], args[1:])
	if err != nil {
		return err
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	var f friendView
	if _, err := c.Call(ctx, http.MethodPost, "/api/friends", payload, &f); err != nil {
		return explain(err)
	}
	fmt.Fprintf(Out, "Added friend #%d %s\n", f.ID, f.Name)
	return nil
}

type friendRmCmd struct{}

func (friendRmCmd) Name() string        { return "friend-rm" }
func (friendRmCmd) Description() string { return "Delete a friend and their interactions" }
func (friendRmCmd) Usage() string       { return "friend-rm <id>" }

func (friendRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	if _, err := c.Call(ctx, http.MethodDelete, "/api/friends/"+strconv.FormatInt(id, 10), nil, nil); err != nil {
		return explain(err)
	}
	fmt.Fprintf(Out, "Deleted friend #%d\n", id)
	return nil
}

type birthdaysCmd struct{}

func (birthdaysCmd) Name() string        { return "birthdays" }
func (birthdaysCmd) Description() string { return "Birthdays within the next N days (default 30)" }
func (birthdaysCmd) Usage() string       { return "birthdays [days]" }

func (birthdaysCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	days, err := optionalInt(args, 30)
	if err != nil {
		return err
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	q := url.Values{"days": {strconv.Itoa(days)}}
	var list []friendView
	if _, err := c.Call(ctx, http.MethodGet, "/api/friends/upcoming-birthdays?"+q.Encode(), nil, &list); err != nil {
		return explain(err)
	}
	if len(list) == 0 {
		fmt.Fprintf(Out, "No birthdays in the next %d days\n", days)
		return nil
	}
	printBirthdays(Out, list)
	return nil
}

func init() {
	Register(TopicFriends, friendsCmd{}, friendCmd{}, friendAddCmd{}, friendRmCmd{}, birthdaysCmd{})
}
