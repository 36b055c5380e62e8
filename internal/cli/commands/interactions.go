package commands

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"FriendKeeper/internal/config"
)

type interactionRequest struct {
	FriendID        int64  `json:"friend_id"`
	Type            string `json:"type"`
	Description     string `json:"description"`
	InteractionDate string `json:"interaction_date"`
}

type logCmd struct{}

func (logCmd) Name() string        { return "log" }
func (logCmd) Description() string { return "Record an interaction (call, text, email, hangout, meeting, other)" }
func (logCmd) Usage() string {
	return "log <friend_id> <type> <YYYY-MM-DD> <description...>"
}

func (logCmd) Help() string {
	return `The date may be "today". Logging an interaction sets the friend's last contact date to that date.

Example:
  fkcli log 3 call today "caught up about the new job"`
}

func (logCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 4 {
		return ErrUsage
	}
	friendID, err := parseID(args[0])
	if err != nil {
		return err
	}
	date := args[2]
	if date == "today" {
		date = time.Now().Format(time.DateOnly)
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[2])
	}
	req := interactionRequest{
		FriendID:        friendID,
		Type:            strings.ToLower(args[1]),
		Description:     strings.Join(args[3:], " "),
		InteractionDate: date,
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	var it interactionView
	if _, err := c.Call(ctx, http.MethodPost, "/api/interactions", req, &it); err != nil {
		return explain(err)
	}
	fmt.Fprintf(Out, "Logged %s with %s on %s (#%d)\n", it.Type, it.friendName(), it.InteractionDate, it.ID)
	return nil
}

type interactionsCmd struct{}

func (interactionsCmd) Name() string        { return "interactions" }
func (interactionsCmd) Description() string { return "List interactions, most recent first" }
func (interactionsCmd) Usage() string       { return "interactions [page]" }

func (interactionsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	page, err := optionalInt(args, 1)
	if err != nil {
		return err
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	var res pageView[interactionView]
	if _, err := c.Call(ctx, http.MethodGet, "/api/interactions?page="+strconv.Itoa(page), nil, &res); err != nil {
		return explain(err)
	}
	if len(res.Data) == 0 {
		fmt.Fprintln(Out, "No interactions yet")
		return nil
	}
	printInteractions(Out, res.Data, true)
	printPageFooter(Out, res)
	return nil
}

func init() {
	Register(TopicInteractions, logCmd{}, interactionsCmd{})
}
