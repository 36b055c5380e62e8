package commands

import (
	"context"
	"fmt"
	"net/http"

	"FriendKeeper/internal/cli/api"
	"FriendKeeper/internal/config"
)

type statusResponse struct {
	Result string `json:"result"`
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show whether the stored session is accepted" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	store := newStore(cfg)
	tok, _ := store.Load()
	var sr statusResponse
	if _, err := api.NewClient(cfg.ServerURL, tok).Call(ctx, http.MethodGet, "/api/user/me", nil, &sr); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Status:", sr.Result)
	if login, err := store.LoadLogin(); err == nil {
		fmt.Fprintln(Out, "Login:", login)
	}
	return nil
}

func init() { Register(TopicAccount, statusCmd{}) }
