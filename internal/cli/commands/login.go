package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"FriendKeeper/internal/cli/api"
	"FriendKeeper/internal/config"
)

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// authenticate posts credentials to path and persists the returned cookie and login.
func authenticate(ctx context.Context, cfg *config.Config, path string, cred credentials) error {
	resp, err := anonClient(cfg).Call(ctx, http.MethodPost, path, cred, nil)
	if err != nil {
		return err
	}
	store := newStore(cfg)
	if err := api.PersistAuthFromResponse(resp, store); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	if err := store.SaveLogin(cred.Login); err != nil {
		return fmt.Errorf("saving login: %w", err)
	}
	return nil
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth cookie" }
func (loginCmd) Usage() string       { return "login <login> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	err := authenticate(ctx, cfg, "/api/user/login", credentials{Login: args[0], Password: args[1]})
	if api.IsStatus(err, http.StatusUnauthorized) {
		return errors.New("invalid login or password")
	}
	if err != nil {
		return explain(err)
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and log in" }
func (registerCmd) Usage() string       { return "register <login> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	err := authenticate(ctx, cfg, "/api/user/register", credentials{Login: args[0], Password: args[1]})
	if api.IsStatus(err, http.StatusConflict) {
		return errors.New("login already in use")
	}
	if err != nil {
		return explain(err)
	}
	fmt.Fprintln(Out, "Registered and logged in")
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored auth cookie" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	// сервер только сбрасывает cookie, поэтому его ошибки не мешают выходу
	if c, err := authedClient(cfg); err == nil {
		_, _ = c.Call(ctx, http.MethodPost, "/api/user/logout", nil, nil)
	}
	store := newStore(cfg)
	if err := store.Clear(); err != nil {
		return err
	}
	if err := store.ClearLogin(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() {
	Register(TopicAccount, registerCmd{}, loginCmd{}, logoutCmd{})
}
