package commands

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"FriendKeeper/internal/cli/api"
	"FriendKeeper/internal/cli/repo"
	fsrepo "FriendKeeper/internal/cli/repo/fs"
	"FriendKeeper/internal/config"
)

// ErrNotLoggedIn is returned by commands that need a stored auth cookie.
var ErrNotLoggedIn = errors.New("not logged in, run `login` or `register` first")

// newStore returns the session store for cfg. Tests may replace it.
var newStore = func(cfg *config.Config) repo.SessionStore {
	return fsrepo.AuthFSStore{TokenPath: cfg.TokenFile}
}

// anonClient is used for register/login.
func anonClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.ServerURL, "")
}

// authedClient loads the stored token and returns a client that sends it.
func authedClient(cfg *config.Config) (*api.Client, error) {
	tok, err := newStore(cfg).Load()
	if errors.Is(err, fsrepo.ErrNoToken) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("load auth: %w", err)
	}
	return api.NewClient(cfg.ServerURL, tok), nil
}

// explain turns common status errors into friendlier messages.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case api.IsStatus(err, http.StatusUnauthorized):
		return fmt.Errorf("session expired or invalid, log in again: %w", err)
	case api.IsStatus(err, http.StatusForbidden), api.IsStatus(err, http.StatusNotFound):
		return errors.New("not found")
	case api.IsStatus(err, http.StatusTooManyRequests):
		return errors.New("rate limited, try again later")
	}
	return err
}

// parseID parses a positive numeric id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// optionalInt parses args[0] as a positive int or returns def when args is empty.
func optionalInt(args []string, def int) (int, error) {
	switch len(args) {
	case 0:
		return def, nil
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return 0, ErrUsage
		}
		return n, nil
	}
	return 0, ErrUsage
}
