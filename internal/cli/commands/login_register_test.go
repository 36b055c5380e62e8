package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	fsrepo "FriendKeeper/internal/cli/repo/fs"
	"FriendKeeper/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Run_SuccessAndErrors(t *testing.T) {
	withTempConfig(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/login", r.URL.Path)
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok-123"})
		_, _ = w.Write([]byte(`{"id":1,"login":"alice"}`))
	}))
	defer ts.Close()

	cfg := &config.Config{ServerURL: ts.URL}
	cmd := loginCmd{}
	out := withStdoutCapture(t, func() { require.NoError(t, cmd.Run(context.Background(), cfg, []string{"alice", "secret"})) })
	assert.Contains(t, out, "Logged in successfully")

	// токен лежит в %CONFIG%/FriendKeeper/auth_token
	cfgDir, err := os.UserConfigDir()
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(cfgDir, "FriendKeeper", "auth_token"))
	require.NoError(t, err)
	assert.Equal(t, "tok-123", string(b))
	login, err := (fsrepo.AuthFSStore{}).LoadLogin()
	require.NoError(t, err)
	assert.Equal(t, "alice", login)

	ts401 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid login or password"}`))
	}))
	defer ts401.Close()
	assert.EqualError(t, cmd.Run(context.Background(), &config.Config{ServerURL: ts401.URL}, []string{"alice", "bad"}), "invalid login or password")

	assert.ErrorIs(t, cmd.Run(context.Background(), cfg, []string{"onlyLogin"}), ErrUsage)

	ts500 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts500.Close()
	assert.Error(t, cmd.Run(context.Background(), &config.Config{ServerURL: ts500.URL}, []string{"a", "b"}))

	// 200 без cookie — ошибка сохранения
	tsNoCookie := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer tsNoCookie.Close()
	assert.ErrorContains(t, cmd.Run(context.Background(), &config.Config{ServerURL: tsNoCookie.URL}, []string{"a", "b"}), "saving auth")
}

func TestRegister_Run_SuccessAndErrors(t *testing.T) {
	withTempConfig(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/register", r.URL.Path)
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok-xyz"})
		_, _ = w.Write([]byte(`{"id":2,"login":"bob"}`))
	}))
	defer ts.Close()

	cfg := &config.Config{ServerURL: ts.URL}
	cmd := registerCmd{}
	withStdoutCapture(t, func() { require.NoError(t, cmd.Run(context.Background(), cfg, []string{"bob", "pwd"})) })
	cfgDir, _ := os.UserConfigDir()
	assert.FileExists(t, filepath.Join(cfgDir, "FriendKeeper", "last_login"))

	ts409 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer ts409.Close()
	assert.EqualError(t, cmd.Run(context.Background(), &config.Config{ServerURL: ts409.URL}, []string{"bob", "pwd"}), "login already in use")

	ts422 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"The login field must be at least 3 characters.","errors":{"login":"The login field must be at least 3 characters."}}`))
	}))
	defer ts422.Close()
	assert.ErrorContains(t, cmd.Run(context.Background(), &config.Config{ServerURL: ts422.URL}, []string{"b", "pwd"}), "at least 3 characters")

	assert.ErrorIs(t, cmd.Run(context.Background(), cfg, []string{"onlyLogin"}), ErrUsage)
}

func TestLogout_ClearsSession(t *testing.T) {
	withTempConfig(t)
	var hit bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = r.URL.Path == "/api/user/logout"
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	store := fsrepo.AuthFSStore{}
	require.NoError(t, store.Save("tok"))
	require.NoError(t, store.SaveLogin("alice"))

	cfg := &config.Config{ServerURL: ts.URL}
	out := withStdoutCapture(t, func() { require.NoError(t, (logoutCmd{}).Run(context.Background(), cfg, nil)) })
	assert.True(t, hit)
	assert.Contains(t, out, "Logged out")
	_, err := store.Load()
	assert.ErrorIs(t, err, fsrepo.ErrNoToken)

	// повторный выход без сессии тоже успешен
	withStdoutCapture(t, func() { assert.NoError(t, (logoutCmd{}).Run(context.Background(), cfg, nil)) })
	assert.ErrorIs(t, (logoutCmd{}).Run(context.Background(), cfg, []string{"x"}), ErrUsage)
}
