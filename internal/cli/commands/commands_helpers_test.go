package commands

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"

	"FriendKeeper/internal/config"
	"FriendKeeper/internal/handlers"
	"FriendKeeper/internal/repo"
	"FriendKeeper/internal/service"
	"FriendKeeper/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы токен и логин создавались в temp.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}

// withStdoutCapture перехватывает вывод CLI на время fn.
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// newLiveServer поднимает настоящий API поверх in-memory SQLite
// и возвращает конфиг клиента с отдельным файлом токена.
func newLiveServer(t *testing.T) *config.Config {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log := zap.NewNop().Sugar()
	serverCfg := &config.Config{AuthSecret: "cli-test-secret", UploadMaxMB: 1, RateLimitRPS: -1}
	files, err := storage.NewLocal(t.TempDir(), serverCfg.UploadMaxBytes())
	require.NoError(t, err)

	fr := repo.NewFriendRepository(db)
	ir := repo.NewInteractionRepository(db)
	fs := service.NewFriendService(fr, log)
	h := handlers.NewHandler(handlers.Services{
		Users:        service.NewUserService(repo.NewUserRepository(db)),
		Friends:      fs,
		Interactions: service.NewInteractionService(ir, fr, log),
		Dashboard:    service.NewDashboardService(fs, fr, ir),
		Files:        files,
	}, log, serverCfg)

	ts := httptest.NewServer(h.Router)
	t.Cleanup(ts.Close)
	return &config.Config{
		ServerURL: ts.URL,
		TokenFile: filepath.Join(t.TempDir(), "FriendKeeper", "auth_token"),
	}
}
