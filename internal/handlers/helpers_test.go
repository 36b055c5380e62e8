package handlers_test

import (
	"FriendKeeper/internal/config"
	"FriendKeeper/internal/handlers"
	"FriendKeeper/internal/middleware"
	"FriendKeeper/internal/repo"
	"FriendKeeper/internal/service"
	"FriendKeeper/internal/storage"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{AuthSecret: testSecret, UploadMaxMB: 1, RateLimitRPS: -1}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.Migrate(db))
	return db
}

// newServices собирает сервисы; ur позволяет подменить репозиторий пользователей моком.
func newServices(t *testing.T, db *gorm.DB, ur repo.UserRepository) handlers.Services {
	t.Helper()
	log := zap.NewNop().Sugar()
	fr := repo.NewFriendRepository(db)
	ir := repo.NewInteractionRepository(db)
	if ur == nil {
		ur = repo.NewUserRepository(db)
	}
	files, err := storage.NewLocal(t.TempDir(), testConfig().UploadMaxBytes())
	require.NoError(t, err)
	fs := service.NewFriendService(fr, log)
	return handlers.Services{
		Users:        service.NewUserService(ur),
		Friends:      fs,
		Interactions: service.NewInteractionService(ir, fr, log),
		Dashboard:    service.NewDashboardService(fs, fr, ir),
		Files:        files,
	}
}

// newTestRouter — роутер поверх in-memory SQLite.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := newTestDB(t)
	return handlers.NewHandler(newServices(t, db, nil), zap.NewNop().Sugar(), testConfig()).Router
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	require.NoError(t, middleware.SetLoginCookie(rr, userID, secret))
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// do выполняет запрос от имени userID (0 — анонимно) и возвращает ответ.
func do(t *testing.T, router http.Handler, method, target string, userID int64, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		addAuthCookie(t, req, userID, testSecret)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

// register создаёт пользователя через API и возвращает его id.
func register(t *testing.T, router http.Handler, login string) int64 {
	t.Helper()
	rr := do(t, router, http.MethodPost, "/api/user/register", 0, map[string]string{"login": login, "password": "pw"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[struct {
		ID int64 `json:"id"`
	}](t, rr).ID
}
