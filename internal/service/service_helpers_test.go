package service

import (
	"FriendKeeper/internal/model"
	"FriendKeeper/internal/repo"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// testEnv — сервисы поверх отдельной in-memory SQLite.
type testEnv struct {
	db           *gorm.DB
	friends      *FriendService
	interactions *InteractionService
	dashboard    *DashboardService
	users        repo.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.Migrate(db))

	log := zap.NewNop().Sugar()
	fr := repo.NewFriendRepository(db)
	ir := repo.NewInteractionRepository(db)
	fs := NewFriendService(fr, log)
	fs.now = func() time.Time { return day(2024, time.June, 15) }
	return &testEnv{
		db:           db,
		friends:      fs,
		interactions: NewInteractionService(ir, fr, log),
		dashboard:    NewDashboardService(fs, fr, ir),
		users:        repo.NewUserRepository(db),
	}
}

func (e *testEnv) user(t *testing.T, login string) int64 {
	t.Helper()
	u, err := e.users.CreateUser(context.Background(), &model.User{Login: login, Password: "hash"})
	require.NoError(t, err)
	return u.ID
}

func (e *testEnv) friend(t *testing.T, owner int64, attrs FriendAttrs) *model.Friend {
	t.Helper()
	f, err := e.friends.Create(context.Background(), owner, attrs)
	require.NoError(t, err)
	return f
}

func (e *testEnv) logContact(t *testing.T, owner, friendID int64, date string) *model.Interaction {
	t.Helper()
	it, err := e.interactions.Create(context.Background(), owner, InteractionAttrs{
		FriendID: friendID, Type: "call", Description: "catch up", InteractionDate: date,
	})
	require.NoError(t, err)
	return it
}

func (e *testEnv) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(m).Count(&n).Error)
	return n
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func str(s string) *string { return &s }

// ds — дата в виде YYYY-MM-DD, "" для nil.
func ds(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(model.DateLayout)
}

func ids(list []model.Friend) []int64 {
	out := make([]int64, 0, len(list))
	for _, f := range list {
		out = append(out, f.ID)
	}
	return out
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
