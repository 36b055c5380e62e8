package repo

import (
	"FriendKeeper/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInteractionRepository_CreateTouchesFriend_LastWriteWins(t *testing.T) {
	db := newTestDB(t)
	fr := NewFriendRepository(db)
	ir := NewInteractionRepository(db)
	ctx := context.Background()
	uid := mkUser(t, db, "owner")
	f := mkFriend(t, db, uid, "Alice")

	later := day(2024, time.May, 10)
	earlier := day(2024, time.February, 1)

	require.NoError(t, ir.CreateAndTouchFriend(ctx, &model.Interaction{
		FriendID: f.ID, Type: model.InteractionCall, Description: "later", InteractionDate: later,
	}))
	got, err := fr.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, later, got.LastContactDate.UTC())

	// более ранняя дата всё равно перезаписывает last_contact_date
	require.NoError(t, ir.CreateAndTouchFriend(ctx, &model.Interaction{
		FriendID: f.ID, Type: model.InteractionText, Description: "earlier", InteractionDate: earlier,
	}))
	got, err = fr.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, earlier, got.LastContactDate.UTC())
}

func TestInteractionRepository_CreateForMissingFriendRollsBack(t *testing.T) {
	db := newTestDB(t)
	ir := NewInteractionRepository(db)
	ctx := context.Background()

	err := ir.CreateAndTouchFriend(ctx, &model.Interaction{
		FriendID: 4242, Type: model.InteractionCall, Description: "ghost", InteractionDate: day(2024, time.January, 1),
	})
	assert.Error(t, err)

	var n int64
	require.NoError(t, db.Model(&model.Interaction{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestInteractionRepository_GetDeleteAndDeleteKeepsContactDate(t *testing.T) {
	db := newTestDB(t)
	fr := NewFriendRepository(db)
	ir := NewInteractionRepository(db)
	ctx := context.Background()
	uid := mkUser(t, db, "owner")
	f := mkFriend(t, db, uid, "Alice")

	it := &model.Interaction{FriendID: f.ID, Type: model.InteractionHangout, Description: "park", InteractionDate: day(2024, time.July, 4)}
	require.NoError(t, ir.CreateAndTouchFriend(ctx, it))

	got, err := ir.GetByID(ctx, it.ID)
	require.NoError(t, err)
	if assert.NotNil(t, got.Friend) {
		assert.Equal(t, uid, got.Friend.UserID)
	}

	require.NoError(t, ir.Delete(ctx, it.ID))
	_, err = ir.GetByID(ctx, it.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, ir.Delete(ctx, it.ID), gorm.ErrRecordNotFound)

	// удаление не откатывает дату последнего контакта
	friend, err := fr.GetByID(ctx, f.ID)
	require.NoError(t, err)
	if assert.NotNil(t, friend.LastContactDate) {
		assert.Equal(t, day(2024, time.July, 4), friend.LastContactDate.UTC())
	}
}

func TestInteractionRepository_OwnerScopedListing(t *testing.T) {
	db := newTestDB(t)
	ir := NewInteractionRepository(db)
	ctx := context.Background()
	me := mkUser(t, db, "me")
	other := mkUser(t, db, "other")
	mine := mkFriend(t, db, me, "mine")
	theirs := mkFriend(t, db, other, "theirs")

	dates := []time.Time{day(2024, time.March, 3), day(2024, time.March, 20), day(2024, time.February, 28), day(2023, time.March, 15)}
	for _, d := range dates {
		require.NoError(t, ir.CreateAndTouchFriend(ctx, &model.Interaction{
			FriendID: mine.ID, Type: model.InteractionEmail, Description: "mail", InteractionDate: d,
		}))
	}
	require.NoError(t, ir.CreateAndTouchFriend(ctx, &model.Interaction{
		FriendID: theirs.ID, Type: model.InteractionEmail, Description: "mail", InteractionDate: day(2024, time.March, 10),
	}))

	list, total, err := ir.ListPage(ctx, me, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	if assert.Len(t, list, 4) {
		assert.Equal(t, day(2024, time.March, 20), list[0].InteractionDate.UTC())
		assert.Equal(t, day(2023, time.March, 15), list[3].InteractionDate.UTC())
		for _, it := range list {
			if assert.NotNil(t, it.Friend) {
				assert.Equal(t, "mine", it.Friend.Name)
			}
		}
	}

	recent, err := ir.Recent(ctx, me, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	// только март 2024, без чужих и без марта прошлого года
	n, err := ir.CountBetween(ctx, me, day(2024, time.March, 1), day(2024, time.April, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
