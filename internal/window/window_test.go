package window

import (
	"FriendKeeper/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func friendWithBirthday(id int64, b time.Time) model.Friend {
	return model.Friend{ID: id, Name: "f", Birthday: &b}
}

func TestNextBirthday(t *testing.T) {
	t.Run("later this year", func(t *testing.T) {
		assert.Equal(t, date(2024, time.July, 1), NextBirthday(date(1990, time.July, 1), date(2024, time.January, 1)))
	})
	t.Run("today counts", func(t *testing.T) {
		assert.Equal(t, date(2024, time.March, 5), NextBirthday(date(1985, time.March, 5), date(2024, time.March, 5)))
	})
	t.Run("already passed -> next year", func(t *testing.T) {
		assert.Equal(t, date(2025, time.January, 10), NextBirthday(date(1990, time.January, 10), date(2024, time.December, 20)))
	})
	t.Run("time of day is ignored", func(t *testing.T) {
		asOf := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, date(2024, time.March, 5), NextBirthday(date(1985, time.March, 5), asOf))
	})
}

func TestNextBirthday_Feb29(t *testing.T) {
	leapling := date(2000, time.February, 29)

	// невисокосный год: 1 марта
	assert.Equal(t, date(2025, time.March, 1), NextBirthday(leapling, date(2025, time.February, 1)))
	assert.Equal(t, date(2025, time.March, 1), NextBirthday(leapling, date(2025, time.March, 1)))
	// после 1 марта — следующий год, который тоже невисокосный
	assert.Equal(t, date(2026, time.March, 1), NextBirthday(leapling, date(2025, time.March, 2)))
	// високосный год: 29 февраля
	assert.Equal(t, date(2028, time.February, 29), NextBirthday(leapling, date(2027, time.December, 31)))
}

func TestInBirthdayWindow(t *testing.T) {
	// пересечение границы года
	assert.True(t, InBirthdayWindow(date(1990, time.January, 10), date(2024, time.December, 20), 30))
	assert.False(t, InBirthdayWindow(date(1990, time.July, 1), date(2024, time.January, 1), 30))

	// границы окна включительно
	asOf := date(2024, time.May, 1)
	assert.True(t, InBirthdayWindow(date(1970, time.May, 1), asOf, 0))
	assert.True(t, InBirthdayWindow(date(1970, time.May, 31), asOf, 30))
	assert.False(t, InBirthdayWindow(date(1970, time.June, 1), asOf, 30))
	assert.False(t, InBirthdayWindow(date(1970, time.April, 30), asOf, 30))

	// отрицательное окно пустое
	assert.False(t, InBirthdayWindow(date(1970, time.May, 1), asOf, -1))
}

func TestDaysUntilBirthday(t *testing.T) {
	assert.Equal(t, 0, DaysUntilBirthday(date(1990, time.May, 1), date(2024, time.May, 1)))
	assert.Equal(t, 21, DaysUntilBirthday(date(1990, time.January, 10), date(2024, time.December, 20)))
}

func TestUpcomingBirthdays_FilterAndOrder(t *testing.T) {
	asOf := date(2024, time.December, 20)
	friends := []model.Friend{
		friendWithBirthday(1, date(1990, time.January, 10)),  // через границу года
		friendWithBirthday(2, date(1985, time.December, 25)), // в этом году
		{ID: 3, Name: "no birthday"},
		friendWithBirthday(4, date(2001, time.March, 1)), // вне окна
		friendWithBirthday(5, date(1970, time.January, 10)),
		friendWithBirthday(6, date(1999, time.December, 19)), // уже прошёл
	}

	got := UpcomingBirthdays(friends, 30, asOf)
	ids := make([]int64, 0, len(got))
	for _, f := range got {
		ids = append(ids, f.ID)
	}
	// порядок по месяцу-дню (не по полной дате), при равенстве — по id
	assert.Equal(t, []int64{1, 5, 2}, ids)
}

func TestUpcomingBirthdays_EmptyInput(t *testing.T) {
	got := UpcomingBirthdays(nil, 30, date(2024, time.January, 1))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestContactCutoffAndMonthRange(t *testing.T) {
	asOf := time.Date(2024, time.March, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, date(2024, time.March, 1), ContactCutoff(asOf, 30))

	start, end := MonthRange(asOf)
	assert.Equal(t, date(2024, time.March, 1), start)
	assert.Equal(t, date(2024, time.April, 1), end)

	start, end = MonthRange(date(2024, time.December, 5))
	assert.Equal(t, date(2024, time.December, 1), start)
	assert.Equal(t, date(2025, time.January, 1), end)
}
