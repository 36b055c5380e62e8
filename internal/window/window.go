// Package window считает календарные окна дашборда: ближайшие дни рождения
// (по месяцу и дню, без учёта года) и порог давности последнего контакта.
//
// 29 февраля в невисокосном году трактуется как 1 марта: так нормализует time.Date.
package window

import (
	"FriendKeeper/internal/model"
	"sort"
	"time"
)

// NextBirthday возвращает ближайшую дату дня рождения, не раньше asOf.
func NextBirthday(birthday, asOf time.Time) time.Time {
	asOf = model.DateOf(asOf)
	next := time.Date(asOf.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(asOf) {
		next = time.Date(asOf.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next
}

// DaysUntilBirthday — число дней от asOf до ближайшего дня рождения.
func DaysUntilBirthday(birthday, asOf time.Time) int {
	next := NextBirthday(birthday, asOf)
	return int(next.Sub(model.DateOf(asOf)).Hours() / 24)
}

// InBirthdayWindow проверяет asOf <= next <= asOf+days.
func InBirthdayWindow(birthday, asOf time.Time, days int) bool {
	if days < 0 {
		return false
	}
	end := model.DateOf(asOf).AddDate(0, 0, days)
	return !NextBirthday(birthday, asOf).After(end)
}

// UpcomingBirthdays отбирает друзей с днём рождения в окне [asOf, asOf+days]
// и сортирует по месяцу и дню, при равенстве — по id.
func UpcomingBirthdays(friends []model.Friend, days int, asOf time.Time) []model.Friend {
	res := make([]model.Friend, 0, len(friends))
	for _, f := range friends {
		if f.Birthday == nil {
			continue
		}
		if InBirthdayWindow(*f.Birthday, asOf, days) {
			res = append(res, f)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		ki, kj := monthDayKey(*res[i].Birthday), monthDayKey(*res[j].Birthday)
		if ki != kj {
			return ki < kj
		}
		return res[i].ID < res[j].ID
	})
	return res
}

func monthDayKey(t time.Time) int {
	return int(t.Month())*100 + t.Day()
}

// ContactCutoff — дата, раньше которой последний контакт считается просроченным.
func ContactCutoff(asOf time.Time, thresholdDays int) time.Time {
	return model.DateOf(asOf).AddDate(0, 0, -thresholdDays)
}

// MonthRange возвращает полуинтервал [первое число месяца asOf, первое число следующего).
func MonthRange(asOf time.Time) (time.Time, time.Time) {
	y, m, _ := asOf.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
