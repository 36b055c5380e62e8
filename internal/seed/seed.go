package seed

import (
	"FriendKeeper/internal/model"
	"FriendKeeper/internal/service"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Параметры демо-набора.
const (
	DefaultLogin    = "demo"
	DefaultPassword = "password"

	RegularFriends  = 20
	BirthdayFriends = 3
	OverdueFriends  = 4

	minInteractions = 3
	maxInteractions = 8
)

// Options управляет генерацией. Нулевые поля заменяются значениями по умолчанию.
type Options struct {
	Login    string
	Password string
	Today    time.Time
	Seed     int64
}

// Result — итог заполнения.
type Result struct {
	User         *model.User
	Friends      int
	Interactions int
}

// Seeder наполняет базу демо-пользователем, друзьями и историей контактов через сервисы.
type Seeder struct {
	users        *service.UserService
	friends      *service.FriendService
	interactions *service.InteractionService
	logger       *zap.SugaredLogger
}

func New(us *service.UserService, fs *service.FriendService, is *service.InteractionService, logger *zap.SugaredLogger) *Seeder {
	return &Seeder{users: us, friends: fs, interactions: is, logger: logger}
}

type friendKind int

const (
	kindRegular friendKind = iota
	kindBirthday
	kindOverdue
)

// Run создаёт пользователя (или входит под существующим) и генерирует данные.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Login == "" {
		opts.Login = DefaultLogin
	}
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	if opts.Today.IsZero() {
		opts.Today = s.friends.Today()
	}
	opts.Today = model.DateOf(opts.Today)
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	rnd := newRand(opts.Seed)

	user, err := s.users.Register(ctx, opts.Login, opts.Password)
	if errors.Is(err, service.ErrLoginTaken) {
		user, err = s.users.Login(ctx, opts.Login, opts.Password)
	}
	if err != nil {
		return nil, fmt.Errorf("demo user: %w", err)
	}

	kinds := make([]friendKind, 0, RegularFriends+BirthdayFriends+OverdueFriends)
	for i := 0; i < RegularFriends; i++ {
		kinds = append(kinds, kindRegular)
	}
	for i := 0; i < BirthdayFriends; i++ {
		kinds = append(kinds, kindBirthday)
	}
	for i := 0; i < OverdueFriends; i++ {
		kinds = append(kinds, kindOverdue)
	}

	res := &Result{User: user}
	for _, kind := range kinds {
		attrs := randomFriend(rnd, kind, opts.Today)
		f, err := s.friends.Create(ctx, user.ID, attrs)
		if err != nil {
			return nil, fmt.Errorf("create friend %q: %w", attrs.Name, err)
		}
		res.Friends++

		// по возрастанию даты: last_contact_date остаётся равной самому позднему контакту
		for _, it := range randomInteractions(rnd, f.ID, kind, opts.Today) {
			if _, err := s.interactions.Create(ctx, user.ID, it); err != nil {
				return nil, fmt.Errorf("create interaction for %q: %w", f.Name, err)
			}
			res.Interactions++
		}
	}

	s.logger.Infow("demo data seeded", "user_id", user.ID, "login", user.Login,
		"friends", res.Friends, "interactions", res.Interactions)
	return res, nil
}

var (
	firstNames = []string{"Olivia", "Liam", "Emma", "Noah", "Ava", "James", "Sophia", "Lucas",
		"Mia", "Henry", "Amelia", "Ethan", "Harper", "Mason", "Ella", "Logan", "Grace", "Jack"}
	lastNames = []string{"Smith", "Johnson", "Brown", "Garcia", "Miller", "Davis", "Wilson",
		"Moore", "Taylor", "Anderson", "Thomas", "Martin", "Clark", "Lewis", "Walker"}
	kidNames = []string{"Emma", "Liam", "Olivia", "Noah", "Ava", "William", "Sophia", "James",
		"Isabella", "Benjamin", "Charlotte", "Lucas", "Mia", "Henry", "Amelia"}
	jobTitles = []string{"Software Engineer", "Teacher", "Nurse", "Architect", "Designer",
		"Accountant", "Chef", "Product Manager", "Photographer", "Lawyer"}
	companies = []string{"Acme Corp", "Globex", "Initech", "Umbrella", "Stark Industries",
		"Wayne Enterprises", "Hooli", "Vandelay Industries"}
	streets = []string{"Oak Street", "Maple Avenue", "Pine Road", "Cedar Lane", "Elm Drive"}
	notes   = []string{"Met at university.", "Loves hiking and board games.",
		"Former colleague, great sense of humor.", "Neighbor from the old apartment.",
		"Always up for coffee."}

	descriptions = map[model.InteractionType][]string{
		model.InteractionCall: {"Had a great catch-up call.", "Quick call to check in.",
			"Long conversation about family and plans."},
		model.InteractionText: {"Exchanged texts about weekend plans.", "Quick text check-in.",
			"Shared some funny memes."},
		model.InteractionEmail: {"Sent an email catching up on recent events.",
			"Forwarded an interesting article.", "Email about planning a get-together."},
		model.InteractionHangout: {"Had coffee and great conversation.", "Went out for dinner.",
			"Met up for lunch and caught up."},
		model.InteractionMeeting: {"Met to talk about a shared project.",
			"Business meeting that turned into a catch-up."},
		model.InteractionOther: {"Ran into each other in town.", "Sent a birthday card."},
	}
)

func newRand(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

func pick(rnd *rand.Rand, list []string) string { return list[rnd.Intn(len(list))] }

// maybe возвращает значение с вероятностью p, иначе nil.
func maybe(rnd *rand.Rand, p float64, v string) *string {
	if rnd.Float64() >= p {
		return nil
	}
	return &v
}

func dateStr(t time.Time) *string { return model.FormatDate(&t) }

// birthdayAt — дата рождения, следующий день рождения которой выпадает на day.
// 29 февраля в невисокосный год рождения сдвигается на 28.
func birthdayAt(rnd *rand.Rand, day time.Time) time.Time {
	year := 1965 + rnd.Intn(40)
	m, d := day.Month(), day.Day()
	if m == time.February && d == 29 && !isLeap(year) {
		d = 28
	}
	return time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(y int) bool { return y%4 == 0 && (y%100 != 0 || y%400 == 0) }

func randomFriend(rnd *rand.Rand, kind friendKind, today time.Time) service.FriendAttrs {
	first, last := pick(rnd, firstNames), pick(rnd, lastNames)
	a := service.FriendAttrs{
		Name:     first + " " + last,
		Email:    maybe(rnd, 0.8, strings.ToLower(first+"."+last)+"@example.com"),
		Phone:    maybe(rnd, 0.7, fmt.Sprintf("+1 555 %03d %04d", rnd.Intn(1000), rnd.Intn(10000))),
		Partner:  maybe(rnd, 0.4, pick(rnd, firstNames)+" "+last),
		JobTitle: maybe(rnd, 0.7, pick(rnd, jobTitles)),
		Company:  maybe(rnd, 0.7, pick(rnd, companies)),
		Address:  maybe(rnd, 0.5, fmt.Sprintf("%d %s", 1+rnd.Intn(200), pick(rnd, streets))),
		Notes:    maybe(rnd, 0.6, pick(rnd, notes)),
	}
	if rnd.Float64() < 0.3 {
		n := 1 + rnd.Intn(3)
		for _, i := range rnd.Perm(len(kidNames))[:n] {
			a.Kids = append(a.Kids, kidNames[i])
		}
	}
	if rnd.Float64() < 0.3 {
		a.Anniversary = dateStr(today.AddDate(-rnd.Intn(20), 0, -rnd.Intn(365)))
	}

	switch kind {
	case kindBirthday:
		a.Birthday = dateStr(birthdayAt(rnd, today.AddDate(0, 0, 1+rnd.Intn(20))))
	default:
		// день рождения вне ближайших 30 дней, чтобы не размывать список «скоро»
		if rnd.Float64() < 0.6 {
			a.Birthday = dateStr(birthdayAt(rnd, today.AddDate(0, 0, 40+rnd.Intn(280))))
		}
	}
	return a
}

// randomInteractions генерирует 3–8 контактов, отсортированных по дате.
// У обычных друзей последний контакт не старше 20 дней, у «забытых» — от 31 до 90 дней назад.
func randomInteractions(rnd *rand.Rand, friendID int64, kind friendKind, today time.Time) []service.InteractionAttrs {
	n := minInteractions + rnd.Intn(maxInteractions-minInteractions+1)
	ages := make([]int, n)
	for i := range ages {
		if kind == kindOverdue {
			ages[i] = 31 + rnd.Intn(150)
		} else {
			ages[i] = rnd.Intn(180)
		}
	}
	if kind == kindOverdue {
		ages[0] = 31 + rnd.Intn(60)
	} else {
		ages[0] = rnd.Intn(21)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ages)))

	out := make([]service.InteractionAttrs, 0, n)
	for _, age := range ages {
		t := model.InteractionTypes[rnd.Intn(len(model.InteractionTypes))]
		out = append(out, service.InteractionAttrs{
			FriendID:        friendID,
			Type:            string(t),
			Description:     pick(rnd, descriptions[t]),
			InteractionDate: *dateStr(today.AddDate(0, 0, -age)),
		})
	}
	return out
}
