package service

import (
	"FriendKeeper/internal/model"
	"FriendKeeper/internal/repo"
	"FriendKeeper/internal/window"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultBirthdayWindowDays = 30
	DefaultContactThreshold   = 30
	DefaultNeedsContactLimit  = 6
	FriendsPerPage            = 12
)

// FriendAttrs — входные данные для создания друга. Даты в формате YYYY-MM-DD.
type FriendAttrs struct {
	Name            string   `json:"name" validate:"required,max=255"`
	Email           *string  `json:"email" validate:"omitempty,email,max=255"`
	Phone           *string  `json:"phone" validate:"omitempty,max=20"`
	Birthday        *string  `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Anniversary     *string  `json:"anniversary" validate:"omitempty,datetime=2006-01-02"`
	Partner         *string  `json:"partner" validate:"omitempty,max=255"`
	Kids            []string `json:"kids" validate:"omitempty,dive,max=255"`
	JobTitle        *string  `json:"job_title" validate:"omitempty,max=255"`
	Company         *string  `json:"company" validate:"omitempty,max=255"`
	Address         *string  `json:"address"`
	Notes           *string  `json:"notes"`
	LastContactDate *string  `json:"last_contact_date" validate:"omitempty,datetime=2006-01-02"`
	ProfilePicture  *string  `json:"profile_picture" validate:"omitempty,max=255"`
}

// FriendPatch — частичное обновление: меняются только переданные ключи, null очищает поле.
type FriendPatch struct {
	Name            Optional[string]   `json:"name"`
	Email           Optional[string]   `json:"email"`
	Phone           Optional[string]   `json:"phone"`
	Birthday        Optional[string]   `json:"birthday"`
	Anniversary     Optional[string]   `json:"anniversary"`
	Partner         Optional[string]   `json:"partner"`
	Kids            Optional[[]string] `json:"kids"`
	JobTitle        Optional[string]   `json:"job_title"`
	Company         Optional[string]   `json:"company"`
	Address         Optional[string]   `json:"address"`
	Notes           Optional[string]   `json:"notes"`
	LastContactDate Optional[string]   `json:"last_contact_date"`
	ProfilePicture  Optional[string]   `json:"profile_picture"`
}

func (a *FriendAttrs) normalize() {
	a.Name = strings.TrimSpace(a.Name)
	for _, p := range []**string{
		&a.Email, &a.Phone, &a.Birthday, &a.Anniversary, &a.Partner, &a.JobTitle,
		&a.Company, &a.Address, &a.Notes, &a.LastContactDate, &a.ProfilePicture,
	} {
		*p = normalize(*p)
	}
	var kids []string
	for _, k := range a.Kids {
		if k = strings.TrimSpace(k); k != "" {
			kids = append(kids, k)
		}
	}
	a.Kids = kids
}

// applyTo переносит провалидированные атрибуты в модель.
func (a *FriendAttrs) applyTo(f *model.Friend) {
	f.Name = a.Name
	f.Email = a.Email
	f.Phone = a.Phone
	f.Birthday = parseDatePtr(a.Birthday)
	f.Anniversary = parseDatePtr(a.Anniversary)
	f.Partner = a.Partner
	f.Kids = a.Kids
	f.JobTitle = a.JobTitle
	f.Company = a.Company
	f.Address = a.Address
	f.Notes = a.Notes
	f.LastContactDate = parseDatePtr(a.LastContactDate)
	f.ProfilePicture = a.ProfilePicture
}

func attrsOf(f *model.Friend) FriendAttrs {
	return FriendAttrs{
		Name:            f.Name,
		Email:           f.Email,
		Phone:           f.Phone,
		Birthday:        model.FormatDate(f.Birthday),
		Anniversary:     model.FormatDate(f.Anniversary),
		Partner:         f.Partner,
		Kids:            f.Kids,
		JobTitle:        f.JobTitle,
		Company:         f.Company,
		Address:         f.Address,
		Notes:           f.Notes,
		LastContactDate: model.FormatDate(f.LastContactDate),
		ProfilePicture:  f.ProfilePicture,
	}
}

// merge накладывает патч на текущие атрибуты.
func (p FriendPatch) merge(a FriendAttrs) FriendAttrs {
	if p.Name.Set {
		a.Name = ""
		if p.Name.Value != nil {
			a.Name = *p.Name.Value
		}
	}
	if p.Kids.Set {
		a.Kids = nil
		if p.Kids.Value != nil {
			a.Kids = *p.Kids.Value
		}
	}
	pairs := []struct {
		opt Optional[string]
		dst **string
	}{
		{p.Email, &a.Email},
		{p.Phone, &a.Phone},
		{p.Birthday, &a.Birthday},
		{p.Anniversary, &a.Anniversary},
		{p.Partner, &a.Partner},
		{p.JobTitle, &a.JobTitle},
		{p.Company, &a.Company},
		{p.Address, &a.Address},
		{p.Notes, &a.Notes},
		{p.LastContactDate, &a.LastContactDate},
		{p.ProfilePicture, &a.ProfilePicture},
	}
	for _, pr := range pairs {
		if pr.opt.Set {
			*pr.dst = pr.opt.Value
		}
	}
	return a
}

// FriendService — CRUD друзей и оконные выборки; всё в рамках владельца.
type FriendService struct {
	friends repo.FriendRepository
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewFriendService(fr repo.FriendRepository, logger *zap.SugaredLogger) *FriendService {
	return &FriendService{friends: fr, logger: logger, now: time.Now}
}

// Today — текущая календарная дата (UTC).
func (s *FriendService) Today() time.Time {
	return model.DateOf(s.now())
}

// resolve загружает друга и проверяет владельца.
func (s *FriendService) resolve(ctx context.Context, ownerID, id int64, withInteractions bool) (*model.Friend, error) {
	var (
		f   *model.Friend
		err error
	)
	if withInteractions {
		f, err = s.friends.GetWithInteractions(ctx, id)
	} else {
		f, err = s.friends.GetByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get friend %d: %w", id, err)
	}
	if f.UserID != ownerID {
		return nil, ErrNotAuthorized
	}
	return f, nil
}

// Create валидирует атрибуты и сохраняет нового друга владельца.
func (s *FriendService) Create(ctx context.Context, ownerID int64, attrs FriendAttrs) (*model.Friend, error) {
	attrs.normalize()
	if err := validateStruct(attrs); err != nil {
		return nil, err
	}
	f := &model.Friend{UserID: ownerID}
	attrs.applyTo(f)
	if err := s.friends.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create friend: %w", err)
	}
	s.logger.Infow("friend created", "user_id", ownerID, "friend_id", f.ID)
	return f, nil
}

// Get возвращает друга с взаимодействиями (новые первыми).
func (s *FriendService) Get(ctx context.Context, ownerID, id int64) (*model.Friend, error) {
	return s.resolve(ctx, ownerID, id, true)
}

// Update применяет патч: отсутствующие ключи сохраняют прежнее значение.
func (s *FriendService) Update(ctx context.Context, ownerID, id int64, patch FriendPatch) (*model.Friend, error) {
	f, err := s.resolve(ctx, ownerID, id, false)
	if err != nil {
		return nil, err
	}
	attrs := patch.merge(attrsOf(f))
	attrs.normalize()
	if err := validateStruct(attrs); err != nil {
		return nil, err
	}
	attrs.applyTo(f)
	if err := s.friends.Save(ctx, f); err != nil {
		return nil, fmt.Errorf("save friend %d: %w", id, err)
	}
	return f, nil
}

// Delete удаляет друга вместе с его взаимодействиями.
func (s *FriendService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.resolve(ctx, ownerID, id, false); err != nil {
		return err
	}
	if err := s.friends.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete friend %d: %w", id, err)
	}
	s.logger.Infow("friend deleted", "user_id", ownerID, "friend_id", id)
	return nil
}

// List — страница друзей владельца, новые первыми.
func (s *FriendService) List(ctx context.Context, ownerID int64, page, perPage int) (Page[model.Friend], error) {
	page, perPage, offset := pageBounds(page, perPage, FriendsPerPage)
	items, total, err := s.friends.ListPage(ctx, ownerID, offset, perPage)
	if err != nil {
		return Page[model.Friend]{}, fmt.Errorf("list friends: %w", err)
	}
	return newPage(items, page, perPage, total), nil
}

// Options — id и имена друзей для форм выбора.
func (s *FriendService) Options(ctx context.Context, ownerID int64) ([]model.Friend, error) {
	list, err := s.friends.Options(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("friend options: %w", err)
	}
	return list, nil
}

// UpcomingBirthdays — друзья, чей день рождения попадает в [asOf, asOf+days].
func (s *FriendService) UpcomingBirthdays(ctx context.Context, ownerID int64, days int, asOf time.Time) ([]model.Friend, error) {
	if days < 0 {
		return nil, fieldError("days", "The days field must be at least 0.")
	}
	list, err := s.friends.ListWithBirthday(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list birthdays: %w", err)
	}
	return window.UpcomingBirthdays(list, days, asOf), nil
}

// NeedsContact — друзья без контакта или с контактом раньше asOf-thresholdDays.
func (s *FriendService) NeedsContact(ctx context.Context, ownerID int64, thresholdDays int, asOf time.Time, limit int) ([]model.Friend, error) {
	if thresholdDays < 0 {
		return nil, fieldError("days", "The days field must be at least 0.")
	}
	if limit <= 0 {
		limit = DefaultNeedsContactLimit
	}
	list, err := s.friends.NeedsContact(ctx, ownerID, window.ContactCutoff(asOf, thresholdDays), limit)
	if err != nil {
		return nil, fmt.Errorf("needs contact: %w", err)
	}
	if list == nil {
		list = []model.Friend{}
	}
	return list, nil
}
