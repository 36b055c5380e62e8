package service

import (
	"FriendKeeper/internal/model"
	"FriendKeeper/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const InteractionsPerPage = 20

// InteractionAttrs — входные данные для создания взаимодействия.
type InteractionAttrs struct {
	FriendID        int64  `json:"friend_id" validate:"required"`
	Type            string `json:"type" validate:"required,oneof=call text email hangout meeting other"`
	Description     string `json:"description" validate:"required"`
	InteractionDate string `json:"interaction_date" validate:"required,datetime=2006-01-02"`
}

// InteractionService — создание, просмотр и удаление взаимодействий.
// Владелец проверяется через друга, к которому относится запись.
type InteractionService struct {
	interactions repo.InteractionRepository
	friends      repo.FriendRepository
	logger       *zap.SugaredLogger
}

func NewInteractionService(ir repo.InteractionRepository, fr repo.FriendRepository, logger *zap.SugaredLogger) *InteractionService {
	return &InteractionService{interactions: ir, friends: fr, logger: logger}
}

// Create проверяет данные, владельца друга и в одной транзакции сохраняет
// взаимодействие и last_contact_date друга.
func (s *InteractionService) Create(ctx context.Context, ownerID int64, attrs InteractionAttrs) (*model.Interaction, error) {
	attrs.Type = strings.TrimSpace(attrs.Type)
	attrs.Description = strings.TrimSpace(attrs.Description)
	attrs.InteractionDate = strings.TrimSpace(attrs.InteractionDate)
	if err := validateStruct(attrs); err != nil {
		return nil, err
	}
	date, err := model.ParseDate(attrs.InteractionDate)
	if err != nil {
		return nil, fieldError("interaction_date", "The interaction date field must be a valid date (YYYY-MM-DD).")
	}

	friend, err := s.friends.GetByID(ctx, attrs.FriendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get friend %d: %w", attrs.FriendID, err)
	}
	if friend.UserID != ownerID {
		return nil, ErrNotAuthorized
	}

	it := &model.Interaction{
		FriendID:        friend.ID,
		Type:            model.InteractionType(attrs.Type),
		Description:     attrs.Description,
		InteractionDate: date,
	}
	if err := s.interactions.CreateAndTouchFriend(ctx, it); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("create interaction: %w", err)
	}
	friend.LastContactDate = &date
	it.Friend = friend
	s.logger.Infow("interaction logged", "user_id", ownerID, "friend_id", friend.ID, "interaction_id", it.ID)
	return it, nil
}

func (s *InteractionService) resolve(ctx context.Context, ownerID, id int64) (*model.Interaction, error) {
	it, err := s.interactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get interaction %d: %w", id, err)
	}
	if it.Friend == nil || it.Friend.UserID != ownerID {
		return nil, ErrNotAuthorized
	}
	return it, nil
}

// Get возвращает взаимодействие вместе с другом.
func (s *InteractionService) Get(ctx context.Context, ownerID, id int64) (*model.Interaction, error) {
	return s.resolve(ctx, ownerID, id)
}

// Delete удаляет взаимодействие; last_contact_date друга не пересчитывается.
func (s *InteractionService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.resolve(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.interactions.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete interaction %d: %w", id, err)
	}
	return nil
}

// List — страница взаимодействий по всем друзьям владельца, свежие первыми.
func (s *InteractionService) List(ctx context.Context, ownerID int64, page, perPage int) (Page[model.Interaction], error) {
	page, perPage, offset := pageBounds(page, perPage, InteractionsPerPage)
	items, total, err := s.interactions.ListPage(ctx, ownerID, offset, perPage)
	if err != nil {
		return Page[model.Interaction]{}, fmt.Errorf("list interactions: %w", err)
	}
	return newPage(items, page, perPage, total), nil
}
