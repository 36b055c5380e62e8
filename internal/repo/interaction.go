package repo

import (
	"FriendKeeper/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionRepository — доступ к Interaction. Владелец определяется через friends.user_id.
type InteractionRepository interface {
	// CreateAndTouchFriend вставляет взаимодействие и выставляет другу
	// last_contact_date = interaction_date в одной транзакции.
	CreateAndTouchFriend(ctx context.Context, it *model.Interaction) error
	// GetByID возвращает взаимодействие с подгруженным Friend или gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id int64) (*model.Interaction, error)
	Delete(ctx context.Context, id int64) error

	// ListPage — страница взаимодействий всех друзей владельца (interaction_date desc) и общее число.
	ListPage(ctx context.Context, userID int64, offset, limit int) ([]model.Interaction, int64, error)
	Recent(ctx context.Context, userID int64, limit int) ([]model.Interaction, error)
	// CountBetween считает взаимодействия владельца с from <= interaction_date < to.
	CountBetween(ctx context.Context, userID int64, from, to time.Time) (int64, error)
}

type interactionRepo struct {
	db *gorm.DB
}

// NewInteractionRepository создаёт реализацию репозитория для Interaction.
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepo{db: db}
}

// ownedBy ограничивает выборку взаимодействиями друзей пользователя.
func ownedBy(userID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN friends ON friends.id = interactions.friend_id").
			Where("friends.user_id = ?", userID)
	}
}

func (r *interactionRepo) CreateAndTouchFriend(ctx context.Context, it *model.Interaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(it).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Friend{}).
			Where("id = ?", it.FriendID).
			Update("last_contact_date", it.InteractionDate)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *interactionRepo) GetByID(ctx context.Context, id int64) (*model.Interaction, error) {
	var it model.Interaction
	if err := r.db.WithContext(ctx).Preload("Friend").First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *interactionRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Interaction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *interactionRepo) ListPage(ctx context.Context, userID int64, offset, limit int) ([]model.Interaction, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Interaction{}).Scopes(ownedBy(userID)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Interaction
	err := r.db.WithContext(ctx).
		Select("interactions.*").
		Scopes(ownedBy(userID)).
		Preload("Friend").
		Order("interactions.interaction_date DESC").Order("interactions.id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *interactionRepo) Recent(ctx context.Context, userID int64, limit int) ([]model.Interaction, error) {
	var list []model.Interaction
	err := r.db.WithContext(ctx).
		Select("interactions.*").
		Scopes(ownedBy(userID)).
		Preload("Friend").
		Order("interactions.interaction_date DESC").Order("interactions.id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *interactionRepo) CountBetween(ctx context.Context, userID int64, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Interaction{}).
		Scopes(ownedBy(userID)).
		Where("interactions.interaction_date >= ? AND interactions.interaction_date < ?", from, to).
		Count(&n).Error
	return n, err
}
