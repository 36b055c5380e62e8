package repo

import (
	"FriendKeeper/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository определяет контракт доступа к Friend для слоя сервиса.
// Методы чтения по id не фильтруют по владельцу: сервис сам отличает чужую запись от отсутствующей.
type FriendRepository interface {
	Create(ctx context.Context, f *model.Friend) error
	// GetByID возвращает gorm.ErrRecordNotFound, если записи нет.
	GetByID(ctx context.Context, id int64) (*model.Friend, error)
	// GetWithInteractions — то же, плюс взаимодействия от новых к старым.
	GetWithInteractions(ctx context.Context, id int64) (*model.Friend, error)
	// Save перезаписывает все колонки записи, связи не трогает.
	Save(ctx context.Context, f *model.Friend) error
	// Delete удаляет друга вместе со всеми его взаимодействиями одной транзакцией.
	Delete(ctx context.Context, id int64) error

	// ListPage — страница друзей владельца (created_at desc) с подгруженными взаимодействиями и общее число.
	ListPage(ctx context.Context, userID int64, offset, limit int) ([]model.Friend, int64, error)
	// ListWithBirthday — все друзья владельца с заполненным днём рождения.
	ListWithBirthday(ctx context.Context, userID int64) ([]model.Friend, error)
	// Recent — последние добавленные друзья.
	Recent(ctx context.Context, userID int64, limit int) ([]model.Friend, error)
	// NeedsContact — друзья без контакта или с последним контактом раньше before; пустые даты первыми.
	NeedsContact(ctx context.Context, userID int64, before time.Time, limit int) ([]model.Friend, error)
	Count(ctx context.Context, userID int64) (int64, error)
	// Options — id и имя всех друзей владельца по алфавиту.
	Options(ctx context.Context, userID int64) ([]model.Friend, error)
}

type friendRepo struct {
	db *gorm.DB
}

// NewFriendRepository создаёт реализацию репозитория для Friend.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepo{db: db}
}

func (r *friendRepo) Create(ctx context.Context, f *model.Friend) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(f).Error
}

func (r *friendRepo) GetByID(ctx context.Context, id int64) (*model.Friend, error) {
	var f model.Friend
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *friendRepo) GetWithInteractions(ctx context.Context, id int64) (*model.Friend, error) {
	var f model.Friend
	err := r.db.WithContext(ctx).
		Preload("Interactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("interaction_date DESC").Order("id DESC")
		}).
		First(&f, id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *friendRepo) Save(ctx context.Context, f *model.Friend) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(f).Error
}

func (r *friendRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// каскад делаем явно: SQLite без foreign_keys его не выполнит
		if err := tx.Where("friend_id = ?", id).Delete(&model.Interaction{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Friend{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *friendRepo) ListPage(ctx context.Context, userID int64, offset, limit int) ([]model.Friend, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Friend{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Friend
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Interactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("interaction_date DESC").Order("id DESC")
		}).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *friendRepo) ListWithBirthday(ctx context.Context, userID int64) ([]model.Friend, error) {
	var list []model.Friend
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND birthday IS NOT NULL", userID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *friendRepo) Recent(ctx context.Context, userID int64, limit int) ([]model.Friend, error) {
	var list []model.Friend
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *friendRepo) NeedsContact(ctx context.Context, userID int64, before time.Time, limit int) ([]model.Friend, error) {
	var list []model.Friend
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("last_contact_date IS NULL OR last_contact_date < ?", before).
		Order("CASE WHEN last_contact_date IS NULL THEN 0 ELSE 1 END").
		Order("last_contact_date ASC").Order("id ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *friendRepo) Count(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Friend{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *friendRepo) Options(ctx context.Context, userID int64) ([]model.Friend, error) {
	var list []model.Friend
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("user_id = ?", userID).
		Order("name ASC").Order("id ASC").
		Find(&list).Error
	return list, err
}
