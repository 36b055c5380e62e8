package model

import "time"

// Friend — контакт пользователя с биографическими атрибутами.
type Friend struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	UserID int64 `gorm:"not null;index:idx_friends_user_name,priority:1;index:idx_friends_user_created,priority:1;index:idx_friends_user_contact,priority:1"` // ссылка на users.id

	// Связи
	User         *User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Interactions []Interaction `gorm:"foreignKey:FriendID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Name        string     `gorm:"not null;size:255;index:idx_friends_user_name,priority:2"`
	Email       *string    `gorm:"size:255"`
	Phone       *string    `gorm:"size:20"`
	Birthday    *time.Time `gorm:"type:date"`
	Anniversary *time.Time `gorm:"type:date"`
	Partner     *string    `gorm:"size:255"`
	Kids        []string   `gorm:"serializer:json;type:text"`
	JobTitle    *string    `gorm:"size:255"`
	Company     *string    `gorm:"size:255"`
	Address     *string    `gorm:"type:text"`
	Notes       *string    `gorm:"type:text"`

	LastContactDate *time.Time `gorm:"type:date;index:idx_friends_user_contact,priority:2"`
	ProfilePicture  *string    `gorm:"size:255"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_friends_user_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
