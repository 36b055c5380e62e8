package model

import "time"

// InteractionType — закрытый перечень типов контакта.
type InteractionType string

const (
	InteractionCall    InteractionType = "call"
	InteractionText    InteractionType = "text"
	InteractionEmail   InteractionType = "email"
	InteractionHangout InteractionType = "hangout"
	InteractionMeeting InteractionType = "meeting"
	InteractionOther   InteractionType = "other"
)

// InteractionTypes в порядке отображения.
var InteractionTypes = []InteractionType{
	InteractionCall,
	InteractionText,
	InteractionEmail,
	InteractionHangout,
	InteractionMeeting,
	InteractionOther,
}

// Interaction — зафиксированный контакт с другом.
type Interaction struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	FriendID int64 `gorm:"not null;index:idx_interactions_friend_date,priority:1"` // ссылка на friends.id

	Friend *Friend `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Type            InteractionType `gorm:"not null;size:20;index"`
	Description     string          `gorm:"not null;type:text"`
	InteractionDate time.Time       `gorm:"not null;type:date;index;index:idx_interactions_friend_date,priority:2"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
