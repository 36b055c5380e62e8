package handlers

import (
	"FriendKeeper/internal/model"
	"FriendKeeper/internal/window"
	"time"
)

// FriendDTO — друг в ответах API. Даты в формате YYYY-MM-DD.
type FriendDTO struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	Email             *string          `json:"email"`
	Phone             *string          `json:"phone"`
	Birthday          *string          `json:"birthday"`
	Anniversary       *string          `json:"anniversary"`
	Partner           *string          `json:"partner"`
	Kids              []string         `json:"kids"`
	JobTitle          *string          `json:"job_title"`
	Company           *string          `json:"company"`
	Address           *string          `json:"address"`
	Notes             *string          `json:"notes"`
	LastContactDate   *string          `json:"last_contact_date"`
	ProfilePicture    *string          `json:"profile_picture"`
	ProfilePictureURL *string          `json:"profile_picture_url"`
	NextBirthday      *string          `json:"next_birthday,omitempty"`
	DaysUntilBirthday *int             `json:"days_until_birthday,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	Interactions      []InteractionDTO `json:"interactions,omitempty"`
}

// FriendSummaryDTO — краткие сведения о друге рядом с взаимодействием.
type FriendSummaryDTO struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           *string `json:"email"`
	Birthday        *string `json:"birthday"`
	LastContactDate *string `json:"last_contact_date"`
	ProfilePicture  *string `json:"profile_picture"`
}

type InteractionDTO struct {
	ID              int64             `json:"id"`
	FriendID        int64             `json:"friend_id"`
	Type            string            `json:"type"`
	Description     string            `json:"description"`
	InteractionDate string            `json:"interaction_date"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Friend          *FriendSummaryDTO `json:"friend,omitempty"`
}

type FriendOptionDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func pictureURL(ref *string) *string {
	if ref == nil {
		return nil
	}
	u := "/storage/" + *ref
	return &u
}

func toFriendDTO(f model.Friend) FriendDTO {
	kids := f.Kids
	if kids == nil {
		kids = []string{}
	}
	dto := FriendDTO{
		ID:                f.ID,
		Name:              f.Name,
		Email:             f.Email,
		Phone:             f.Phone,
		Birthday:          model.FormatDate(f.Birthday),
		Anniversary:       model.FormatDate(f.Anniversary),
		Partner:           f.Partner,
		Kids:              kids,
		JobTitle:          f.JobTitle,
		Company:           f.Company,
		Address:           f.Address,
		Notes:             f.Notes,
		LastContactDate:   model.FormatDate(f.LastContactDate),
		ProfilePicture:    f.ProfilePicture,
		ProfilePictureURL: pictureURL(f.ProfilePicture),
		CreatedAt:         f.CreatedAt.UTC(),
		UpdatedAt:         f.UpdatedAt.UTC(),
	}
	if len(f.Interactions) > 0 {
		dto.Interactions = make([]InteractionDTO, 0, len(f.Interactions))
		for _, it := range f.Interactions {
			dto.Interactions = append(dto.Interactions, toInteractionDTO(it))
		}
	}
	return dto
}

// toBirthdayDTO дополняет друга ближайшей датой дня рождения относительно asOf.
func toBirthdayDTO(f model.Friend, asOf time.Time) FriendDTO {
	dto := toFriendDTO(f)
	if f.Birthday != nil {
		next := window.NextBirthday(*f.Birthday, asOf)
		days := window.DaysUntilBirthday(*f.Birthday, asOf)
		dto.NextBirthday = model.FormatDate(&next)
		dto.DaysUntilBirthday = &days
	}
	return dto
}

func toFriendDTOs(list []model.Friend) []FriendDTO {
	out := make([]FriendDTO, 0, len(list))
	for _, f := range list {
		out = append(out, toFriendDTO(f))
	}
	return out
}

func toBirthdayDTOs(list []model.Friend, asOf time.Time) []FriendDTO {
	out := make([]FriendDTO, 0, len(list))
	for _, f := range list {
		out = append(out, toBirthdayDTO(f, asOf))
	}
	return out
}

func toSummaryDTO(f *model.Friend) *FriendSummaryDTO {
	if f == nil {
		return nil
	}
	return &FriendSummaryDTO{
		ID:              f.ID,
		Name:            f.Name,
		Email:           f.Email,
		Birthday:        model.FormatDate(f.Birthday),
		LastContactDate: model.FormatDate(f.LastContactDate),
		ProfilePicture:  f.ProfilePicture,
	}
}

func toInteractionDTO(it model.Interaction) InteractionDTO {
	return InteractionDTO{
		ID:              it.ID,
		FriendID:        it.FriendID,
		Type:            string(it.Type),
		Description:     it.Description,
		InteractionDate: it.InteractionDate.Format(model.DateLayout),
		CreatedAt:       it.CreatedAt.UTC(),
		UpdatedAt:       it.UpdatedAt.UTC(),
		Friend:          toSummaryDTO(it.Friend),
	}
}

func toInteractionDTOs(list []model.Interaction) []InteractionDTO {
	out := make([]InteractionDTO, 0, len(list))
	for _, it := range list {
		out = append(out, toInteractionDTO(it))
	}
	return out
}
