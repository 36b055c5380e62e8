package service

import (
	"FriendKeeper/internal/model"
	"FriendKeeper/internal/repo"
	"FriendKeeper/internal/window"
	"context"
	"fmt"
	"time"
)

const (
	dashboardRecentFriends      = 6
	dashboardRecentInteractions = 10
)

// DashboardStats — счётчики дашборда.
type DashboardStats struct {
	TotalFriends          int64 `json:"total_friends"`
	InteractionsThisMonth int64 `json:"interactions_this_month"`
	UpcomingBirthdays     int   `json:"upcoming_birthdays"`
	NeedsContact          int   `json:"needs_contact"`
}

// Dashboard — сводка на одну дату AsOf.
type Dashboard struct {
	AsOf               time.Time
	UpcomingBirthdays  []model.Friend
	RecentFriends      []model.Friend
	RecentInteractions []model.Interaction
	NeedsContact       []model.Friend
	Stats              DashboardStats
}

// DashboardService собирает дашборд из репозиториев и оконных выборок друзей.
type DashboardService struct {
	friends      *FriendService
	friendRepo   repo.FriendRepository
	interactions repo.InteractionRepository
}

func NewDashboardService(fs *FriendService, fr repo.FriendRepository, ir repo.InteractionRepository) *DashboardService {
	return &DashboardService{friends: fs, friendRepo: fr, interactions: ir}
}

// Build считает все части дашборда относительно одной и той же даты asOf.
func (s *DashboardService) Build(ctx context.Context, ownerID int64, asOf time.Time) (*Dashboard, error) {
	asOf = model.DateOf(asOf)

	upcoming, err := s.friends.UpcomingBirthdays(ctx, ownerID, DefaultBirthdayWindowDays, asOf)
	if err != nil {
		return nil, err
	}
	recentFriends, err := s.friendRepo.Recent(ctx, ownerID, dashboardRecentFriends)
	if err != nil {
		return nil, fmt.Errorf("recent friends: %w", err)
	}
	recentInteractions, err := s.interactions.Recent(ctx, ownerID, dashboardRecentInteractions)
	if err != nil {
		return nil, fmt.Errorf("recent interactions: %w", err)
	}
	needsContact, err := s.friends.NeedsContact(ctx, ownerID, DefaultContactThreshold, asOf, DefaultNeedsContactLimit)
	if err != nil {
		return nil, err
	}
	total, err := s.friendRepo.Count(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count friends: %w", err)
	}
	from, to := window.MonthRange(asOf)
	thisMonth, err := s.interactions.CountBetween(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("count interactions: %w", err)
	}

	if recentFriends == nil {
		recentFriends = []model.Friend{}
	}
	if recentInteractions == nil {
		recentInteractions = []model.Interaction{}
	}
	return &Dashboard{
		AsOf:               asOf,
		UpcomingBirthdays:  upcoming,
		RecentFriends:      recentFriends,
		RecentInteractions: recentInteractions,
		NeedsContact:       needsContact,
		Stats: DashboardStats{
			TotalFriends:          total,
			InteractionsThisMonth: thisMonth,
			UpcomingBirthdays:     len(upcoming),
			NeedsContact:          len(needsContact),
		},
	}, nil
}
