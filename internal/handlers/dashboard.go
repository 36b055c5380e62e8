package handlers

import (
	"FriendKeeper/internal/model"
	"FriendKeeper/internal/service"
	"net/http"

	"go.uber.org/zap"
)

type DashboardDTO struct {
	AsOf               string                 `json:"as_of"`
	UpcomingBirthdays  []FriendDTO            `json:"upcoming_birthdays"`
	RecentFriends      []FriendDTO            `json:"recent_friends"`
	RecentInteractions []InteractionDTO       `json:"recent_interactions"`
	NeedsContact       []FriendDTO            `json:"needs_contact"`
	Stats              service.DashboardStats `json:"stats"`
}

// DashboardHandler отдаёт сводку пользователя.
type DashboardHandler struct {
	DashboardService *service.DashboardService
	FriendService    *service.FriendService
	Logger           *zap.SugaredLogger
}

func NewDashboardHandler(dashboardService *service.DashboardService, friendService *service.FriendService, logger *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{DashboardService: dashboardService, FriendService: friendService, Logger: logger}
}

// Show — GET /api/dashboard?as_of=YYYY-MM-DD
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	asOf, err := queryAsOf(r, h.FriendService.Today())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	d, err := h.DashboardService.Build(r.Context(), userID, asOf)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, DashboardDTO{
		AsOf:               d.AsOf.Format(model.DateLayout),
		UpcomingBirthdays:  toBirthdayDTOs(d.UpcomingBirthdays, d.AsOf),
		RecentFriends:      toFriendDTOs(d.RecentFriends),
		RecentInteractions: toInteractionDTOs(d.RecentInteractions),
		NeedsContact:       toFriendDTOs(d.NeedsContact),
		Stats:              d.Stats,
	})
}
