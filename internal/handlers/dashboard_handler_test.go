package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Show(t *testing.T) {
	router := newTestRouter(t)
	owner := register(t, router, "owner")
	soon := createFriend(t, router, owner, `{"name":"Soon","birthday":"1990-04-01"}`)
	createFriend(t, router, owner, `{"name":"Quiet","last_contact_date":"2023-01-01"}`)
	logInteraction(t, router, owner, soon.ID, "2024-03-10")
	logInteraction(t, router, owner, soon.ID, "2024-02-10")

	rr := do(t, router, http.MethodGet, "/api/dashboard?as_of=2024-03-20", owner, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	body := decode[struct {
		AsOf               string            `json:"as_of"`
		UpcomingBirthdays  []friendBody      `json:"upcoming_birthdays"`
		RecentFriends      []friendBody      `json:"recent_friends"`
		RecentInteractions []interactionBody `json:"recent_interactions"`
		NeedsContact       []friendBody      `json:"needs_contact"`
		Stats              map[string]int    `json:"stats"`
	}](t, rr)

	assert.Equal(t, "2024-03-20", body.AsOf)
	if assert.Len(t, body.UpcomingBirthdays, 1) {
		assert.Equal(t, soon.ID, body.UpcomingBirthdays[0].ID)
	}
	assert.Len(t, body.RecentFriends, 2)
	if assert.Len(t, body.RecentInteractions, 2) {
		assert.NotNil(t, body.RecentInteractions[0].Friend)
	}
	// у Soon последний записанный контакт 10.02 — старше 30 дней
	assert.Len(t, body.NeedsContact, 2)
	assert.Equal(t, map[string]int{
		"total_friends":           2,
		"interactions_this_month": 1,
		"upcoming_birthdays":      1,
		"needs_contact":           2,
	}, body.Stats)

	rr = do(t, router, http.MethodGet, "/api/dashboard?as_of=bad", owner, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
