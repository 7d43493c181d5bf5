package handlers_test

import (
	"net/http"
	"testing"

	"github.com/radholm/Scampea-Backend/db"
	"github.com/radholm/Scampea-Backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTimelog(t *testing.T) {
	r, _ := setup(t)
	role := seedRole(t, "Developer")
	user := seedUser(t, role.ID, "alice", false)
	project := seedProject(t, "Scampea", user.ID)

	// A user_id in the body must be ignored; the row belongs to the caller.
	w := request(t, r, http.MethodPost, "/api/timelog", tokenFor(t, user), map[string]any{
		"date":         "2017-09-25",
		"time":         "18:58",
		"contribution": "Success",
		"project_id":   project.ID,
		"user_id":      9999,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Timelog
	decode(t, w, &created)
	assert.Equal(t, user.ID, created.UserID)
	assert.Equal(t, "2017-09-25", created.Date)
	assert.Equal(t, "18:58", created.Time)

	var stored models.Timelog
	require.NoError(t, db.DB.First(&stored, created.ID).Error)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestCreateTimelogBadDate(t *testing.T) {
	r, _ := setup(t)
	role := seedRole(t, "Developer")
	user := seedUser(t, role.ID, "alice", false)
	project := seedProject(t, "Scampea", user.ID)

	w := request(t, r, http.MethodPost, "/api/timelog", tokenFor(t, user), map[string]any{
		"date":         "17-03-2010",
		"time":         "18:58",
		"contribution": "Success",
		"project_id":   project.ID,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"The date does not match the format Y-m-d."}, fieldErrors(t, w)["date"])
}

func TestDeleteTimelogOwnership(t *testing.T) {
	r, _ := setup(t)
	role := seedRole(t, "Developer")
	owner := seedUser(t, role.ID, "owner", false)
	other := seedUser(t, role.ID, "other", false)
	project := seedProject(t, "Scampea", owner.ID)
	timelog := seedTimelog(t, owner.ID, project.ID)

	// The id exists, but it is not the caller's; the failure lands on user_id.
	w := request(t, r, http.MethodDelete, "/api/timelog/"+itoa(timelog.ID), tokenFor(t, other), nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"The selected user id is invalid."}, fieldErrors(t, w)["user_id"])

	w = request(t, r, http.MethodDelete, "/api/timelog/"+itoa(timelog.ID), tokenFor(t, owner), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decode(t, w, &body)
	assert.Equal(t, float64(1), body["success"])
}

func TestDeleteTimelogAsAdmin(t *testing.T) {
	r, _ := setup(t)
	role := seedRole(t, "Developer")
	admin := seedUser(t, role.ID, "admin", true)
	owner := seedUser(t, role.ID, "owner", false)
	project := seedProject(t, "Scampea", owner.ID)
	timelog := seedTimelog(t, owner.ID, project.ID)
	token := tokenFor(t, admin)

	w := request(t, r, http.MethodDelete, "/api/timelog/9999/admin", token, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, fieldErrors(t, w)["id"], "The selected id is invalid.")

	w = request(t, r, http.MethodDelete, "/api/timelog/"+itoa(timelog.ID)+"/admin", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decode(t, w, &body)
	assert.Equal(t, float64(1), body["success"])
}

func TestUpdateTimelog(t *testing.T) {
	r, _ := setup(t)
	role := seedRole(t, "Developer")
	owner := seedUser(t, role.ID, "owner", false)
	other := seedUser(t, role.ID, "other", false)
	project := seedProject(t, "Scampea", owner.ID)
	timelog := seedTimelog(t, owner.ID, project.ID)

	w := request(t, r, http.MethodPut, "/api/timelog/"+itoa(timelog.ID), tokenFor(t, other), map[string]any{
		"contribution": "Hijacked",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"The selected user id is invalid."}, fieldErrors(t, w)["user_id"])

	w = request(t, r, http.MethodPut, "/api/timelog/"+itoa(timelog.ID), tokenFor(t, owner), map[string]any{
		"time": "25:99",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"The time does not match the format H:i."}, fieldErrors(t, w)["time"])

	w = request(t, r, http.MethodPut, "/api/timelog/"+itoa(timelog.ID), tokenFor(t, owner), map[string]any{
		"contribution": "Refined the estimates",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Timelog
	require.NoError(t, db.DB.First(&updated, timelog.ID).Error)
	assert.Equal(t, "Refined the estimates", updated.Contribution)
	assert.Equal(t, "2017-09-25", updated.Date)
}

func TestGetTimelogs(t *testing.T) {
	r, _ := setup(t)
	role := seedRole(t, "Developer")
	alice := seedUser(t, role.ID, "alice", false)
	bob := seedUser(t, role.ID, "bob", false)
	project := seedProject(t, "Scampea", alice.ID)
	seedTimelog(t, alice.ID, project.ID)
	seedTimelog(t, alice.ID, project.ID)
	seedTimelog(t, bob.ID, project.ID)

	w := request(t, r, http.MethodGet, "/api/timelogs", tokenFor(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var timelogs []models.Timelog
	decode(t, w, &timelogs)
	require.Len(t, timelogs, 2)
	for _, timelog := range timelogs {
		assert.Equal(t, alice.ID, timelog.UserID)
	}
}

func TestGetAllTimelogsRequiresAdmin(t *testing.T) {
	r, _ := setup(t)
	role := seedRole(t, "Developer")
	admin := seedUser(t, role.ID, "admin", true)
	user := seedUser(t, role.ID, "alice", false)
	project := seedProject(t, "Scampea", admin.ID)
	seedTimelog(t, user.ID, project.ID)
	seedTimelog(t, admin.ID, project.ID)

	w := request(t, r, http.MethodGet, "/api/timelogs/all", tokenFor(t, user), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = request(t, r, http.MethodGet, "/api/timelogs/all", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var timelogs []models.Timelog
	decode(t, w, &timelogs)
	assert.Len(t, timelogs, 2)
}

func TestGetUserTimelogs(t *testing.T) {
	r, _ := setup(t)
	role := seedRole(t, "Developer")
	admin := seedUser(t, role.ID, "admin", true)
	user := seedUser(t, role.ID, "alice", false)
	project := seedProject(t, "Scampea", admin.ID)
	seedTimelog(t, user.ID, project.ID)
	token := tokenFor(t, admin)

	w := request(t, r, http.MethodGet, "/api/timelogs/9999", token, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, fieldErrors(t, w)["id"], "The selected id is invalid.")

	w = request(t, r, http.MethodGet, "/api/timelogs/"+itoa(user.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var timelogs []models.Timelog
	decode(t, w, &timelogs)
	require.Len(t, timelogs, 1)
	assert.Equal(t, user.ID, timelogs[0].UserID)
}

func TestGetProjectTimelogs(t *testing.T) {
	r, _ := setup(t)
	role := seedRole(t, "Developer")
	manager := seedUser(t, role.ID, "manager", false)
	outsider := seedUser(t, role.ID, "outsider", false)
	project := seedProject(t, "Scampea", manager.ID)
	seedTimelog(t, manager.ID, project.ID)

	path := "/api/timelogs/project/" + itoa(project.ID)

	w := request(t, r, http.MethodGet, path, tokenFor(t, outsider), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = request(t, r, http.MethodGet, path, tokenFor(t, manager), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var timelogs []models.Timelog
	decode(t, w, &timelogs)
	assert.Len(t, timelogs, 1)
}
