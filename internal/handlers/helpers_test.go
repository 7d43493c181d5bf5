package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/radholm/Scampea-Backend/db"
	"github.com/radholm/Scampea-Backend/internal/auth"
	"github.com/radholm/Scampea-Backend/internal/models"
	"github.com/radholm/Scampea-Backend/internal/router"
	"github.com/radholm/Scampea-Backend/internal/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "secret123"

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// setup wires the router against a fresh in-memory database and a temporary
// picture directory. Returns the engine and the picture directory.
func setup(t *testing.T) (*gin.Engine, string) {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	db.DB = gdb
	require.NoError(t, db.MigrateDatabase())

	dir := t.TempDir()
	storage.Pictures = storage.NewLocal(dir, "/pictures")

	return router.NewRouter(), dir
}

func seedRole(t *testing.T, title string) models.Role {
	t.Helper()

	role := models.Role{Title: title}
	require.NoError(t, db.DB.Create(&role).Error)
	return role
}

func seedUser(t *testing.T, roleID uint, username string, admin bool) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:   username,
		FirstName:  "Test",
		LastName:   "User",
		Password:   string(hash),
		Permission: admin,
		RoleID:     roleID,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func seedProject(t *testing.T, name string, managerID uint) models.Project {
	t.Helper()

	project := models.Project{Name: name, ProjectManagerID: &managerID}
	require.NoError(t, db.DB.Create(&project).Error)
	return project
}

func seedMembership(t *testing.T, userID, projectID uint) models.ProjectUser {
	t.Helper()

	membership := models.ProjectUser{UserID: userID, ProjectID: projectID}
	require.NoError(t, db.DB.Create(&membership).Error)
	return membership
}

func seedTimelog(t *testing.T, userID, projectID uint) models.Timelog {
	t.Helper()

	timelog := models.Timelog{
		UserID:       userID,
		ProjectID:    projectID,
		Date:         "2017-09-25",
		Time:         "18:58",
		Contribution: "Worked on the backend",
	}
	require.NoError(t, db.DB.Create(&timelog).Error)
	return timelog
}

// tokenFor issues a real bearer token backed by an access_tokens row.
func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token := models.AccessToken{ID: uuid.NewString(), UserID: user.ID}
	require.NoError(t, db.DB.Create(&token).Error)

	signed, err := auth.GenerateJWT(user.ID, token.ID)
	require.NoError(t, err)
	return signed
}

// request performs a JSON request against the router. A string body is sent
// verbatim; anything else non-nil is marshalled.
func request(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) map[string][]string {
	t.Helper()

	var body struct {
		Errors  map[string][]string `json:"errors"`
		Message string              `json:"message"`
	}
	decode(t, w, &body)
	require.Equal(t, "The given data was invalid.", body.Message)
	return body.Errors
}
