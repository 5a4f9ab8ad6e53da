package progressController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kursplatforma/config"
	"kursplatforma/database"
	"kursplatforma/middleware"
	"kursplatforma/models"
	"kursplatforma/routers"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		Env:       "test",
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	app := fiber.New()
	routers.SetupRoutes(app, db)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, role string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("lozinka123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		FirstName: "Test",
		LastName:  role,
		Email:     strings.ToLower(role) + "-" + uuid.NewString()[:8] + "@example.com",
		Password:  string(hash),
		Role:      role,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateAuthToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return user, token
}

func seedLesson(t *testing.T, db *gorm.DB, educatorID string) models.Lesson {
	t.Helper()

	course := models.Course{
		Name: "Kurs " + uuid.NewString()[:8], Description: "Opis", Price: 10,
		Category: "Programiranje", Image: "img", EducatorID: educatorID,
	}
	require.NoError(t, db.Create(&course).Error)

	lesson := models.Lesson{
		Name: "Uvod", Description: "Opis", Duration: 5,
		Video: "https://cdn.example.com/1.mp4", Order: 0, CourseID: course.ID,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func markWatched(t *testing.T, app *fiber.App, token, lessonID string) *http.Response {
	t.Helper()

	raw, err := json.Marshal(map[string]string{"videoLekcijaId": lessonID})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/api/klijent/napredak", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func messageOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	msg, _ := body["message"].(string)
	return msg
}

func TestMarkWatchedIsIdempotent(t *testing.T) {
	app, db := newTestApp(t)
	educator, _ := seedUser(t, db, models.RoleEdukator)
	_, token := seedUser(t, db, models.RoleKlijent)
	lesson := seedLesson(t, db, educator.ID)

	first := markWatched(t, app, token, lesson.ID)
	assert.Equal(t, fiber.StatusOK, first.StatusCode)
	assert.Equal(t, "Napredak sačuvan.", messageOf(t, first))

	second := markWatched(t, app, token, lesson.ID)
	assert.Equal(t, fiber.StatusOK, second.StatusCode)
	assert.Equal(t, "Napredak je već sačuvan.", messageOf(t, second))

	var count int64
	db.Model(&models.Progress{}).Where("video_lekcija_id = ?", lesson.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestMarkWatchedUnknownLesson(t *testing.T) {
	app, db := newTestApp(t)
	_, token := seedUser(t, db, models.RoleKlijent)

	resp := markWatched(t, app, token, uuid.NewString())
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMarkWatchedScopedToSession(t *testing.T) {
	app, db := newTestApp(t)
	educator, _ := seedUser(t, db, models.RoleEdukator)
	userA, tokenA := seedUser(t, db, models.RoleKlijent)
	userB, tokenB := seedUser(t, db, models.RoleKlijent)
	lesson := seedLesson(t, db, educator.ID)

	require.Equal(t, fiber.StatusOK, markWatched(t, app, tokenA, lesson.ID).StatusCode)
	require.Equal(t, fiber.StatusOK, markWatched(t, app, tokenB, lesson.ID).StatusCode)

	// Each user gets exactly one row of their own.
	var rows []models.Progress
	require.NoError(t, db.Where("video_lekcija_id = ?", lesson.ID).Find(&rows).Error)
	require.Len(t, rows, 2)
	owners := map[string]bool{}
	for _, row := range rows {
		owners[row.UserID] = true
		assert.True(t, row.Watched)
	}
	assert.True(t, owners[userA.ID])
	assert.True(t, owners[userB.ID])
}

func TestMarkWatchedRequiresKlijentRole(t *testing.T) {
	app, db := newTestApp(t)
	educator, educatorToken := seedUser(t, db, models.RoleEdukator)
	lesson := seedLesson(t, db, educator.ID)

	resp := markWatched(t, app, educatorToken, lesson.ID)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
