package klijentController_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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

func seedCourseWithLessons(t *testing.T, db *gorm.DB, name, educatorID string, lessonCount int) (models.Course, []models.Lesson) {
	t.Helper()

	course := models.Course{
		Name: name, Description: "Opis", Price: 25,
		Category: "Programiranje", Image: "img", EducatorID: educatorID,
	}
	require.NoError(t, db.Create(&course).Error)

	lessons := make([]models.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := models.Lesson{
			Name: fmt.Sprintf("Lekcija %d", i+1), Description: "Opis", Duration: 10,
			Video: fmt.Sprintf("https://cdn.example.com/%s-%d.mp4", name, i+1),
			Order: i, CourseID: course.ID,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return course, lessons
}

func seedPurchase(t *testing.T, db *gorm.DB, userID, courseID string) {
	t.Helper()
	purchase := models.Purchase{
		Date:          time.Now(),
		PaymentMethod: "card",
		PaymentStatus: models.PaymentStatusPaid,
		UserID:        userID,
		CourseID:      courseID,
	}
	require.NoError(t, db.Create(&purchase).Error)
}

func getJSON(t *testing.T, app *fiber.App, path, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestPurchasedCoursesListsOnlyOwn(t *testing.T) {
	app, db := newTestApp(t)
	educator, _ := seedUser(t, db, models.RoleEdukator)
	buyer, buyerToken := seedUser(t, db, models.RoleKlijent)
	other, _ := seedUser(t, db, models.RoleKlijent)

	bought, _ := seedCourseWithLessons(t, db, "Kupljeni kurs", educator.ID, 1)
	foreign, _ := seedCourseWithLessons(t, db, "Tuđi kurs", educator.ID, 1)
	seedPurchase(t, db, buyer.ID, bought.ID)
	seedPurchase(t, db, other.ID, foreign.ID)

	resp, body := getJSON(t, app, "/api/klijent/kupljeni-kursevi", buyerToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Kupljeni kurs", first["naziv"])
	assert.Equal(t, educator.FirstName, first["edukatorIme"])
}

func TestPurchasedCourseDetailsRequiresPurchase(t *testing.T) {
	app, db := newTestApp(t)
	educator, _ := seedUser(t, db, models.RoleEdukator)
	_, strangerToken := seedUser(t, db, models.RoleKlijent)

	course, _ := seedCourseWithLessons(t, db, "Nekupljeni kurs", educator.ID, 1)

	resp, body := getJSON(t, app, "/api/klijent/kupljeni-kursevi/"+course.ID, strangerToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Zabranjen pristup. Niste kupili ovaj kurs.", body["error"])
}

func TestPurchasedCourseDetailsReturnsLessonsAndProgress(t *testing.T) {
	app, db := newTestApp(t)
	educator, _ := seedUser(t, db, models.RoleEdukator)
	buyer, buyerToken := seedUser(t, db, models.RoleKlijent)

	course, lessons := seedCourseWithLessons(t, db, "Kupljeni kurs", educator.ID, 3)
	seedPurchase(t, db, buyer.ID, course.ID)

	watched := models.Progress{Watched: true, UserID: buyer.ID, LessonID: lessons[1].ID}
	require.NoError(t, db.Create(&watched).Error)

	resp, body := getJSON(t, app, "/api/klijent/kupljeni-kursevi/"+course.ID, buyerToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	returned := body["lekcije"].([]interface{})
	require.Len(t, returned, 3)

	// Lessons come back in course order with the video reference intact.
	for i, raw := range returned {
		lesson := raw.(map[string]interface{})
		assert.Equal(t, lessons[i].Name, lesson["naziv"])
		assert.Equal(t, lessons[i].Video, lesson["video"])
	}

	odgledane := body["odgledane"].([]interface{})
	require.Len(t, odgledane, 1)
	assert.Equal(t, lessons[1].ID, odgledane[0])
}

func TestPurchasedCoursesRejectsEdukator(t *testing.T) {
	app, db := newTestApp(t)
	_, educatorToken := seedUser(t, db, models.RoleEdukator)

	resp, _ := getJSON(t, app, "/api/klijent/kupljeni-kursevi", educatorToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
