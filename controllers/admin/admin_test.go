package adminController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
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

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestListUsersHidesPasswordHashes(t *testing.T) {
	app, db := newTestApp(t)
	_, adminToken := seedUser(t, db, models.RoleAdmin)
	seedUser(t, db, models.RoleKlijent)
	seedUser(t, db, models.RoleEdukator)

	resp, body := request(t, app, fiber.MethodGet, "/api/admin/korisnici", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].([]interface{})
	assert.Len(t, data, 3)

	raw, _ := json.Marshal(body)
	assert.NotContains(t, string(raw), "lozinka")
	assert.NotContains(t, string(raw), "$2a$")
}

func TestCreateUserWithExplicitRole(t *testing.T) {
	app, db := newTestApp(t)
	_, adminToken := seedUser(t, db, models.RoleAdmin)

	resp, _ := request(t, app, fiber.MethodPost, "/api/admin/korisnici", adminToken, map[string]interface{}{
		"ime":     "Eva",
		"prezime": "Edukator",
		"email":   "eva@example.com",
		"lozinka": "lozinka123",
		"uloga":   models.RoleEdukator,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "eva@example.com").Error)
	assert.Equal(t, models.RoleEdukator, user.Role)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	app, db := newTestApp(t)
	_, adminToken := seedUser(t, db, models.RoleAdmin)

	resp, body := request(t, app, fiber.MethodPost, "/api/admin/korisnici", adminToken, map[string]interface{}{
		"ime":     "Eva",
		"prezime": "Edukator",
		"email":   "eva@example.com",
		"lozinka": "lozinka123",
		"uloga":   "SUPERADMIN",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	polja := body["polja"].(map[string]interface{})
	assert.Contains(t, polja, "uloga")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	app, db := newTestApp(t)
	_, adminToken := seedUser(t, db, models.RoleAdmin)

	payload := map[string]interface{}{
		"ime":     "Eva",
		"prezime": "Edukator",
		"email":   "eva@example.com",
		"lozinka": "lozinka123",
		"uloga":   models.RoleEdukator,
	}
	resp, _ := request(t, app, fiber.MethodPost, "/api/admin/korisnici", adminToken, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := request(t, app, fiber.MethodPost, "/api/admin/korisnici", adminToken, payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email već postoji.", body["error"])
}

func TestSalesStatistics(t *testing.T) {
	app, db := newTestApp(t)
	_, adminToken := seedUser(t, db, models.RoleAdmin)
	educator, _ := seedUser(t, db, models.RoleEdukator)
	buyerA, _ := seedUser(t, db, models.RoleKlijent)
	buyerB, _ := seedUser(t, db, models.RoleKlijent)

	bestseller := models.Course{
		Name: "Bestseler", Description: "Opis", Price: 50,
		Category: "Programiranje", Image: "img", EducatorID: educator.ID,
	}
	slow := models.Course{
		Name: "Slabo prodavan", Description: "Opis", Price: 10,
		Category: "Dizajn", Image: "img", EducatorID: educator.ID,
	}
	require.NoError(t, db.Create(&bestseller).Error)
	require.NoError(t, db.Create(&slow).Error)

	for _, buyer := range []models.User{buyerA, buyerB} {
		purchase := models.Purchase{
			Date: time.Now(), PaymentMethod: "card", PaymentStatus: models.PaymentStatusPaid,
			UserID: buyer.ID, CourseID: bestseller.ID,
		}
		require.NoError(t, db.Create(&purchase).Error)
	}
	purchase := models.Purchase{
		Date: time.Now(), PaymentMethod: "card", PaymentStatus: models.PaymentStatusPaid,
		UserID: buyerA.ID, CourseID: slow.ID,
	}
	require.NoError(t, db.Create(&purchase).Error)

	resp, body := request(t, app, fiber.MethodGet, "/api/admin/statistika-prodaje", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.EqualValues(t, 110, body["ukupnoPrihod"])
	assert.EqualValues(t, 3, body["ukupnoProdato"])

	stats := body["data"].([]interface{})
	require.Len(t, stats, 2)
	top := stats[0].(map[string]interface{})
	assert.Equal(t, "Bestseler", top["naziv"])
	assert.EqualValues(t, 2, top["brojProdaja"])
	assert.EqualValues(t, 100, top["prihod"])
}

func TestMonthlyClientReportCountsOnlyClients(t *testing.T) {
	app, db := newTestApp(t)
	_, adminToken := seedUser(t, db, models.RoleAdmin)
	seedUser(t, db, models.RoleKlijent)
	seedUser(t, db, models.RoleKlijent)
	seedUser(t, db, models.RoleEdukator)

	resp, body := request(t, app, fiber.MethodGet, "/api/admin/izvestaji", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	report := body["data"].([]interface{})
	require.Len(t, report, 1)
	month := report[0].(map[string]interface{})
	assert.EqualValues(t, 2, month["broj"])
	assert.Equal(t, time.Now().Format("2006-01"), month["mesec"])
}

func TestAdminRoutesRejectOtherRoles(t *testing.T) {
	app, db := newTestApp(t)
	_, klijentToken := seedUser(t, db, models.RoleKlijent)
	_, edukatorToken := seedUser(t, db, models.RoleEdukator)

	for _, token := range []string{klijentToken, edukatorToken} {
		resp, _ := request(t, app, fiber.MethodGet, "/api/admin/korisnici", token, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	}
}
