package adminController

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kursplatforma/config"
	"kursplatforma/middleware"
	"kursplatforma/models"
	adminValidator "kursplatforma/validators/admin"
)

type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// ListUsers returns every registered user without password hashes.
func (ctl *Controller) ListUsers(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.Role != models.RoleAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Pristup dozvoljen samo administratorima.")
	}

	var users []models.User
	if err := ctl.DB.Order("datum_registracije desc").Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška na serveru prilikom pristupa bazi podataka.")
	}

	return c.JSON(fiber.Map{"success": true, "data": users})
}

// CreateUser is the admin tooling for creating accounts with an explicit
// role, the only path that assigns ADMIN or EDUKATOR.
func (ctl *Controller) CreateUser(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.Role != models.RoleAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Pristup dozvoljen samo administratorima.")
	}

	reqData, ok := c.Locals("validatedCreateUser").(*adminValidator.CreateUserRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška pri dodavanju korisnika.")
	}

	user := models.User{
		FirstName: reqData.FirstName,
		LastName:  reqData.LastName,
		Email:     reqData.Email,
		Password:  string(hashedPassword),
		Role:      reqData.Role,
	}

	if err := ctl.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Email već postoji.")
		}
		log.Printf("Error creating user: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška pri dodavanju korisnika.")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Korisnik je uspešno dodat.", user)
}

// CourseSalesStat is one course's sales figures.
type CourseSalesStat struct {
	ID       string  `json:"id"`
	Name     string  `json:"naziv"`
	Category string  `json:"kategorija"`
	Price    float64 `json:"cena"`
	Sold     int64   `json:"brojProdaja"`
	Revenue  float64 `json:"prihod"`
}

// SalesStatistics reports per-course sales and revenue, best sellers first.
func (ctl *Controller) SalesStatistics(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.Role != models.RoleAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Pristup dozvoljen samo administratorima.")
	}

	var courses []models.Course
	if err := ctl.DB.Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Sistem ne može da prikaže informacije o prodaji kurseva.")
	}

	type countRow struct {
		CourseID string
		Total    int64
	}
	var counts []countRow
	err := ctl.DB.Model(&models.Purchase{}).
		Select("kurs_id AS course_id, COUNT(*) AS total").
		Group("kurs_id").
		Scan(&counts).Error
	if err != nil {
		log.Printf("Error counting purchases: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Sistem ne može da prikaže informacije o prodaji kurseva.")
	}

	countByCourse := make(map[string]int64, len(counts))
	for _, row := range counts {
		countByCourse[row.CourseID] = row.Total
	}

	stats := make([]CourseSalesStat, 0, len(courses))
	var totalRevenue float64
	var totalSold int64
	for _, course := range courses {
		sold := countByCourse[course.ID]
		revenue := float64(sold) * course.Price
		totalRevenue += revenue
		totalSold += sold
		stats = append(stats, CourseSalesStat{
			ID:       course.ID,
			Name:     course.Name,
			Category: course.Category,
			Price:    course.Price,
			Sold:     sold,
			Revenue:  revenue,
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Revenue > stats[j].Revenue })

	return c.JSON(fiber.Map{
		"success":       true,
		"data":          stats,
		"ukupnoPrihod":  totalRevenue,
		"ukupnoProdato": totalSold,
	})
}

// MonthlyReportRow is one month's client registration count.
type MonthlyReportRow struct {
	Month string `json:"mesec"`
	Count int    `json:"broj"`
}

// MonthlyClientReport buckets KLIJENT registrations per calendar month.
func (ctl *Controller) MonthlyClientReport(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.Role != models.RoleAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Pristup dozvoljen samo administratorima.")
	}

	var clients []models.User
	if err := ctl.DB.Where("uloga = ?", models.RoleKlijent).Find(&clients).Error; err != nil {
		log.Printf("Error fetching clients: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška prilikom prikaza informacija o broju klijenata.")
	}

	buckets := make(map[string]int)
	for _, client := range clients {
		key := fmt.Sprintf("%04d-%02d", client.RegisteredAt.Year(), int(client.RegisteredAt.Month()))
		buckets[key]++
	}

	report := make([]MonthlyReportRow, 0, len(buckets))
	for month, count := range buckets {
		report = append(report, MonthlyReportRow{Month: month, Count: count})
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Month < report[j].Month })

	return c.JSON(fiber.Map{"success": true, "data": report})
}
