package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"gorm.io/gorm/clause"

	"kursplatforma/config"
	"kursplatforma/database"
	"kursplatforma/models"
)

// Seeds the course catalogue from kursevi.csv. Expected columns:
// naziv, opis, cena, kategorija, slika, edukatorEmail. The educator must
// already exist; rows referencing an unknown email are skipped. Re-running
// the import leaves existing courses untouched.
func main() {
	// Load config and connect to database
	config.LoadConfig()
	db := database.Connect()

	// Open CSV file
	file, err := os.Open("kursevi.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	field := func(row []string, name string) string {
		idx, ok := headerIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	inserted := 0
	skipped := 0

	for i, row := range records[1:] {
		name := field(row, "naziv")
		educatorEmail := strings.ToLower(field(row, "edukatorEmail"))
		if name == "" || educatorEmail == "" {
			log.Printf("Row %d: missing naziv or edukatorEmail, skipping", i+1)
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(field(row, "cena"), 64)
		if err != nil || price < 0 {
			log.Printf("Row %d: invalid cena %q, skipping", i+1, field(row, "cena"))
			skipped++
			continue
		}

		var educator models.User
		if err := db.Where("email = ? AND uloga = ?", educatorEmail, models.RoleEdukator).First(&educator).Error; err != nil {
			log.Printf("Row %d: no educator with email %s, skipping", i+1, educatorEmail)
			skipped++
			continue
		}

		course := models.Course{
			Name:        name,
			Description: field(row, "opis"),
			Price:       price,
			Category:    field(row, "kategorija"),
			Image:       field(row, "slika"),
			EducatorID:  educator.ID,
		}

		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "naziv"}},
			DoNothing: true,
		}).Create(&course)
		if result.Error != nil {
			log.Printf("Row %d: failed to insert %s: %v", i+1, name, result.Error)
			skipped++
			continue
		}
		if result.RowsAffected == 0 {
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import finished: %d inserted, %d skipped", inserted, skipped)
}
