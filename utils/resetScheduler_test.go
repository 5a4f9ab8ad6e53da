package utils

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kursplatforma/database"
	"kursplatforma/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUserWithToken(t *testing.T, db *gorm.DB, expiry time.Time) models.User {
	t.Helper()

	token := uuid.NewString()
	user := models.User{
		FirstName: "Mira", LastName: "Petrović",
		Email:    "user-" + uuid.NewString()[:8] + "@example.com",
		Password: "hash", Role: models.RoleKlijent,
		ResetToken: &token, ResetExpiry: &expiry,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestClearExpiredResetTokens(t *testing.T) {
	db := newTestDB(t)

	expired := seedUserWithToken(t, db, time.Now().Add(-time.Hour))
	valid := seedUserWithToken(t, db, time.Now().Add(time.Hour))

	clearExpiredResetTokens(db)

	var expiredUser, validUser models.User
	require.NoError(t, db.First(&expiredUser, "id = ?", expired.ID).Error)
	require.NoError(t, db.First(&validUser, "id = ?", valid.ID).Error)

	assert.Nil(t, expiredUser.ResetToken)
	assert.Nil(t, expiredUser.ResetExpiry)
	assert.NotNil(t, validUser.ResetToken)
	assert.NotNil(t, validUser.ResetExpiry)
}

func TestClearExpiredResetTokensNoTokens(t *testing.T) {
	db := newTestDB(t)

	user := models.User{
		FirstName: "Pera", LastName: "Perić",
		Email: "pera@example.com", Password: "hash", Role: models.RoleKlijent,
	}
	require.NoError(t, db.Create(&user).Error)

	// No tokens to clear; the pass must leave the row untouched.
	clearExpiredResetTokens(db)

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, "id = ?", user.ID).Error)
	assert.Nil(t, refreshed.ResetToken)
}
