package repositories

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pulse/internal/models/db_models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&db_models.Company{},
		&db_models.Department{},
		&db_models.User{},
		&db_models.Event{},
		&db_models.Feedback{},
		&db_models.RequestType{},
		&db_models.Request{},
		&db_models.RequestMessage{},
	))
	return db
}

func seedCompany(t *testing.T, db *gorm.DB, name string) *db_models.Company {
	t.Helper()
	company := &db_models.Company{Name: name}
	require.NoError(t, db.Create(company).Error)
	return company
}

func seedUser(t *testing.T, db *gorm.DB, companyID uuid.UUID, username string, role db_models.UserRole) *db_models.User {
	t.Helper()
	user := &db_models.User{
		Username:     username,
		Name:         username,
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
		CompanyID:    &companyID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
