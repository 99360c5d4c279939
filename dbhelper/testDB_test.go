package dbhelper

import (
	"github.com/wishlistapp/apiv1/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"testing"
)

// openTestDB points the package at an in-memory sqlite database. A single
// connection keeps sqlite consistent when tests fire concurrent
// transactions at it.
func openTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.AuthSession{},
		&models.RateTracker{},
		&models.AbusiveClient{},
		&models.UnexpectedError{},
	))
	DB = db
}

func countRows(t *testing.T, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, DB.Raw(query, args...).Scan(&count).Error)
	return count
}
