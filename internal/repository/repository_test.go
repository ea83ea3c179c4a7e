package repository

import (
	"testing"

	"github.com/andrianrf/gigbook/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)

	// A pooled :memory: connection is a fresh empty database, so keep the
	// pool at a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Venue{},
		&models.Artist{},
		&models.VenueGenre{},
		&models.ArtistGenre{},
		&models.Show{},
	))
	return db
}
