package repository

import (
	"testing"

	"github.com/NammaLakes/dashboard/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.CacheEntry{}))
	return db
}

func TestCacheRepository(t *testing.T) {
	t.Run("Should return not found for a missing key", func(t *testing.T) {
		repo := NewCacheRepository(newTestDB(t))

		_, err := repo.Get("lakewatcher-active-alerts")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Should upsert on put", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewCacheRepository(db)

		require.NoError(t, repo.Put("lakewatcher-active-alerts", []byte(`[]`)))
		require.NoError(t, repo.Put("lakewatcher-active-alerts", []byte(`[{"id":"1-x"}]`)))

		got, err := repo.Get("lakewatcher-active-alerts")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1-x"}]`, string(got))

		var count int64
		require.NoError(t, db.Model(&models.CacheEntry{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Should reject an empty key", func(t *testing.T) {
		repo := NewRepositoryFactory(newTestDB(t)).Cache()

		assert.ErrorIs(t, repo.Put("", []byte("x")), ErrInvalidInput)
		_, err := repo.Get("")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
