package repository

import (
	"time"

	"github.com/NammaLakes/dashboard/internal/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheRepository stores named state blobs
type CacheRepository interface {
	Repository
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// cacheRepository implements CacheRepository
type cacheRepository struct {
	BaseRepository
}

// NewCacheRepository creates a new cache repository
func NewCacheRepository(db *gorm.DB) CacheRepository {
	return &cacheRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Get returns the blob stored under key, or ErrNotFound
func (r *cacheRepository) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidInput
	}

	var entry models.CacheEntry
	err := r.GetDB().Where("cache_key = ?", key).First(&entry).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return []byte(entry.Value), nil
}

// Put creates or replaces the blob stored under key
func (r *cacheRepository) Put(key string, value []byte) error {
	if key == "" {
		return ErrInvalidInput
	}

	entry := models.CacheEntry{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}

	err := r.GetDB().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	return r.handleError(err)
}
