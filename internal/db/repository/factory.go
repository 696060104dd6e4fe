package repository

import "gorm.io/gorm"

// RepositoryFactory creates and manages all repositories
type RepositoryFactory struct {
	db        *gorm.DB
	cacheRepo CacheRepository
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(db *gorm.DB) *RepositoryFactory {
	return &RepositoryFactory{
		db: db,
	}
}

// Cache returns the state cache repository
func (f *RepositoryFactory) Cache() CacheRepository {
	if f.cacheRepo == nil {
		f.cacheRepo = NewCacheRepository(f.db)
	}
	return f.cacheRepo
}
