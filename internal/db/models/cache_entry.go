package models

import "time"

// CacheEntry is one named blob of the dashboard state cache
type CacheEntry struct {
	Key       string    `gorm:"column:cache_key;type:varchar(255);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for CacheEntry
func (CacheEntry) TableName() string {
	return "cache_entries"
}
