package database

import (
	"time"

	"gorm.io/gorm"
)

// Setting represents a key-value store for application settings
type Setting struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the table name
func (Setting) TableName() string {
	return "settings"
}

// DownloadHistory records a download link opened from a detail page
type DownloadHistory struct {
	ID           uint      `gorm:"primaryKey"`
	ContentID    string    `gorm:"not null;index"`
	ContentTitle string    `gorm:"not null"`
	ContentType  string    `gorm:"not null;index"` // Anime, Movie, Manga
	EpisodeID    string    `gorm:"default:''"`
	Number       int       `gorm:"not null"`
	Session      int       `gorm:"not null;default:1"`
	Link         string    `gorm:"not null"`
	OpenedAt     time.Time `gorm:"index"`
}

// TableName overrides the table name
func (DownloadHistory) TableName() string {
	return "download_history"
}

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Setting{},
		&DownloadHistory{},
	)
}
