package history

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"gorm.io/gorm"

	"github.com/animabing/animabing/internal/database"
	"github.com/animabing/animabing/internal/models"
)

// Service provides download history management
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// Item is a history entry with display helpers
type Item struct {
	ID           uint
	ContentID    string
	ContentTitle string
	ContentType  string
	EpisodeID    string
	Number       int
	Session      int
	Link         string
	OpenedAt     time.Time
}

// Label returns "Title - Episode N" (or Chapter), with the session when not 1
func (i Item) Label() string {
	unit := "Episode"
	if i.ContentType == string(models.ContentTypeManga) {
		unit = "Chapter"
	}
	if i.Session > 1 {
		return fmt.Sprintf("%s - S%d %s %d", i.ContentTitle, i.Session, unit, i.Number)
	}
	return fmt.Sprintf("%s - %s %d", i.ContentTitle, unit, i.Number)
}

// Ago returns the opened time relative to now, e.g. "3 minutes ago"
func (i Item) Ago() string {
	return humanize.Time(i.OpenedAt)
}

// NewService creates a new history service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Record stores an opened download link
func (s *Service) Record(item models.ContentItem, ep models.Episode) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	session := ep.Session
	if session < 1 {
		session = 1
	}

	entry := database.DownloadHistory{
		ContentID:    item.ID,
		ContentTitle: item.Title,
		ContentType:  string(item.Type),
		EpisodeID:    ep.ID,
		Number:       ep.Number,
		Session:      session,
		Link:         ep.Link,
		OpenedAt:     s.now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	return nil
}

// Recent returns the most recently opened links, newest first.
// A limit of 0 returns everything.
func (s *Service) Recent(limit int) ([]Item, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := s.db.Model(&database.DownloadHistory{}).Order("opened_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []database.DownloadHistory
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}

	items := make([]Item, len(records))
	for i, r := range records {
		items[i] = Item{
			ID:           r.ID,
			ContentID:    r.ContentID,
			ContentTitle: r.ContentTitle,
			ContentType:  r.ContentType,
			EpisodeID:    r.EpisodeID,
			Number:       r.Number,
			Session:      r.Session,
			Link:         r.Link,
			OpenedAt:     r.OpenedAt,
		}
	}
	return items, nil
}

// DeleteByContentID removes every entry of one content item
func (s *Service) DeleteByContentID(contentID string) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.db.Where("content_id = ?", contentID).Delete(&database.DownloadHistory{}).Error
}

// Clear removes all entries and returns how many were removed
func (s *Service) Clear() (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	res := s.db.Where("1 = 1").Delete(&database.DownloadHistory{})
	return res.RowsAffected, res.Error
}
