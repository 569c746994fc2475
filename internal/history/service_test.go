package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animabing/animabing/internal/config"
	"github.com/animabing/animabing/internal/database"
	"github.com/animabing/animabing/internal/models"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Path: database.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewService(db)
}

func TestService_RecordAndRecent(t *testing.T) {
	s := newService(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	anime := models.ContentItem{ID: "a1", Title: "Naruto", Type: models.ContentTypeAnime}
	manga := models.ContentItem{ID: "m1", Title: "Berserk", Type: models.ContentTypeManga}

	require.NoError(t, s.Record(anime, models.Episode{ID: "e1", Number: 1, Session: 0, Link: "https://dl/1"}))
	require.NoError(t, s.Record(manga, models.Episode{ID: "c7", Number: 7, Session: 2, Link: "https://dl/c7"}))
	require.NoError(t, s.Record(anime, models.Episode{ID: "e2", Number: 2, Session: 1, Link: "https://dl/2"}))

	items, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "e2", items[0].EpisodeID)
	assert.Equal(t, "Berserk - S2 Chapter 7", items[1].Label())

	all, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[2].Session, "session defaults to 1")
	assert.Equal(t, "Naruto - Episode 1", all[2].Label())
}

func TestService_DeleteAndClear(t *testing.T) {
	s := newService(t)
	anime := models.ContentItem{ID: "a1", Title: "Naruto", Type: models.ContentTypeAnime}
	movie := models.ContentItem{ID: "mv", Title: "Akira", Type: models.ContentTypeMovie}

	require.NoError(t, s.Record(anime, models.Episode{Number: 1, Link: "x"}))
	require.NoError(t, s.Record(movie, models.Episode{Number: 1, Link: "y"}))

	require.NoError(t, s.DeleteByContentID("a1"))
	items, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "mv", items[0].ContentID)

	n, err := s.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	items, err = s.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItem_Ago(t *testing.T) {
	item := Item{OpenedAt: time.Now().Add(-3 * time.Hour)}
	assert.Equal(t, "3 hours ago", item.Ago())
}

func TestService_NilDB(t *testing.T) {
	s := NewService(nil)
	assert.Error(t, s.Record(models.ContentItem{}, models.Episode{}))
	_, err := s.Recent(1)
	assert.Error(t, err)
}
