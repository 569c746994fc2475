package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animabing/animabing/internal/models"
)

func withYear(t *testing.T, year int) {
	t.Helper()
	orig := currentYear
	currentYear = func() int { return year }
	t.Cleanup(func() { currentYear = orig })
}

func TestParseListing(t *testing.T) {
	withYear(t, 2026)

	tests := []struct {
		name      string
		body      string
		wantIDs   []string
		wantPages bool
	}{
		{
			name:      "envelope",
			body:      `{"success":true,"data":[{"_id":"a1","title":"Naruto"}],"pagination":{"current":1,"totalPages":3,"hasMore":true,"totalItems":90}}`,
			wantIDs:   []string{"a1"},
			wantPages: true,
		},
		{
			name:    "bare array",
			body:    `[{"id":"b1"},{"_id":"b2"}]`,
			wantIDs: []string{"b1", "b2"},
		},
		{
			name:    "envelope with object data",
			body:    `{"success":true,"data":{"items":[]}}`,
			wantIDs: []string{},
		},
		{
			name:    "object without success",
			body:    `{"items":[{"_id":"x"}]}`,
			wantIDs: []string{},
		},
		{
			name:    "scalar",
			body:    `"hello"`,
			wantIDs: []string{},
		},
		{
			name:    "empty body",
			body:    ``,
			wantIDs: []string{},
		},
		{
			name:    "malformed json",
			body:    `[{"_id":`,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := parseListing([]byte(tt.body))

			ids := make([]string, 0, len(listing.Items))
			for _, item := range listing.Items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantPages, listing.Pagination != nil)
		})
	}
}

func TestNormalizeContent_Defaults(t *testing.T) {
	withYear(t, 2026)

	item := normalizeContent(rawContent{MongoID: "m1"})

	assert.Equal(t, "m1", item.ID)
	assert.Equal(t, DefaultTitle, item.Title)
	assert.Equal(t, DefaultThumbnail, item.Thumbnail)
	assert.Equal(t, 2026, item.ReleaseYear)
	assert.Equal(t, models.SubDubHindiSub, item.SubDub)
	assert.Equal(t, models.StatusOngoing, item.Status)
	assert.Equal(t, models.ContentTypeAnime, item.Type)
	assert.Equal(t, []string{DefaultGenre}, item.Genres)
	assert.NotNil(t, item.Episodes)
	assert.NotNil(t, item.Chapters)
	assert.Empty(t, item.Episodes)
}

func TestNormalizeContent_KeepsValues(t *testing.T) {
	listing := parseListing([]byte(`[{
		"_id": "m1",
		"id": "legacy-1",
		"title": " One Piece ",
		"thumbnail": "https://img/op.jpg",
		"releaseYear": "1999",
		"subDubStatus": "Hindi Dub",
		"contentType": "Manga",
		"status": "Complete",
		"genres": "Action, Adventure",
		"description": "<p>Pirates <b>and</b>\n treasure</p>"
	}]`))
	require.Len(t, listing.Items, 1)

	item := listing.Items[0]
	assert.Equal(t, "m1", item.ID)
	assert.Equal(t, "legacy-1", item.AltID)
	assert.True(t, item.MatchesID("legacy-1"))
	assert.True(t, item.MatchesID("m1"))
	assert.Equal(t, "One Piece", item.Title)
	assert.Equal(t, 1999, item.ReleaseYear)
	assert.Equal(t, models.SubDubHindiDub, item.SubDub)
	assert.Equal(t, models.ContentTypeManga, item.Type)
	assert.Equal(t, models.StatusComplete, item.Status)
	assert.Equal(t, []string{"Action", "Adventure"}, item.Genres)
	assert.Equal(t, "Pirates and treasure", item.Description)
}

func TestParseEpisodes(t *testing.T) {
	t.Run("normalizes numbers, sessions and links", func(t *testing.T) {
		eps := parseEpisodes([]byte(`[
			{"_id":"e1","animeId":"a1","episodeNumber":1,"downloadLink":"https://dl/1"},
			{"_id":"e2","episodeNumber":"2","session":2,"title":"Return","link":"https://dl/2"},
			{"_id":"c1","mangaId":"m1","chapterNumber":7,"session":0}
		]`), "fallback")

		require.Len(t, eps, 3)
		assert.Equal(t, models.Episode{ID: "e1", ParentID: "a1", Number: 1, Session: 1, Link: "https://dl/1"}, eps[0])
		assert.Equal(t, models.Episode{ID: "e2", ParentID: "fallback", Number: 2, Session: 2, Title: "Return", Link: "https://dl/2"}, eps[1])
		assert.Equal(t, 7, eps[2].Number)
		assert.Equal(t, 1, eps[2].Session)
		assert.Equal(t, "m1", eps[2].ParentID)
	})

	t.Run("non array degrades to empty", func(t *testing.T) {
		assert.Empty(t, parseEpisodes([]byte(`{"success":true,"data":[]}`), "a1"))
		assert.Empty(t, parseEpisodes([]byte(`not json`), "a1"))
		assert.NotNil(t, parseEpisodes(nil, "a1"))
	})
}

func TestEpisodeDisplayTitle(t *testing.T) {
	assert.Equal(t, "Episode 3", models.Episode{Number: 3}.DisplayTitle(false))
	assert.Equal(t, "Chapter 3", models.Episode{Number: 3}.DisplayTitle(true))
	assert.Equal(t, "Finale", models.Episode{Number: 3, Title: "Finale"}.DisplayTitle(false))
}
