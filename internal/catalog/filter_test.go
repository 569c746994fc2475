package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/animabing/animabing/internal/models"
)

func item(id, title string, ct models.ContentType, sd models.SubDub) models.ContentItem {
	return models.ContentItem{ID: id, Title: title, Type: ct, SubDub: sd}
}

func ids(items []models.ContentItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestVisible(t *testing.T) {
	raw := []models.ContentItem{
		item("1", "Naruto", models.ContentTypeAnime, models.SubDubHindiDub),
		item("2", "Berserk", models.ContentTypeManga, models.SubDubHindiSub),
		item("3", "akira", models.ContentTypeMovie, models.SubDubHindiDub),
		item("1", "Naruto (dup)", models.ContentTypeAnime, models.SubDubHindiDub),
		item("4", "Bleach", models.ContentTypeAnime, models.SubDubEnglishSub),
	}

	tests := []struct {
		name        string
		contentType string
		subDub      string
		sort        bool
		want        []string
	}{
		{name: "no filters keeps order and dedupes", contentType: models.FilterAll, subDub: models.FilterAll, want: []string{"1", "2", "3", "4"}},
		{name: "empty filter values mean all", want: []string{"1", "2", "3", "4"}},
		{name: "content type", contentType: "Anime", subDub: models.FilterAll, want: []string{"1", "4"}},
		{name: "sub dub", contentType: models.FilterAll, subDub: "Hindi Dub", want: []string{"1", "3"}},
		{name: "both", contentType: "Movie", subDub: "Hindi Dub", want: []string{"3"}},
		{name: "nothing matches", contentType: "Manga", subDub: "English Dub", want: []string{}},
		{name: "sorted by title ignoring case", contentType: models.FilterAll, subDub: models.FilterAll, sort: true, want: []string{"3", "2", "4", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Visible(raw, tt.contentType, tt.subDub, tt.sort)))
		})
	}
}

func TestVisible_KeepsFirstDuplicate(t *testing.T) {
	p1 := []models.ContentItem{item("a", "First", models.ContentTypeAnime, models.SubDubHindiSub)}
	p2 := []models.ContentItem{
		item("a", "Second", models.ContentTypeAnime, models.SubDubHindiSub),
		item("b", "Other", models.ContentTypeAnime, models.SubDubHindiSub),
	}

	merged := append(append([]models.ContentItem{}, p1...), p2...)
	got := Visible(merged, models.FilterAll, models.FilterAll, false)

	assert.Len(t, got, len(p1)+len(p2)-1)
	assert.Equal(t, "First", got[0].Title)
}

func TestVisible_IdempotentAndPure(t *testing.T) {
	raw := []models.ContentItem{
		item("2", "B", models.ContentTypeAnime, models.SubDubHindiDub),
		item("1", "A", models.ContentTypeAnime, models.SubDubHindiDub),
		item("2", "B again", models.ContentTypeAnime, models.SubDubHindiDub),
	}
	snapshot := append([]models.ContentItem{}, raw...)

	once := Visible(raw, "Anime", "Hindi Dub", true)
	twice := Visible(once, "Anime", "Hindi Dub", true)

	assert.Equal(t, once, twice)
	assert.Equal(t, snapshot, raw, "input must not be modified")
}
