package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/animabing/animabing/internal/models"
)

// Field defaults applied to every record. The rest of the client assumes
// every ContentItem field is present.
const (
	DefaultTitle     = "Untitled"
	DefaultThumbnail = "/placeholder.jpg"
	DefaultGenre     = "Anime"
)

var currentYear = func() int { return time.Now().Year() }

// Pagination is the optional pagination block of a listing envelope
type Pagination struct {
	Current    int  `json:"current"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
	TotalItems int  `json:"totalItems"`
}

// Listing is a parsed listing response
type Listing struct {
	Items      []models.ContentItem
	Pagination *Pagination
}

type envelope struct {
	Success    *bool           `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
	Message    string          `json:"message"`
	Error      json.RawMessage `json:"error"`
}

// flexInt accepts a JSON number or a numeric string
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil
		}
		*f = flexInt(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return nil
	}
	*f = flexInt(int(n))
	return nil
}

// flexStrings accepts a JSON string array or a comma separated string
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*f = out
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	*f = out
	return nil
}

type rawContent struct {
	MongoID      string      `json:"_id"`
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Thumbnail    string      `json:"thumbnail"`
	ReleaseYear  flexInt     `json:"releaseYear"`
	SubDubStatus string      `json:"subDubStatus"`
	ContentType  string      `json:"contentType"`
	Status       string      `json:"status"`
	Genres       flexStrings `json:"genres"`
	Description  string      `json:"description"`
}

type rawEpisode struct {
	MongoID       string  `json:"_id"`
	ID            string  `json:"id"`
	AnimeID       string  `json:"animeId"`
	MangaID       string  `json:"mangaId"`
	EpisodeNumber flexInt `json:"episodeNumber"`
	ChapterNumber flexInt `json:"chapterNumber"`
	Number        flexInt `json:"number"`
	Session       flexInt `json:"session"`
	Title         string  `json:"title"`
	DownloadLink  string  `json:"downloadLink"`
	Link          string  `json:"link"`
}

// parseListing decodes a listing body that is either a {success, data}
// envelope or a bare array. Any other shape yields an empty listing.
func parseListing(body []byte) Listing {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Listing{Items: []models.ContentItem{}}
	}

	var raws []rawContent
	var pagination *Pagination

	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &raws); err != nil {
			raws = nil
		}
	case '{':
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil || env.Success == nil {
			break
		}
		data := bytes.TrimSpace(env.Data)
		if len(data) == 0 || data[0] != '[' {
			break
		}
		if err := json.Unmarshal(data, &raws); err != nil {
			raws = nil
		}
		pagination = env.Pagination
	}

	items := make([]models.ContentItem, 0, len(raws))
	for _, r := range raws {
		items = append(items, normalizeContent(r))
	}
	return Listing{Items: items, Pagination: pagination}
}

// parseEpisodes decodes a bare array of episodes or chapters. Anything else,
// including an enveloped array, yields an empty slice.
func parseEpisodes(body []byte, parentID string) []models.Episode {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return []models.Episode{}
	}

	var raws []rawEpisode
	if err := json.Unmarshal(body, &raws); err != nil {
		return []models.Episode{}
	}

	eps := make([]models.Episode, 0, len(raws))
	for _, r := range raws {
		eps = append(eps, normalizeEpisode(r, parentID))
	}
	return eps
}

func normalizeContent(r rawContent) models.ContentItem {
	item := models.ContentItem{
		ID:          firstNonEmpty(r.MongoID, r.ID),
		Title:       strings.TrimSpace(r.Title),
		Thumbnail:   strings.TrimSpace(r.Thumbnail),
		ReleaseYear: int(r.ReleaseYear),
		SubDub:      models.SubDub(strings.TrimSpace(r.SubDubStatus)),
		Type:        models.ContentType(strings.TrimSpace(r.ContentType)),
		Status:      models.Status(strings.TrimSpace(r.Status)),
		Description: plainText(r.Description),
		Episodes:    []models.Episode{},
		Chapters:    []models.Episode{},
	}

	// keep the other identifier so lookups can match either field
	if r.MongoID != "" && r.ID != "" && r.MongoID != r.ID {
		item.AltID = r.ID
	}

	if item.Title == "" {
		item.Title = DefaultTitle
	}
	if item.Thumbnail == "" {
		item.Thumbnail = DefaultThumbnail
	}
	if item.ReleaseYear <= 0 {
		item.ReleaseYear = currentYear()
	}
	if item.SubDub == "" {
		item.SubDub = models.SubDubHindiSub
	}
	if item.Status == "" {
		item.Status = models.StatusOngoing
	}
	if item.Type == "" {
		item.Type = models.ContentTypeAnime
	}

	for _, g := range r.Genres {
		if g = strings.TrimSpace(g); g != "" {
			item.Genres = append(item.Genres, g)
		}
	}
	if len(item.Genres) == 0 {
		item.Genres = []string{DefaultGenre}
	}

	return item
}

func normalizeEpisode(r rawEpisode, parentID string) models.Episode {
	ep := models.Episode{
		ID:       firstNonEmpty(r.MongoID, r.ID),
		ParentID: firstNonEmpty(r.AnimeID, r.MangaID, parentID),
		Number:   int(r.EpisodeNumber),
		Session:  int(r.Session),
		Title:    strings.TrimSpace(r.Title),
		Link:     firstNonEmpty(r.DownloadLink, r.Link),
	}
	if ep.Number == 0 {
		ep.Number = int(r.ChapterNumber)
	}
	if ep.Number == 0 {
		ep.Number = int(r.Number)
	}
	if ep.Session < 1 {
		ep.Session = 1
	}
	return ep
}

// plainText flattens HTML descriptions to text and collapses whitespace
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if strings.ContainsRune(s, '<') {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
