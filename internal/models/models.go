package models

import (
	"fmt"
	"strings"
)

// ContentType is the kind of catalog entry
type ContentType string

const (
	ContentTypeAnime ContentType = "Anime"
	ContentTypeMovie ContentType = "Movie"
	ContentTypeManga ContentType = "Manga"
)

// ContentTypes lists every concrete content type in display order
var ContentTypes = []ContentType{ContentTypeAnime, ContentTypeMovie, ContentTypeManga}

// SubDub is the subtitle/dub availability of an entry
type SubDub string

const (
	SubDubHindiSub    SubDub = "Hindi Sub"
	SubDubHindiDub    SubDub = "Hindi Dub"
	SubDubEnglishSub  SubDub = "English Sub"
	SubDubEnglishDub  SubDub = "English Dub"
	SubDubHindiSubDub SubDub = "Hindi Sub & Dub"
)

// SubDubs lists the filter shortcuts shown in the navigation bar
var SubDubs = []SubDub{SubDubHindiSub, SubDubHindiDub, SubDubEnglishSub, SubDubEnglishDub, SubDubHindiSubDub}

// Status is the airing/publication status of an entry
type Status string

const (
	StatusOngoing  Status = "Ongoing"
	StatusComplete Status = "Complete"
)

// FilterAll is the filter value that disables content-type and sub/dub filtering
const FilterAll = "All"

// ContentItem is a single anime, movie or manga entry.
// Every field is populated after normalization.
type ContentItem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Thumbnail   string      `json:"thumbnail"`
	ReleaseYear int         `json:"releaseYear"`
	SubDub      SubDub      `json:"subDubStatus"`
	Type        ContentType `json:"contentType"`
	Status      Status      `json:"status"`
	Genres      []string    `json:"genres"`
	Description string      `json:"description"`

	// Filled lazily by the detail view, empty in listings
	Episodes []Episode `json:"episodes,omitempty"`
	Chapters []Episode `json:"chapters,omitempty"`

	// AltID keeps the identifier under the field name the backend did not use
	// for ID, so lookups can match either.
	AltID string `json:"-"`
}

// HasChapters reports whether the entry lists chapters rather than episodes
func (c ContentItem) HasChapters() bool {
	return c.Type == ContentTypeManga
}

// MatchesID reports whether id equals either identifier of the entry
func (c ContentItem) MatchesID(id string) bool {
	if id == "" {
		return false
	}
	return c.ID == id || (c.AltID != "" && c.AltID == id)
}

// Children returns the child collection selected by content type
func (c ContentItem) Children() []Episode {
	if c.HasChapters() {
		return c.Chapters
	}
	return c.Episodes
}

// Episode is an episode of an anime/movie or a chapter of a manga
type Episode struct {
	ID       string `json:"id"`
	ParentID string `json:"parentId"`
	Number   int    `json:"number"`
	Session  int    `json:"session"`
	Title    string `json:"title"`
	Link     string `json:"link"`
}

// DisplayTitle returns the title, falling back to "Episode N" or "Chapter N"
func (e Episode) DisplayTitle(chapter bool) string {
	if strings.TrimSpace(e.Title) != "" {
		return e.Title
	}
	if chapter {
		return fmt.Sprintf("Chapter %d", e.Number)
	}
	return fmt.Sprintf("Episode %d", e.Number)
}

// IssueType categorises a user report
type IssueType string

const (
	IssueBrokenLink   IssueType = "Broken Link"
	IssueWrongEpisode IssueType = "Wrong Episode"
	IssueAudioIssue   IssueType = "Audio Issue"
	IssueVideoQuality IssueType = "Video Quality"
	IssueOther        IssueType = "Other"
)

// IssueTypes lists every issue type in form order
var IssueTypes = []IssueType{IssueBrokenLink, IssueWrongEpisode, IssueAudioIssue, IssueVideoQuality, IssueOther}

// Report is a user-submitted problem report for an entry or one of its episodes
type Report struct {
	ID            string    `json:"_id,omitempty"`
	AnimeID       string    `json:"animeId" validate:"required"`
	EpisodeID     string    `json:"episodeId,omitempty"`
	EpisodeNumber int       `json:"episodeNumber,omitempty" validate:"gte=0"`
	IssueType     IssueType `json:"issueType" validate:"required"`
	Description   string    `json:"description" validate:"required,min=10"`
	Email         string    `json:"email,omitempty" validate:"omitempty,email"`
	Username      string    `json:"username,omitempty"`
	Status        string    `json:"status,omitempty"`
	CreatedAt     string    `json:"createdAt,omitempty"`
}
