package catalog

import "github.com/animabing/animabing/internal/models"

// PageLoadedMsg carries the result of a page fetch
type PageLoadedMsg struct {
	Gen    int
	Query  string // search query in effect when the request was made
	Page   int
	Append bool
	Items  []models.ContentItem
	Err    error
}

// SearchLoadedMsg carries the result of a search
type SearchLoadedMsg struct {
	Gen   int
	Query string
	Items []models.ContentItem
	Err   error
}

// DebounceMsg fires when the search input has been quiet long enough
type DebounceMsg struct {
	Seq int
}
