// Package detail resolves a content item from its route identifier and
// loads its session-grouped episodes or chapters.
package detail

import (
	"context"
	"log/slog"

	"github.com/animabing/animabing/internal/api"
	"github.com/animabing/animabing/internal/models"
)

// Catalog is the part of the API client the loader needs
type Catalog interface {
	FetchAllStrict(ctx context.Context) ([]models.ContentItem, error)
	FetchEpisodes(ctx context.Context, animeID string) []models.Episode
	FetchChapters(ctx context.Context, mangaID string) []models.Episode
}

// Loader loads detail pages
type Loader struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewLoader creates a Loader
func NewLoader(catalog Catalog, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{catalog: catalog, logger: logger}
}

// Resolve finds the item with the given id in the full listing. It returns
// *api.NotFoundError when no item matches and *api.LoadError when the
// listing could not be fetched.
func (l *Loader) Resolve(ctx context.Context, id string) (models.ContentItem, error) {
	items, err := l.catalog.FetchAllStrict(ctx)
	if err != nil {
		l.logger.Warn("failed to load listing for detail", "id", id, "error", err)
		return models.ContentItem{}, &api.LoadError{ID: id, Err: err}
	}

	for _, item := range items {
		if item.MatchesID(id) {
			return item, nil
		}
	}
	return models.ContentItem{}, &api.NotFoundError{ID: id}
}

// Children fetches the episodes (Anime, Movie) or chapters (Manga) of item.
// Failures degrade to an empty list.
func (l *Loader) Children(ctx context.Context, item models.ContentItem) []models.Episode {
	if item.HasChapters() {
		return l.catalog.FetchChapters(ctx, item.ID)
	}
	return l.catalog.FetchEpisodes(ctx, item.ID)
}

// Page is a loaded detail page
type Page struct {
	Item     models.ContentItem
	Sessions Sessions
}

// Load resolves id and fetches its children. The children are stored on
// the returned item as well.
func (l *Loader) Load(ctx context.Context, id string) (Page, error) {
	item, err := l.Resolve(ctx, id)
	if err != nil {
		return Page{}, err
	}

	children := l.Children(ctx, item)
	if item.HasChapters() {
		item.Chapters = children
	} else {
		item.Episodes = children
	}

	l.logger.Debug("detail loaded", "id", item.ID, "type", item.Type, "children", len(children))
	return Page{Item: item, Sessions: GroupBySession(children)}, nil
}
