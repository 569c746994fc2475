package catalog

import (
	"sort"
	"strings"

	"github.com/animabing/animabing/internal/models"
)

// Visible derives the displayed items from the raw list: content-type
// filter, then sub/dub filter, then de-duplication by ID keeping the first
// occurrence. Input order is kept unless sortByTitle is set. items is never
// modified.
func Visible(items []models.ContentItem, contentType, subDub string, sortByTitle bool) []models.ContentItem {
	out := make([]models.ContentItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		if contentType != "" && contentType != models.FilterAll && string(item.Type) != contentType {
			continue
		}
		if subDub != "" && subDub != models.FilterAll && string(item.SubDub) != subDub {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}

	if sortByTitle {
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	}
	return out
}
