// Package urlstate mirrors the catalog filters into a navigable location
// string and back.
package urlstate

import (
	"net/url"
	"strings"

	"github.com/animabing/animabing/internal/models"
)

// Query parameter names
const (
	ParamContentType = "contentType"
	ParamFilter      = "filter"
	ParamSearch      = "search"
)

// FilterState is the user-facing filter set shared by the home and list views
type FilterState struct {
	Search      string
	SubDub      string
	ContentType string
}

// DefaultState returns the state with every filter at its default
func DefaultState() FilterState {
	return FilterState{
		SubDub:      models.FilterAll,
		ContentType: models.FilterAll,
	}
}

// IsDefault reports whether every filter is at its default
func (s FilterState) IsDefault() bool {
	return s == DefaultState()
}

// Param is a single decoded query parameter
type Param struct {
	Value   string
	Present bool
}

// Params holds the recognized parameters of a location
type Params struct {
	ContentType Param
	Filter      Param
	Search      Param
}

// Encode builds the location for path from s. Parameters at their default
// value are left out, so a default state yields the bare path.
func Encode(path string, s FilterState) string {
	if path == "" {
		path = "/"
	}

	q := url.Values{}
	if s.ContentType != "" && s.ContentType != models.FilterAll {
		q.Set(ParamContentType, s.ContentType)
	}
	if s.SubDub != "" && s.SubDub != models.FilterAll {
		q.Set(ParamFilter, s.SubDub)
	}
	if s.Search != "" {
		q.Set(ParamSearch, s.Search)
	}

	// Values.Encode sorts by key: contentType, filter, search
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// Decode splits a location into its escaped path and recognized parameters.
// Unparseable locations decode to the home path with no parameters.
func Decode(rawURL string) (string, Params) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "/", Params{}
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	q := u.Query()
	read := func(key string) Param {
		if _, ok := q[key]; !ok {
			return Param{}
		}
		return Param{Value: q.Get(key), Present: true}
	}

	return path, Params{
		ContentType: read(ParamContentType),
		Filter:      read(ParamFilter),
		Search:      read(ParamSearch),
	}
}

// Apply copies every present parameter that differs from s into s and
// reports whether anything changed. Absent parameters leave s untouched.
func (p Params) Apply(s *FilterState) bool {
	changed := false
	set := func(dst *string, param Param, empty string) {
		if !param.Present {
			return
		}
		v := param.Value
		if v == "" {
			v = empty
		}
		if *dst != v {
			*dst = v
			changed = true
		}
	}

	set(&s.ContentType, p.ContentType, models.FilterAll)
	set(&s.SubDub, p.Filter, models.FilterAll)
	set(&s.Search, p.Search, "")
	return changed
}

// Canonical re-encodes a location the way Encode would write it, so two
// spellings of the same location ("%20" or "+") compare equal.
func Canonical(rawURL string) string {
	path, _ := Decode(rawURL)
	return Encode(path, StateOf(rawURL))
}

// StateOf decodes a location into a full state, starting from the defaults
func StateOf(rawURL string) FilterState {
	s := DefaultState()
	_, params := Decode(rawURL)
	params.Apply(&s)
	return s
}
