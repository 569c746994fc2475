package urlstate

import (
	"log/slog"
	"sync"

	"github.com/animabing/animabing/internal/models"
)

// Navigator is the location the filters are mirrored into
type Navigator interface {
	Location() string
	// Replace swaps the current location without adding a history entry
	Replace(location string)
	// Push navigates to a new location, adding a history entry
	Push(location string)
}

// Synchronizer keeps a FilterState and a Navigator's location consistent in
// both directions. The write direction only navigates when the encoded
// location differs from the current one, which is what stops the two
// directions from feeding each other.
type Synchronizer struct {
	mu     sync.Mutex
	state  FilterState
	nav    Navigator
	logger *slog.Logger
}

// NewSynchronizer creates a synchronizer over nav starting from initial
func NewSynchronizer(initial FilterState, nav Navigator, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{
		state:  initial,
		nav:    nav,
		logger: logger,
	}
}

// State returns a copy of the current filters
func (s *Synchronizer) State() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnLocationChange reads the navigator's location into the state and
// reports whether the state changed.
func (s *Synchronizer) OnLocationChange() bool {
	location := s.nav.Location()
	_, params := Decode(location)

	s.mu.Lock()
	changed := params.Apply(&s.state)
	state := s.state
	s.mu.Unlock()

	if changed {
		s.logger.Debug("filters updated from location", "location", location, "state", state)
	}
	return changed
}

// Commit writes the state into the navigator, replacing the current entry
// only when the encoded location differs. Reports whether it navigated.
func (s *Synchronizer) Commit() bool {
	return s.commit(s.State())
}

// commit runs without the lock held: navigators may call straight back
// into the synchronizer.
func (s *Synchronizer) commit(state FilterState) bool {
	current := s.nav.Location()
	path, _ := Decode(current)

	next := Encode(path, state)
	if next == current || next == Canonical(current) {
		return false
	}

	s.logger.Debug("replacing location", "from", current, "to", next)
	s.nav.Replace(next)
	return true
}

// Update applies fn to the state and commits the result
func (s *Synchronizer) Update(fn func(*FilterState)) bool {
	s.mu.Lock()
	fn(&s.state)
	state := s.state
	s.mu.Unlock()

	return s.commit(state)
}

// SetSearch updates the search query and commits
func (s *Synchronizer) SetSearch(query string) bool {
	return s.Update(func(st *FilterState) { st.Search = query })
}

// SetContentType updates the content-type filter and commits
func (s *Synchronizer) SetContentType(contentType string) bool {
	return s.Update(func(st *FilterState) { st.ContentType = orAll(contentType) })
}

// SetSubDub updates the sub/dub filter and commits
func (s *Synchronizer) SetSubDub(subDub string) bool {
	return s.Update(func(st *FilterState) { st.SubDub = orAll(subDub) })
}

// SelectShortcut applies a named sub/dub shortcut: the sub/dub filter is
// set, the content type reset, the search cleared and the home location
// pushed with the filter embedded, as one step.
func (s *Synchronizer) SelectShortcut(subDub string) {
	state := FilterState{
		SubDub:      orAll(subDub),
		ContentType: models.FilterAll,
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.nav.Push(Encode(HomePath, state))
}

func orAll(v string) string {
	if v == "" {
		return models.FilterAll
	}
	return v
}
