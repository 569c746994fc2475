package detail

import (
	"sort"

	"github.com/animabing/animabing/internal/models"
)

// Sessions groups episodes by session number
type Sessions struct {
	// Numbers lists the distinct sessions in ascending order
	Numbers []int
	groups  map[int][]models.Episode
}

// GroupBySession groups eps by session, keeping input order within each
// group. A session below 1 counts as session 1.
func GroupBySession(eps []models.Episode) Sessions {
	s := Sessions{groups: make(map[int][]models.Episode)}
	for _, ep := range eps {
		n := ep.Session
		if n < 1 {
			n = 1
		}
		if _, ok := s.groups[n]; !ok {
			s.Numbers = append(s.Numbers, n)
		}
		s.groups[n] = append(s.groups[n], ep)
	}
	sort.Ints(s.Numbers)
	return s
}

// Get returns the episodes of session n
func (s Sessions) Get(n int) []models.Episode {
	return s.groups[n]
}

// Len returns the number of sessions
func (s Sessions) Len() int {
	return len(s.Numbers)
}

// Empty reports whether there are no episodes at all
func (s Sessions) Empty() bool {
	return len(s.Numbers) == 0
}

// First returns the lowest session number, 1 when empty
func (s Sessions) First() int {
	if len(s.Numbers) == 0 {
		return 1
	}
	return s.Numbers[0]
}

// Next returns the session after cur, wrapping around
func (s Sessions) Next(cur int) int {
	return s.step(cur, 1)
}

// Prev returns the session before cur, wrapping around
func (s Sessions) Prev(cur int) int {
	return s.step(cur, -1)
}

func (s Sessions) step(cur, delta int) int {
	if len(s.Numbers) == 0 {
		return 1
	}
	idx := sort.SearchInts(s.Numbers, cur)
	if idx >= len(s.Numbers) || s.Numbers[idx] != cur {
		return s.Numbers[0]
	}
	idx = (idx + delta + len(s.Numbers)) % len(s.Numbers)
	return s.Numbers[idx]
}

// Find looks up an episode by number within a session
func (s Sessions) Find(session, number int) (models.Episode, bool) {
	for _, ep := range s.groups[session] {
		if ep.Number == number {
			return ep, true
		}
	}
	return models.Episode{}, false
}
