package urlstate

import "sync"

// History is an in-memory Navigator with a back stack
type History struct {
	mu      sync.Mutex
	entries []string
}

// NewHistory creates a history positioned at initial ("/" when empty)
func NewHistory(initial string) *History {
	if initial == "" {
		initial = HomePath
	}
	return &History{entries: []string{initial}}
}

// Location returns the current entry
func (h *History) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

// Replace swaps the current entry
func (h *History) Replace(location string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[len(h.entries)-1] = location
}

// Push adds a new entry
func (h *History) Push(location string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, location)
}

// Back drops the current entry. It reports false at the first entry.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) <= 1 {
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return true
}

// Len returns the number of entries
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
