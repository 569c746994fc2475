package common

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/animabing/animabing/internal/tui/styles"
)

// FuzzySearch is a local, in-memory filter for list views
type FuzzySearch struct {
	input  textinput.Model
	active bool
	locked bool // filter applied but not editable, so action keys work
}

// NewFuzzySearch creates a new fuzzy search component
func NewFuzzySearch() *FuzzySearch {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.TextStyle = styles.MetadataStyle
	ti.PlaceholderStyle = styles.HelpStyle

	return &FuzzySearch{input: ti}
}

// Activate starts editing an empty filter
func (f *FuzzySearch) Activate() tea.Cmd {
	f.active = true
	f.locked = false
	f.input.SetValue("")
	f.input.Focus()
	return textinput.Blink
}

// Deactivate clears the filter
func (f *FuzzySearch) Deactivate() {
	f.active = false
	f.locked = false
	f.input.Blur()
	f.input.SetValue("")
}

// Lock keeps the filter applied but stops editing
func (f *FuzzySearch) Lock() {
	if f.active {
		f.locked = true
		f.input.Blur()
	}
}

// Unlock resumes editing
func (f *FuzzySearch) Unlock() tea.Cmd {
	if !f.active {
		return nil
	}
	f.locked = false
	f.input.Focus()
	return textinput.Blink
}

// IsActive reports whether a filter is applied
func (f *FuzzySearch) IsActive() bool { return f.active }

// IsEditing reports whether keystrokes go to the filter input
func (f *FuzzySearch) IsEditing() bool { return f.active && !f.locked }

// Query returns the filter text
func (f *FuzzySearch) Query() string { return f.input.Value() }

// SetQuery replaces the filter text and activates the filter
func (f *FuzzySearch) SetQuery(q string) {
	f.active = true
	f.input.SetValue(q)
}

// Update forwards input while editing
func (f *FuzzySearch) Update(msg tea.Msg) tea.Cmd {
	if !f.IsEditing() {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// View renders the filter line
func (f *FuzzySearch) View() string {
	if !f.active {
		return ""
	}

	label := styles.MetadataStyle.Render("Filter: ")
	bar := styles.AccentStyle.Render("┃")
	if f.locked {
		hint := styles.HelpStyle.Render(" (/ to edit • esc to clear)")
		return label + bar + " " + styles.TitleTextStyle.Render(f.Query()) + hint
	}
	return label + bar + " " + f.input.View() + styles.HelpStyle.Render(" (enter to apply)")
}

// SetWidth sets the input width
func (f *FuzzySearch) SetWidth(width int) {
	f.input.Width = max(10, width-30)
}

// Filter returns the indices of candidates matching the query, best match
// first. Without a query every index is returned in order.
func (f *FuzzySearch) Filter(candidates []string) []int {
	if !f.active || f.Query() == "" {
		indices := make([]int, len(candidates))
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	matches := fuzzy.Find(f.Query(), candidates)
	indices := make([]int, len(matches))
	for i, match := range matches {
		indices[i] = match.Index
	}
	return indices
}
