package help

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/animabing/animabing/internal/tui/tuitest"
)

func TestHelpContent(t *testing.T) {
	tuitest.PlainRendering(t)

	for name, ctx := range map[string]HelpContext{
		"global": GlobalContext,
		"home":   HomeContext,
		"detail": DetailContext,
	} {
		t.Run(name, func(t *testing.T) {
			model := New()
			model.SetContext(ctx)
			tuitest.AssertSnapshot(t, model.Content())
		})
	}
}

func TestHelpView(t *testing.T) {
	tuitest.PlainRendering(t)

	model := New()
	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	assert.Empty(t, model.View(), "hidden panel renders nothing")

	model.Show()
	view := model.View()
	assert.Contains(t, view, "KEYBOARD SHORTCUTS")
	assert.Contains(t, view, "Edit the location")

	model.Toggle()
	assert.False(t, model.IsVisible())
}

func TestHelpScroll(t *testing.T) {
	model := New()
	model.Show()

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 0, model.scrollOffset)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 2, model.scrollOffset)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, 0, model.scrollOffset)
}

func TestFilterByContext(t *testing.T) {
	for _, sc := range filterByContext(allShortcuts, ListContext) {
		assert.False(t, hasContext(sc, GlobalContext))
		assert.True(t, hasContext(sc, ListContext))
	}
	assert.Len(t, filterByContext(allShortcuts, ReportContext), 3)
}
