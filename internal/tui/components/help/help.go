package help

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/animabing/animabing/internal/tui/styles"
	"github.com/animabing/animabing/internal/tui/utils"
)

// HelpContext represents which view the help is being shown in
type HelpContext int

const (
	GlobalContext HelpContext = iota
	HomeContext
	ListContext
	DetailContext
	ReportContext
)

// Shortcut represents a keyboard shortcut with its description
type Shortcut struct {
	Key         string
	Description string
	Context     []HelpContext
}

const keyColumn = 16

// Model represents the help panel state
type Model struct {
	context      HelpContext
	width        int
	height       int
	visible      bool
	scrollOffset int
}

var allShortcuts = []Shortcut{
	{Key: "j/k, up/down", Description: "Move the cursor", Context: []HelpContext{GlobalContext}},
	{Key: "enter", Description: "Open / confirm", Context: []HelpContext{GlobalContext}},
	{Key: "esc", Description: "Go back / cancel", Context: []HelpContext{GlobalContext}},
	{Key: ":", Description: "Edit the location", Context: []HelpContext{GlobalContext}},
	{Key: "ctrl+h", Description: "Return to home", Context: []HelpContext{GlobalContext}},
	{Key: "1-5", Description: "Jump to a language shortcut", Context: []HelpContext{GlobalContext}},
	{Key: "?", Description: "Show/hide this help", Context: []HelpContext{GlobalContext}},
	{Key: "q, ctrl+c", Description: "Quit", Context: []HelpContext{GlobalContext}},

	{Key: "/", Description: "Search the catalog", Context: []HelpContext{HomeContext}},
	{Key: "0", Description: "Show every language", Context: []HelpContext{HomeContext, ListContext}},
	{Key: "t", Description: "Cycle the content type", Context: []HelpContext{HomeContext, ListContext}},
	{Key: "l", Description: "Open the full list", Context: []HelpContext{HomeContext}},
	{Key: "r", Description: "Retry after an error", Context: []HelpContext{HomeContext, ListContext}},

	{Key: "/", Description: "Filter loaded titles", Context: []HelpContext{ListContext}},
	{Key: "s", Description: "Toggle A-Z sorting", Context: []HelpContext{ListContext}},

	{Key: "[ / ]", Description: "Previous / next season", Context: []HelpContext{DetailContext}},
	{Key: "enter", Description: "Download the selection", Context: []HelpContext{DetailContext}},
	{Key: "y", Description: "Copy the download link", Context: []HelpContext{DetailContext}},
	{Key: "r", Description: "Report an issue", Context: []HelpContext{DetailContext}},

	{Key: "tab", Description: "Next field", Context: []HelpContext{ReportContext}},
	{Key: "shift+tab", Description: "Previous field", Context: []HelpContext{ReportContext}},
	{Key: "enter", Description: "Submit on the last field", Context: []HelpContext{ReportContext}},
}

// New creates a new help model
func New() Model {
	return Model{context: GlobalContext}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}
		case "down", "j":
			m.scrollOffset++
		case "pgup", "b":
			m.scrollOffset = max(m.scrollOffset-10, 0)
		case "pgdown", " ", "f":
			m.scrollOffset += 10
		case "home", "g":
			m.scrollOffset = 0
		}
	}
	return m, nil
}

// Content renders the shortcut listing without the surrounding box
func (m Model) Content() string {
	var content strings.Builder

	global := filterByContext(allShortcuts, GlobalContext)
	content.WriteString(styles.SubtitleStyle.Render("Navigation & General"))
	content.WriteString("\n")
	for _, sc := range global {
		content.WriteString(renderShortcutLine(sc))
		content.WriteString("\n")
	}

	if m.context != GlobalContext {
		specific := filterByContext(allShortcuts, m.context)
		if len(specific) > 0 {
			content.WriteString("\n")
			content.WriteString(styles.SubtitleStyle.Render(m.contextName() + " Actions"))
			content.WriteString("\n")
			for _, sc := range specific {
				content.WriteString(renderShortcutLine(sc))
				content.WriteString("\n")
			}
		}
	}

	return content.String()
}

// View renders the help panel
func (m Model) View() string {
	if !m.visible || m.width == 0 || m.height == 0 {
		return ""
	}

	lines := strings.Split(strings.TrimRight(m.Content(), "\n"), "\n")

	available := max(m.height-8, 5)
	offset := min(m.scrollOffset, max(len(lines)-available, 0))
	end := min(offset+available, len(lines))

	title := "KEYBOARD SHORTCUTS"
	if len(lines) > available {
		title += fmt.Sprintf(" (%d-%d/%d)", offset+1, end, len(lines))
	}

	boxWidth := min(60, max(m.width-4, 30))
	titleBar := lipgloss.NewStyle().
		Foreground(styles.OxocarbonWhite).
		Background(styles.OxocarbonPurple).
		Bold(true).
		Width(boxWidth - 4).
		Align(lipgloss.Center).
		Render(title)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OxocarbonPurple).
		Padding(0, 1).
		Width(boxWidth).
		Render(titleBar + "\n\n" + strings.Join(lines[offset:end], "\n") + "\n\n" +
			styles.HelpStyle.Render("j/k scroll • esc/? close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// SetContext sets the current help context
func (m *Model) SetContext(ctx HelpContext) {
	m.context = ctx
}

// Context returns the current help context
func (m Model) Context() HelpContext {
	return m.context
}

// Toggle toggles the visibility of the help panel
func (m *Model) Toggle() {
	if m.visible {
		m.Hide()
		return
	}
	m.Show()
}

// Show shows the help panel
func (m *Model) Show() {
	m.visible = true
	m.scrollOffset = 0
}

// Hide hides the help panel
func (m *Model) Hide() {
	m.visible = false
	m.scrollOffset = 0
}

// IsVisible returns whether the help panel is visible
func (m Model) IsVisible() bool {
	return m.visible
}

func renderShortcutLine(sc Shortcut) string {
	return "  " + styles.AccentStyle.Render(utils.PadRight(sc.Key, keyColumn)) + styles.MetadataStyle.Render(sc.Description)
}

func (m Model) contextName() string {
	switch m.context {
	case HomeContext:
		return "Home"
	case ListContext:
		return "List"
	case DetailContext:
		return "Detail"
	case ReportContext:
		return "Report"
	default:
		return ""
	}
}

// filterByContext returns the shortcuts tagged with ctx. Global shortcuts
// only show up in the global section.
func filterByContext(shortcuts []Shortcut, ctx HelpContext) []Shortcut {
	var filtered []Shortcut
	for _, sc := range shortcuts {
		isGlobal := hasContext(sc, GlobalContext)
		if ctx != GlobalContext && isGlobal {
			continue
		}
		if hasContext(sc, ctx) {
			filtered = append(filtered, sc)
		}
	}
	return filtered
}

func hasContext(sc Shortcut, ctx HelpContext) bool {
	for _, c := range sc.Context {
		if c == ctx {
			return true
		}
	}
	return false
}
