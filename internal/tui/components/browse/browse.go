// Package browse renders the home and list pages on top of a catalog
// session and the location-backed filter state.
package browse

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/animabing/animabing/internal/api"
	"github.com/animabing/animabing/internal/catalog"
	"github.com/animabing/animabing/internal/history"
	"github.com/animabing/animabing/internal/models"
	"github.com/animabing/animabing/internal/tui/common"
	"github.com/animabing/animabing/internal/tui/styles"
	"github.com/animabing/animabing/internal/tui/utils"
	"github.com/animabing/animabing/internal/urlstate"
)

// Mode selects between the home page and the alphabetical list page
type Mode int

const (
	ModeHome Mode = iota
	ModeList
)

// contentTypeCycle is the order `t` walks through
var contentTypeCycle = []string{
	models.FilterAll,
	string(models.ContentTypeAnime),
	string(models.ContentTypeMovie),
	string(models.ContentTypeManga),
}

var nextID atomic.Int64

// GlowTickMsg advances the selected card's border color
type GlowTickMsg struct {
	ID int64
}

// Options configures a browse view
type Options struct {
	PageSize     int
	Debounce     time.Duration
	GlowInterval time.Duration // zero disables the glow
	Logger       *slog.Logger
}

// Model is one visit to the home or list page
type Model struct {
	id      int64
	mode    Mode
	catalog *catalog.Model
	sync    *urlstate.Synchronizer
	logger  *slog.Logger

	search       textinput.Model
	fuzzy        *common.FuzzySearch
	sortByTitle  bool
	cursor       int
	offset       int
	glow         int
	glowInterval time.Duration
	recent       []history.Item

	width  int
	height int
}

// New starts a catalog session for mode. The search box starts with the
// query held by sync.
func New(mode Mode, fetcher catalog.Fetcher, sync *urlstate.Synchronizer, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "Search anime, movies and manga..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 100
	ti.PlaceholderStyle = styles.HelpStyle
	ti.TextStyle = styles.TitleTextStyle
	ti.SetValue(sync.State().Search)

	return Model{
		id:   nextID.Add(1),
		mode: mode,
		catalog: catalog.New(fetcher, catalog.Options{
			PageSize: opts.PageSize,
			Debounce: opts.Debounce,
			Logger:   opts.Logger,
		}),
		sync:         sync,
		logger:       opts.Logger,
		search:       ti,
		fuzzy:        common.NewFuzzySearch(),
		sortByTitle:  mode == ModeList,
		glowInterval: opts.GlowInterval,
	}
}

// Init loads the first page and, when the location carried a search,
// schedules it.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.catalog.Init()}
	if q := strings.TrimSpace(m.search.Value()); q != "" {
		cmds = append(cmds, m.catalog.SetQuery(q))
	}
	cmds = append(cmds, m.glowTick())
	return tea.Batch(cmds...)
}

// Close ends the catalog session
func (m Model) Close() {
	m.catalog.Close()
}

// Mode returns the page this view renders
func (m Model) Mode() Mode { return m.mode }

// Catalog exposes the underlying listing session
func (m Model) Catalog() *catalog.Model { return m.catalog }

// Editing reports whether keystrokes are going to a text input
func (m Model) Editing() bool {
	return m.search.Focused() || m.fuzzy.IsEditing()
}

// Cursor returns the index of the selected visible item
func (m Model) Cursor() int { return m.cursor }

// SetSize sets the viewport size
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = max(20, width-10)
	m.fuzzy.SetWidth(width)
}

// SyncFromState picks up a search that changed in the location, e.g.
// after going back.
func (m *Model) SyncFromState() tea.Cmd {
	q := m.sync.State().Search
	if q == m.search.Value() {
		m.clampCursor()
		return nil
	}
	m.search.SetValue(q)
	m.cursor, m.offset = 0, 0
	return m.catalog.SetQuery(q)
}

// Selected returns the item under the cursor
func (m Model) Selected() (models.ContentItem, bool) {
	visible := m.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return models.ContentItem{}, false
	}
	return visible[m.cursor], true
}

// Visible returns what the page shows: the catalog filtered by the
// location's filters and, on the list page, the local fuzzy filter.
func (m Model) Visible() []models.ContentItem {
	state := m.sync.State()
	items := m.catalog.Visible(state.ContentType, state.SubDub, m.sortByTitle)
	if m.mode != ModeList || !m.fuzzy.IsActive() {
		return items
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}
	matched := m.fuzzy.Filter(titles)
	out := make([]models.ContentItem, len(matched))
	for i, idx := range matched {
		out[i] = items[idx]
	}
	return out
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case catalog.PageLoadedMsg, catalog.SearchLoadedMsg, catalog.DebounceMsg:
		var cmd tea.Cmd
		m.catalog, cmd = m.catalog.Update(msg)
		m.clampCursor()
		return m, cmd

	case GlowTickMsg:
		if msg.ID != m.id || m.catalog.Closed() {
			return m, nil
		}
		m.glow++
		cmd := m.glowTick()
		return m, cmd

	case common.RecentLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("failed to load recent downloads", "error", msg.Err)
			return m, nil
		}
		m.recent = msg.Items
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearchInput(msg)
		}
		if m.fuzzy.IsEditing() {
			return m.updateFuzzy(msg)
		}
		return m.handleKey(msg)
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	cmd := m.fuzzy.Update(msg)
	return m, cmd
}

func (m Model) updateSearchInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		return m, nil
	case "esc":
		m.search.Blur()
		cmd := m.applySearch("")
		return m, cmd
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	search := m.applySearch(m.search.Value())
	return m, tea.Batch(cmd, search)
}

func (m *Model) applySearch(q string) tea.Cmd {
	m.search.SetValue(q)
	m.cursor, m.offset = 0, 0
	m.sync.SetSearch(q)
	return m.catalog.SetQuery(q)
}

func (m Model) updateFuzzy(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.fuzzy.Lock()
		return m, nil
	case "esc":
		m.fuzzy.Deactivate()
		m.cursor, m.offset = 0, 0
		return m, nil
	}
	cmd := m.fuzzy.Update(msg)
	m.cursor, m.offset = 0, 0
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.adjustOffset()
		return m, nil

	case "down", "j":
		if m.cursor < len(m.Visible())-1 {
			m.cursor++
		}
		m.adjustOffset()
		cmd := m.scrolled()
		return m, cmd

	case "pgdown":
		m.cursor = min(m.cursor+m.pageRows(), max(len(m.Visible())-1, 0))
		m.adjustOffset()
		cmd := m.scrolled()
		return m, cmd

	case "pgup":
		m.cursor = max(m.cursor-m.pageRows(), 0)
		m.adjustOffset()
		return m, nil

	case "/":
		if m.mode == ModeList {
			if m.fuzzy.IsActive() {
				cmd := m.fuzzy.Unlock()
				return m, cmd
			}
			cmd := m.fuzzy.Activate()
			return m, cmd
		}
		m.search.Focus()
		return m, textinput.Blink

	case "esc":
		if m.fuzzy.IsActive() {
			m.fuzzy.Deactivate()
			m.cursor, m.offset = 0, 0
			return m, nil
		}
		if m.search.Value() != "" {
			cmd := m.applySearch("")
			return m, cmd
		}
		if m.mode == ModeList {
			return m, func() tea.Msg { return common.BackMsg{} }
		}
		return m, nil

	case "enter":
		item, ok := m.Selected()
		if !ok {
			return m, nil
		}
		location := urlstate.DetailPath(item.ID)
		return m, func() tea.Msg { return common.NavigateMsg{Location: location} }

	case "0":
		m.cursor, m.offset = 0, 0
		m.sync.SetSubDub(models.FilterAll)
		return m, nil

	case "t":
		m.cursor, m.offset = 0, 0
		m.sync.SetContentType(nextContentType(m.sync.State().ContentType))
		return m, nil

	case "s":
		if m.mode == ModeList {
			m.sortByTitle = !m.sortByTitle
			m.cursor, m.offset = 0, 0
		}
		return m, nil

	case "l":
		if m.mode != ModeHome {
			return m, nil
		}
		location := urlstate.Encode(urlstate.ListPath, m.sync.State())
		return m, func() tea.Msg { return common.NavigateMsg{Location: location} }

	case "r":
		cmd := m.catalog.Retry()
		return m, cmd
	}

	return m, nil
}

// scrolled reports the cursor position to the catalog so it can load the
// next page.
func (m Model) scrolled() tea.Cmd {
	n := len(m.Visible())
	if n == 0 {
		return nil
	}
	return m.catalog.Scrolled(float64(m.cursor+1), float64(n))
}

func (m Model) glowTick() tea.Cmd {
	if m.mode != ModeHome || m.glowInterval <= 0 {
		return nil
	}
	id := m.id
	return tea.Tick(m.glowInterval, func(time.Time) tea.Msg {
		return GlowTickMsg{ID: id}
	})
}

func nextContentType(current string) string {
	for i, ct := range contentTypeCycle {
		if ct == current {
			return contentTypeCycle[(i+1)%len(contentTypeCycle)]
		}
	}
	return contentTypeCycle[1]
}

func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.adjustOffset()
}

func (m *Model) adjustOffset() {
	rows := m.pageRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// pageRows is how many cards fit on screen
func (m Model) pageRows() int {
	used := 8
	if m.mode == ModeHome && len(m.recent) > 0 {
		used += min(len(m.recent), 3) + 2
	}
	return max((m.height-used)/2, 1)
}

// View renders the page
func (m Model) View() string {
	var b strings.Builder

	title := "Animabing"
	if m.mode == ModeList {
		title = "Animabing · A-Z"
	}
	b.WriteString(styles.LogoStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(styles.SubtitleStyle.Render(m.subtitle()))
	b.WriteString("\n\n")

	state := m.sync.State()
	b.WriteString(m.renderTabs(state))
	b.WriteString("\n")

	if m.mode == ModeList {
		if fv := m.fuzzy.View(); fv != "" {
			b.WriteString(fv)
		} else {
			b.WriteString(styles.HelpStyle.Render("/ to filter • s to toggle A-Z"))
		}
	} else {
		b.WriteString(m.search.View())
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderBody())

	if m.mode == ModeHome && len(m.recent) > 0 && !m.catalog.Searched() {
		b.WriteString("\n")
		b.WriteString(m.renderRecent())
	}

	return b.String()
}

func (m Model) subtitle() string {
	switch {
	case m.catalog.Searched():
		return fmt.Sprintf("Results for %q", m.catalog.LastSearch())
	case m.mode == ModeList:
		return "Full list"
	default:
		return "Latest additions"
	}
}

func (m Model) renderTabs(state urlstate.FilterState) string {
	tabs := make([]string, 0, len(models.SubDubs)+2)

	all := "0 All"
	if state.SubDub == models.FilterAll {
		tabs = append(tabs, styles.TabActiveStyle.Render(all))
	} else {
		tabs = append(tabs, styles.TabStyle.Render(all))
	}
	for i, sd := range models.SubDubs {
		label := fmt.Sprintf("%d %s", i+1, sd)
		if state.SubDub == string(sd) {
			tabs = append(tabs, styles.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(label))
		}
	}

	typeLabel := "t Type: " + state.ContentType
	tabs = append(tabs, styles.AccentStyle.Render(typeLabel))

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderBody() string {
	visible := m.Visible()

	switch m.catalog.EmptyState(len(visible)) {
	case catalog.EmptyLoading:
		if m.catalog.Phase() == catalog.PhaseSearching {
			return styles.MetadataStyle.Render(fmt.Sprintf("Searching for %q...", m.catalog.LastSearch())) + "\n"
		}
		return styles.MetadataStyle.Render("Loading catalog...") + "\n"

	case catalog.EmptyErrored:
		return m.renderError()

	case catalog.EmptyNoResults:
		return styles.TitleTextStyle.Render("No Results Found") + "\n" +
			styles.HelpStyle.Render("Try a different search or clear it with esc") + "\n"

	case catalog.EmptyCatalog:
		if len(m.catalog.Items()) > 0 {
			return styles.TitleTextStyle.Render("Nothing matches these filters") + "\n" +
				styles.HelpStyle.Render("Press 0 for every language or t to change the type") + "\n"
		}
		return styles.TitleTextStyle.Render("The catalog is empty") + "\n"
	}

	var b strings.Builder
	end := min(m.offset+m.pageRows(), len(visible))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderCard(visible[i], i == m.cursor))
		b.WriteString("\n")
	}

	switch {
	case m.catalog.Phase() == catalog.PhaseLoadingMore:
		b.WriteString(styles.HelpStyle.Render("Loading more..."))
	case m.catalog.HasMore():
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("%d titles • scroll for more", len(visible))))
	default:
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("%d titles", len(visible))))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderError() string {
	heading := "Could not load the catalog"
	if catalog.IsSearchError(m.catalog.Err()) {
		heading = "Search failed"
	}
	return styles.ErrorStyle.Render(heading) + "\n" +
		styles.MetadataStyle.Render(api.UserMessage(m.catalog.Err())) + "\n" +
		styles.HelpStyle.Render("Press r to retry") + "\n"
}

func (m Model) renderCard(item models.ContentItem, selected bool) string {
	width := max(m.width-8, 20)

	title := styles.TitleTextStyle.Render(utils.Truncate(item.Title, width))
	meta := styles.Badge(string(item.Type), styles.TypeColor(item.Type)) +
		styles.MetadataStyle.Render(fmt.Sprintf("%d • %s • ", item.ReleaseYear, item.SubDub)) +
		lipgloss.NewStyle().Foreground(styles.StatusColor(item.Status)).Render(string(item.Status))

	card := title + "\n" + meta
	if !selected {
		return styles.CardStyle.Render(card)
	}

	style := styles.CardSelectedStyle
	if m.mode == ModeHome && m.glowInterval > 0 {
		style = style.BorderForeground(styles.GlowColor(m.glow))
	}
	return style.Render(card)
}

func (m Model) renderRecent() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Recently opened"))
	b.WriteString("\n")
	width := max(m.width-20, 20)
	for _, item := range m.recent[:min(len(m.recent), 3)] {
		b.WriteString("  ")
		b.WriteString(styles.MetadataStyle.Render(utils.Truncate(item.Label(), width)))
		b.WriteString(" ")
		b.WriteString(styles.HelpStyle.Render(item.Ago()))
		b.WriteString("\n")
	}
	return b.String()
}
