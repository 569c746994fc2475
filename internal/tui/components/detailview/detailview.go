package detailview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/animabing/animabing/internal/api"
	"github.com/animabing/animabing/internal/detail"
	"github.com/animabing/animabing/internal/models"
	"github.com/animabing/animabing/internal/tui/common"
	"github.com/animabing/animabing/internal/tui/styles"
	"github.com/animabing/animabing/internal/tui/utils"
)

// Loader loads a detail page by route identifier
type Loader interface {
	Load(ctx context.Context, id string) (detail.Page, error)
}

// LoadedMsg carries the result of a page load
type LoadedMsg struct {
	Gen  int
	Page detail.Page
	Err  error
}

// loads are numbered across views so a late result never lands in a
// newer view of the same item
var loads atomic.Int64

// Model is the detail view of one content item
type Model struct {
	id     string
	loader Loader
	ctx    context.Context
	cancel context.CancelFunc
	gen    int

	loading bool
	page    detail.Page
	err     error

	session int
	cursor  int
	offset  int

	// download indicator for the episode being fetched
	active *detail.Event

	width  int
	height int
}

// New creates a detail view for id. Nothing is fetched until Init.
func New(id string, loader Loader) Model {
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		id:      id,
		loader:  loader,
		ctx:     ctx,
		cancel:  cancel,
		loading: true,
	}
}

// Init starts loading the page
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// Close abandons any load in flight
func (m Model) Close() {
	m.cancel()
}

// ID returns the route identifier this view was opened with
func (m Model) ID() string { return m.id }

// Item returns the loaded item
func (m Model) Item() models.ContentItem { return m.page.Item }

// Loading reports whether the page is still loading
func (m Model) Loading() bool { return m.loading }

// Err returns the load error, if any
func (m Model) Err() error { return m.err }

// Session returns the selected session number
func (m Model) Session() int { return m.session }

// NotFound reports whether no item matched the identifier
func (m Model) NotFound() bool {
	var nf *api.NotFoundError
	return errors.As(m.err, &nf)
}

// SetSize sets the viewport size
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) load() tea.Cmd {
	m.gen = int(loads.Add(1))
	m.loading = true
	m.err = nil

	gen, id, ctx, loader := m.gen, m.id, m.ctx, m.loader
	return func() tea.Msg {
		page, err := loader.Load(ctx, id)
		return LoadedMsg{Gen: gen, Page: page, Err: err}
	}
}

// Episodes returns the episodes of the selected session
func (m Model) Episodes() []models.Episode {
	return m.page.Sessions.Get(m.session)
}

// Selected returns the episode under the cursor
func (m Model) Selected() (models.Episode, bool) {
	eps := m.Episodes()
	if m.cursor < 0 || m.cursor >= len(eps) {
		return models.Episode{}, false
	}
	return eps[m.cursor], true
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case LoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.page = msg.Page
			m.session = msg.Page.Sessions.First()
			m.cursor, m.offset = 0, 0
		}
		return m, nil

	case common.DownloadEventMsg:
		if msg.Event.Item.ID != m.page.Item.ID {
			return m, nil
		}
		if msg.Event.Stage == detail.StageDone {
			m.active = nil
			return m, nil
		}
		ev := msg.Event
		m.active = &ev
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	if key == "esc" || key == "b" || key == "backspace" {
		return m, func() tea.Msg { return common.BackMsg{} }
	}
	if m.loading {
		return m, nil
	}
	if m.err != nil {
		if key == "r" && !m.NotFound() {
			cmd := m.load()
			return m, cmd
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.adjustOffset()

	case "down", "j":
		if m.cursor < len(m.Episodes())-1 {
			m.cursor++
		}
		m.adjustOffset()

	case "]", "right", "l":
		m.switchSession(m.page.Sessions.Next(m.session))

	case "[", "left", "h":
		m.switchSession(m.page.Sessions.Prev(m.session))

	case "enter":
		ep, ok := m.Selected()
		if !ok || m.active != nil {
			return m, nil
		}
		item := m.page.Item
		return m, func() tea.Msg { return common.DownloadMsg{Item: item, Episode: ep} }

	case "y":
		ep, ok := m.Selected()
		if !ok {
			return m, nil
		}
		if ep.Link == "" {
			return m, func() tea.Msg { return common.StatusMsg{Text: "No link to copy", Error: true} }
		}
		label := m.episodeLabel(ep)
		return m, func() tea.Msg { return common.CopyLinkMsg{Label: label, Link: ep.Link} }

	case "r":
		item := m.page.Item
		var epRef *models.Episode
		if ep, ok := m.Selected(); ok {
			epRef = &ep
		}
		return m, func() tea.Msg { return common.OpenReportMsg{Item: item, Episode: epRef} }
	}

	return m, nil
}

func (m *Model) switchSession(session int) {
	if session == m.session {
		return
	}
	m.session = session
	m.cursor, m.offset = 0, 0
}

func (m *Model) adjustOffset() {
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m Model) listRows() int {
	return max(m.height-16, 3)
}

func (m Model) episodeLabel(ep models.Episode) string {
	label := m.page.Item.Title + " - " + ep.DisplayTitle(m.page.Item.HasChapters())
	if m.page.Sessions.Len() > 1 {
		label += fmt.Sprintf(" (Season %d)", m.session)
	}
	return label
}

// View renders the detail page
func (m Model) View() string {
	switch {
	case m.loading:
		return styles.MetadataStyle.Render("Loading...")
	case m.NotFound():
		return styles.ErrorStyle.Render("Content not found") + "\n\n" +
			styles.MetadataStyle.Render(fmt.Sprintf("Nothing in the catalog matches %q.", m.id)) + "\n\n" +
			styles.HelpStyle.Render("esc go back")
	case m.err != nil:
		return styles.ErrorStyle.Render("Could not load this title") + "\n\n" +
			styles.MetadataStyle.Render(api.UserMessage(m.err)) + "\n\n" +
			styles.HelpStyle.Render("r retry • esc go back")
	}

	item := m.page.Item
	width := max(m.width-4, 30)

	var b strings.Builder
	b.WriteString(styles.TitleTextStyle.Render(utils.Truncate(item.Title, width)))
	b.WriteString("\n")
	b.WriteString(styles.Badge(string(item.Type), styles.TypeColor(item.Type)))
	b.WriteString(styles.Badge(string(item.Status), styles.StatusColor(item.Status)))
	b.WriteString(styles.Badge(fmt.Sprint(item.ReleaseYear), styles.OxocarbonBase04))
	b.WriteString(styles.Badge(string(item.SubDub), styles.OxocarbonCyan))
	b.WriteString("\n")
	b.WriteString(styles.MetadataStyle.Render(strings.Join(item.Genres, " • ")))
	b.WriteString("\n\n")
	if item.Description != "" {
		b.WriteString(styles.SynopsisStyle.Render(utils.Clamp(item.Description, 4, width)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderSessions())
	b.WriteString(m.renderEpisodes(width))

	if m.active != nil {
		b.WriteString("\n")
		b.WriteString(m.renderIndicator())
	}
	return b.String()
}

func (m Model) renderSessions() string {
	if m.page.Sessions.Len() <= 1 {
		return ""
	}
	tabs := make([]string, 0, m.page.Sessions.Len())
	for _, n := range m.page.Sessions.Numbers {
		label := fmt.Sprintf("Season %d", n)
		if n == m.session {
			tabs = append(tabs, styles.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "  " + styles.HelpStyle.Render("[ ] switch") + "\n\n"
}

func (m Model) renderEpisodes(width int) string {
	chapters := m.page.Item.HasChapters()
	eps := m.Episodes()
	if len(eps) == 0 {
		noun := "episodes"
		if chapters {
			noun = "chapters"
		}
		return styles.MetadataStyle.Render("No "+noun+" available yet") + "\n"
	}

	var b strings.Builder
	end := min(m.offset+m.listRows(), len(eps))
	for i := m.offset; i < end; i++ {
		ep := eps[i]
		line := fmt.Sprintf("%3d  %s", ep.Number, utils.Truncate(ep.DisplayTitle(chapters), width-10))
		if i == m.cursor {
			b.WriteString(styles.AccentStyle.Render("▶ " + line))
		} else {
			b.WriteString(styles.MetadataStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if len(eps) > end-m.offset {
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("%d-%d of %d", m.offset+1, end, len(eps))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderIndicator() string {
	ev := m.active
	label := ev.Episode.DisplayTitle(ev.Item.HasChapters())
	switch {
	case ev.Stage == detail.StagePreparing:
		return styles.AccentStyle.Render("⏳ Preparing " + label + "...")
	case ev.Err != nil:
		return styles.ErrorStyle.Render("Could not open " + label + ": " + ev.Err.Error())
	default:
		return styles.SuccessStyle.Render("✓ " + label + " opened in your browser")
	}
}
