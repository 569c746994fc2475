package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/animabing/animabing/internal/catalog"
	"github.com/animabing/animabing/internal/clipboard"
	"github.com/animabing/animabing/internal/config"
	"github.com/animabing/animabing/internal/detail"
	historyservice "github.com/animabing/animabing/internal/history"
	"github.com/animabing/animabing/internal/tui/common"
	"github.com/animabing/animabing/internal/tui/components/browse"
	"github.com/animabing/animabing/internal/tui/components/detailview"
	"github.com/animabing/animabing/internal/tui/components/help"
	"github.com/animabing/animabing/internal/tui/components/report"
	"github.com/animabing/animabing/internal/tui/styles"
	"github.com/animabing/animabing/internal/urlstate"
)

type sessionState int

const (
	homeView sessionState = iota
	listView
	detailView
	unknownView
)

// statusDuration is how long a status message stays up
const statusDuration = 3 * time.Second

// clearStatusMsg is an internal message to clear the status message
type clearStatusMsg struct {
	gen int
}

// Client is everything the TUI needs from the content API
type Client interface {
	catalog.Fetcher
	detail.Catalog
	report.Submitter
}

type App struct {
	state  sessionState
	width  int
	height int

	cfg    *config.Config
	logger *slog.Logger

	client         Client
	loader         *detail.Loader
	downloader     *detail.Downloader
	sequence       *detail.Sequence
	historyService *historyservice.Service
	clipboardSvc   clipboard.Service

	nav  *urlstate.History
	sync *urlstate.Synchronizer

	browse      *browse.Model
	detail      *detailview.Model
	report      *report.Model
	helpModel   help.Model
	unknownPath string

	prompt    textinput.Model
	prompting bool

	statusMsg   string
	statusError bool
	statusGen   int
	copyLabel   string

	// For sending messages to UI from goroutines
	msgChan chan tea.Msg
}

// NewApp creates the application model. history may be nil.
func NewApp(client Client, history *historyservice.Service, clip clipboard.Service, cfg *config.Config, logger *slog.Logger) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	start := cfg.UI.StartRoute
	if start == "" {
		start = urlstate.HomePath
	}
	nav := urlstate.NewHistory(start)

	prompt := textinput.New()
	prompt.Prompt = ": "
	prompt.CharLimit = 512
	prompt.TextStyle = styles.LocationStyle
	prompt.PromptStyle = styles.LocationStyle

	var recorder detail.Recorder
	if history != nil {
		recorder = history
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		client:         client,
		loader:         detail.NewLoader(client, logger),
		downloader:     detail.NewDownloader(recorder, logger),
		historyService: history,
		clipboardSvc:   clip,
		nav:            nav,
		sync:           urlstate.NewSynchronizer(urlstate.StateOf(start), nav, logger),
		helpModel:      help.New(),
		prompt:         prompt,
		msgChan:        make(chan tea.Msg, 100),
	}
}

// Location returns the current location
func (a *App) Location() string {
	return a.nav.Location()
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.applyLocation(),
		a.listenForMessages(),
	)
}

// listenForMessages listens for messages from background goroutines
func (a *App) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		return <-a.msgChan
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.helpModel, _ = a.helpModel.Update(msg)
		a.resize()
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case common.NavigateMsg:
		return a, a.navigate(msg.Location)

	case common.BackMsg:
		return a, a.back()

	case common.LocationChangedMsg:
		return a, a.applyLocation()

	case common.ShortcutMsg:
		a.sync.SelectShortcut(msg.SubDub)
		return a, a.applyLocation()

	case common.DownloadMsg:
		return a, a.startDownload(msg)

	case common.DownloadEventMsg:
		return a, a.handleDownloadEvent(msg)

	case common.CopyLinkMsg:
		return a, a.copyLink(msg)

	case clipboard.CopiedMsg:
		return a, a.handleCopied(msg)

	case common.OpenReportMsg:
		return a, a.openReport(msg)

	case common.CloseReportMsg:
		a.report = nil
		a.updateHelpContext()
		return a, nil

	case common.StatusMsg:
		return a, a.setStatus(msg.Text, msg.Error)

	case clearStatusMsg:
		if msg.gen == a.statusGen {
			a.statusMsg = ""
			a.statusError = false
		}
		return a, nil

	case common.RefreshHistoryMsg:
		return a, a.loadRecent()

	case report.SubmittedMsg:
		return a, a.updateReport(msg)

	case detailview.LoadedMsg:
		if a.detail == nil {
			return a, nil
		}
		var cmd tea.Cmd
		*a.detail, cmd = a.detail.Update(msg)
		return a, cmd

	case catalog.PageLoadedMsg, catalog.SearchLoadedMsg, catalog.DebounceMsg, browse.GlowTickMsg, common.RecentLoadedMsg:
		if a.browse == nil {
			return a, nil
		}
		var cmd tea.Cmd
		*a.browse, cmd = a.browse.Update(msg)
		return a, cmd
	}

	// everything else (cursor blinks, form internals) goes to whatever has focus
	return a, a.forward(msg)
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case a.prompting:
		a.prompt, cmd = a.prompt.Update(msg)
	case a.report != nil:
		cmd = a.updateReport(msg)
	case a.browse != nil:
		*a.browse, cmd = a.browse.Update(msg)
	}
	return cmd
}

func (a *App) updateReport(msg tea.Msg) tea.Cmd {
	if a.report == nil {
		return nil
	}
	var cmd tea.Cmd
	*a.report, cmd = a.report.Update(msg)
	return cmd
}

func (a *App) setStatus(text string, isErr bool) tea.Cmd {
	a.statusGen++
	a.statusMsg = text
	a.statusError = isErr

	gen := a.statusGen
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{gen: gen}
	})
}

func (a *App) resize() {
	h := a.bodyHeight()
	if a.browse != nil {
		a.browse.SetSize(a.width, h)
	}
	if a.detail != nil {
		a.detail.SetSize(a.width, h)
	}
	if a.report != nil {
		a.report.SetWidth(a.width)
	}
	a.prompt.Width = max(a.width-6, 10)
}

// bodyHeight leaves room for the status bar
func (a *App) bodyHeight() int {
	return max(a.height-2, 1)
}

func (a *App) View() string {
	if a.helpModel.IsVisible() {
		return a.helpModel.View()
	}

	var body string
	switch {
	case a.report != nil:
		body = a.report.View()
	case a.state == detailView && a.detail != nil:
		body = a.detail.View()
	case a.state == unknownView:
		body = styles.ErrorStyle.Render("Page not found") + "\n\n" +
			styles.MetadataStyle.Render(a.unknownPath) + "\n\n" +
			styles.HelpStyle.Render("esc go back • ctrl+h home")
	case a.browse != nil:
		body = a.browse.View()
	}

	body = lipgloss.NewStyle().Padding(1, 2, 0, 2).Render(body)
	bodyLines := strings.Count(body, "\n") + 1
	if gap := a.height - 1 - bodyLines; gap > 0 {
		body += strings.Repeat("\n", gap)
	}

	return body + "\n" + a.renderStatusBar()
}

func (a *App) renderStatusBar() string {
	if a.prompting {
		return a.prompt.View()
	}

	location := styles.LocationStyle.Render(a.nav.Location())

	var status string
	switch {
	case a.statusMsg != "" && a.statusError:
		status = styles.ErrorStyle.Render(" " + a.statusMsg)
	case a.statusMsg != "":
		status = styles.SuccessStyle.Render(" " + a.statusMsg)
	default:
		status = styles.HelpStyle.Render(" ? help • : location • q quit")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, location, status)
}
