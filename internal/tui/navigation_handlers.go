package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/animabing/animabing/internal/tui/common"
	"github.com/animabing/animabing/internal/tui/components/browse"
	"github.com/animabing/animabing/internal/tui/components/detailview"
	"github.com/animabing/animabing/internal/tui/components/help"
	"github.com/animabing/animabing/internal/urlstate"
)

// navigate pushes location and switches to its view
func (a *App) navigate(location string) tea.Cmd {
	location = normalizeLocation(location)
	if location == a.nav.Location() {
		return nil
	}
	a.statusMsg = ""
	a.nav.Push(location)
	return a.applyLocation()
}

// back pops the history, or goes home when there is nothing to pop
func (a *App) back() tea.Cmd {
	a.statusMsg = ""
	if a.nav.Back() {
		return a.applyLocation()
	}
	if urlstate.ParseRoute(a.nav.Location()).Kind == urlstate.RouteHome {
		return nil
	}
	a.nav.Push(urlstate.HomePath)
	return a.applyLocation()
}

func (a *App) goHome() tea.Cmd {
	return a.navigate(urlstate.Encode(urlstate.HomePath, a.sync.State()))
}

// applyLocation reads the current location into the filter state and
// shows the view its route names.
func (a *App) applyLocation() tea.Cmd {
	location := a.nav.Location()
	route := urlstate.ParseRoute(location)
	a.sync.OnLocationChange()
	a.logger.Debug("applying location", "location", location, "route", route.Kind)

	var cmd tea.Cmd
	switch route.Kind {
	case urlstate.RouteHome:
		cmd = a.showBrowse(browse.ModeHome, homeView)
	case urlstate.RouteList:
		cmd = a.showBrowse(browse.ModeList, listView)
	case urlstate.RouteDetail:
		cmd = a.showDetail(route.ID)
	default:
		a.closeViews()
		a.state = unknownView
		a.unknownPath = location
	}

	a.updateHelpContext()
	return cmd
}

// showBrowse reuses the live session when only the filters changed, and
// starts a fresh one otherwise.
func (a *App) showBrowse(mode browse.Mode, state sessionState) tea.Cmd {
	if a.state == state && a.browse != nil && a.browse.Mode() == mode {
		return a.browse.SyncFromState()
	}

	a.closeViews()
	a.state = state

	m := browse.New(mode, a.client, a.sync, browse.Options{
		PageSize:     a.cfg.Catalog.PageSize,
		GlowInterval: a.cfg.UI.GlowInterval,
		Logger:       a.logger,
	})
	m.SetSize(a.width, a.bodyHeight())
	a.browse = &m

	cmds := []tea.Cmd{m.Init()}
	if mode == browse.ModeHome {
		cmds = append(cmds, a.loadRecent())
	}
	return tea.Batch(cmds...)
}

func (a *App) showDetail(id string) tea.Cmd {
	if a.state == detailView && a.detail != nil && a.detail.ID() == id {
		return nil
	}

	a.closeViews()
	a.state = detailView

	m := detailview.New(id, a.loader)
	m.SetSize(a.width, a.bodyHeight())
	a.detail = &m
	return a.detail.Init()
}

// closeViews ends the sessions of the views being left
func (a *App) closeViews() {
	if a.browse != nil {
		a.browse.Close()
		a.browse = nil
	}
	if a.detail != nil {
		a.detail.Close()
		a.detail = nil
	}
	a.report = nil
}

func (a *App) updateHelpContext() {
	switch {
	case a.report != nil:
		a.helpModel.SetContext(help.ReportContext)
	case a.state == homeView:
		a.helpModel.SetContext(help.HomeContext)
	case a.state == listView:
		a.helpModel.SetContext(help.ListContext)
	case a.state == detailView:
		a.helpModel.SetContext(help.DetailContext)
	default:
		a.helpModel.SetContext(help.GlobalContext)
	}
}

// loadRecent loads recently opened links for the home view
func (a *App) loadRecent() tea.Cmd {
	if a.historyService == nil {
		return nil
	}
	svc, limit := a.historyService, a.cfg.UI.RecentItems
	return func() tea.Msg {
		items, err := svc.Recent(limit)
		return common.RecentLoadedMsg{Items: items, Err: err}
	}
}

// normalizeLocation accepts what people type into the location prompt:
// missing leading slash, surrounding spaces, a pasted full URL.
func normalizeLocation(location string) string {
	location = strings.TrimSpace(location)
	if i := strings.Index(location, "://"); i >= 0 {
		rest := location[i+3:]
		if j := strings.IndexAny(rest, "/?"); j >= 0 {
			location = rest[j:]
		} else {
			location = "/"
		}
	}
	if location == "" {
		return urlstate.HomePath
	}
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	return location
}
