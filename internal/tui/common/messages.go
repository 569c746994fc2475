package common

import (
	"github.com/animabing/animabing/internal/detail"
	"github.com/animabing/animabing/internal/history"
	"github.com/animabing/animabing/internal/models"
)

// This file contains custom tea.Msg types for communication between components.

// NavigateMsg pushes a new location
type NavigateMsg struct {
	Location string
}

// LocationChangedMsg asks the app to re-read the current location after a
// component changed it through the synchronizer
type LocationChangedMsg struct{}

// BackMsg is a generic message to go back to the previous location.
type BackMsg struct{}

// ShortcutMsg selects a named sub/dub filter from the navigation bar
type ShortcutMsg struct {
	SubDub string
}

// DownloadMsg starts the download sequence for an episode or chapter
type DownloadMsg struct {
	Item    models.ContentItem
	Episode models.Episode
}

// DownloadEventMsg carries a stage of a running download sequence
type DownloadEventMsg struct {
	Event detail.Event
}

// CopyLinkMsg copies an episode link to the clipboard
type CopyLinkMsg struct {
	Label string
	Link  string
}

// OpenReportMsg opens the report form for an item, and optionally one episode
type OpenReportMsg struct {
	Item    models.ContentItem
	Episode *models.Episode
}

// CloseReportMsg leaves the report form
type CloseReportMsg struct {
	Submitted bool
}

// StatusMsg shows a short message in the status bar
type StatusMsg struct {
	Text  string
	Error bool
}

// RefreshHistoryMsg is sent to request reloading the recent downloads list.
type RefreshHistoryMsg struct{}

// RecentLoadedMsg carries the recent downloads list
type RecentLoadedMsg struct {
	Items []history.Item
	Err   error
}
