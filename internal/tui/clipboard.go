package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/animabing/animabing/internal/clipboard"
	"github.com/animabing/animabing/internal/tui/common"
)

// copyLink copies an episode link to the system clipboard
func (a *App) copyLink(msg common.CopyLinkMsg) tea.Cmd {
	if a.clipboardSvc == nil {
		return a.setStatus("Clipboard is not available", true)
	}
	a.copyLabel = msg.Label
	return a.clipboardSvc.CopyCmd(msg.Link)
}

// handleCopied shows the outcome of a copy in the status bar
func (a *App) handleCopied(msg clipboard.CopiedMsg) tea.Cmd {
	label := a.copyLabel
	a.copyLabel = ""
	if msg.Err != nil {
		a.logger.Warn("failed to copy link", "error", msg.Err)
		return a.setStatus("Could not copy the link: "+msg.Err.Error(), true)
	}
	if label == "" {
		label = "Link"
	}
	return a.setStatus("📋 "+label+" link copied to clipboard", false)
}
