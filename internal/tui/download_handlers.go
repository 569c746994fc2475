package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/animabing/animabing/internal/detail"
	"github.com/animabing/animabing/internal/tui/common"
	"github.com/animabing/animabing/internal/tui/components/report"
)

// startDownload runs the download sequence for an episode. Stage events
// arrive through msgChan from the sequence's timers.
func (a *App) startDownload(msg common.DownloadMsg) tea.Cmd {
	if a.sequence != nil {
		return a.setStatus("A download is already starting", true)
	}

	a.logger.Info("starting download", "content_id", msg.Item.ID, "number", msg.Episode.Number, "session", msg.Episode.Session)
	a.sequence = a.downloader.Start(msg.Item, msg.Episode, func(ev detail.Event) {
		a.msgChan <- common.DownloadEventMsg{Event: ev}
	})
	return nil
}

func (a *App) handleDownloadEvent(msg common.DownloadEventMsg) tea.Cmd {
	cmds := []tea.Cmd{a.listenForMessages()}

	if a.detail != nil {
		var cmd tea.Cmd
		*a.detail, cmd = a.detail.Update(msg)
		cmds = append(cmds, cmd)
	}

	ev := msg.Event
	switch ev.Stage {
	case detail.StageOpened:
		label := ev.Episode.DisplayTitle(ev.Item.HasChapters())
		if ev.Err != nil {
			a.logger.Warn("failed to open download link", "content_id", ev.Item.ID, "error", ev.Err)
			cmds = append(cmds, a.setStatus(fmt.Sprintf("Could not open %s: %v", label, ev.Err), true))
		} else {
			cmds = append(cmds, a.setStatus(fmt.Sprintf("Opened %s in your browser", label), false))
		}
	case detail.StageDone:
		a.sequence = nil
		cmds = append(cmds, a.loadRecent())
	}
	return tea.Batch(cmds...)
}

// openReport shows the report form over the current view
func (a *App) openReport(msg common.OpenReportMsg) tea.Cmd {
	r := report.New(msg.Item, msg.Episode, a.client)
	r.SetWidth(a.width)
	a.report = &r
	a.updateHelpContext()
	return a.report.Init()
}
