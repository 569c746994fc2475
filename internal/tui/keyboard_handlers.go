package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/animabing/animabing/internal/models"
	"github.com/animabing/animabing/internal/tui/common"
)

// handleKeyMsg processes all keyboard input and routes to appropriate handlers
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, a.quit()
	}

	if a.prompting {
		return a, a.handlePromptKey(msg)
	}

	// the report form owns the keyboard while it is open
	if a.report != nil {
		return a, a.updateReport(msg)
	}

	if a.helpModel.IsVisible() {
		switch msg.String() {
		case "esc", "?", "q":
			a.helpModel.Hide()
			return a, nil
		}
		var cmd tea.Cmd
		a.helpModel, cmd = a.helpModel.Update(msg)
		return a, cmd
	}

	editing := a.browse != nil && a.browse.Editing()
	if !editing {
		switch msg.String() {
		case "?":
			a.updateHelpContext()
			a.helpModel.Show()
			return a, nil
		case "q":
			return a, a.quit()
		case ":":
			a.prompting = true
			a.prompt.SetValue(a.nav.Location())
			a.prompt.CursorEnd()
			a.prompt.Focus()
			return a, textinput.Blink
		case "ctrl+h":
			return a, a.goHome()
		case "1", "2", "3", "4", "5":
			if subDub, ok := shortcutFor(msg.String()); ok {
				return a, func() tea.Msg { return common.ShortcutMsg{SubDub: subDub} }
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.state {
	case homeView, listView:
		if a.browse != nil {
			*a.browse, cmd = a.browse.Update(msg)
		}
	case detailView:
		if a.detail != nil {
			*a.detail, cmd = a.detail.Update(msg)
		}
	case unknownView:
		if msg.String() == "esc" || msg.String() == "b" {
			cmd = a.back()
		}
	}
	return a, cmd
}

// shortcutFor maps the number keys onto the sub/dub shortcuts, in
// navigation bar order
func shortcutFor(key string) (string, bool) {
	if len(key) != 1 || key[0] < '1' {
		return "", false
	}
	idx := int(key[0] - '1')
	if idx >= len(models.SubDubs) {
		return "", false
	}
	return string(models.SubDubs[idx]), true
}

func (a *App) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		location := a.prompt.Value()
		a.closePrompt()
		return a.navigate(location)
	case tea.KeyEsc:
		a.closePrompt()
		return nil
	}

	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return cmd
}

func (a *App) closePrompt() {
	a.prompting = false
	a.prompt.Blur()
	a.prompt.SetValue("")
}

// quit stops a running download sequence and exits
func (a *App) quit() tea.Cmd {
	if a.sequence != nil {
		a.sequence.Stop()
		a.sequence = nil
	}
	a.closeViews()
	return tea.Quit
}
