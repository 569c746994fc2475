// Package tui is the interactive terminal client.
package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/animabing/animabing/internal/clipboard"
	"github.com/animabing/animabing/internal/config"
	historyservice "github.com/animabing/animabing/internal/history"
)

// Start is the entry point for the TUI. It returns the location the user
// was at when they quit.
func Start(client Client, history *historyservice.Service, clip clipboard.Service, cfg *config.Config, logger *slog.Logger) (string, error) {
	app := NewApp(client, history, clip, cfg, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return "", fmt.Errorf("error running program: %w", err)
	}
	return app.Location(), nil
}
