package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avrlabs/cattleport/internal/logging"
	"github.com/avrlabs/cattleport/internal/portal"
)

// Run starts the portal TUI and blocks until the user quits.
func Run(ctrl *portal.Controller, logger *logging.Logger) error {
	model := NewModel(ctrl, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
