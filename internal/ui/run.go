package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run launches the interactive picker and blocks until the user quits.
func Run(ctx context.Context, cfg Config) error {
	m := NewModel(ctx, cfg)
	defer m.Close()
	prog := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
