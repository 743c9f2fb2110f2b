package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"feudal/internal/feudal"
)

// Run blocks until the user quits the inspector.
func Run(b *feudal.Board) error {
	p := tea.NewProgram(NewModel(b), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
