package tui

import (
	"context"

	"temario/internal/mutate"
	"temario/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the named outline in the interactive editor.
func Run(ctx context.Context, g *store.Gateway, name string, ed mutate.Editor) error {
	m, err := newEditorModel(ctx, g, name, ed)
	if err != nil {
		return err
	}
	applyColorProfilePreference()
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
