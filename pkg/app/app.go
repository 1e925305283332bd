package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/countries/pkg/app/screens"
	"github.com/kerbaras/countries/pkg/app/styles"
	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/services"
)

type App struct {
	controller *services.ExplorerController
	theme      data.Theme
	criteria   services.Criteria
}

// NewApp prepares the explorer TUI. criteria pre-fills the search and region
// filters, as a shared query string would.
func NewApp(controller *services.ExplorerController, theme data.Theme, criteria services.Criteria) *App {
	return &App{controller: controller, theme: theme, criteria: criteria}
}

func (a *App) Run() error {
	styles.Apply(a.theme)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := screens.NewRootScreen(ctx, a.controller, a.criteria)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
