package screens

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/countries/pkg/app/components"
	"github.com/kerbaras/countries/pkg/app/styles"
	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/services"
)

type FavoritesScreen struct {
	ctx        context.Context
	controller *services.ExplorerController

	list      *components.CountryList
	tracker   *components.ExportTracker
	spinner   spinner.Model
	loading   bool
	exporting bool
	exported  string
	width     int
	height    int
	err       error
}

func NewFavoritesScreen(ctx context.Context, controller *services.ExplorerController) *FavoritesScreen {
	list := components.NewCountryList()
	list.EmptyMessage = "No favorites yet. Press f on a country to add it."

	return &FavoritesScreen{
		ctx:        ctx,
		controller: controller,
		list:       list,
		tracker:    components.NewExportTracker(80),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *FavoritesScreen) Init() tea.Cmd {
	s.loading = true
	s.err = nil
	return tea.Batch(s.spinner.Tick, s.loadFavorites)
}

func (s *FavoritesScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 4
		s.list.Height = max(3, msg.Height-16)
		s.tracker.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			s.list.Next()
		case "r":
			return s, s.Init()
		case "f", "d":
			if selected := s.list.Selected(); selected != nil {
				if _, err := s.controller.ToggleFavorite(selected.Country.CCA3); err != nil {
					s.err = err
					return s, nil
				}
				s.removeSelected()
			}
		case "e":
			if s.exporting {
				return s, nil
			}
			s.exporting = true
			s.tracker.Clear()
			s.exported = ""
			s.err = nil
			return s, tea.Batch(s.export, s.listenForProgress)
		case "enter":
			if selected := s.list.Selected(); selected != nil {
				code := selected.Country.CCA3
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: code}
				}
			}
		}

	case favoritesLoadedMsg:
		s.loading = false
		s.err = msg.err
		items := make([]components.CountryListItem, len(msg.countries))
		for i, c := range msg.countries {
			items[i] = components.CountryListItem{Country: c, Favorite: true}
		}
		s.list.SetItems(items)

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case services.ExportProgress:
		s.tracker.Update(msg)
		if s.tracker.Active() {
			return s, s.listenForProgress
		}

	case exportDoneMsg:
		s.exporting = false
		if msg.err != nil {
			s.err = msg.err
			s.tracker.Update(services.ExportProgress{Status: "error", Error: msg.err})
		} else {
			s.exported = msg.path
			s.tracker.Update(services.ExportProgress{Status: "complete"})
		}
	}

	return s, nil
}

func (s *FavoritesScreen) removeSelected() {
	items := make([]components.CountryListItem, 0, len(s.list.Items))
	for i, it := range s.list.Items {
		if i != s.list.SelectedIndex {
			items = append(items, it)
		}
	}
	s.list.SetItems(items)
}

func (s *FavoritesScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render(fmt.Sprintf("★ Favorites (%d)", s.controller.Favorites().Count()))

	var errorMsg string
	if s.err != nil && !errors.Is(s.err, services.ErrNothingToExport) {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	} else if s.err != nil {
		errorMsg = styles.MutedStyle.Render("Add some favorites before exporting a guide.") + "\n\n"
	}

	var body string
	if s.loading {
		body = fmt.Sprintf("%s %s", s.spinner.View(), styles.StatusLoading.Render("Loading favorites..."))
	} else {
		body = s.list.View()
	}

	var exportView string
	if s.exporting {
		exportView = "\n" + s.tracker.View()
	}
	if s.exported != "" {
		exportView = "\n" + styles.StatusCompleted.Render("Guide written to "+s.exported)
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navigate • enter: details • f: remove • e: export EPUB guide • r: refresh • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n%s%s%s\n%s", header, errorMsg, body, exportView, help)
}

// Messages
type favoritesLoadedMsg struct {
	countries []data.Country
	err       error
}

type exportDoneMsg struct {
	path string
	err  error
}

// Commands
func (s *FavoritesScreen) loadFavorites() tea.Msg {
	countries, err := s.controller.FavoriteCountries(s.ctx)
	return favoritesLoadedMsg{countries: countries, err: err}
}

func (s *FavoritesScreen) export() tea.Msg {
	path, err := s.controller.Export(s.ctx, "")
	return exportDoneMsg{path: path, err: err}
}

func (s *FavoritesScreen) listenForProgress() tea.Msg {
	select {
	case progress := <-s.controller.Exporter().GetProgressChannel():
		return progress
	case <-s.ctx.Done():
		return nil
	}
}
