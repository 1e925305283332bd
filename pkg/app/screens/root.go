package screens

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/countries/pkg/app/styles"
	"github.com/kerbaras/countries/pkg/services"
)

type screenType int

const (
	countriesView screenType = iota
	favoritesView
	statsView
	detailsView
	quizView
)

// SwitchScreenMsg asks the root screen to change view. Screen is one of
// "countries", "favorites", "stats", "details" (Data: country code), "quiz"
// (Data: quizStartMsg) or "back".
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

type RootScreen struct {
	ctx        context.Context
	controller *services.ExplorerController

	currentView screenType
	lastTab     screenType
	countries   *CountriesScreen
	favorites   *FavoritesScreen
	stats       *StatsScreen
	details     *DetailsScreen
	quiz        *QuizScreen

	// codes of the details screens opened since leaving a tab
	history []string

	width  int
	height int
	err    error
}

func NewRootScreen(ctx context.Context, controller *services.ExplorerController, criteria services.Criteria) *RootScreen {
	return &RootScreen{
		ctx:         ctx,
		controller:  controller,
		currentView: countriesView,
		lastTab:     countriesView,
		countries:   NewCountriesScreen(ctx, controller, criteria),
		favorites:   NewFavoritesScreen(ctx, controller),
		stats:       NewStatsScreen(ctx, controller),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.countries.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		return r, r.broadcast(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return r, tea.Quit
		}
		if r.capturing() {
			return r, r.forward(msg)
		}

		switch msg.String() {
		case "q":
			return r, tea.Quit
		case "t":
			r.toggleTheme()
			return r, nil
		case "tab", "shift+tab":
			if r.currentView > statsView {
				// details and quiz are left with esc
				break
			}
			step := screenType(1)
			if msg.String() == "shift+tab" {
				step = 2
			}
			return r, r.switchTab((r.currentView + step) % 3)
		}
		return r, r.forward(msg)

	case SwitchScreenMsg:
		return r, r.switchScreen(msg)
	}

	return r, r.broadcast(msg)
}

func (r *RootScreen) View() string {
	var content string
	switch r.currentView {
	case countriesView:
		content = r.countries.View()
	case favoritesView:
		content = r.favorites.View()
	case statsView:
		content = r.stats.View()
	case detailsView:
		if r.details != nil {
			content = r.details.View()
		}
	case quizView:
		if r.quiz != nil {
			content = r.quiz.View()
		}
	}

	var errorMsg string
	if r.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", r.err)) + "\n"
	}

	return fmt.Sprintf("%s\n\n%s%s", r.renderTabs(), errorMsg, content)
}

// capturing reports whether the active screen is taking free text input.
func (r *RootScreen) capturing() bool {
	return r.currentView == countriesView && r.countries.Capturing()
}

func (r *RootScreen) toggleTheme() {
	next := styles.Current().Toggle()
	if err := r.controller.Themes().Set(next); err != nil {
		slog.Warn("could not save theme", "error", err)
		r.err = err
	} else {
		r.err = nil
	}
	styles.Apply(next)
}

func (r *RootScreen) switchTab(view screenType) tea.Cmd {
	r.currentView = view
	r.lastTab = view
	r.history = nil
	r.details = nil
	r.quiz = nil

	switch view {
	case favoritesView:
		return r.favorites.Init()
	case statsView:
		return r.stats.Init()
	default:
		return r.countries.Init()
	}
}

func (r *RootScreen) switchScreen(msg SwitchScreenMsg) tea.Cmd {
	switch msg.Screen {
	case "countries":
		return r.switchTab(countriesView)
	case "favorites":
		return r.switchTab(favoritesView)
	case "stats":
		return r.switchTab(statsView)

	case "details":
		code, ok := msg.Data.(string)
		if !ok || code == "" {
			return nil
		}
		r.history = append(r.history, code)
		return r.openDetails(code)

	case "quiz":
		start, ok := msg.Data.(quizStartMsg)
		if !ok {
			return nil
		}
		r.quiz = NewQuizScreen(start.name, start.quiz)
		r.quiz.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
		r.currentView = quizView
		return r.quiz.Init()

	case "back":
		if r.currentView == quizView && r.details != nil {
			r.quiz = nil
			r.currentView = detailsView
			return nil
		}
		if len(r.history) > 1 {
			r.history = r.history[:len(r.history)-1]
			return r.openDetails(r.history[len(r.history)-1])
		}
		return r.switchTab(r.lastTab)
	}
	return nil
}

func (r *RootScreen) openDetails(code string) tea.Cmd {
	r.details = NewDetailsScreen(r.ctx, r.controller, code)
	r.details.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
	r.quiz = nil
	r.currentView = detailsView
	return r.details.Init()
}

func (r *RootScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch r.currentView {
	case countriesView:
		_, cmd = r.countries.Update(msg)
	case favoritesView:
		_, cmd = r.favorites.Update(msg)
	case statsView:
		_, cmd = r.stats.Update(msg)
	case detailsView:
		if r.details != nil {
			_, cmd = r.details.Update(msg)
		}
	case quizView:
		if r.quiz != nil {
			_, cmd = r.quiz.Update(msg)
		}
	}
	return cmd
}

// broadcast hands msg to every live screen; each ignores what isn't meant for it.
func (r *RootScreen) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	_, cmd := r.countries.Update(msg)
	cmds = append(cmds, cmd)
	_, cmd = r.favorites.Update(msg)
	cmds = append(cmds, cmd)
	_, cmd = r.stats.Update(msg)
	cmds = append(cmds, cmd)
	if r.details != nil {
		_, cmd = r.details.Update(msg)
		cmds = append(cmds, cmd)
	}
	if r.quiz != nil {
		_, cmd = r.quiz.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (r *RootScreen) renderTabs() string {
	names := []string{
		"Countries",
		fmt.Sprintf("Favorites (%d)", r.controller.Favorites().Count()),
		"Stats",
	}

	active := r.currentView
	if active > statsView {
		active = r.lastTab
	}

	rendered := make([]string, len(names))
	for i, name := range names {
		if screenType(i) == active {
			rendered[i] = styles.ActiveTabStyle.Render(name)
		} else {
			rendered[i] = styles.InactiveTabStyle.Render(name)
		}
	}

	theme := styles.MutedStyle.Render(fmt.Sprintf("  theme: %s (t)", styles.Current()))
	return lipgloss.JoinHorizontal(lipgloss.Top, append(rendered, theme)...)
}
