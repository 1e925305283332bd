package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/countries/pkg/app/components"
	"github.com/kerbaras/countries/pkg/app/styles"
	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/services"
)

// regionChoices is cycled with "g"; the empty entry means all regions.
var regionChoices = append([]string{""}, services.Regions...)

type CountriesScreen struct {
	ctx        context.Context
	controller *services.ExplorerController

	input     textinput.Model
	spinner   spinner.Model
	list      *components.CountryList
	paginator *services.Paginator
	region    int
	filtered  []data.Country

	loading bool
	loaded  bool
	width   int
	height  int
	err     error
}

func NewCountriesScreen(ctx context.Context, controller *services.ExplorerController, criteria services.Criteria) *CountriesScreen {
	ti := textinput.New()
	ti.Placeholder = "Search by name or capital..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.SetValue(criteria.Search)

	s := &CountriesScreen{
		ctx:        ctx,
		controller: controller,
		input:      ti,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		list:       components.NewCountryList(),
		paginator:  services.NewPaginator(services.PageSize),
	}
	for i, r := range regionChoices {
		if r == criteria.Region {
			s.region = i
		}
	}
	return s
}

func (s *CountriesScreen) Init() tea.Cmd {
	if s.loaded {
		s.refreshList()
		return nil
	}
	// Another tab may already have fetched the catalog.
	if s.controller.Catalog().Loaded() {
		s.loading = false
		s.loaded = true
		s.err = nil
		s.applyFilter()
		return nil
	}
	if s.loading {
		return nil
	}
	s.loading = true
	s.err = nil
	return tea.Batch(s.spinner.Tick, s.loadCatalog)
}

// Capturing reports whether keystrokes go to the search box.
func (s *CountriesScreen) Capturing() bool {
	return s.input.Focused()
}

func (s *CountriesScreen) Criteria() services.Criteria {
	return services.Criteria{Search: s.input.Value(), Region: regionChoices[s.region]}
}

func (s *CountriesScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 4
		s.list.Height = max(3, msg.Height-16)
		return s, nil

	case catalogLoadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			s.loaded = true
			s.applyFilter()
		}
		return s, nil

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.input.Focused() {
			return s, s.updateInput(msg)
		}

		switch msg.String() {
		case "/":
			s.input.Focus()
			return s, textinput.Blink
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			if s.list.AtEnd() && s.paginator.HasMore() {
				s.loadMore()
			}
			s.list.Next()
		case "m":
			s.loadMore()
		case "g":
			s.region = (s.region + 1) % len(regionChoices)
			s.applyFilter()
		case "x":
			s.input.SetValue("")
			s.region = 0
			s.applyFilter()
		case "f":
			if selected := s.list.Selected(); selected != nil {
				if _, err := s.controller.ToggleFavorite(selected.Country.CCA3); err != nil {
					s.err = err
				}
				s.refreshList()
			}
		case "r":
			if !s.loaded {
				return s, s.Init()
			}
		case "enter":
			if selected := s.list.Selected(); selected != nil {
				code := selected.Country.CCA3
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: code}
				}
			}
		}
		return s, nil
	}

	if s.input.Focused() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *CountriesScreen) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "down":
		s.input.Blur()
		return nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.applyFilter()
	}
	return cmd
}

// applyFilter recomputes the result set and returns to the first page. Until the
// catalog arrives only the criteria change.
func (s *CountriesScreen) applyFilter() {
	if !s.loaded {
		return
	}
	s.filtered = services.Filter(s.controller.Catalog().Countries(), s.Criteria())
	s.paginator.Reset(len(s.filtered))
	s.list.SelectedIndex = 0
	s.refreshList()
}

func (s *CountriesScreen) loadMore() {
	if s.paginator.LoadMore() {
		s.refreshList()
	}
}

func (s *CountriesScreen) refreshList() {
	visible := s.paginator.Visible(s.filtered)
	items := make([]components.CountryListItem, len(visible))
	for i, c := range visible {
		items[i] = components.CountryListItem{Country: c, Favorite: s.controller.IsFavorite(c.CCA3)}
	}
	s.list.SetItems(items)
}

func (s *CountriesScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("🌍 Explore Countries")

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	region := "All regions"
	if r := regionChoices[s.region]; r != "" {
		region = r
	}
	filters := styles.LabelStyle.Render("Region: ") + styles.TextStyle.Render(region)
	if query := s.Criteria().Encode(); query != "" {
		filters += styles.MutedStyle.Render("   share: ?" + query)
	}

	var body string
	switch {
	case s.loading:
		body = fmt.Sprintf("%s %s", s.spinner.View(), styles.StatusLoading.Render("Loading countries..."))
	case !s.loaded && s.err != nil:
		body = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n" +
			styles.MutedStyle.Render("Press r to try again.")
	default:
		status := styles.SubtitleStyle.Render(fmt.Sprintf("Showing %d of %d countries", len(s.list.Items), len(s.filtered)))
		body = status + "\n\n" + s.list.View()
		if s.paginator.HasMore() {
			body += "\n" + styles.MutedStyle.Render("m: load more")
		}
		if s.err != nil {
			body += "\n" + styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		}
	}

	help := styles.HelpStyle.Render(
		"/: search • g: region • x: clear • ↑/k ↓/j: navigate • enter: details • f: favorite • tab: switch view • t: theme • q: quit",
	)

	return fmt.Sprintf("%s\n%s\n%s\n\n%s\n%s", header, inputView, filters, body, help)
}

// Messages
type catalogLoadedMsg struct {
	err error
}

// Commands
func (s *CountriesScreen) loadCatalog() tea.Msg {
	_, err := s.controller.Catalog().FetchAll(s.ctx)
	return catalogLoadedMsg{err: err}
}
