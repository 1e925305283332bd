package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/countries/pkg/app/components"
	"github.com/kerbaras/countries/pkg/app/styles"
	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/services"
	"github.com/kerbaras/countries/pkg/sources"
	"github.com/muesli/reflow/wordwrap"
)

type DetailsScreen struct {
	ctx        context.Context
	controller *services.ExplorerController
	code       string

	country        *data.Country
	borders        []data.Country
	borderErr      error
	comparison     []services.PopulationEntry
	selectedBorder int

	spinner  spinner.Model
	viewport viewport.Model
	loading  bool
	width    int
	height   int
	err      error
}

func NewDetailsScreen(ctx context.Context, controller *services.ExplorerController, code string) *DetailsScreen {
	return &DetailsScreen{
		ctx:        ctx,
		controller: controller,
		code:       code,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport:   viewport.New(80, 20),
	}
}

func (s *DetailsScreen) Init() tea.Cmd {
	s.loading = true
	s.err = nil
	return tea.Batch(s.spinner.Tick, s.loadDetails)
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.viewport.Width = max(20, msg.Width-4)
		s.viewport.Height = max(5, msg.Height-10)
		return s, nil

	case detailsLoadedMsg:
		if msg.code != s.code {
			return s, nil
		}
		s.loading = false
		s.err = msg.err
		s.country = msg.country
		s.borders = msg.borders
		s.borderErr = msg.borderErr
		s.comparison = msg.comparison
		s.selectedBorder = 0
		s.viewport.GotoTop()
		return s, nil

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "back"}
			}
		case "r":
			if s.country == nil || s.borderErr != nil {
				return s, s.Init()
			}
		case "f":
			if s.country != nil {
				if _, err := s.controller.ToggleFavorite(s.country.CCA3); err != nil {
					s.err = err
				}
			}
		case "left", "h":
			if len(s.borders) > 0 {
				s.selectedBorder = (s.selectedBorder + len(s.borders) - 1) % len(s.borders)
			}
		case "right", "l":
			if len(s.borders) > 0 {
				s.selectedBorder = (s.selectedBorder + 1) % len(s.borders)
			}
		case "enter":
			if s.selectedBorder < len(s.borders) {
				code := s.borders[s.selectedBorder].CCA3
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: code}
				}
			}
		case "z":
			if s.country != nil {
				return s, s.startQuiz(*s.country, s.borders)
			}
		default:
			var cmd tea.Cmd
			s.viewport, cmd = s.viewport.Update(msg)
			return s, cmd
		}
	}

	return s, nil
}

func (s *DetailsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	if s.loading {
		loading := fmt.Sprintf("%s %s", s.spinner.View(), styles.StatusLoading.Render("Loading "+s.code+"..."))
		// The catalog entry is enough for a header until the full record arrives.
		if c, ok := s.controller.Catalog().Lookup(s.code); ok {
			header := styles.TitleStyle.Render(fmt.Sprintf("%s (%s)", c.Name.Common, c.CCA3))
			meta := styles.MutedStyle.Render(fmt.Sprintf("%s · %s", c.Region, services.FormatNumber(c.Population)))
			return fmt.Sprintf("%s\n%s\n\n%s", header, meta, loading)
		}
		return loading
	}

	if s.country == nil {
		msg := fmt.Sprintf("Could not load %s: %s", s.code, s.err)
		if errors.Is(s.err, sources.ErrNotFound) {
			msg = fmt.Sprintf("No country with code %s.", s.code)
		}
		help := styles.HelpStyle.Render("r: retry • esc: back • q: quit")
		return fmt.Sprintf("%s\n%s", styles.StatusError.Render(msg), help)
	}

	title := fmt.Sprintf("%s (%s)", s.country.Name.Common, s.country.CCA3)
	if s.controller.IsFavorite(s.country.CCA3) {
		title += " " + styles.FavoriteStyle.Render("★")
	}
	header := styles.TitleStyle.Render(title)

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n"
	}

	s.viewport.SetContent(s.renderContent())

	help := styles.HelpStyle.Render(
		"↑/↓: scroll • ←/h →/l: border • enter: open border • f: favorite • z: quiz • esc: back • t: theme • q: quit",
	)

	return fmt.Sprintf("%s\n%s%s\n%s", header, errorMsg, s.viewport.View(), help)
}

func (s *DetailsScreen) renderContent() string {
	width := max(20, s.viewport.Width-2)
	c := s.country

	var b strings.Builder

	if c.Flags.Alt != "" {
		b.WriteString(styles.MutedStyle.Render(wordwrap.String(c.Flags.Alt, width)))
		b.WriteString("\n\n")
	}

	facts := services.Facts(*c)
	labelWidth := 0
	for _, f := range facts {
		labelWidth = max(labelWidth, lipgloss.Width(f[0]))
	}
	valueWidth := max(10, width-labelWidth-2)
	for _, f := range facts {
		label := styles.LabelStyle.Width(labelWidth + 2).Render(f[0])
		value := styles.TextStyle.Render(wordwrap.String(f[1], valueWidth))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, value))
		b.WriteString("\n")
	}

	if c.Maps.OpenStreetMaps != "" || c.Maps.GoogleMaps != "" {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render("Maps"))
		b.WriteString("\n")
		for _, link := range []string{c.Maps.OpenStreetMaps, c.Maps.GoogleMaps} {
			if link != "" {
				b.WriteString(styles.MutedStyle.Render(link))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render("Border Countries"))
	b.WriteString("\n")
	switch {
	case s.borderErr != nil:
		b.WriteString(styles.StatusError.Render("Could not load border countries. Press r to retry."))
	case len(s.borders) == 0:
		b.WriteString(styles.MutedStyle.Render("No land borders"))
	default:
		chips := make([]string, len(s.borders))
		for i, border := range s.borders {
			style := styles.CardStyle
			if i == s.selectedBorder {
				style = styles.ActiveCardStyle
			}
			chips[i] = style.Render(border.Name.Common)
		}
		b.WriteString(wrapChips(chips, width))
	}
	b.WriteString("\n")

	if len(s.comparison) > 0 {
		bars := make([]components.Bar, len(s.comparison))
		for i, e := range s.comparison {
			bars[i] = components.Bar{
				Label:     e.Name,
				Value:     e.Population,
				Display:   services.FormatCompact(e.Population),
				Highlight: e.Current,
			}
		}
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render("Population Comparison"))
		b.WriteString("\n")
		b.WriteString(components.BarChart(bars, width))
	}

	return b.String()
}

// wrapChips lays bordered chips out in rows no wider than width.
func wrapChips(chips []string, width int) string {
	var rows []string
	var row []string
	rowWidth := 0
	for _, chip := range chips {
		w := lipgloss.Width(chip)
		if len(row) > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, chip)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Messages
type detailsLoadedMsg struct {
	code       string
	country    *data.Country
	borders    []data.Country
	borderErr  error
	comparison []services.PopulationEntry
	err        error
}

type quizStartMsg struct {
	name string
	quiz *services.Quiz
}

// Commands
func (s *DetailsScreen) loadDetails() tea.Msg {
	country, borders, err := s.controller.GetCountry(s.ctx, s.code)
	msg := detailsLoadedMsg{code: s.code, country: country, borders: borders}
	if country == nil {
		msg.err = err
		return msg
	}
	if errors.Is(err, services.ErrBorderFetch) {
		msg.borderErr = err
	}

	// The chart needs the whole catalog; without it the section is left out.
	if comparison, err := s.controller.PopulationComparison(s.ctx, country.CCA3); err == nil {
		msg.comparison = comparison
	}
	return msg
}

func (s *DetailsScreen) startQuiz(country data.Country, borders []data.Country) tea.Cmd {
	return func() tea.Msg {
		quiz := s.controller.NewQuiz(s.ctx, country, borders)
		return SwitchScreenMsg{Screen: "quiz", Data: quizStartMsg{name: country.Name.Common, quiz: quiz}}
	}
}
