package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/countries/pkg/app/components"
	"github.com/kerbaras/countries/pkg/app/styles"
	"github.com/kerbaras/countries/pkg/services"
)

const topCountries = 10

type StatsScreen struct {
	ctx        context.Context
	controller *services.ExplorerController

	stats   *services.Stats
	table   table.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
	err     error
}

func NewStatsScreen(ctx context.Context, controller *services.ExplorerController) *StatsScreen {
	return &StatsScreen{
		ctx:        ctx,
		controller: controller,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		table: table.New(
			table.WithColumns([]table.Column{
				{Title: "#", Width: 3},
				{Title: "Country", Width: 28},
				{Title: "Region", Width: 10},
				{Title: "Population", Width: 15},
			}),
			table.WithFocused(false),
			table.WithHeight(topCountries),
		),
	}
}

func (s *StatsScreen) Init() tea.Cmd {
	if s.stats != nil || s.loading {
		return nil
	}
	s.loading = true
	s.err = nil
	return tea.Batch(s.spinner.Tick, s.loadStats)
}

func (s *StatsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "r" && s.stats == nil {
			return s, s.Init()
		}

	case statsLoadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			s.stats = msg.stats
			s.setRows()
		}

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *StatsScreen) setRows() {
	rows := make([]table.Row, len(s.stats.Top))
	for i, c := range s.stats.Top {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			c.Name.Common,
			c.Region,
			services.FormatNumber(c.Population),
		}
	}
	s.table.SetRows(rows)
}

func (s *StatsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("📊 World Statistics")
	help := styles.HelpStyle.Render("tab: switch view • t: theme • q: quit")

	switch {
	case s.loading:
		return fmt.Sprintf("%s\n%s %s", header, s.spinner.View(), styles.StatusLoading.Render("Loading countries..."))
	case s.stats == nil && s.err != nil:
		return fmt.Sprintf("%s\n%s\n%s", header,
			styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)),
			styles.HelpStyle.Render("r: retry • tab: switch view • q: quit"))
	case s.stats == nil:
		return header
	}

	bars := make([]components.Bar, len(s.stats.Regions))
	for i, r := range s.stats.Regions {
		bars[i] = components.Bar{Label: r.Region, Value: int64(r.Count), Display: fmt.Sprintf("%d", r.Count)}
	}
	regions := lipgloss.JoinVertical(lipgloss.Left,
		styles.SubtitleStyle.Render(fmt.Sprintf("Countries by region (%d total)", s.stats.Total)),
		components.BarChart(bars, s.width-4),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Colors.Muted).
		BorderBottom(true).
		Bold(true)
	ts.Selected = lipgloss.NewStyle()
	s.table.SetStyles(ts)

	top := lipgloss.JoinVertical(lipgloss.Left,
		styles.SubtitleStyle.Render("Most populous countries"),
		s.table.View(),
	)

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, regions, top, help)
}

// Messages
type statsLoadedMsg struct {
	stats *services.Stats
	err   error
}

// Commands
func (s *StatsScreen) loadStats() tea.Msg {
	stats, err := s.controller.Stats(s.ctx, topCountries)
	return statsLoadedMsg{stats: stats, err: err}
}
