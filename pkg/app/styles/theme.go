package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/countries/pkg/data"
)

type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	TabActive  lipgloss.Color
}

var (
	DarkPalette = Palette{
		Primary:    lipgloss.Color("#82AAFF"),
		Secondary:  lipgloss.Color("#C792EA"),
		Success:    lipgloss.Color("#C3E88D"),
		Warning:    lipgloss.Color("#FFCB6B"),
		Error:      lipgloss.Color("#F07178"),
		Info:       lipgloss.Color("#89DDFF"),
		Muted:      lipgloss.Color("#546E7A"),
		Background: lipgloss.Color("#263238"),
		Foreground: lipgloss.Color("#EEFFFF"),
		TabActive:  lipgloss.Color("#37474F"),
	}

	LightPalette = Palette{
		Primary:    lipgloss.Color("#1565C0"),
		Secondary:  lipgloss.Color("#7B1FA2"),
		Success:    lipgloss.Color("#2E7D32"),
		Warning:    lipgloss.Color("#EF6C00"),
		Error:      lipgloss.Color("#C62828"),
		Info:       lipgloss.Color("#00838F"),
		Muted:      lipgloss.Color("#78909C"),
		Background: lipgloss.Color("#FAFAFA"),
		Foreground: lipgloss.Color("#212121"),
		TabActive:  lipgloss.Color("#E3F2FD"),
	}
)

// Border styles
var (
	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

// Styles below are rebuilt by Apply; screens read them at render time.
var (
	current = data.DarkTheme
	Colors  Palette

	TitleStyle        lipgloss.Style
	SubtitleStyle     lipgloss.Style
	TextStyle         lipgloss.Style
	MutedStyle        lipgloss.Style
	SelectedStyle     lipgloss.Style
	CardStyle         lipgloss.Style
	ActiveCardStyle   lipgloss.Style
	StatusLoading     lipgloss.Style
	StatusCompleted   lipgloss.Style
	StatusError       lipgloss.Style
	FavoriteStyle     lipgloss.Style
	BarStyle          lipgloss.Style
	BarHighlightStyle lipgloss.Style
	BarEmptyStyle     lipgloss.Style
	ActiveTabStyle    lipgloss.Style
	InactiveTabStyle  lipgloss.Style
	HelpStyle         lipgloss.Style
	InputStyle        lipgloss.Style
	FocusedInputStyle lipgloss.Style
	LabelStyle        lipgloss.Style
)

func init() {
	Apply(data.DarkTheme)
}

// Current is the theme last passed to Apply.
func Current() data.Theme {
	return current
}

// Apply switches every style to the palette of theme.
func Apply(theme data.Theme) {
	current = theme
	Colors = DarkPalette
	if theme == data.LightTheme {
		Colors = LightPalette
	}
	p := Colors

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Italic(true)

	TextStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)

	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	LabelStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	CardStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(p.Secondary).
		Padding(0, 1)

	ActiveCardStyle = lipgloss.NewStyle().
		Border(ThickBorder).
		BorderForeground(p.Primary).
		Padding(0, 1)

	StatusLoading = lipgloss.NewStyle().
		Foreground(p.Info).
		Bold(true)

	StatusCompleted = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	StatusError = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	FavoriteStyle = lipgloss.NewStyle().
		Foreground(p.Warning)

	BarStyle = lipgloss.NewStyle().
		Foreground(p.Primary)

	BarHighlightStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	BarEmptyStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	ActiveTabStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Background(p.TabActive).
		Padding(0, 2).
		Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 2)

	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true).
		MarginTop(1)

	InputStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(p.Secondary).
		Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(p.Primary).
		Padding(0, 1)
}

// StatusStyle maps export progress states to a style.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "fetching", "flag", "writing":
		return StatusLoading
	case "complete":
		return StatusCompleted
	case "error":
		return StatusError
	default:
		return MutedStyle
	}
}

// DetectTheme follows the terminal background when no theme is stored.
func DetectTheme() data.Theme {
	if lipgloss.HasDarkBackground() {
		return data.DarkTheme
	}
	return data.LightTheme
}
