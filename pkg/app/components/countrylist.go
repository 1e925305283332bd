package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/countries/pkg/app/styles"
	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/services"
)

type CountryListItem struct {
	Country  data.Country
	Favorite bool
}

// CountryList is a selectable one-line-per-country list that scrolls to keep the
// selection visible.
type CountryList struct {
	Items         []CountryListItem
	SelectedIndex int
	Width         int
	Height        int
	EmptyMessage  string
}

func NewCountryList() *CountryList {
	return &CountryList{
		Items:        []CountryListItem{},
		Width:        80,
		Height:       20,
		EmptyMessage: "No countries found",
	}
}

func (m *CountryList) SetItems(items []CountryListItem) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *CountryList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *CountryList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

// AtEnd reports whether the last item is selected.
func (m *CountryList) AtEnd() bool {
	return len(m.Items) > 0 && m.SelectedIndex == len(m.Items)-1
}

func (m *CountryList) Selected() *CountryListItem {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

// window returns the [start, end) range of rows that fit in Height.
func (m *CountryList) window() (int, int) {
	height := max(1, m.Height)
	if len(m.Items) <= height {
		return 0, len(m.Items)
	}
	start := m.SelectedIndex - height/2
	start = max(0, min(start, len(m.Items)-height))
	return start, start + height
}

func (m *CountryList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render(m.EmptyMessage)
		return lipgloss.Place(m.Width, max(1, m.Height), lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	nameWidth := max(16, m.Width/3)
	start, end := m.window()

	var b strings.Builder
	for i := start; i < end; i++ {
		item := m.Items[i]

		marker := "  "
		if item.Favorite {
			marker = styles.FavoriteStyle.Render("★ ")
		}

		name := truncate(item.Country.Name.Common, nameWidth)
		nameStyle := styles.TextStyle
		if i == m.SelectedIndex {
			name = "> " + name
			nameStyle = styles.SelectedStyle
		} else {
			name = "  " + name
		}

		capital := "N/A"
		if len(item.Country.Capital) > 0 {
			capital = item.Country.Capital[0]
		}
		meta := fmt.Sprintf("%s · %s · %s", capital, item.Country.Region, services.FormatCompact(item.Country.Population))

		b.WriteString(marker)
		b.WriteString(nameStyle.Width(nameWidth + 2).Render(name))
		b.WriteString(" ")
		b.WriteString(styles.MutedStyle.Render(meta))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
