package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/countries/pkg/app/styles"
)

type Bar struct {
	Label     string
	Value     int64
	Display   string
	Highlight bool
}

// BarChart renders one horizontal bar per entry, scaled to the largest value.
// Highlighted bars use the accent colour.
func BarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}

	labelWidth := 0
	var peak int64
	for _, bar := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(bar.Label))
		peak = max(peak, bar.Value)
	}
	labelWidth = min(labelWidth, 24)
	barWidth := max(10, width-labelWidth-14)

	var b strings.Builder
	for _, bar := range bars {
		filled := 0
		if peak > 0 {
			filled = int(float64(bar.Value) / float64(peak) * float64(barWidth))
		}
		filled = max(0, min(filled, barWidth))
		if bar.Value > 0 && filled == 0 {
			filled = 1
		}

		style := styles.BarStyle
		labelStyle := styles.TextStyle
		if bar.Highlight {
			style = styles.BarHighlightStyle
			labelStyle = styles.BarHighlightStyle
		}

		b.WriteString(labelStyle.Width(labelWidth + 1).Render(truncate(bar.Label, labelWidth)))
		b.WriteString(style.Render(strings.Repeat("█", filled)))
		b.WriteString(styles.BarEmptyStyle.Render(strings.Repeat("░", barWidth-filled)))
		b.WriteString(" ")
		b.WriteString(styles.MutedStyle.Render(bar.Display))
		b.WriteString("\n")
	}
	return b.String()
}
