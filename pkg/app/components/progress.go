package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/countries/pkg/app/styles"
	"github.com/kerbaras/countries/pkg/services"
)

// ExportTracker keeps the latest guide export progress for display.
type ExportTracker struct {
	last  *services.ExportProgress
	width int
}

func NewExportTracker(width int) *ExportTracker {
	return &ExportTracker{width: width}
}

func (p *ExportTracker) SetWidth(width int) {
	p.width = width
}

func (p *ExportTracker) Update(progress services.ExportProgress) {
	prog := progress
	p.last = &prog
}

func (p *ExportTracker) Clear() {
	p.last = nil
}

// Active reports whether an export is still running.
func (p *ExportTracker) Active() bool {
	return p.last != nil && p.last.Status != "complete" && p.last.Status != "error"
}

func (p *ExportTracker) View() string {
	if p.last == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Guide export"))
	b.WriteString("\n")

	statusText := p.last.Status
	if p.last.Total > 0 {
		statusText = fmt.Sprintf("%s (%d/%d flags)", p.last.Status, p.last.Current, p.last.Total)
		b.WriteString(renderProgressBar(p.last.Current, p.last.Total, max(10, p.width-4)))
		b.WriteString("\n")
	}
	b.WriteString(styles.StatusStyle(p.last.Status).Render(statusText))
	b.WriteString("\n")

	if p.last.Error != nil {
		b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", p.last.Error)))
		b.WriteString("\n")
	}

	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.BarStyle.Render(bar)
}
