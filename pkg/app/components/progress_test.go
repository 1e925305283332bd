package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/kerbaras/countries/pkg/services"
)

func TestNewExportTracker(t *testing.T) {
	tracker := NewExportTracker(80)

	if tracker == nil {
		t.Fatal("Expected tracker to be created")
	}
	if tracker.width != 80 {
		t.Errorf("Expected width 80, got %d", tracker.width)
	}
	if tracker.Active() {
		t.Error("Expected no active export initially")
	}
}

func TestExportTrackerLifecycle(t *testing.T) {
	tracker := NewExportTracker(80)

	tracker.Update(services.ExportProgress{Code: "FRA", Current: 1, Total: 3, Status: "flag"})
	if !tracker.Active() {
		t.Error("Expected active export after update")
	}

	tracker.Update(services.ExportProgress{Current: 3, Total: 3, Status: "complete"})
	if tracker.Active() {
		t.Error("Expected export to be finished")
	}

	tracker.Clear()
	if tracker.View() != "" {
		t.Error("Expected empty view after clear")
	}
}

func TestExportTrackerView(t *testing.T) {
	tracker := NewExportTracker(40)
	tracker.Update(services.ExportProgress{Current: 2, Total: 4, Status: "flag"})

	view := tracker.View()

	if !strings.Contains(view, "Guide export") {
		t.Error("Expected header")
	}
	if !strings.Contains(view, "2/4 flags") {
		t.Error("Expected flag progress in view")
	}
	if !strings.Contains(view, "█") || !strings.Contains(view, "░") {
		t.Error("Expected progress bar")
	}
}

func TestExportTrackerViewError(t *testing.T) {
	tracker := NewExportTracker(40)
	tracker.Update(services.ExportProgress{Status: "error", Error: errors.New("offline")})

	if !strings.Contains(tracker.View(), "Error: offline") {
		t.Error("Expected error in view")
	}
}

func TestRenderProgressBar(t *testing.T) {
	bar := renderProgressBar(50, 100, 20)

	if got := strings.Count(bar, "█"); got != 10 {
		t.Errorf("Expected 10 filled cells, got %d", got)
	}
	if got := strings.Count(bar, "░"); got != 10 {
		t.Errorf("Expected 10 empty cells, got %d", got)
	}
	if renderProgressBar(1, 0, 20) != "" {
		t.Error("Expected empty bar for zero total")
	}
}
