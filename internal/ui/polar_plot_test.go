package ui

import (
	"strings"
	"testing"

	"github.com/wdjumin/constellation-terminal/internal/positions"
)

func centeredSampleTable(t *testing.T) *positions.Table {
	t.Helper()
	table, err := sampleTable().RelativeTo("Earth")
	if err != nil {
		t.Fatalf("RelativeTo() error = %v", err)
	}
	return &table
}

func TestRenderPolarPlot_Empty(t *testing.T) {
	out := renderPolarPlot(nil, 1, 60, 15)
	if !strings.Contains(out, "No position data") {
		t.Errorf("nil table output = %q", out)
	}

	out = renderPolarPlot(&positions.Table{}, 1, 60, 15)
	if !strings.Contains(out, "No position data") {
		t.Errorf("empty table output = %q", out)
	}
}

func TestRenderPolarPlot_TooSmall(t *testing.T) {
	out := renderPolarPlot(centeredSampleTable(t), 2, 10, 4)
	if !strings.Contains(out, "too small") {
		t.Errorf("output = %q, want size warning", out)
	}
}

func TestRenderPolarPlot(t *testing.T) {
	table := centeredSampleTable(t)
	out := renderPolarPlot(table, table.MaxRelativeAU(), 60, 15)

	if !strings.Contains(out, "◉") {
		t.Error("plot should mark the center body")
	}
	if !strings.Contains(out, "●") {
		t.Error("plot should mark non-center bodies")
	}
	if !strings.Contains(out, "·") {
		t.Error("plot should draw reference rings")
	}
	for _, name := range []string{"Sun", "Earth", "Mars"} {
		if !strings.Contains(out, name) {
			t.Errorf("plot should mention %s", name)
		}
	}
	if !strings.Contains(out, "center: Earth") {
		t.Error("legend should name the center body")
	}
	if !strings.Contains(out, "zoom:") {
		t.Error("legend should show the zoom level")
	}
}

func TestRenderPolarPlot_OffScaleLegend(t *testing.T) {
	table := centeredSampleTable(t)

	// Mars sits at 1.52 AU relative; a 1 AU zoom pushes it off scale.
	out := renderPolarPlot(table, 1, 60, 15)
	if !strings.Contains(out, "(off-scale)") {
		t.Error("legend should flag bodies beyond the zoom clamp")
	}

	out = renderPolarPlot(table, table.MaxRelativeAU(), 60, 15)
	if strings.Contains(out, "(off-scale)") {
		t.Error("no body is off scale at full zoom")
	}
}

func TestRenderPolarPlot_ZoomFloor(t *testing.T) {
	table := centeredSampleTable(t)

	// A zoom below 1 AU is clamped, not an error.
	out := renderPolarPlot(table, 0.1, 60, 15)
	if !strings.Contains(out, "zoom: 1.0") {
		t.Errorf("legend should show the clamped zoom, got %q", out)
	}
}
