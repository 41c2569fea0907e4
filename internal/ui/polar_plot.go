package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wdjumin/constellation-terminal/internal/positions"
)

// ringRadiiAU are the fixed reference rings drawn regardless of data range.
var ringRadiiAU = []float64{1, 5, 10, 20, 30}

// bodyColors maps the recognized bodies to their plot colors. Bodies not in
// the map fall back to plotDefaultColor.
var bodyColors = map[string]lipgloss.Color{
	"Sun":     lipgloss.Color("220"),
	"Mercury": lipgloss.Color("245"),
	"Venus":   lipgloss.Color("214"),
	"Earth":   lipgloss.Color("39"),
	"Mars":    lipgloss.Color("160"),
	"Jupiter": lipgloss.Color("208"),
	"Saturn":  lipgloss.Color("179"),
	"Uranus":  lipgloss.Color("44"),
	"Neptune": lipgloss.Color("27"),
	"Pluto":   lipgloss.Color("139"),
}

var plotDefaultColor = lipgloss.Color("252")

// cellKind classifies what occupies a canvas cell, for styling.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellRing
	cellBody
	cellLabel
)

// polarCanvas is a rune grid with per-cell styling info.
type polarCanvas struct {
	width, height int
	runes         [][]rune
	kinds         [][]cellKind
	bodies        map[[2]int]string // cell -> body name, for coloring
}

func newPolarCanvas(width, height int) *polarCanvas {
	runes := make([][]rune, height)
	kinds := make([][]cellKind, height)
	for y := range runes {
		runes[y] = make([]rune, width)
		kinds[y] = make([]cellKind, width)
		for x := range runes[y] {
			runes[y][x] = ' '
		}
	}
	return &polarCanvas{
		width:  width,
		height: height,
		runes:  runes,
		kinds:  kinds,
		bodies: make(map[[2]int]string),
	}
}

// renderPolarPlot draws the heliocentric-style polar scatter: one marker per
// body at radius = relative distance, angle = azimuth measured clockwise
// from up (compass convention, to match the sky-facing orientation). The
// radial axis is clamped to [0, zoom]; bodies beyond the clamp fall off the
// canvas but stay in the legend.
func renderPolarPlot(t *positions.Table, zoom float64, width, height int) string {
	if t == nil || len(t.Rows) == 0 {
		return mutedStyle.Render("No position data yet. Fetch positions to see the plot.")
	}
	if width < 20 || height < 8 {
		return mutedStyle.Render("Terminal too small for the polar plot")
	}
	if zoom < 1 {
		zoom = 1
	}

	c := newPolarCanvas(width, height)

	cx := width / 2
	cy := height / 2

	// Terminal cells are ~twice as tall as wide, hence the 0.5 factor on y.
	maxDisplayR := math.Min(float64(cx), float64(cy)*2) * 0.9
	displayScale := maxDisplayR / zoom

	c.drawRings(cx, cy, displayScale)

	for _, row := range t.Rows {
		theta := row.AzimuthDeg * math.Pi / 180
		// Compass-style: azimuth 0 points up, increasing clockwise.
		x := cx + int(math.Round(row.RelativeAU*math.Sin(theta)*displayScale))
		y := cy - int(math.Round(row.RelativeAU*math.Cos(theta)*displayScale*0.5))

		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}

		glyph := '●'
		if row.Name == t.Center {
			glyph = '◉'
		}
		c.runes[y][x] = glyph
		c.kinds[y][x] = cellBody
		c.bodies[[2]int{y, x}] = row.Name

		c.drawLabel(x+2, y, row.Name)
	}

	return c.render() + "\n" + renderPlotLegend(t, zoom, width)
}

// drawRings draws the fixed reference circles with dotted guide lines.
func (c *polarCanvas) drawRings(cx, cy int, displayScale float64) {
	for _, au := range ringRadiiAU {
		r := au * displayScale
		if r < 1 {
			continue
		}

		steps := int(2 * math.Pi * r)
		if steps < 8 {
			steps = 8
		}
		if steps > 360 {
			steps = 360
		}

		for i := 0; i < steps; i++ {
			theta := 2 * math.Pi * float64(i) / float64(steps)
			x := cx + int(r*math.Cos(theta))
			y := cy - int(r*math.Sin(theta)*0.5)

			if x >= 0 && x < c.width && y >= 0 && y < c.height && c.runes[y][x] == ' ' {
				c.runes[y][x] = '·'
				c.kinds[y][x] = cellRing
			}
		}

		// Ring radius annotation at the right edge of the circle.
		c.drawLabel(cx+int(r)+1, cy, fmt.Sprintf("%g", au))
	}
}

// drawLabel writes text onto empty or ring cells only.
func (c *polarCanvas) drawLabel(x, y int, text string) {
	if y < 0 || y >= c.height {
		return
	}
	for i, r := range text {
		px := x + i
		if px < 0 || px >= c.width {
			return
		}
		if c.kinds[y][px] == cellEmpty || c.kinds[y][px] == cellRing {
			c.runes[y][px] = r
			c.kinds[y][px] = cellLabel
		}
	}
}

func (c *polarCanvas) render() string {
	ringStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	lblStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("246"))

	var b strings.Builder
	for y, row := range c.runes {
		for x, ch := range row {
			switch c.kinds[y][x] {
			case cellEmpty:
				b.WriteRune(ch)
			case cellRing:
				b.WriteString(ringStyle.Render(string(ch)))
			case cellLabel:
				b.WriteString(lblStyle.Render(string(ch)))
			case cellBody:
				b.WriteString(bodyStyle(c.bodies[[2]int{y, x}]).Render(string(ch)))
			}
		}
		b.WriteRune('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderPlotLegend lists every body with its relative distance, including
// bodies clipped by the zoom clamp.
func renderPlotLegend(t *positions.Table, zoom float64, width int) string {
	var entries []string
	for _, row := range t.Rows {
		marker := bodyStyle(row.Name).Render("●")
		entry := fmt.Sprintf("%s %s %.2f", marker, row.Name, row.RelativeAU)
		if row.RelativeAU > zoom {
			entry += mutedStyle.Render(" (off-scale)")
		}
		entries = append(entries, entry)
	}

	legend := strings.Join(entries, "   ")
	header := mutedStyle.Render(fmt.Sprintf("center: %s   zoom: %.1f AU   (+/- to zoom)", t.Center, zoom))
	return lipgloss.NewStyle().Width(width).Render(header + "\n" + legend)
}

func bodyStyle(name string) lipgloss.Style {
	color, ok := bodyColors[name]
	if !ok {
		color = plotDefaultColor
	}
	return lipgloss.NewStyle().Foreground(color)
}
