package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/wdjumin/constellation-terminal/internal/positions"
)

// viewPositions renders the planetary positions workflow: the observer
// form, then the table and polar plot once data is loaded.
func (m Model) viewPositions() string {
	var sections []string

	sections = append(sections, sectionHeaderStyle.Render("Observer"))
	sections = append(sections,
		renderField("Latitude", m.posInputs[0], m.mode == ModeForm && m.posFocus == posSlotLat),
		renderField("Longitude", m.posInputs[1], m.mode == ModeForm && m.posFocus == posSlotLon),
		renderField("Elevation (m)", m.posInputs[2], m.mode == ModeForm && m.posFocus == posSlotElevation),
		renderField("Date", m.posInputs[3], m.mode == ModeForm && m.posFocus == posSlotDate),
		renderField("Time (HH:MM:SS)", m.posInputs[4], m.mode == ModeForm && m.posFocus == posSlotTime),
		renderButton("Fetch positions", m.mode == ModeForm && m.posFocus == posSlotFetch),
	)

	if m.session.Table != nil {
		sections = append(sections,
			sectionHeaderStyle.Render("Positions"),
			m.posTable.View(),
			sectionHeaderStyle.Render("Relative distance plot"),
			renderPolarPlot(m.session.Table, m.session.Zoom, m.plotWidth(), m.plotHeight()),
		)
	} else {
		sections = append(sections, "",
			mutedStyle.Render("Fetch positions to see the table and the distance plot."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) plotWidth() int {
	w := m.width - 4
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) plotHeight() int {
	h := m.height - 28
	if h > 21 {
		h = 21
	}
	if h < 9 {
		h = 9
	}
	return h
}

// createPositionsTable builds the tabular view of a positions table.
func createPositionsTable(t positions.Table) table.Model {
	columns := []table.Column{
		{Title: "Body", Width: 10},
		{Title: "Date", Width: 11},
		{Title: "AU", Width: 9},
		{Title: "km", Width: 14},
		{Title: "Alt °", Width: 8},
		{Title: "Az °", Width: 8},
		{Title: "Rel AU", Width: 8},
	}

	rows := make([]table.Row, len(t.Rows))
	for i, r := range t.Rows {
		name := r.Name
		if name == t.Center {
			name = "▸" + name
		}
		rows[i] = table.Row{
			name,
			shortDate(r.Date),
			fmt.Sprintf("%.4f", r.DistanceAU),
			fmt.Sprintf("%.0f", r.DistanceKM),
			fmt.Sprintf("%.2f", r.AltitudeDeg),
			fmt.Sprintf("%.2f", r.AzimuthDeg),
			fmt.Sprintf("%.4f", r.RelativeAU),
		}
	}

	height := len(rows) + 1
	if height > 12 {
		height = 12
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(colorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorBorder).
		Bold(true)
	tbl.SetStyles(s)

	return tbl
}

// shortDate trims an ISO timestamp to its date part.
func shortDate(date string) string {
	if idx := strings.IndexByte(date, 'T'); idx > 0 {
		return date[:idx]
	}
	return date
}
