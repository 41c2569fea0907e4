package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wdjumin/constellation-terminal/internal/astronomy"
)

// viewStarChart renders the star-chart workflow: location search, observer
// fields, constellation picker and the generated image URL.
func (m Model) viewStarChart() string {
	focused := func(slot int) bool {
		return m.mode == ModeForm && m.scFocus == slot
	}

	var sections []string

	sections = append(sections,
		mutedStyle.Render("Generate a star map for a constellation from your location and date."),
		"",
		m.viewLocationSection(focused(scSlotLocation)),
		sectionHeaderStyle.Render("Observer"),
		renderField("Latitude", m.scInputs[0], focused(scSlotLat)),
		renderField("Longitude", m.scInputs[1], focused(scSlotLon)),
		renderField("Date", m.scInputs[2], focused(scSlotDate)),
		renderSelect("✨ Constellation", astronomy.Constellations[m.constellationIdx].Name, focused(scSlotConstellation)),
		renderButton("Generate star map", focused(scSlotGenerate)),
	)

	if m.chartURL != "" {
		body := successStyle.Render("Constellation: "+astronomy.Constellations[m.constellationIdx].Name) +
			"\n" + valueStyle.Render(m.chartURL)
		sections = append(sections, "", resultBoxStyle.Render(body))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
