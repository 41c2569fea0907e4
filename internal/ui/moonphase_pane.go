package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// viewMoonPhase renders the moon-phase workflow form and result.
func (m Model) viewMoonPhase() string {
	focused := func(slot int) bool {
		return m.mode == ModeForm && m.mpFocus == slot
	}

	var sections []string

	sections = append(sections,
		mutedStyle.Render("Render the moon as seen from your location on a chosen date."),
		"",
		m.viewLocationSection(focused(mpSlotLocation)),
		sectionHeaderStyle.Render("Observer"),
		renderField("Latitude", m.mpInputs[0], focused(mpSlotLat)),
		renderField("Longitude", m.mpInputs[1], focused(mpSlotLon)),
		renderField("Date", m.mpInputs[2], focused(mpSlotDate)),
		sectionHeaderStyle.Render("Style"),
		renderSelect("Format", string(moonFormats[m.formatIdx]), focused(mpSlotFormat)),
		renderSelect("Moon style", string(moonStyles[m.moonStyleIdx]), focused(mpSlotMoonStyle)),
		renderSelect("Background", backgroundNames[m.backgroundIdx], focused(mpSlotBackground)),
	)

	// The color field only applies to solid backgrounds.
	if backgroundNames[m.backgroundIdx] == "solid" {
		sections = append(sections,
			renderField("Background color", m.mpInputs[3], focused(mpSlotColor)))
	}

	sections = append(sections,
		renderSelect("Orientation", string(orientations[m.orientationIdx]), focused(mpSlotOrientation)),
		renderButton("Generate moon phase", focused(mpSlotGenerate)),
	)

	if m.moonResult.ImageURL != "" {
		sections = append(sections, "",
			resultBoxStyle.Render(valueStyle.Render(m.moonResult.ImageURL)))
	} else if m.moonResult.Raw != "" {
		raw := m.moonResult.Raw
		if len(raw) > 500 {
			raw = raw[:500] + "…"
		}
		sections = append(sections, "",
			resultBoxStyle.Render(mutedStyle.Render("Upstream response (no image URL):")+"\n"+raw))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
