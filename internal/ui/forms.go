package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wdjumin/constellation-terminal/internal/astronomy"
)

// Form slots. Each workflow tab has an ordered set of focusable controls;
// focus cycles through them with up/down.

// Positions form slots
const (
	posSlotLat = iota
	posSlotLon
	posSlotElevation
	posSlotDate
	posSlotTime
	posSlotFetch
	posSlotCount
)

// Star chart form slots
const (
	scSlotLocation = iota
	scSlotLat
	scSlotLon
	scSlotDate
	scSlotConstellation
	scSlotGenerate
	scSlotCount
)

// Moon phase form slots
const (
	mpSlotLocation = iota
	mpSlotLat
	mpSlotLon
	mpSlotDate
	mpSlotFormat
	mpSlotMoonStyle
	mpSlotBackground
	mpSlotColor
	mpSlotOrientation
	mpSlotGenerate
	mpSlotCount
)

// Select options, cycled with left/right.
var (
	moonFormats     = []astronomy.MoonFormat{astronomy.FormatPNG, astronomy.FormatSVG}
	moonStyles      = []astronomy.MoonStyle{astronomy.MoonDefault, astronomy.MoonSketch, astronomy.MoonShaded}
	backgroundNames = []string{"stars", "solid"}
	orientations    = []astronomy.Orientation{astronomy.NorthUp, astronomy.SouthUp}
)

// focusSlot moves focus to the given slot of the active tab, blurring every
// text input first.
func (m *Model) focusSlot(slot int) {
	m.locationInput.Blur()
	for i := range m.posInputs {
		m.posInputs[i].Blur()
	}
	for i := range m.scInputs {
		m.scInputs[i].Blur()
	}
	for i := range m.mpInputs {
		m.mpInputs[i].Blur()
	}

	switch m.tab {
	case TabPositions:
		m.posFocus = slot
		if slot < posSlotFetch {
			m.posInputs[slot].Focus()
		}
	case TabStarChart:
		m.scFocus = slot
		if slot == scSlotLocation {
			m.locationInput.Focus()
		} else if slot >= scSlotLat && slot <= scSlotDate {
			m.scInputs[slot-scSlotLat].Focus()
		}
	case TabMoonPhase:
		m.mpFocus = slot
		if slot == mpSlotLocation {
			m.locationInput.Focus()
		} else if slot >= mpSlotLat && slot <= mpSlotDate {
			m.mpInputs[slot-mpSlotLat].Focus()
		} else if slot == mpSlotColor {
			m.mpInputs[3].Focus()
		}
	}
}

// currentSlot returns the focused slot of the active tab.
func (m Model) currentSlot() int {
	switch m.tab {
	case TabStarChart:
		return m.scFocus
	case TabMoonPhase:
		return m.mpFocus
	default:
		return m.posFocus
	}
}

// slotCount returns the slot count of the active tab.
func (m Model) slotCount() int {
	switch m.tab {
	case TabStarChart:
		return scSlotCount
	case TabMoonPhase:
		return mpSlotCount
	default:
		return posSlotCount
	}
}

// nextSlot advances focus, skipping the color field when the background is
// not solid.
func (m *Model) nextSlot() {
	slot := m.currentSlot()
	for {
		slot = (slot + 1) % m.slotCount()
		if !m.slotSkipped(slot) {
			break
		}
	}
	m.focusSlot(slot)
}

// prevSlot moves focus backwards.
func (m *Model) prevSlot() {
	slot := m.currentSlot()
	for {
		slot--
		if slot < 0 {
			slot = m.slotCount() - 1
		}
		if !m.slotSkipped(slot) {
			break
		}
	}
	m.focusSlot(slot)
}

// slotSkipped reports whether a slot is currently hidden from the focus
// cycle.
func (m Model) slotSkipped(slot int) bool {
	return m.tab == TabMoonPhase && slot == mpSlotColor && backgroundNames[m.backgroundIdx] != "solid"
}

// slotIsSelect reports whether the focused control is an option cycler.
func (m Model) slotIsSelect() bool {
	switch m.tab {
	case TabStarChart:
		return m.scFocus == scSlotConstellation
	case TabMoonPhase:
		switch m.mpFocus {
		case mpSlotFormat, mpSlotMoonStyle, mpSlotBackground, mpSlotOrientation:
			return true
		}
	}
	return false
}

// cycleSelect advances the focused select by delta (wrapping).
func (m *Model) cycleSelect(delta int) {
	cycle := func(idx, n int) int {
		idx = (idx + delta) % n
		if idx < 0 {
			idx += n
		}
		return idx
	}

	switch m.tab {
	case TabStarChart:
		if m.scFocus == scSlotConstellation {
			m.constellationIdx = cycle(m.constellationIdx, len(astronomy.Constellations))
		}
	case TabMoonPhase:
		switch m.mpFocus {
		case mpSlotFormat:
			m.formatIdx = cycle(m.formatIdx, len(moonFormats))
		case mpSlotMoonStyle:
			m.moonStyleIdx = cycle(m.moonStyleIdx, len(moonStyles))
		case mpSlotBackground:
			m.backgroundIdx = cycle(m.backgroundIdx, len(backgroundNames))
		case mpSlotOrientation:
			m.orientationIdx = cycle(m.orientationIdx, len(orientations))
		}
	}
}

// parseCoordinate parses a latitude/longitude field.
func parseCoordinate(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, value)
	}
	return v, nil
}

// buildPositionsQuery validates the positions form into a query. The date
// range is a single snapshot: from_date and to_date are the same day.
func (m Model) buildPositionsQuery() (astronomy.PositionsQuery, error) {
	lat, err := parseCoordinate("latitude", m.posInputs[0].Value())
	if err != nil {
		return astronomy.PositionsQuery{}, err
	}
	lon, err := parseCoordinate("longitude", m.posInputs[1].Value())
	if err != nil {
		return astronomy.PositionsQuery{}, err
	}

	elevation := 0.0
	if v := strings.TrimSpace(m.posInputs[2].Value()); v != "" {
		elevation, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return astronomy.PositionsQuery{}, fmt.Errorf("invalid elevation: %q", v)
		}
	}

	date := strings.TrimSpace(m.posInputs[3].Value())
	if date == "" {
		return astronomy.PositionsQuery{}, fmt.Errorf("date is required (YYYY-MM-DD)")
	}
	obsTime := strings.TrimSpace(m.posInputs[4].Value())
	if obsTime == "" {
		obsTime = "00:00:00"
	}

	return astronomy.PositionsQuery{
		Latitude:  lat,
		Longitude: lon,
		Elevation: elevation,
		FromDate:  date,
		ToDate:    date,
		Time:      obsTime,
	}, nil
}

// buildStarChartRequest validates the star chart form into a request.
func (m Model) buildStarChartRequest() (astronomy.StarChartRequest, error) {
	lat, err := parseCoordinate("latitude", m.scInputs[0].Value())
	if err != nil {
		return astronomy.StarChartRequest{}, err
	}
	lon, err := parseCoordinate("longitude", m.scInputs[1].Value())
	if err != nil {
		return astronomy.StarChartRequest{}, err
	}
	date := strings.TrimSpace(m.scInputs[2].Value())
	if date == "" {
		return astronomy.StarChartRequest{}, fmt.Errorf("date is required (YYYY-MM-DD)")
	}

	return astronomy.StarChartRequest{
		Observer: astronomy.Observer{
			Latitude:  lat,
			Longitude: lon,
			Date:      date,
		},
		Constellation: astronomy.Constellations[m.constellationIdx].Code,
	}, nil
}

// buildMoonPhaseRequest validates the moon phase form into a request. The
// background color is carried only by the solid variant.
func (m Model) buildMoonPhaseRequest() (astronomy.MoonPhaseRequest, error) {
	lat, err := parseCoordinate("latitude", m.mpInputs[0].Value())
	if err != nil {
		return astronomy.MoonPhaseRequest{}, err
	}
	lon, err := parseCoordinate("longitude", m.mpInputs[1].Value())
	if err != nil {
		return astronomy.MoonPhaseRequest{}, err
	}
	date := strings.TrimSpace(m.mpInputs[2].Value())
	if date == "" {
		return astronomy.MoonPhaseRequest{}, fmt.Errorf("date is required (YYYY-MM-DD)")
	}

	background := astronomy.BackgroundStars()
	if backgroundNames[m.backgroundIdx] == "solid" {
		color := strings.TrimSpace(m.mpInputs[3].Value())
		if color == "" {
			return astronomy.MoonPhaseRequest{}, fmt.Errorf("background color is required for a solid background")
		}
		background = astronomy.BackgroundSolid(color)
	}

	return astronomy.MoonPhaseRequest{
		Format:     moonFormats[m.formatIdx],
		MoonStyle:  moonStyles[m.moonStyleIdx],
		Background: background,
		Observer: astronomy.Observer{
			Latitude:  lat,
			Longitude: lon,
			Date:      date,
		},
		Orientation: orientations[m.orientationIdx],
	}, nil
}

// applyLocationPrefill writes resolved coordinates into the latitude and
// longitude fields of every form, except fields the user already edited by
// hand.
func (m *Model) applyLocationPrefill(lat, lon float64) {
	latStr := strconv.FormatFloat(lat, 'f', 4, 64)
	lonStr := strconv.FormatFloat(lon, 'f', 4, 64)

	if !m.posDirty[0] {
		m.posInputs[0].SetValue(latStr)
	}
	if !m.posDirty[1] {
		m.posInputs[1].SetValue(lonStr)
	}
	if !m.scDirty[0] {
		m.scInputs[0].SetValue(latStr)
	}
	if !m.scDirty[1] {
		m.scInputs[1].SetValue(lonStr)
	}
	if !m.mpDirty[0] {
		m.mpInputs[0].SetValue(latStr)
	}
	if !m.mpDirty[1] {
		m.mpInputs[1].SetValue(lonStr)
	}
}

// markDirty records that the user edited a latitude/longitude field, so the
// location prefill no longer overwrites it.
func (m *Model) markDirty() {
	switch m.tab {
	case TabPositions:
		if m.posFocus == posSlotLat {
			m.posDirty[0] = true
		}
		if m.posFocus == posSlotLon {
			m.posDirty[1] = true
		}
	case TabStarChart:
		if m.scFocus == scSlotLat {
			m.scDirty[0] = true
		}
		if m.scFocus == scSlotLon {
			m.scDirty[1] = true
		}
	case TabMoonPhase:
		if m.mpFocus == mpSlotLat {
			m.mpDirty[0] = true
		}
		if m.mpFocus == mpSlotLon {
			m.mpDirty[1] = true
		}
	}
}
