// Package ui is the terminal front end: a tabbed, form-driven interface
// over the places and astronomy clients.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/wdjumin/constellation-terminal/internal/astronomy"
	"github.com/wdjumin/constellation-terminal/internal/config"
	"github.com/wdjumin/constellation-terminal/internal/places"
)

// Tab identifies one of the three independent workflows.
type Tab int

const (
	TabPositions Tab = iota
	TabStarChart
	TabMoonPhase
)

var tabNames = []string{"Planetary Positions", "Star Chart", "Moon Phase"}

// Mode represents what the UI is currently doing.
type Mode int

const (
	ModeForm    Mode = iota // Editing one of the workflow forms
	ModePicking             // Choosing from location suggestions
	ModeLoading             // A remote call is in flight
	ModeBrowse              // Navigating the positions table
)

// Model is the application's state. One Model is one user session: it owns
// the resolved location, the current positions table and the three forms.
type Model struct {
	cfg          *config.Config
	placesClient *places.Client
	astroClient  astronomy.Client

	width  int
	height int
	tab    Tab
	mode   Mode
	err    error
	notice string

	spinner     spinner.Model
	loadingWhat string

	session Session

	// Location search (star chart and moon phase tabs)
	locationInput textinput.Model
	suggestions   list.Model
	lastQuery     string

	// Positions form: latitude, longitude, elevation, date, time
	posInputs []textinput.Model
	posFocus  int
	posTable  table.Model
	posDirty  [2]bool

	// Star chart form: latitude, longitude, date
	scInputs         []textinput.Model
	scFocus          int
	constellationIdx int
	chartURL         string
	scDirty          [2]bool

	// Moon phase form: latitude, longitude, date, background color
	mpInputs       []textinput.Model
	mpFocus        int
	formatIdx      int
	moonStyleIdx   int
	backgroundIdx  int
	orientationIdx int
	moonResult     astronomy.MoonPhaseResult
	mpDirty        [2]bool

	// Optional location to resolve at startup (from the command line).
	initialLocation string
}

// NewModel creates the application model. initialLocation, when non-empty,
// is geocoded on startup so the forms come up prefilled.
func NewModel(cfg *config.Config, placesClient *places.Client, astroClient astronomy.Client, initialLocation string) Model {
	newInput := func(placeholder string, width int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 100
		ti.Width = width
		return ti
	}

	today := time.Now().Format("2006-01-02")

	loc := newInput("Type a location (e.g. Singapore), then Enter", 50)

	posInputs := []textinput.Model{
		newInput("0.0000", 12),
		newInput("0.0000", 12),
		newInput("0", 8),
		newInput(today, 12),
		newInput("22:00:00", 10),
	}
	posInputs[3].SetValue(today)
	posInputs[4].SetValue("22:00:00")

	scInputs := []textinput.Model{
		newInput("0.0000", 12),
		newInput("0.0000", 12),
		newInput(today, 12),
	}
	scInputs[2].SetValue(today)

	mpInputs := []textinput.Model{
		newInput("0.0000", 12),
		newInput("0.0000", 12),
		newInput(today, 12),
		newInput("#2E3440", 10),
	}
	mpInputs[2].SetValue(today)
	mpInputs[3].SetValue("#2E3440")

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	m := Model{
		cfg:             cfg,
		placesClient:    placesClient,
		astroClient:     astroClient,
		tab:             TabPositions,
		mode:            ModeForm,
		spinner:         s,
		locationInput:   loc,
		posInputs:       posInputs,
		scInputs:        scInputs,
		mpInputs:        mpInputs,
		initialLocation: initialLocation,
	}
	m.focusSlot(posSlotLat)
	return m
}

// Init kicks off the optional startup geocode.
func (m Model) Init() tea.Cmd {
	if m.initialLocation != "" {
		return tea.Batch(
			m.spinner.Tick,
			geocodeFallback(m.placesClient, m.initialLocation),
		)
	}
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.mode == ModePicking {
			m.suggestions.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case spinner.TickMsg:
		if m.mode == ModeLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case suggestionsMsg:
		return m.handleSuggestions(msg)

	case locationResolvedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("place lookup failed: %w", msg.err)
			m.mode = ModeForm
			return m, nil
		}
		m.applyLocation(msg.coord, msg.description)
		return m, nil

	case geocodedMsg:
		// The fallback never fails; an unresolvable query lands on (0, 0).
		m.applyLocation(msg.coord, "")
		return m, nil

	case positionsFetchedMsg:
		return m.handlePositionsFetched(msg)

	case starChartMsg:
		m.mode = ModeForm
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.chartURL = msg.url
		m.notice = "Star chart ready"
		return m, nil

	case moonPhaseMsg:
		m.mode = ModeForm
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.moonResult = msg.result
		if msg.result.ImageURL != "" {
			m.notice = "Moon phase image ready"
		} else {
			m.notice = "Moon phase response had no image; showing raw payload"
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}

	return m, nil
}

// handleKey routes keyboard input by mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Remote calls block the session until they return or time out.
	if m.mode == ModeLoading {
		return m, nil
	}

	if m.mode == ModePicking {
		return m.handlePicking(msg)
	}

	// Workflow switching
	switch msg.String() {
	case "tab":
		m.switchTab(1)
		return m, nil
	case "shift+tab":
		m.switchTab(-1)
		return m, nil
	}

	if m.mode == ModeBrowse {
		return m.handleBrowse(msg)
	}

	return m.handleForm(msg)
}

// switchTab moves to the next workflow and restores its focus.
func (m *Model) switchTab(delta int) {
	m.err = nil
	m.notice = ""
	m.tab = Tab((int(m.tab) + delta + len(tabNames)) % len(tabNames))
	m.mode = ModeForm
	m.focusSlot(m.currentSlot())
}

// handleForm handles keys while editing the active workflow form.
func (m Model) handleForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typing clears a stale error.
	if m.err != nil && msg.Type != tea.KeyEnter {
		m.err = nil
	}

	switch msg.String() {
	case "up":
		m.prevSlot()
		return m, nil
	case "down":
		m.nextSlot()
		return m, nil
	}

	if m.slotIsSelect() {
		switch msg.String() {
		case "left":
			m.cycleSelect(-1)
			return m, nil
		case "right", " ":
			m.cycleSelect(1)
			return m, nil
		}
	}

	if msg.Type == tea.KeyEnter {
		return m.submitSlot()
	}

	// Route everything else to the focused text input.
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeyBackspace || msg.Type == tea.KeySpace {
		m.markDirty()
	}
	return m.updateFocusedInput(msg)
}

// submitSlot acts on Enter: the location field starts a suggestion lookup,
// a button submits its form, anything else advances focus.
func (m Model) submitSlot() (tea.Model, tea.Cmd) {
	slot := m.currentSlot()

	locationFocused := (m.tab == TabStarChart && slot == scSlotLocation) ||
		(m.tab == TabMoonPhase && slot == mpSlotLocation)
	if locationFocused {
		query := m.locationInput.Value()
		if query == "" {
			return m, nil
		}
		m.lastQuery = query
		m.err = nil
		m.mode = ModeLoading
		m.loadingWhat = "Looking up locations"
		return m, tea.Batch(m.spinner.Tick, fetchSuggestions(m.placesClient, query))
	}

	switch {
	case m.tab == TabPositions && slot == posSlotFetch:
		query, err := m.buildPositionsQuery()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.mode = ModeLoading
		m.loadingWhat = "Fetching planetary positions"
		return m, tea.Batch(m.spinner.Tick, fetchPositions(m.astroClient, query))

	case m.tab == TabStarChart && slot == scSlotGenerate:
		req, err := m.buildStarChartRequest()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.chartURL = ""
		m.mode = ModeLoading
		m.loadingWhat = "Requesting your constellation chart"
		return m, tea.Batch(m.spinner.Tick, generateStarChart(m.astroClient, req))

	case m.tab == TabMoonPhase && slot == mpSlotGenerate:
		req, err := m.buildMoonPhaseRequest()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.moonResult = astronomy.MoonPhaseResult{}
		m.mode = ModeLoading
		m.loadingWhat = "Rendering the moon phase"
		return m, tea.Batch(m.spinner.Tick, generateMoonPhase(m.astroClient, req))
	}

	m.nextSlot()
	return m, nil
}

// updateFocusedInput routes a message to whichever text input has focus.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.tab {
	case TabPositions:
		if m.posFocus < posSlotFetch {
			m.posInputs[m.posFocus], cmd = m.posInputs[m.posFocus].Update(msg)
		}
	case TabStarChart:
		switch {
		case m.scFocus == scSlotLocation:
			m.locationInput, cmd = m.locationInput.Update(msg)
		case m.scFocus >= scSlotLat && m.scFocus <= scSlotDate:
			i := m.scFocus - scSlotLat
			m.scInputs[i], cmd = m.scInputs[i].Update(msg)
		}
	case TabMoonPhase:
		switch {
		case m.mpFocus == mpSlotLocation:
			m.locationInput, cmd = m.locationInput.Update(msg)
		case m.mpFocus >= mpSlotLat && m.mpFocus <= mpSlotDate:
			i := m.mpFocus - mpSlotLat
			m.mpInputs[i], cmd = m.mpInputs[i].Update(msg)
		case m.mpFocus == mpSlotColor:
			m.mpInputs[3], cmd = m.mpInputs[3].Update(msg)
		}
	}

	return m, cmd
}

// handleSuggestions reacts to autocomplete results: show the pick list, or
// fall straight back to geocoding when nothing matched.
func (m Model) handleSuggestions(msg suggestionsMsg) (tea.Model, tea.Cmd) {
	if len(msg.suggestions) == 0 {
		m.loadingWhat = "Geocoding " + msg.query
		return m, geocodeFallback(m.placesClient, msg.query)
	}

	m.suggestions = createSuggestionList(msg.suggestions, m.width-4, m.height-10)
	m.mode = ModePicking
	return m, nil
}

// handlePicking handles keys while the suggestion list is visible.
func (m Model) handlePicking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if item, ok := m.suggestions.SelectedItem().(suggestionItem); ok {
			m.mode = ModeLoading
			m.loadingWhat = "Resolving " + item.suggestion.Description
			return m, tea.Batch(m.spinner.Tick,
				resolvePlace(m.placesClient, item.suggestion.Description, item.suggestion.PlaceID))
		}
		return m, nil

	case tea.KeyEsc:
		// No suggestion taken: geocode the raw text instead.
		m.mode = ModeLoading
		m.loadingWhat = "Geocoding " + m.lastQuery
		return m, tea.Batch(m.spinner.Tick, geocodeFallback(m.placesClient, m.lastQuery))
	}

	var cmd tea.Cmd
	m.suggestions, cmd = m.suggestions.Update(msg)
	return m, cmd
}

// applyLocation records a resolved coordinate and prefills the forms.
func (m *Model) applyLocation(coord places.Coordinate, place string) {
	m.session.SetLocation(coord.Latitude, coord.Longitude, place)
	m.applyLocationPrefill(coord.Latitude, coord.Longitude)
	m.locationInput.SetValue("")
	m.mode = ModeForm
	if place != "" {
		m.notice = fmt.Sprintf("Location set: %s (%.4f, %.4f)", place, coord.Latitude, coord.Longitude)
	} else {
		m.notice = fmt.Sprintf("Location set: %.4f, %.4f", coord.Latitude, coord.Longitude)
	}
	log.Info().
		Float64("lat", coord.Latitude).
		Float64("lon", coord.Longitude).
		Str("place", place).
		Msg("location resolved")
}

// handlePositionsFetched installs a freshly fetched table, centered on
// Earth when present.
func (m Model) handlePositionsFetched(msg positionsFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.mode = ModeForm
		return m, nil
	}
	if len(msg.table.Rows) == 0 {
		m.err = fmt.Errorf("positions response contained no bodies")
		m.mode = ModeForm
		return m, nil
	}

	center := msg.table.Rows[0].Name
	for _, row := range msg.table.Rows {
		if row.Name == "Earth" {
			center = "Earth"
			break
		}
	}

	centered, err := msg.table.RelativeTo(center)
	if err != nil {
		// Center names come from the table itself, so this is a bug.
		m.err = err
		m.mode = ModeForm
		return m, nil
	}

	m.session.SetTable(centered)
	m.posTable = createPositionsTable(centered)
	m.mode = ModeBrowse
	m.notice = fmt.Sprintf("Loaded %d bodies; Enter re-centers, +/- zooms, Esc returns to the form", len(centered.Rows))
	return m, nil
}

// handleBrowse handles keys while navigating the positions table.
func (m Model) handleBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeForm
		m.focusSlot(m.posFocus)
		return m, nil

	case "enter":
		row := m.posTable.SelectedRow()
		if len(row) == 0 || m.session.Table == nil {
			return m, nil
		}
		// The Body cell carries a marker when it is the current center.
		name := strings.TrimPrefix(row[0], "▸")
		centered, err := m.session.Table.RelativeTo(name)
		if err != nil {
			m.err = err
			return m, nil
		}
		cursor := m.posTable.Cursor()
		m.session.SetTable(centered)
		m.posTable = createPositionsTable(centered)
		m.posTable.SetCursor(cursor)
		return m, nil

	case "+", "=":
		m.session.AdjustZoom(0.8) // Smaller clamp radius zooms in
		return m, nil

	case "-":
		m.session.AdjustZoom(1.25)
		return m, nil
	}

	var cmd tea.Cmd
	m.posTable, cmd = m.posTable.Update(msg)
	return m, cmd
}
