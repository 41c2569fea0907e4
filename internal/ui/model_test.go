package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wdjumin/constellation-terminal/internal/astronomy"
	"github.com/wdjumin/constellation-terminal/internal/config"
	"github.com/wdjumin/constellation-terminal/internal/places"
	"github.com/wdjumin/constellation-terminal/internal/positions"
)

// fakeAstroClient implements astronomy.Client without network calls.
type fakeAstroClient struct {
	starChartURL string
	starChartErr error
	positions    *astronomy.PositionsResponse
	positionsErr error
	moonResult   astronomy.MoonPhaseResult
	moonErr      error
}

func (f *fakeAstroClient) GenerateStarChart(ctx context.Context, req astronomy.StarChartRequest) (string, error) {
	return f.starChartURL, f.starChartErr
}

func (f *fakeAstroClient) FetchPositions(ctx context.Context, query astronomy.PositionsQuery) (*astronomy.PositionsResponse, error) {
	return f.positions, f.positionsErr
}

func (f *fakeAstroClient) GenerateMoonPhase(ctx context.Context, req astronomy.MoonPhaseRequest) (astronomy.MoonPhaseResult, error) {
	return f.moonResult, f.moonErr
}

func newTestModel() Model {
	cfg := &config.Config{GoogleAPIKey: "test-key", AuthHeader: "Basic dGVzdA=="}
	return NewModel(cfg, places.NewClient(cfg), &fakeAstroClient{}, "")
}

func sampleTable() positions.Table {
	return positions.Table{
		Rows: []positions.Row{
			{Name: "Sun", DistanceAU: 1.0094, AzimuthDeg: 310.55},
			{Name: "Earth", DistanceAU: 0, AzimuthDeg: 0},
			{Name: "Mars", DistanceAU: 1.52, AzimuthDeg: 95.8},
		},
	}
}

func pressKey(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModel(t *testing.T) {
	m := newTestModel()

	if m.tab != TabPositions {
		t.Errorf("tab = %v, want TabPositions", m.tab)
	}
	if m.mode != ModeForm {
		t.Errorf("mode = %v, want ModeForm", m.mode)
	}
	if m.posFocus != posSlotLat {
		t.Errorf("posFocus = %d, want posSlotLat", m.posFocus)
	}

	today := time.Now().Format("2006-01-02")
	if got := m.posInputs[3].Value(); got != today {
		t.Errorf("positions date = %q, want %q", got, today)
	}
	if got := m.posInputs[4].Value(); got != "22:00:00" {
		t.Errorf("positions time = %q, want 22:00:00", got)
	}
	if got := m.scInputs[2].Value(); got != today {
		t.Errorf("star chart date = %q, want %q", got, today)
	}
	if got := m.mpInputs[3].Value(); got != "#2E3440" {
		t.Errorf("background color default = %q", got)
	}
}

func TestWindowSize(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)

	if m.width != 100 || m.height != 40 {
		t.Errorf("size = %dx%d, want 100x40", m.width, m.height)
	}
}

func TestTabSwitching(t *testing.T) {
	m := newTestModel()
	m.err = errors.New("stale")
	m.notice = "stale notice"

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != TabStarChart {
		t.Errorf("tab = %v, want TabStarChart", m.tab)
	}
	if m.err != nil || m.notice != "" {
		t.Error("switching tabs should clear error and notice")
	}

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != TabMoonPhase {
		t.Errorf("tab = %v, want TabMoonPhase", m.tab)
	}
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != TabPositions {
		t.Errorf("tab = %v, want wrap to TabPositions", m.tab)
	}

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != TabMoonPhase {
		t.Errorf("tab = %v, want TabMoonPhase after shift+tab", m.tab)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestLoadingBlocksKeys(t *testing.T) {
	m := newTestModel()
	m.mode = ModeLoading

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != TabPositions {
		t.Error("tab switch should be ignored while loading")
	}
	if m.mode != ModeLoading {
		t.Errorf("mode = %v, want ModeLoading", m.mode)
	}
}

func TestSuggestionsShowPickList(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)

	updated, _ = m.Update(suggestionsMsg{
		query: "Singapore",
		suggestions: []places.Suggestion{
			{Description: "Singapore", PlaceID: "p1"},
		},
	})
	m = updated.(Model)

	if m.mode != ModePicking {
		t.Errorf("mode = %v, want ModePicking", m.mode)
	}
	if len(m.suggestions.Items()) != 1 {
		t.Errorf("list items = %d, want 1", len(m.suggestions.Items()))
	}
}

func TestEmptySuggestionsFallBackToGeocode(t *testing.T) {
	m := newTestModel()
	m.mode = ModeLoading

	updated, cmd := m.Update(suggestionsMsg{query: "xyzzy"})
	m = updated.(Model)

	if m.mode != ModeLoading {
		t.Errorf("mode = %v, want ModeLoading while geocoding", m.mode)
	}
	if cmd == nil {
		t.Fatal("expected a geocode command")
	}
	if !strings.Contains(m.loadingWhat, "xyzzy") {
		t.Errorf("loadingWhat = %q, want the query named", m.loadingWhat)
	}
}

func TestLocationResolveError(t *testing.T) {
	m := newTestModel()
	m.mode = ModeLoading

	updated, _ := m.Update(locationResolvedMsg{err: errors.New("boom")})
	m = updated.(Model)

	if m.mode != ModeForm {
		t.Errorf("mode = %v, want ModeForm", m.mode)
	}
	if m.err == nil {
		t.Fatal("expected error to surface")
	}
	if !strings.Contains(m.err.Error(), "boom") {
		t.Errorf("err = %q", m.err)
	}
}

func TestLocationResolvedPrefillsForms(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(locationResolvedMsg{
		description: "Singapore",
		coord:       places.Coordinate{Latitude: 1.3521, Longitude: 103.8198},
	})
	m = updated.(Model)

	if !m.session.HasLocation {
		t.Fatal("session should have a location")
	}
	if got := m.posInputs[0].Value(); got != "1.3521" {
		t.Errorf("positions latitude = %q", got)
	}
	if got := m.scInputs[1].Value(); got != "103.8198" {
		t.Errorf("star chart longitude = %q", got)
	}
	if got := m.mpInputs[0].Value(); got != "1.3521" {
		t.Errorf("moon phase latitude = %q", got)
	}
	if !strings.Contains(m.notice, "Singapore") {
		t.Errorf("notice = %q, want the place named", m.notice)
	}
}

func TestGeocodedZeroCoordinate(t *testing.T) {
	m := newTestModel()
	m.mode = ModeLoading

	// An unresolvable query geocodes to (0, 0) and still completes the flow.
	updated, _ := m.Update(geocodedMsg{query: "nowhere"})
	m = updated.(Model)

	if m.mode != ModeForm {
		t.Errorf("mode = %v, want ModeForm", m.mode)
	}
	if m.err != nil {
		t.Errorf("err = %v, want none", m.err)
	}
	if got := m.posInputs[0].Value(); got != "0.0000" {
		t.Errorf("latitude = %q, want 0.0000", got)
	}
}

func TestPrefillSkipsEditedFields(t *testing.T) {
	m := newTestModel()

	// User types into the latitude field before resolving a location.
	m = pressKey(t, m, keyRune('5'))

	updated, _ := m.Update(geocodedMsg{
		query: "Singapore",
		coord: places.Coordinate{Latitude: 1.3521, Longitude: 103.8198},
	})
	m = updated.(Model)

	if got := m.posInputs[0].Value(); got != "5" {
		t.Errorf("latitude = %q, want the user's value preserved", got)
	}
	if got := m.posInputs[1].Value(); got != "103.8198" {
		t.Errorf("longitude = %q, want prefilled", got)
	}
}

func TestPositionsFetched(t *testing.T) {
	m := newTestModel()
	m.mode = ModeLoading

	updated, _ := m.Update(positionsFetchedMsg{table: sampleTable()})
	m = updated.(Model)

	if m.mode != ModeBrowse {
		t.Errorf("mode = %v, want ModeBrowse", m.mode)
	}
	if m.session.Table == nil {
		t.Fatal("session table not set")
	}
	if m.session.Table.Center != "Earth" {
		t.Errorf("Center = %q, want Earth when present", m.session.Table.Center)
	}
	if m.session.Zoom != m.session.Table.MaxRelativeAU() {
		t.Errorf("Zoom = %v, want the full table radius", m.session.Zoom)
	}
	if !strings.Contains(m.notice, "3 bodies") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestPositionsFetched_NoEarth(t *testing.T) {
	m := newTestModel()

	table := positions.Table{
		Rows: []positions.Row{
			{Name: "Sun", DistanceAU: 1.0},
			{Name: "Mars", DistanceAU: 1.52},
		},
	}
	updated, _ := m.Update(positionsFetchedMsg{table: table})
	m = updated.(Model)

	if m.session.Table.Center != "Sun" {
		t.Errorf("Center = %q, want the first body", m.session.Table.Center)
	}
}

func TestPositionsFetchedError(t *testing.T) {
	m := newTestModel()
	m.mode = ModeLoading

	updated, _ := m.Update(positionsFetchedMsg{err: errors.New("upstream down")})
	m = updated.(Model)

	if m.mode != ModeForm {
		t.Errorf("mode = %v, want ModeForm", m.mode)
	}
	if m.err == nil {
		t.Fatal("expected error to surface")
	}
}

func TestPositionsFetchedEmptyTable(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(positionsFetchedMsg{})
	m = updated.(Model)

	if m.err == nil {
		t.Fatal("expected error for an empty table")
	}
	if m.mode != ModeForm {
		t.Errorf("mode = %v, want ModeForm", m.mode)
	}
}

func TestBrowseRecenter(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(positionsFetchedMsg{table: sampleTable()})
	m = updated.(Model)

	// Cursor starts on the first row (Sun); re-center there.
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.err != nil {
		t.Fatalf("recenter error = %v", m.err)
	}
	if m.session.Table.Center != "Sun" {
		t.Errorf("Center = %q, want Sun", m.session.Table.Center)
	}

	// Re-centering on the already-centered row is a no-op, not an error.
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.err != nil {
		t.Fatalf("recenter on center error = %v", m.err)
	}
	if m.session.Table.Center != "Sun" {
		t.Errorf("Center = %q, want Sun", m.session.Table.Center)
	}
}

func TestBrowseZoom(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(positionsFetchedMsg{table: sampleTable()})
	m = updated.(Model)

	full := m.session.Zoom

	m = pressKey(t, m, keyRune('+'))
	if m.session.Zoom >= full {
		t.Errorf("Zoom = %v, want smaller than %v after zooming in", m.session.Zoom, full)
	}

	// Zooming out clamps at the full table radius.
	for i := 0; i < 10; i++ {
		m = pressKey(t, m, keyRune('-'))
	}
	if m.session.Zoom != full {
		t.Errorf("Zoom = %v, want clamped to %v", m.session.Zoom, full)
	}

	// Zooming in clamps at 1 AU.
	for i := 0; i < 50; i++ {
		m = pressKey(t, m, keyRune('+'))
	}
	if m.session.Zoom != 1 {
		t.Errorf("Zoom = %v, want clamped to 1", m.session.Zoom)
	}
}

func TestBrowseEscReturnsToForm(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(positionsFetchedMsg{table: sampleTable()})
	m = updated.(Model)

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != ModeForm {
		t.Errorf("mode = %v, want ModeForm", m.mode)
	}
}

func TestStarChartResult(t *testing.T) {
	m := newTestModel()
	m.mode = ModeLoading

	updated, _ := m.Update(starChartMsg{url: "https://img.example/chart.png"})
	m = updated.(Model)

	if m.mode != ModeForm {
		t.Errorf("mode = %v, want ModeForm", m.mode)
	}
	if m.chartURL != "https://img.example/chart.png" {
		t.Errorf("chartURL = %q", m.chartURL)
	}

	updated, _ = m.Update(starChartMsg{err: errors.New("render failed")})
	m = updated.(Model)
	if m.err == nil {
		t.Fatal("expected error to surface")
	}
}

func TestMoonPhaseResult(t *testing.T) {
	m := newTestModel()
	m.mode = ModeLoading

	updated, _ := m.Update(moonPhaseMsg{result: astronomy.MoonPhaseResult{ImageURL: "https://img.example/moon.png"}})
	m = updated.(Model)

	if m.moonResult.ImageURL != "https://img.example/moon.png" {
		t.Errorf("ImageURL = %q", m.moonResult.ImageURL)
	}
	if !strings.Contains(m.notice, "ready") {
		t.Errorf("notice = %q", m.notice)
	}

	// A raw payload is shown rather than treated as a failure.
	updated, _ = m.Update(moonPhaseMsg{result: astronomy.MoonPhaseResult{Raw: `{"data":{}}`}})
	m = updated.(Model)
	if m.err != nil {
		t.Errorf("err = %v, want none for a raw payload", m.err)
	}
	if !strings.Contains(m.notice, "raw payload") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestPickingEscGeocodesTypedText(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	m.lastQuery = "Singapore"

	updated, _ = m.Update(suggestionsMsg{
		query:       "Singapore",
		suggestions: []places.Suggestion{{Description: "Singapore", PlaceID: "p1"}},
	})
	m = updated.(Model)

	updatedModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updatedModel.(Model)

	if m.mode != ModeLoading {
		t.Errorf("mode = %v, want ModeLoading", m.mode)
	}
	if cmd == nil {
		t.Fatal("expected a geocode command")
	}
	if !strings.Contains(m.loadingWhat, "Singapore") {
		t.Errorf("loadingWhat = %q", m.loadingWhat)
	}
}
