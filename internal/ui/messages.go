package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/wdjumin/constellation-terminal/internal/astronomy"
	"github.com/wdjumin/constellation-terminal/internal/places"
	"github.com/wdjumin/constellation-terminal/internal/positions"
)

// Message types for async operations

// suggestionsMsg is sent when autocomplete predictions arrive.
type suggestionsMsg struct {
	query       string
	suggestions []places.Suggestion
}

// locationResolvedMsg is sent when a place id resolved to coordinates.
type locationResolvedMsg struct {
	description string
	coord       places.Coordinate
	err         error
}

// geocodedMsg is sent when the free-text geocode fallback completes. It
// never carries an error: failures resolve to the zero coordinate.
type geocodedMsg struct {
	query string
	coord places.Coordinate
}

// positionsFetchedMsg is sent when a positions table has been fetched and
// flattened.
type positionsFetchedMsg struct {
	table positions.Table
	err   error
}

// starChartMsg is sent when a star-chart render completes.
type starChartMsg struct {
	url string
	err error
}

// moonPhaseMsg is sent when a moon-phase render completes.
type moonPhaseMsg struct {
	result astronomy.MoonPhaseResult
	err    error
}

// fetchSuggestions queries Places Autocomplete in the background.
func fetchSuggestions(client *places.Client, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), places.RequestTimeout)
		defer cancel()

		return suggestionsMsg{
			query:       query,
			suggestions: client.Suggest(ctx, query),
		}
	}
}

// resolvePlace resolves a selected suggestion to coordinates.
func resolvePlace(client *places.Client, description, placeID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), places.RequestTimeout)
		defer cancel()

		coord, err := client.Resolve(ctx, placeID)
		return locationResolvedMsg{description: description, coord: coord, err: err}
	}
}

// geocodeFallback geocodes raw text when no suggestion was selected.
func geocodeFallback(client *places.Client, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), places.RequestTimeout)
		defer cancel()

		return geocodedMsg{query: query, coord: client.Geocode(ctx, query)}
	}
}

// fetchPositions fetches and flattens the positions table.
func fetchPositions(client astronomy.Client, query astronomy.PositionsQuery) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), astronomy.RequestTimeout)
		defer cancel()

		resp, err := client.FetchPositions(ctx, query)
		if err != nil {
			return positionsFetchedMsg{err: err}
		}

		table, err := positions.BuildTable(resp)
		if err != nil {
			return positionsFetchedMsg{err: err}
		}

		return positionsFetchedMsg{table: table}
	}
}

// generateStarChart requests a constellation chart render.
func generateStarChart(client astronomy.Client, req astronomy.StarChartRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), astronomy.RequestTimeout)
		defer cancel()

		url, err := client.GenerateStarChart(ctx, req)
		if err != nil {
			log.Warn().Err(err).Msg("star chart generation failed")
		}
		return starChartMsg{url: url, err: err}
	}
}

// generateMoonPhase requests a moon-phase render.
func generateMoonPhase(client astronomy.Client, req astronomy.MoonPhaseRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), astronomy.RequestTimeout)
		defer cancel()

		result, err := client.GenerateMoonPhase(ctx, req)
		if err != nil {
			log.Warn().Err(err).Msg("moon phase generation failed")
		}
		return moonPhaseMsg{result: result, err: err}
	}
}
