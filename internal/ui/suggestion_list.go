package ui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/wdjumin/constellation-terminal/internal/places"
)

// suggestionItem wraps a places.Suggestion for use in a list
type suggestionItem struct {
	suggestion places.Suggestion
}

// FilterValue implements list.Item
func (s suggestionItem) FilterValue() string {
	return s.suggestion.Description
}

// Title implements list.DefaultItem
func (s suggestionItem) Title() string {
	return s.suggestion.Description
}

// Description implements list.DefaultItem
func (s suggestionItem) Description() string {
	return s.suggestion.PlaceID
}

// createSuggestionList creates a list.Model from autocomplete predictions
func createSuggestionList(suggestions []places.Suggestion, width, height int) list.Model {
	items := make([]list.Item, len(suggestions))
	for i, s := range suggestions {
		items[i] = suggestionItem{suggestion: s}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Suggested Locations"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(false)

	return l
}
