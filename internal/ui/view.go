package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.viewHeader(), "")

	switch m.mode {
	case ModeLoading:
		sections = append(sections, m.viewLoading())
	case ModePicking:
		sections = append(sections, m.viewPicking())
	default:
		switch m.tab {
		case TabPositions:
			sections = append(sections, m.viewPositions())
		case TabStarChart:
			sections = append(sections, m.viewStarChart())
		case TabMoonPhase:
			sections = append(sections, m.viewMoonPhase())
		}
	}

	if m.err != nil {
		sections = append(sections, "", errorStyle.Render("✗ "+m.err.Error()))
	} else if m.notice != "" {
		sections = append(sections, "", successStyle.Render(m.notice))
	}

	sections = append(sections, m.viewHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewHeader renders the title and the workflow tab bar.
func (m Model) viewHeader() string {
	title := titleStyle.Render("🔭 Constellation Terminal")

	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	return lipgloss.JoinVertical(lipgloss.Left, title, bar)
}

// viewLoading renders the blocking in-flight state.
func (m Model) viewLoading() string {
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.loadingWhat)
}

// viewPicking renders the location suggestion list.
func (m Model) viewPicking() string {
	return m.suggestions.View()
}

// viewHelp renders the context help line.
func (m Model) viewHelp() string {
	switch m.mode {
	case ModePicking:
		return helpStyle.Render("↑/↓: Navigate • Enter: Use suggestion • Esc: Geocode typed text • Ctrl+C: Quit")
	case ModeBrowse:
		return helpStyle.Render("↑/↓: Select body • Enter: Re-center • +/-: Zoom plot • Esc: Back to form • Tab: Switch workflow • Ctrl+C: Quit")
	case ModeLoading:
		return helpStyle.Render("Waiting for the remote service • Ctrl+C: Quit")
	default:
		return helpStyle.Render("↑/↓: Move between fields • Enter: Next/submit • Tab: Switch workflow • Ctrl+C: Quit")
	}
}

// renderField renders a labelled text input line.
func renderField(label string, input textinput.Model, focused bool) string {
	style := labelStyle
	if focused {
		style = focusedLabelStyle
	}
	return fmt.Sprintf("%s %s", style.Width(18).Render(label), input.View())
}

// renderSelect renders a labelled option cycler.
func renderSelect(label, value string, focused bool) string {
	style := labelStyle
	rendered := valueStyle.Render("  " + value)
	if focused {
		style = focusedLabelStyle
		rendered = valueStyle.Render("◀ " + value + " ▶")
	}
	return fmt.Sprintf("%s %s", style.Width(18).Render(label), rendered)
}

// renderButton renders a submit control.
func renderButton(label string, focused bool) string {
	if focused {
		return focusedButtonStyle.Render("[ " + label + " ]")
	}
	return buttonStyle.Render("[ " + label + " ]")
}

// viewLocationSection renders the shared location search form plus the
// currently resolved coordinates.
func (m Model) viewLocationSection(focused bool) string {
	var b strings.Builder

	b.WriteString(renderField("📍 Location", m.locationInput, focused))
	b.WriteString("\n")

	if m.session.HasLocation {
		where := fmt.Sprintf("%.4f, %.4f", m.session.Latitude, m.session.Longitude)
		if m.session.Place != "" {
			where = m.session.Place + "  " + where
		}
		b.WriteString(mutedStyle.Render("Current coordinates: " + where))
	} else {
		b.WriteString(mutedStyle.Render("No location resolved yet"))
	}

	return b.String()
}
