package ui

import "github.com/wdjumin/constellation-terminal/internal/positions"

// Session holds the state shared across the three workflow tabs: the
// resolved observer location and the current positions table with its
// plot zoom.
type Session struct {
	HasLocation bool
	Latitude    float64
	Longitude   float64
	Place       string

	Table *positions.Table

	// Zoom is the polar plot's radial clamp in AU. It starts at the
	// table's largest relative distance so every body is visible.
	Zoom float64
}

// SetLocation records a resolved observer location.
func (s *Session) SetLocation(lat, lon float64, place string) {
	s.HasLocation = true
	s.Latitude = lat
	s.Longitude = lon
	s.Place = place
}

// SetTable installs a new positions table and resets the zoom so the
// whole table fits the plot.
func (s *Session) SetTable(t positions.Table) {
	s.Table = &t
	s.Zoom = s.maxZoom()
}

// AdjustZoom scales the zoom by factor, clamped to [1, max relative
// distance]. Factors below 1 zoom in.
func (s *Session) AdjustZoom(factor float64) {
	if s.Table == nil {
		return
	}
	s.Zoom *= factor
	if s.Zoom < 1 {
		s.Zoom = 1
	}
	if max := s.maxZoom(); s.Zoom > max {
		s.Zoom = max
	}
}

func (s *Session) maxZoom() float64 {
	if s.Table == nil {
		return 1
	}
	max := s.Table.MaxRelativeAU()
	if max < 1 {
		max = 1
	}
	return max
}
