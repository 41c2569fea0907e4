// Package positions flattens the AstronomyAPI body-positions payload into a
// tabular structure and derives distances relative to a chosen center body.
package positions

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wdjumin/constellation-terminal/internal/astronomy"
)

// Row is one celestial body at a single snapshot.
type Row struct {
	Name        string
	Date        string
	DistanceAU  float64
	DistanceKM  float64
	AltitudeDeg float64
	AzimuthDeg  float64

	// RelativeAU is |DistanceAU - center's DistanceAU|, populated by
	// RelativeTo. Exactly 0 for the center body.
	RelativeAU float64
}

// Table is an ordered sequence of body positions. Body names are unique
// within one table.
type Table struct {
	Rows []Row

	// Center is the body RelativeAU is measured from, "" before RelativeTo.
	Center string
}

// BuildTable flattens the upstream payload. Only the first cell of each row
// is used: the UI requests a single-date snapshot, so each body carries
// exactly one cell.
func BuildTable(resp *astronomy.PositionsResponse) (Table, error) {
	if resp == nil {
		return Table{}, fmt.Errorf("nil positions response")
	}

	var t Table
	for _, row := range resp.Data.Table.Rows {
		if len(row.Cells) == 0 {
			continue
		}
		cell := row.Cells[0]

		au, err := strconv.ParseFloat(cell.Distance.FromEarth.AU, 64)
		if err != nil {
			return Table{}, fmt.Errorf("parsing %s distance (au): %w", row.Entry.Name, err)
		}
		km, err := strconv.ParseFloat(cell.Distance.FromEarth.KM, 64)
		if err != nil {
			return Table{}, fmt.Errorf("parsing %s distance (km): %w", row.Entry.Name, err)
		}
		alt, err := strconv.ParseFloat(cell.Position.Horizontal.Altitude.Degrees, 64)
		if err != nil {
			return Table{}, fmt.Errorf("parsing %s altitude: %w", row.Entry.Name, err)
		}
		az, err := strconv.ParseFloat(cell.Position.Horizontal.Azimuth.Degrees, 64)
		if err != nil {
			return Table{}, fmt.Errorf("parsing %s azimuth: %w", row.Entry.Name, err)
		}

		t.Rows = append(t.Rows, Row{
			Name:        row.Entry.Name,
			Date:        cell.Date,
			DistanceAU:  au,
			DistanceKM:  km,
			AltitudeDeg: alt,
			AzimuthDeg:  az,
		})
	}

	return t, nil
}

// RelativeTo returns a copy of the table with RelativeAU computed against
// the named center body. The center row is forced to exactly 0 rather than
// relying on floating subtraction of identical values.
//
// The center is always picked from the table's own names, so a missing
// center is a programmer error, not a user-facing condition.
func (t Table) RelativeTo(center string) (Table, error) {
	centerAU := math.NaN()
	for _, row := range t.Rows {
		if row.Name == center {
			centerAU = row.DistanceAU
			break
		}
	}
	if math.IsNaN(centerAU) {
		return Table{}, fmt.Errorf("center body %q not in table", center)
	}

	out := Table{
		Rows:   make([]Row, len(t.Rows)),
		Center: center,
	}
	for i, row := range t.Rows {
		row.RelativeAU = math.Abs(row.DistanceAU - centerAU)
		if row.Name == center {
			row.RelativeAU = 0
		}
		out.Rows[i] = row
	}
	return out, nil
}

// Names returns the body names in table order.
func (t Table) Names() []string {
	names := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		names[i] = row.Name
	}
	return names
}

// MaxRelativeAU returns the largest relative distance in the table, or 0
// for an empty table.
func (t Table) MaxRelativeAU() float64 {
	max := 0.0
	for _, row := range t.Rows {
		if row.RelativeAU > max {
			max = row.RelativeAU
		}
	}
	return max
}
