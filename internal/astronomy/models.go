package astronomy

// Observer is the geographic point and date an astronomical view is
// computed from.
type Observer struct {
	Latitude  float64
	Longitude float64
	Date      string // YYYY-MM-DD
}

// StarChartRequest describes a constellation star-chart render. The chart
// style is fixed to "inverted" upstream.
type StarChartRequest struct {
	Observer      Observer
	Constellation string // three-letter constellation code, e.g. "ori"
}

// MoonFormat selects the image format for moon-phase renders.
type MoonFormat string

const (
	FormatPNG MoonFormat = "png"
	FormatSVG MoonFormat = "svg"
)

// MoonStyle selects the moon rendering style.
type MoonStyle string

const (
	MoonDefault MoonStyle = "default"
	MoonSketch  MoonStyle = "sketch"
	MoonShaded  MoonStyle = "shaded"
)

// Orientation selects which pole points up in the rendered image.
type Orientation string

const (
	NorthUp Orientation = "north-up"
	SouthUp Orientation = "south-up"
)

// BackgroundStyle is a tagged variant: either a starfield or a solid color.
// The upstream API rejects a backgroundColor field unless the style is
// solid, so the color is only carried by the Solid variant.
type BackgroundStyle struct {
	style string
	color string
}

// BackgroundStars renders the moon over a starfield.
func BackgroundStars() BackgroundStyle {
	return BackgroundStyle{style: "stars"}
}

// BackgroundSolid renders the moon over a solid hex color, e.g. "#1f1f1f".
func BackgroundSolid(hexColor string) BackgroundStyle {
	return BackgroundStyle{style: "solid", color: hexColor}
}

// IsSolid reports whether this is the solid-color variant.
func (b BackgroundStyle) IsSolid() bool { return b.style == "solid" }

// Name returns the wire name of the variant.
func (b BackgroundStyle) Name() string {
	if b.style == "" {
		return "stars"
	}
	return b.style
}

// Color returns the hex color of the Solid variant, or "" for Stars.
func (b BackgroundStyle) Color() string { return b.color }

// MoonPhaseRequest describes a moon-phase image render.
type MoonPhaseRequest struct {
	Format      MoonFormat
	MoonStyle   MoonStyle
	Background  BackgroundStyle
	Observer    Observer
	Orientation Orientation
}

// MoonPhaseResult is the outcome of a moon-phase render. When the upstream
// response is well formed ImageURL is set; when a 2xx payload lacks the
// image URL the raw body is surfaced instead so the caller can still show
// something.
type MoonPhaseResult struct {
	ImageURL string
	Raw      string
}

// PositionsQuery describes a body-positions lookup for a single observer
// and date range.
type PositionsQuery struct {
	Latitude  float64
	Longitude float64
	Elevation float64 // meters
	FromDate  string  // YYYY-MM-DD
	ToDate    string  // YYYY-MM-DD
	Time      string  // HH:MM:SS
}

// PositionsResponse is the upstream bodies/positions payload in table form.
// AstronomyAPI serializes numeric quantities as strings; they are parsed by
// the positions package.
type PositionsResponse struct {
	Data struct {
		Table struct {
			Rows []PositionRow `json:"rows"`
		} `json:"table"`
	} `json:"data"`
}

// PositionRow holds one body and its per-date cells.
type PositionRow struct {
	Entry struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"entry"`
	Cells []PositionCell `json:"cells"`
}

// PositionCell is one (body, date) sample.
type PositionCell struct {
	Date     string `json:"date"`
	Distance struct {
		FromEarth struct {
			AU string `json:"au"`
			KM string `json:"km"`
		} `json:"fromEarth"`
	} `json:"distance"`
	Position struct {
		Horizontal struct {
			Altitude struct {
				Degrees string `json:"degrees"`
			} `json:"altitude"`
			Azimuth struct {
				Degrees string `json:"degrees"`
			} `json:"azimuth"`
		} `json:"horizontal"`
	} `json:"position"`
}
