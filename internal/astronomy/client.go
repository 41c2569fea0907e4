// Package astronomy wraps the AstronomyAPI studio and positions endpoints.
package astronomy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wdjumin/constellation-terminal/internal/config"
)

const (
	defaultBaseURL = "https://api.astronomyapi.com/api/v2"

	// RequestTimeout is deliberately long: star-chart and moon-phase images
	// are rendered server-side and can take well over a minute.
	RequestTimeout = 120 * time.Second
)

// Client is the set of AstronomyAPI operations the UI depends on.
type Client interface {
	// GenerateStarChart renders a constellation chart and returns its image URL.
	GenerateStarChart(ctx context.Context, req StarChartRequest) (string, error)

	// FetchPositions retrieves the body-positions table for an observer.
	FetchPositions(ctx context.Context, query PositionsQuery) (*PositionsResponse, error)

	// GenerateMoonPhase renders a moon-phase image.
	GenerateMoonPhase(ctx context.Context, req MoonPhaseRequest) (MoonPhaseResult, error)
}

// UpstreamError is returned when AstronomyAPI responds with a non-2xx status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("astronomy API returned status %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError is returned when a successful response is missing
// an expected field.
type MalformedResponseError struct {
	Missing string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("astronomy API response missing %s", e.Missing)
}

// APIClient implements Client against the live AstronomyAPI service.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	authHeader string
}

// NewClient creates an AstronomyAPI client. The Basic credential is taken
// from the configuration, where it was derived once at startup.
func NewClient(cfg *config.Config) *APIClient {
	return &APIClient{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
		authHeader: cfg.AuthHeader,
	}
}

// imageResponse is the common studio response envelope.
type imageResponse struct {
	Data struct {
		ImageURL string `json:"imageUrl"`
	} `json:"data"`
}

// starChartBody mirrors the studio/star-chart request contract.
type starChartBody struct {
	Style    string       `json:"style"`
	Observer observerBody `json:"observer"`
	View     struct {
		Type       string `json:"type"`
		Parameters struct {
			Constellation string `json:"constellation"`
		} `json:"parameters"`
	} `json:"view"`
}

type observerBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Date      string  `json:"date"`
}

// GenerateStarChart renders an inverted-style constellation chart.
func (c *APIClient) GenerateStarChart(ctx context.Context, req StarChartRequest) (string, error) {
	body := starChartBody{
		Style: "inverted",
		Observer: observerBody{
			Latitude:  req.Observer.Latitude,
			Longitude: req.Observer.Longitude,
			Date:      req.Observer.Date,
		},
	}
	body.View.Type = "constellation"
	body.View.Parameters.Constellation = req.Constellation

	raw, err := c.postJSON(ctx, "/studio/star-chart", body)
	if err != nil {
		return "", err
	}

	var parsed imageResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decoding star chart response: %w", err)
	}
	if parsed.Data.ImageURL == "" {
		return "", &MalformedResponseError{Missing: "data.imageUrl"}
	}

	log.Debug().Str("constellation", req.Constellation).Msg("star chart generated")
	return parsed.Data.ImageURL, nil
}

// moonStyleBody serializes the style block. BackgroundColor is omitted for
// the stars variant; the API rejects the field otherwise.
type moonStyleBody struct {
	MoonStyle       string `json:"moonStyle"`
	BackgroundStyle string `json:"backgroundStyle"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

type moonPhaseBody struct {
	Format   string        `json:"format"`
	Style    moonStyleBody `json:"style"`
	Observer observerBody  `json:"observer"`
	View     struct {
		Type        string `json:"type"`
		Orientation string `json:"orientation"`
	} `json:"view"`
}

// GenerateMoonPhase renders a moon-phase image. A 2xx response without
// data.imageUrl is not treated as an error: the raw payload is surfaced so
// the caller can display it.
func (c *APIClient) GenerateMoonPhase(ctx context.Context, req MoonPhaseRequest) (MoonPhaseResult, error) {
	body := moonPhaseBody{
		Format: string(req.Format),
		Style: moonStyleBody{
			MoonStyle:       string(req.MoonStyle),
			BackgroundStyle: req.Background.Name(),
			BackgroundColor: req.Background.Color(),
		},
		Observer: observerBody{
			Latitude:  req.Observer.Latitude,
			Longitude: req.Observer.Longitude,
			Date:      req.Observer.Date,
		},
	}
	body.View.Type = "portrait-simple"
	body.View.Orientation = string(req.Orientation)

	raw, err := c.postJSON(ctx, "/studio/moon-phase", body)
	if err != nil {
		return MoonPhaseResult{}, err
	}

	var parsed imageResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return MoonPhaseResult{}, fmt.Errorf("decoding moon phase response: %w", err)
	}
	if parsed.Data.ImageURL == "" {
		log.Debug().Msg("moon phase response lacked imageUrl; surfacing raw payload")
		return MoonPhaseResult{Raw: string(raw)}, nil
	}

	return MoonPhaseResult{ImageURL: parsed.Data.ImageURL}, nil
}

// FetchPositions retrieves the positions table for every body visible to
// the observer over the requested date range.
func (c *APIClient) FetchPositions(ctx context.Context, query PositionsQuery) (*PositionsResponse, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(query.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(query.Longitude, 'f', -1, 64))
	params.Set("elevation", strconv.FormatFloat(query.Elevation, 'f', -1, 64))
	params.Set("from_date", query.FromDate)
	params.Set("to_date", query.ToDate)
	params.Set("time", query.Time)
	params.Set("output", "table")

	reqURL := fmt.Sprintf("%s/bodies/positions?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating positions request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching positions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed PositionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding positions response: %w", err)
	}

	log.Debug().Int("bodies", len(parsed.Data.Table.Rows)).Msg("positions fetched")
	return &parsed, nil
}

// postJSON posts a JSON body to a studio endpoint and returns the raw
// response payload on 2xx.
func (c *APIClient) postJSON(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting to %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return raw, nil
}
