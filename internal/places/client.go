// Package places resolves free-text locations to coordinates using the
// Google Maps Platform web services (Places Autocomplete, Place Details and
// the Geocoding API as a fallback).
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wdjumin/constellation-terminal/internal/config"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api"

	// RequestTimeout bounds every Google API call.
	RequestTimeout = 10 * time.Second
)

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Suggestion is a single autocomplete prediction.
type Suggestion struct {
	Description string
	PlaceID     string
}

// ProviderError is returned when a Google API call fails, either at the
// HTTP layer (StatusCode set) or inside the payload (Status set).
type ProviderError struct {
	StatusCode int
	Status     string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider HTTP error: %d", e.StatusCode)
	}
	return fmt.Sprintf("provider status: %s", e.Status)
}

// Client talks to the Google Maps Platform endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a places client from the loaded configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:  cfg.GoogleAPIKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// autocompleteResponse is the Places Autocomplete payload.
type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
}

// Suggest fetches autocomplete predictions for the given input. It fails
// open: an empty query, a transport error, a non-200 status or a non-OK
// provider status all yield an empty slice so typing never blocks on a bad
// lookup.
func (c *Client) Suggest(ctx context.Context, input string) []Suggestion {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	params := url.Values{}
	params.Set("input", input)
	params.Set("types", "geocode")
	params.Set("key", c.apiKey)

	var parsed autocompleteResponse
	if err := c.getJSON(ctx, "/place/autocomplete/json", params, &parsed); err != nil {
		log.Debug().Err(err).Str("input", input).Msg("autocomplete lookup failed")
		return nil
	}
	if parsed.Status != "OK" {
		log.Debug().Str("status", parsed.Status).Msg("autocomplete returned non-OK status")
		return nil
	}

	suggestions := make([]Suggestion, 0, len(parsed.Predictions))
	for _, p := range parsed.Predictions {
		suggestions = append(suggestions, Suggestion{
			Description: p.Description,
			PlaceID:     p.PlaceID,
		})
	}
	return suggestions
}

// detailsResponse is the Place Details payload, restricted to geometry.
type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

// Resolve fetches the coordinates for a place id. Unlike Suggest it reports
// failures: a *ProviderError carries the HTTP status code for transport
// failures, or the payload status for provider-side failures.
func (c *Client) Resolve(ctx context.Context, placeID string) (Coordinate, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "geometry")
	params.Set("key", c.apiKey)

	req, err := c.newRequest(ctx, "/place/details/json", params)
	if err != nil {
		return Coordinate{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Coordinate{}, fmt.Errorf("fetching place details: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinate{}, &ProviderError{StatusCode: resp.StatusCode}
	}

	var parsed detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Coordinate{}, fmt.Errorf("decoding place details: %w", err)
	}
	if parsed.Status != "OK" {
		return Coordinate{}, &ProviderError{Status: parsed.Status}
	}

	return Coordinate{
		Latitude:  parsed.Result.Geometry.Location.Lat,
		Longitude: parsed.Result.Geometry.Location.Lng,
	}, nil
}

// geocodeResponse is the Geocoding API payload.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves free text to coordinates when no suggestion was picked.
// It never fails: any error yields the zero coordinate so the flow is not
// blocked by a bad lookup.
func (c *Client) Geocode(ctx context.Context, address string) Coordinate {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	var parsed geocodeResponse
	if err := c.getJSON(ctx, "/geocode/json", params, &parsed); err != nil {
		log.Debug().Err(err).Str("address", address).Msg("geocode fallback failed")
		return Coordinate{}
	}
	if parsed.Status != "OK" || len(parsed.Results) == 0 {
		log.Debug().Str("status", parsed.Status).Msg("geocode fallback returned no results")
		return Coordinate{}
	}

	loc := parsed.Results[0].Geometry.Location
	return Coordinate{Latitude: loc.Lat, Longitude: loc.Lng}
}

// newRequest builds a GET request against the configured base URL.
func (c *Client) newRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// getJSON performs a GET and decodes the payload, treating any non-200
// status as an error.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := c.newRequest(ctx, path, params)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{StatusCode: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
