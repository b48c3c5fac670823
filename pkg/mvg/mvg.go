package mvg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abfahrt/abfahrt/pkg/util"
)

const (
	defaultDeparturesEndpoint = "https://www.mvg.de/api/bgw-pt/v3"
	defaultStationsEndpoint   = "https://www.mvg.de/.rest/zdm"

	// DefaultDepartureLimit is applied when the caller passes a
	// non-positive limit, matching the operator's own default.
	DefaultDepartureLimit = 10
)

// Client talks to the MVG public API. A single GET per endpoint, no
// retries and no backoff - failures are the caller's problem to surface.
type Client struct {
	DeparturesEndpoint string
	StationsEndpoint   string

	httpClient *http.Client
}

func NewClient() *Client {
	client := &Client{
		DeparturesEndpoint: defaultDeparturesEndpoint,
		StationsEndpoint:   defaultStationsEndpoint,

		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	env := util.GetEnvironmentVariables()

	if env["ABFAHRT_MVG_API_ENDPOINT"] != "" {
		client.DeparturesEndpoint = env["ABFAHRT_MVG_API_ENDPOINT"]
	}

	if env["ABFAHRT_MVG_STATIONS_ENDPOINT"] != "" {
		client.StationsEndpoint = env["ABFAHRT_MVG_STATIONS_ENDPOINT"]
	}

	return client
}

// GetDepartures returns the upcoming departures for a station, identified by
// its global station identifier.
func (c *Client) GetDepartures(ctx context.Context, stationID string, limit int) ([]Departure, error) {
	if limit <= 0 {
		limit = DefaultDepartureLimit
	}

	queryValues := url.Values{}
	queryValues.Set("limit", strconv.Itoa(limit))
	queryValues.Set("globalId", stationID)

	requestURL := fmt.Sprintf("%s/departures?%s", c.DeparturesEndpoint, queryValues.Encode())

	var departures []Departure
	if err := c.getJSON(ctx, requestURL, &departures); err != nil {
		return nil, fmt.Errorf("get departures for %s: %w", stationID, err)
	}

	log.Debug().
		Str("station", stationID).
		Int("departures", len(departures)).
		Msg("Fetched departures from MVG API")

	return departures, nil
}

// GetStations returns the full operator station directory.
func (c *Client) GetStations(ctx context.Context) ([]Station, error) {
	requestURL := fmt.Sprintf("%s/stations", c.StationsEndpoint)

	var stations []Station
	if err := c.getJSON(ctx, requestURL, &stations); err != nil {
		return nil, fmt.Errorf("get stations: %w", err)
	}

	log.Debug().Int("stations", len(stations)).Msg("Fetched station directory from MVG API")

	return stations, nil
}

func (c *Client) getJSON(ctx context.Context, requestURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, requestURL)
	}

	jsonBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(jsonBytes, dest)
}
