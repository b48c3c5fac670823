package mvg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDepartures(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"plannedDepartureTime": 1704096000000,
				"realtime": true,
				"delayInMinutes": 2,
				"realtimeDepartureTime": 1704096120000,
				"transportType": "SBAHN",
				"label": "S1",
				"destination": "Munich Airport",
				"cancelled": false,
				"platform": 2,
				"occupancy": "LOW"
			}
		]`))
	}))
	defer server.Close()

	client := NewClient()
	client.DeparturesEndpoint = server.URL

	departures, err := client.GetDepartures(context.Background(), "de:09162:6", 0)
	require.NoError(t, err)

	assert.Equal(t, "/departures", gotPath)
	assert.Equal(t, []string{"10"}, gotQuery["limit"], "non-positive limit falls back to operator default")
	assert.Equal(t, []string{"de:09162:6"}, gotQuery["globalId"])

	require.Len(t, departures, 1)
	departure := departures[0]
	assert.Equal(t, "S1", departure.Label)
	assert.Equal(t, "Munich Airport", departure.Destination)
	assert.Equal(t, TransportTypeSBahn, departure.TransportType)
	assert.Equal(t, 2, departure.DelayInMinutes)
	assert.Equal(t, time.UnixMilli(1704096000000), departure.PlannedDeparture())
	assert.Equal(t, time.UnixMilli(1704096120000), departure.RealtimeDeparture())
}

func TestGetDeparturesExplicitLimit(t *testing.T) {
	var gotLimit string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient()
	client.DeparturesEndpoint = server.URL

	departures, err := client.GetDepartures(context.Background(), "de:09162:6", 25)
	require.NoError(t, err)
	assert.Equal(t, "25", gotLimit)
	assert.Empty(t, departures)
}

func TestGetDeparturesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient()
	client.DeparturesEndpoint = server.URL

	_, err := client.GetDepartures(context.Background(), "de:09162:6", 10)
	assert.Error(t, err)
}

func TestGetDeparturesMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient()
	client.DeparturesEndpoint = server.URL

	_, err := client.GetDepartures(context.Background(), "de:09162:6", 10)
	assert.Error(t, err)
}

func TestGetStations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stations", r.URL.Path)
		w.Write([]byte(`[
			{"id": "de:09162:2", "name": "Marienplatz", "place": "München", "transportTypes": ["SBAHN", "UBAHN"], "tariffZones": "m"},
			{"id": "de:09162:6", "name": "Hauptbahnhof", "place": "München"}
		]`))
	}))
	defer server.Close()

	client := NewClient()
	client.StationsEndpoint = server.URL

	stations, err := client.GetStations(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, "de:09162:2", stations[0].ID)
	assert.Equal(t, "Marienplatz", stations[0].Name)
	assert.Equal(t, "München", stations[0].Place)
	assert.Equal(t, []string{"SBAHN", "UBAHN"}, stations[0].TransportTypes)
}

func TestTransportTypeDisplayName(t *testing.T) {
	tests := []struct {
		transportType TransportType
		expected      string
	}{
		{TransportTypeSBahn, "S-Bahn"},
		{TransportTypeUBahn, "U-Bahn"},
		{TransportTypeTram, "Tram"},
		{TransportTypeBus, "Bus"},
		{TransportTypeRegBus, "Bus"},
		{TransportType("SEV"), "SEV"},
	}

	for _, tt := range tests {
		t.Run(string(tt.transportType), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.transportType.DisplayName())
		})
	}
}
