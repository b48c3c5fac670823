package board

import (
	"fmt"
	"time"

	"github.com/abfahrt/abfahrt/pkg/mvg"
	"github.com/abfahrt/abfahrt/pkg/util"
)

// Row is the view model for one departure: line, destination and the
// departure instant. Rows are rebuilt 1:1 from the raw records on every
// fetch and never cached across stations.
type Row struct {
	Identifier    string    `json:"identifier" groups:"basic"`
	Destination   string    `json:"destination" groups:"basic"`
	DepartureTime time.Time `json:"departureTime" groups:"basic"`
}

// ToRow maps a raw departure record onto a Row. The planned departure time
// is used, matching the reference dashboard; the realtime estimate stays on
// the raw record for callers that want it. Rows of one table must never mix
// the two fields.
func ToRow(departure mvg.Departure) Row {
	return Row{
		Identifier:    departure.Label,
		Destination:   departure.Destination,
		DepartureTime: departure.PlannedDeparture(),
	}
}

// BuildRows converts raw records in the order supplied. Ordering is the
// producer's job; the board renders what it is given.
func BuildRows(departures []mvg.Departure) []Row {
	rows := make([]Row, 0, len(departures))
	for _, departure := range departures {
		rows = append(rows, ToRow(departure))
	}

	return rows
}

// Key is the row's identity for re-rendering and automation hooks:
// "<line>-<HH:MM>". Two same-minute departures of one line collide and merge
// visually; that collision is accepted rather than disambiguated, since
// consumers derive test ids from exactly this string.
func (r Row) Key() string {
	return fmt.Sprintf("%s-%s", r.Identifier, util.FormatClock(r.DepartureTime))
}

// FilterDepartures applies the transportation allow-list. A tag matches a
// record's line label ("S1") or its transport type display name ("Bus").
// An empty list passes everything. Cancelled departures pass through - the
// board shows service exceptions, it does not hide them.
func FilterDepartures(departures []mvg.Departure, tags []string) []mvg.Departure {
	if len(tags) == 0 {
		return departures
	}

	filtered := []mvg.Departure{}
	for _, departure := range departures {
		if util.ContainsString(tags, departure.Label) ||
			util.ContainsString(tags, departure.TransportType.DisplayName()) {
			filtered = append(filtered, departure)
		}
	}

	return filtered
}
