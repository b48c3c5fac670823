package mvg

import "time"

type TransportType string

const (
	TransportTypeSBahn   TransportType = "SBAHN"
	TransportTypeUBahn   TransportType = "UBAHN"
	TransportTypeTram    TransportType = "TRAM"
	TransportTypeBus     TransportType = "BUS"
	TransportTypeRegBus  TransportType = "REGIONAL_BUS"
	TransportTypeBahn    TransportType = "BAHN"
	TransportTypeUnknown TransportType = "UNKNOWN"
)

// DisplayName returns the human tag for a transport type, used by the
// transportation allow-list ("S-Bahn", "Bus", ...).
func (t TransportType) DisplayName() string {
	switch t {
	case TransportTypeSBahn:
		return "S-Bahn"
	case TransportTypeUBahn:
		return "U-Bahn"
	case TransportTypeTram:
		return "Tram"
	case TransportTypeBus, TransportTypeRegBus:
		return "Bus"
	case TransportTypeBahn:
		return "Bahn"
	default:
		return string(t)
	}
}

// Station is one entry of the operator station directory. Sourced wholesale
// from the stations endpoint, never mutated locally.
type Station struct {
	ID             string   `json:"id" groups:"basic"`
	Name           string   `json:"name" groups:"basic"`
	Place          string   `json:"place" groups:"basic"`
	Latitude       float64  `json:"latitude" groups:"detailed"`
	Longitude      float64  `json:"longitude" groups:"detailed"`
	TransportTypes []string `json:"transportTypes" groups:"detailed"`
	TariffZones    string   `json:"tariffZones" groups:"detailed"`
	Abbreviation   string   `json:"abbreviation" groups:"detailed"`
	DivaID         int      `json:"divaId" groups:"detailed"`
}

// Departure is one raw departure record as reported by the operator.
// Timestamps are unix epoch milliseconds on the wire.
type Departure struct {
	PlannedDepartureTime  int64         `json:"plannedDepartureTime"`
	Realtime              bool          `json:"realtime"`
	DelayInMinutes        int           `json:"delayInMinutes"`
	RealtimeDepartureTime int64         `json:"realtimeDepartureTime"`
	TransportType         TransportType `json:"transportType"`
	Label                 string        `json:"label"`
	DivaID                string        `json:"divaId"`
	Network               string        `json:"network"`
	TrainType             string        `json:"trainType"`
	Destination           string        `json:"destination"`
	Cancelled             bool          `json:"cancelled"`
	Sev                   bool          `json:"sev"`
	Platform              int           `json:"platform"`
	PlatformChanged       bool          `json:"platformChanged"`
	Messages              []string      `json:"messages"`
	BannerHash            string        `json:"bannerHash"`
	Occupancy             string        `json:"occupancy"`
	StopPointGlobalID     string        `json:"stopPointGlobalId"`
}

func (d *Departure) PlannedDeparture() time.Time {
	return time.UnixMilli(d.PlannedDepartureTime)
}

func (d *Departure) RealtimeDeparture() time.Time {
	return time.UnixMilli(d.RealtimeDepartureTime)
}
