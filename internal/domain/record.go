package domain

// RawRow is one CSV data row keyed by its header. Header spelling and case
// vary between exports; use a Schema to read it.
type RawRow map[string]string

// Sheet is one decoded export: the header in source order plus its rows.
type Sheet struct {
	Header []string
	Rows   []RawRow
}

// Fields is the fixed internal view of a RawRow after header resolution.
// Absent and empty columns are both "", except Complaint which is nil when the
// export has no complaint column or the row is too short to reach it.
type Fields struct {
	Latitude  string
	Longitude string
	Location  string // combined "lat, lon" column
	Date      string
	Station   string
	EventType string
	Complaint *string
}

// Geo is a WGS-84 latitude/longitude pair.
type Geo struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Area categories derived from the subdivision name.
const (
	AreaTown  = "Town"
	AreaRural = "Rural"
)

// Record is a normalized incident. Every field has passed its validation gate.
type Record struct {
	ID            string  `json:"id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	EventType     string  `json:"event_type"`
	PoliceStation string  `json:"police_station"`
	Subdivision   string  `json:"subdivision"`
	AreaCategory  string  `json:"area_category"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Complaint     *string `json:"complaint"`
}

// RejectReason names the validation gate a row failed.
type RejectReason string

const (
	RejectNone        RejectReason = ""
	RejectCoordinates RejectReason = "coordinates"
	RejectDate        RejectReason = "date"
	RejectStation     RejectReason = "station"
)

// RejectReasons lists every rejection reason, for metrics and reports.
var RejectReasons = []RejectReason{RejectCoordinates, RejectDate, RejectStation}

// Outcome is the result of normalizing one row: a record or a rejection.
type Outcome struct {
	Record Record
	Reason RejectReason
}

// Accepted reports whether the row produced a record.
func (o Outcome) Accepted() bool {
	return o.Reason == RejectNone
}

// StationCount is one entry of the top-stations ranking.
type StationCount struct {
	Station string `json:"station"`
	Count   int    `json:"count"`
}

// Analytics summarizes an accepted record set.
type Analytics struct {
	TotalCases  int            `json:"total_cases"`
	TopStations []StationCount `json:"top_stations"`
}

// FilterOptions lists the distinct values present in a record set.
type FilterOptions struct {
	EventTypes   []string `json:"event_types"`
	Subdivisions []string `json:"subdivisions"`
}
