package domain

import "time"

// DateLayout is the calendar-date form used for overpass dates and STAC windows.
const DateLayout = "2006-01-02"

const (
	NoRecentDataMessage = "No recent data available."
	NoAssetsMessage     = "No data found for the given location."
)

// Overpass is the most recent known imaging date for a coordinate.
// Available is false when the metadata service answered without a date;
// that is a valid result, not an error.
type Overpass struct {
	Date      string `json:"date,omitempty"`
	Available bool   `json:"available"`
}

// OverpassOn returns an available overpass for the calendar day of t.
func OverpassOn(t time.Time) Overpass {
	return Overpass{Date: t.Format(DateLayout), Available: true}
}

// NoOverpass is the "no data available" result.
func NoOverpass() Overpass {
	return Overpass{}
}

// Message is the text shown to the user for this result.
func (o Overpass) Message() string {
	if !o.Available {
		return NoRecentDataMessage
	}
	return o.Date
}

// AssetRecord is one downloadable imagery product.
type AssetRecord struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// AssetSet is the flattened result of one search, in service response order.
type AssetSet struct {
	Records []AssetRecord `json:"records"`
}

// Empty reports the "no data found" result.
func (s AssetSet) Empty() bool {
	return len(s.Records) == 0
}

// SearchWindow is the full UTC day of date, formatted as a STAC datetime range.
func SearchWindow(date string) string {
	return date + "T00:00:00Z/" + date + "T23:59:59Z"
}
