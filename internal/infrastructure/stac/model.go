package stac

import "encoding/json"

type searchRequest struct {
	Limit       int         `json:"limit"`
	BBox        [4]float64  `json:"bbox"`
	Datetime    string      `json:"datetime"`
	Collections []string    `json:"collections"`
	Query       searchQuery `json:"query"`
}

type searchQuery struct {
	CloudCover rangeFilter `json:"eo:cloud_cover"`
	Platform   inFilter    `json:"platform"`
}

// rangeFilter has no omitempty: a zero lower bound must still be sent.
type rangeFilter struct {
	GTE float64 `json:"gte"`
	LT  float64 `json:"lt"`
}

type inFilter struct {
	In []string `json:"in"`
}

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID     string          `json:"id"`
	Assets json.RawMessage `json:"assets"`
}

type asset struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}
