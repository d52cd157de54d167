package dto

// CoordinateQuery is a lat/lon pair taken from the query string.
type CoordinateQuery struct {
	Lat *float64 `query:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `query:"lon" validate:"required,min=-180,max=180"`
}

// GeocodeQuery - place name lookup
type GeocodeQuery struct {
	Q string `query:"q" validate:"required,min=2"`
}

// IPLocateQuery - IP lookup; empty IP locates the server's own public address
type IPLocateQuery struct {
	IP string `query:"ip" validate:"omitempty,ip"`
}

// AssetSearchRequest - asset search for an explicit day
type AssetSearchRequest struct {
	Lat  *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon  *float64 `json:"lon" validate:"required,min=-180,max=180"`
	Date string   `json:"date" validate:"required,datetime=2006-01-02"`
}

// LocationRequest selects the session coordinate. Lat/Lon are used by
// map_click and coordinates, Query by place_name, IP by ip.
type LocationRequest struct {
	Source string   `json:"source" validate:"required,oneof=map_click coordinates place_name ip"`
	Lat    *float64 `json:"lat,omitempty"`
	Lon    *float64 `json:"lon,omitempty"`
	Query  string   `json:"query,omitempty" validate:"required_if=Source place_name"`
	IP     string   `json:"ip,omitempty" validate:"omitempty,ip"`
}

// ReportRequest - email the current session result
type ReportRequest struct {
	Email string `json:"email" validate:"required,email"`
}
