package dto

import "github.com/landsat-viewer/internal/domain"

// HealthResponse - service liveness
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// CoordinateResponse - a resolved location
type CoordinateResponse struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Source string  `json:"source,omitempty"`
	Label  string  `json:"label,omitempty"`
}

// OverpassResponse - latest overpass; Date is empty when none is known
type OverpassResponse struct {
	Date      string `json:"date,omitempty"`
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// AssetTableResponse - asset table in display order
type AssetTableResponse struct {
	Columns []string             `json:"columns"`
	Rows    [][]string           `json:"rows"`
	Assets  []domain.AssetRecord `json:"assets"`
	Total   int                  `json:"total"`
	Message string               `json:"message,omitempty"`
}

// QueryResponse - full pipeline result
type QueryResponse struct {
	Overpass OverpassResponse    `json:"overpass"`
	Assets   *AssetTableResponse `json:"assets,omitempty"`
}

// SessionResponse - session state
type SessionResponse struct {
	ID       string              `json:"id"`
	Location *CoordinateResponse `json:"location,omitempty"`
	Default  CoordinateResponse  `json:"default_location"`
	Overpass *OverpassResponse   `json:"overpass,omitempty"`
	Assets   *AssetTableResponse `json:"assets,omitempty"`
	HasData  bool                `json:"has_data"`
}

// ReportResponse - outcome of a send attempt
type ReportResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

func NewOverpassResponse(o domain.Overpass) OverpassResponse {
	return OverpassResponse{
		Date:      o.Date,
		Available: o.Available,
		Message:   o.Message(),
	}
}

func NewAssetTableResponse(set domain.AssetSet) *AssetTableResponse {
	table := domain.NewAssetTable(set.Records)
	resp := &AssetTableResponse{
		Columns: table.Columns,
		Rows:    table.Rows,
		Assets:  set.Records,
		Total:   table.Len(),
	}
	if resp.Assets == nil {
		resp.Assets = []domain.AssetRecord{}
	}
	if set.Empty() {
		resp.Message = domain.NoAssetsMessage
	}
	return resp
}

func NewSessionResponse(s *domain.Session) *SessionResponse {
	resp := &SessionResponse{
		ID: s.ID,
		Default: CoordinateResponse{
			Lat: domain.DefaultCoordinate.Lat,
			Lon: domain.DefaultCoordinate.Lon,
		},
		HasData: s.HasData(),
	}
	if s.Coordinate != nil {
		resp.Location = &CoordinateResponse{
			Lat:    s.Coordinate.Lat,
			Lon:    s.Coordinate.Lon,
			Source: string(s.Source),
			Label:  s.Label,
		}
	}
	if s.Overpass != nil {
		o := NewOverpassResponse(*s.Overpass)
		resp.Overpass = &o
		if s.Overpass.Available {
			resp.Assets = NewAssetTableResponse(domain.AssetSet{Records: s.Assets})
		}
	}
	return resp
}
