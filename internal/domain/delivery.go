package domain

import "time"

// DeliveryRecord is the audit entry for one report dispatch attempt.
type DeliveryRecord struct {
	ID           string    `db:"id"`
	Recipient    string    `db:"recipient"`
	OverpassDate string    `db:"overpass_date"`
	AssetCount   int       `db:"asset_count"`
	Collections  []string  `db:"collections"`
	Success      bool      `db:"success"`
	Message      string    `db:"message"`
	CreatedAt    time.Time `db:"created_at"`
}
