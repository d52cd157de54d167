package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/domain/repository"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type deliveryRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDeliveryRepository stores report dispatch attempts in report_deliveries.
func NewDeliveryRepository(db *DB) repository.DeliveryRepository {
	return &deliveryRepository{
		db:     db,
		logger: db.logger,
	}
}

// deliveryRow mirrors report_deliveries; collections is a text[] column.
type deliveryRow struct {
	ID           string         `db:"id"`
	Recipient    string         `db:"recipient"`
	OverpassDate string         `db:"overpass_date"`
	AssetCount   int            `db:"asset_count"`
	Collections  pq.StringArray `db:"collections"`
	Success      bool           `db:"success"`
	Message      string         `db:"message"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (r deliveryRow) toDomain() domain.DeliveryRecord {
	return domain.DeliveryRecord{
		ID:           r.ID,
		Recipient:    r.Recipient,
		OverpassDate: r.OverpassDate,
		AssetCount:   r.AssetCount,
		Collections:  []string(r.Collections),
		Success:      r.Success,
		Message:      r.Message,
		CreatedAt:    r.CreatedAt,
	}
}

// Record inserts the attempt, filling ID and CreatedAt when unset.
func (r *deliveryRepository) Record(ctx context.Context, record *domain.DeliveryRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO report_deliveries
			(id, recipient, overpass_date, asset_count, collections, success, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Recipient,
		record.OverpassDate,
		record.AssetCount,
		pq.Array(record.Collections),
		record.Success,
		record.Message,
		record.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to record delivery",
			zap.String("recipient", record.Recipient),
			zap.Error(err))
		return fmt.Errorf("insert delivery: %w", err)
	}

	return nil
}

// ListByRecipient returns the newest attempts first.
func (r *deliveryRepository) ListByRecipient(ctx context.Context, recipient string, limit int) ([]domain.DeliveryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, recipient, overpass_date, asset_count, collections, success, message, created_at
		FROM report_deliveries
		WHERE recipient = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var rows []deliveryRow
	if err := r.db.SelectContext(ctx, &rows, query, recipient, limit); err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	records := make([]domain.DeliveryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toDomain())
	}
	return records, nil
}
