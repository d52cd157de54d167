package repository

import (
	"context"

	"github.com/landsat-viewer/internal/domain"
)

// DeliveryRepository keeps the audit trail of report dispatch attempts.
type DeliveryRepository interface {
	Record(ctx context.Context, record *domain.DeliveryRecord) error
	ListByRecipient(ctx context.Context, recipient string, limit int) ([]domain.DeliveryRecord, error)
}
