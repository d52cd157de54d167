package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/landsat-viewer/internal/domain/repository"
	"github.com/landsat-viewer/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDeliveryRepositoryForTest creates a delivery repository over a test connection.
func NewDeliveryRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.DeliveryRepository {
	return postgres.NewDeliveryRepository(postgres.NewDBForTest(db, logger))
}
