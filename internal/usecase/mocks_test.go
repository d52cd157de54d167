package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/landsat-viewer/internal/domain"
)

// MockOverpassRepository is a mock of OverpassRepository
type MockOverpassRepository struct {
	mock.Mock
}

func (m *MockOverpassRepository) LatestOverpass(ctx context.Context, coord domain.Coordinate) (domain.Overpass, error) {
	args := m.Called(ctx, coord)
	return args.Get(0).(domain.Overpass), args.Error(1)
}

// MockAssetSearchRepository is a mock of AssetSearchRepository
type MockAssetSearchRepository struct {
	mock.Mock
}

func (m *MockAssetSearchRepository) SearchAssets(ctx context.Context, coord domain.Coordinate, date string) (domain.AssetSet, error) {
	args := m.Called(ctx, coord, date)
	return args.Get(0).(domain.AssetSet), args.Error(1)
}

func (m *MockAssetSearchRepository) Collections() []string {
	return []string{"landsat-c2l2-sr", "landsat-c2l2-st"}
}

// MockGeocoderRepository is a mock of GeocoderRepository
type MockGeocoderRepository struct {
	mock.Mock
}

func (m *MockGeocoderRepository) Geocode(ctx context.Context, name string) (*domain.Coordinate, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coordinate), args.Error(1)
}

func (m *MockGeocoderRepository) LocateIP(ctx context.Context, ip string) (*domain.Coordinate, error) {
	args := m.Called(ctx, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coordinate), args.Error(1)
}

// MockMailerRepository is a mock of MailerRepository
type MockMailerRepository struct {
	mock.Mock
}

func (m *MockMailerRepository) Send(ctx context.Context, msg domain.MailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockDeliveryRepository is a mock of DeliveryRepository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) Record(ctx context.Context, record *domain.DeliveryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDeliveryRepository) ListByRecipient(ctx context.Context, recipient string, limit int) ([]domain.DeliveryRecord, error) {
	args := m.Called(ctx, recipient, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryRecord), args.Error(1)
}

// memorySessionRepository keeps sessions in a map.
type memorySessionRepository struct {
	sessions map[string]domain.Session
}

func newMemorySessionRepository() *memorySessionRepository {
	return &memorySessionRepository{sessions: make(map[string]domain.Session)}
}

func (r *memorySessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memorySessionRepository) Save(_ context.Context, s *domain.Session, _ time.Duration) error {
	r.sessions[s.ID] = *s
	return nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func ptrFloat64(v float64) *float64 {
	return &v
}
