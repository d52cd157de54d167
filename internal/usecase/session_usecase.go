package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/domain/repository"
	"github.com/landsat-viewer/internal/pkg/errors"
	"github.com/landsat-viewer/internal/usecase/dto"
)

// SessionUseCase drives one interactive user through location selection,
// query and report.
type SessionUseCase struct {
	sessions   repository.SessionRepository
	locationUC *LocationUseCase
	landsatUC  *LandsatUseCase
	reportUC   *ReportUseCase
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewSessionUseCase(
	sessions repository.SessionRepository,
	locationUC *LocationUseCase,
	landsatUC *LandsatUseCase,
	reportUC *ReportUseCase,
	ttl time.Duration,
	logger *zap.Logger,
) *SessionUseCase {
	return &SessionUseCase{
		sessions:   sessions,
		locationUC: locationUC,
		landsatUC:  landsatUC,
		reportUC:   reportUC,
		ttl:        ttl,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (uc *SessionUseCase) Create(ctx context.Context) (*domain.Session, error) {
	now := uc.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.sessions.Save(ctx, session, uc.ttl); err != nil {
		return nil, err
	}

	uc.logger.Debug("Session created", zap.String("session_id", session.ID))
	return session, nil
}

func (uc *SessionUseCase) Get(ctx context.Context, id string) (*domain.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrSessionNotFound
	}

	session, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.ErrSessionNotFound.WithDetails(map[string]interface{}{"session_id": id})
	}
	return session, nil
}

// SetLocation resolves the request and stores the coordinate. Any previous
// result is dropped.
func (uc *SessionUseCase) SetLocation(ctx context.Context, id string, req dto.LocationRequest) (*domain.Session, error) {
	session, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	loc, err := uc.locationUC.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	session.SetLocation(loc.Coordinate, loc.Source, loc.Label, uc.now())
	if err := uc.sessions.Save(ctx, session, uc.ttl); err != nil {
		return nil, err
	}
	return session, nil
}

// RunQuery runs the pipeline for the session coordinate and stores the result.
func (uc *SessionUseCase) RunQuery(ctx context.Context, id string) (*domain.Session, *PipelineResult, error) {
	session, err := uc.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if session.Coordinate == nil {
		return nil, nil, errors.ErrLocationNotSet
	}

	result, err := uc.landsatUC.Resolve(ctx, *session.Coordinate)
	if err != nil {
		return nil, nil, err
	}

	session.SetResult(result.Overpass, result.Assets, uc.now())
	if err := uc.sessions.Save(ctx, session, uc.ttl); err != nil {
		return nil, nil, err
	}
	return session, result, nil
}

// Report emails the stored result. A session without data is refused with
// NO_DATA before anything is sent.
func (uc *SessionUseCase) Report(ctx context.Context, id, recipient string) (bool, string, error) {
	session, err := uc.Get(ctx, id)
	if err != nil {
		return false, "", err
	}
	if !session.HasData() {
		return false, "", errors.ErrNoData
	}

	table := domain.NewAssetTable(session.Assets)
	sent, message := uc.reportUC.Dispatch(ctx, recipient, session.Overpass.Date, table)
	return sent, message, nil
}

// ExportCSV renders the stored result as the report attachment would.
func (uc *SessionUseCase) ExportCSV(ctx context.Context, id string) ([]byte, error) {
	session, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.HasData() {
		return nil, errors.ErrNoData
	}
	return domain.NewAssetTable(session.Assets).CSV()
}
