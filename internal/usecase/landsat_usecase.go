package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/domain/repository"
	"github.com/landsat-viewer/internal/pkg/errors"
)

// PipelineResult is the outcome of one overpass + search run. Assets is
// empty when the overpass was not available.
type PipelineResult struct {
	Overpass domain.Overpass
	Assets   domain.AssetSet
}

// Table returns the formatted asset table.
func (r PipelineResult) Table() domain.AssetTable {
	return domain.NewAssetTable(r.Assets.Records)
}

// Message is the status line shown next to the result.
func (r PipelineResult) Message() string {
	if !r.Overpass.Available {
		return domain.NoRecentDataMessage
	}
	if r.Assets.Empty() {
		return domain.NoAssetsMessage
	}
	return ""
}

// LandsatUseCase runs the overpass lookup and the asset search.
type LandsatUseCase struct {
	overpassRepo repository.OverpassRepository
	searchRepo   repository.AssetSearchRepository
	logger       *zap.Logger
}

func NewLandsatUseCase(
	overpassRepo repository.OverpassRepository,
	searchRepo repository.AssetSearchRepository,
	logger *zap.Logger,
) *LandsatUseCase {
	return &LandsatUseCase{
		overpassRepo: overpassRepo,
		searchRepo:   searchRepo,
		logger:       logger,
	}
}

// Overpass returns the most recent imaging date for coord.
func (uc *LandsatUseCase) Overpass(ctx context.Context, coord domain.Coordinate) (domain.Overpass, error) {
	if !coord.Valid() {
		return domain.Overpass{}, errors.ErrInvalidCoordinates
	}

	overpass, err := uc.overpassRepo.LatestOverpass(ctx, coord)
	if err != nil {
		uc.logger.Error("Failed to resolve overpass", zap.Stringer("coordinate", coord), zap.Error(err))
		return domain.Overpass{}, err
	}
	return overpass, nil
}

// SearchAssets lists the assets captured on date around coord.
func (uc *LandsatUseCase) SearchAssets(ctx context.Context, coord domain.Coordinate, date string) (domain.AssetSet, error) {
	if !coord.Valid() {
		return domain.AssetSet{}, errors.ErrInvalidCoordinates
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return domain.AssetSet{}, errors.ErrInvalidRequest.WithMessage("date must be YYYY-MM-DD")
	}

	assets, err := uc.searchRepo.SearchAssets(ctx, coord, date)
	if err != nil {
		uc.logger.Error("Failed to search assets",
			zap.Stringer("coordinate", coord),
			zap.String("date", date),
			zap.Error(err))
		return domain.AssetSet{}, err
	}
	return assets, nil
}

// Resolve runs the pipeline. An overpass error or an unavailable overpass
// stops it before the search is issued.
func (uc *LandsatUseCase) Resolve(ctx context.Context, coord domain.Coordinate) (*PipelineResult, error) {
	overpass, err := uc.Overpass(ctx, coord)
	if err != nil {
		return nil, err
	}

	result := &PipelineResult{Overpass: overpass}
	if !overpass.Available {
		uc.logger.Info("No recent overpass, skipping asset search", zap.Stringer("coordinate", coord))
		return result, nil
	}

	assets, err := uc.SearchAssets(ctx, coord, overpass.Date)
	if err != nil {
		return nil, err
	}
	result.Assets = assets

	uc.logger.Info("Pipeline completed",
		zap.Stringer("coordinate", coord),
		zap.String("overpass_date", overpass.Date),
		zap.Int("assets", len(assets.Records)))

	return result, nil
}

// Collections names the catalog collections searched.
func (uc *LandsatUseCase) Collections() []string {
	return uc.searchRepo.Collections()
}
