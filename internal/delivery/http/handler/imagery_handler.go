package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/pkg/errors"
	"github.com/landsat-viewer/internal/pkg/utils"
	"github.com/landsat-viewer/internal/pkg/validator"
	"github.com/landsat-viewer/internal/usecase"
	"github.com/landsat-viewer/internal/usecase/dto"
	"go.uber.org/zap"
)

// ImageryHandler - stateless overpass and asset lookups
type ImageryHandler struct {
	landsatUC *usecase.LandsatUseCase
	logger    *zap.Logger
}

func NewImageryHandler(landsatUC *usecase.LandsatUseCase, logger *zap.Logger) *ImageryHandler {
	return &ImageryHandler{
		landsatUC: landsatUC,
		logger:    logger,
	}
}

// Overpass godoc
// @Summary Latest Landsat overpass
// @Description Returns the most recent date a Landsat satellite imaged the point. available=false means no date is known.
// @Tags Imagery
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} utils.SuccessResponse{data=dto.OverpassResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/overpass [get]
func (h *ImageryHandler) Overpass(c *fiber.Ctx) error {
	coord, err := utils.ParseCoordinate(c.Query("lat"), c.Query("lon"))
	if err != nil {
		return utils.SendError(c, err)
	}

	overpass, err := h.landsatUC.Overpass(c.Context(), coord)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewOverpassResponse(overpass), nil)
}

// SearchAssets godoc
// @Summary Search imagery assets
// @Description Lists every asset of every Landsat scene captured on the given day around the point.
// @Tags Imagery
// @Accept json
// @Produce json
// @Param request body dto.AssetSearchRequest true "Point and day"
// @Success 200 {object} utils.SuccessResponse{data=dto.AssetTableResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/assets/search [post]
func (h *ImageryHandler) SearchAssets(c *fiber.Ctx) error {
	var req dto.AssetSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	coord := domain.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
	assets, err := h.landsatUC.SearchAssets(c.Context(), coord, req.Date)
	if err != nil {
		return utils.SendError(c, err)
	}

	table := dto.NewAssetTableResponse(assets)
	return utils.SendSuccess(c, table, &utils.Meta{Total: table.Total})
}
