package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/landsat-viewer/internal/pkg/utils"
	"github.com/landsat-viewer/internal/pkg/validator"
	"github.com/landsat-viewer/internal/usecase"
	"github.com/landsat-viewer/internal/usecase/dto"
	"go.uber.org/zap"
)

// LocationHandler - place name and IP lookups
type LocationHandler struct {
	locationUC *usecase.LocationUseCase
	logger     *zap.Logger
}

func NewLocationHandler(locationUC *usecase.LocationUseCase, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

func toCoordinateResponse(loc *usecase.ResolvedLocation) dto.CoordinateResponse {
	return dto.CoordinateResponse{
		Lat:    loc.Coordinate.Lat,
		Lon:    loc.Coordinate.Lon,
		Source: string(loc.Source),
		Label:  loc.Label,
	}
}

// Geocode godoc
// @Summary Geocode a place name
// @Description Returns the best match for a free-text place name.
// @Tags Location
// @Produce json
// @Param q query string true "Place name (at least 2 characters)"
// @Success 200 {object} utils.SuccessResponse{data=dto.CoordinateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/geocode [get]
func (h *LocationHandler) Geocode(c *fiber.Ctx) error {
	req := dto.GeocodeQuery{Q: c.Query("q")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	loc, err := h.locationUC.Geocode(c.Context(), req.Q)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, toCoordinateResponse(loc), nil)
}

// LocateIP godoc
// @Summary Locate an IP address
// @Description Resolves an IP address to coordinates. Without ip the server's own public address is used.
// @Tags Location
// @Produce json
// @Param ip query string false "IPv4 or IPv6 address"
// @Success 200 {object} utils.SuccessResponse{data=dto.CoordinateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/geocode/ip [get]
func (h *LocationHandler) LocateIP(c *fiber.Ctx) error {
	req := dto.IPLocateQuery{IP: c.Query("ip")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	loc, err := h.locationUC.LocateIP(c.Context(), req.IP)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, toCoordinateResponse(loc), nil)
}
