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

// SessionHandler - interactive flow: pick a location, query, download, email
type SessionHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

func NewSessionHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Create godoc
// @Summary Create a session
// @Tags Sessions
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	session, err := h.sessionUC.Create(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, dto.NewSessionResponse(session), nil)
}

// Get godoc
// @Summary Read a session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	session, err := h.sessionUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewSessionResponse(session), nil)
}

// SetLocation godoc
// @Summary Select the session location
// @Description Sets the coordinate from a map click, manual entry, a place name or an IP lookup. Clears any previous result.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.LocationRequest true "Location input"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/location [put]
func (h *SessionHandler) SetLocation(c *fiber.Ctx) error {
	var req dto.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.sessionUC.SetLocation(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewSessionResponse(session), nil)
}

// RunQuery godoc
// @Summary Run the overpass and asset query
// @Description Looks up the latest overpass for the session location and, when one is known, the assets for that day.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.QueryResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/query [post]
func (h *SessionHandler) RunQuery(c *fiber.Ctx) error {
	_, result, err := h.sessionUC.RunQuery(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	resp := dto.QueryResponse{Overpass: dto.NewOverpassResponse(result.Overpass)}
	if result.Overpass.Available {
		resp.Assets = dto.NewAssetTableResponse(result.Assets)
	}
	return utils.SendSuccess(c, resp, nil)
}

// ExportCSV godoc
// @Summary Download the asset table
// @Tags Sessions
// @Produce text/csv
// @Param id path string true "Session ID"
// @Success 200 {string} string "Title,URL rows"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/assets.csv [get]
func (h *SessionHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.sessionUC.ExportCSV(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment(domain.ReportAttachmentName)
	return c.Send(data)
}

// Report godoc
// @Summary Email the asset table
// @Description Sends the stored result as landsat_data.csv together with the overpass date.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ReportRequest true "Recipient"
// @Success 200 {object} utils.SuccessResponse{data=dto.ReportResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/report [post]
func (h *SessionHandler) Report(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	sent, message, err := h.sessionUC.Report(c.Context(), c.Params("id"), req.Email)
	if err != nil {
		return utils.SendError(c, err)
	}
	if !sent {
		return utils.SendError(c, errors.ErrDeliveryFailure.
			WithMessage(message).
			WithDetails(map[string]interface{}{"sent": false}))
	}

	return utils.SendSuccess(c, dto.ReportResponse{Sent: sent, Message: message}, nil)
}
