package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/stemspark-api/internal/dto"
	"github.com/noah-isme/stemspark-api/internal/models"
	appErrors "github.com/noah-isme/stemspark-api/pkg/errors"
	"github.com/noah-isme/stemspark-api/pkg/response"
)

type volunteerHoursService interface {
	Submit(ctx context.Context, req dto.SubmitVolunteerHoursRequest) (*models.VolunteerHours, error)
	ListForIntern(ctx context.Context, internID string) ([]models.VolunteerHours, error)
	Stats(ctx context.Context, internID string) (*models.VolunteerHoursStats, error)
	CreateFromCompletedSession(ctx context.Context, sessionID, internID string, hours float64, note string) (*models.VolunteerHours, error)
}

type volunteerLogExporter interface {
	ExportVolunteerLog(ctx context.Context, internID string, format dto.ExportFormat) (*dto.ExportResult, error)
}

// VolunteerHoursHandler serves the intern-facing volunteer hours endpoints.
type VolunteerHoursHandler struct {
	service  volunteerHoursService
	exporter volunteerLogExporter
}

// NewVolunteerHoursHandler builds a new handler.
func NewVolunteerHoursHandler(service volunteerHoursService, exporter volunteerLogExporter) *VolunteerHoursHandler {
	return &VolunteerHoursHandler{service: service, exporter: exporter}
}

// Submit godoc
// @Summary Submit volunteer hours for review
// @Tags VolunteerHours
// @Accept json
// @Produce json
// @Param payload body dto.SubmitVolunteerHoursRequest true "Volunteer hours payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /volunteer-hours [post]
func (h *VolunteerHoursHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.SubmitVolunteerHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid volunteer hours payload"))
		return
	}
	req.InternID = userID

	entry, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// ListMine godoc
// @Summary List the caller's volunteer hours
// @Tags VolunteerHours
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /volunteer-hours/me [get]
func (h *VolunteerHoursHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := h.service.ListForIntern(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// MyStats godoc
// @Summary Volunteer hours statistics for the caller
// @Tags VolunteerHours
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /volunteer-hours/me/stats [get]
func (h *VolunteerHoursHandler) MyStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	stats, err := h.service.Stats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// ExportMine godoc
// @Summary Download the caller's volunteer log
// @Tags VolunteerHours
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /volunteer-hours/me/export [get]
func (h *VolunteerHoursHandler) ExportMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	result, err := h.exporter.ExportVolunteerLog(c.Request.Context(), userID, dto.ExportFormat(c.DefaultQuery("format", string(dto.ExportFormatCSV))))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}

// CreateFromSession godoc
// @Summary Log approved hours for a completed tutoring session
// @Tags VolunteerHours
// @Accept json
// @Produce json
// @Param sessionId path string true "Tutoring session ID"
// @Param payload body dto.SessionHoursRequest true "Session hours payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /volunteer-hours/sessions/{sessionId} [post]
func (h *VolunteerHoursHandler) CreateFromSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.SessionHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session hours payload"))
		return
	}
	entry, err := h.service.CreateFromCompletedSession(c.Request.Context(), c.Param("sessionId"), userID, req.Hours, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}
