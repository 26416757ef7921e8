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

type volunteerReviewService interface {
	ListPending(ctx context.Context, limit, offset int) (*models.PendingVolunteerHoursPage, error)
	Overview(ctx context.Context) (*models.VolunteerHoursOverview, error)
	Approve(ctx context.Context, entryID, adminID string, meta dto.ReviewMetadata) (*models.VolunteerHours, error)
	Reject(ctx context.Context, entryID, adminID, reason string, meta dto.ReviewMetadata) (*models.VolunteerHours, error)
	ListForIntern(ctx context.Context, internID string) ([]models.VolunteerHours, error)
	Stats(ctx context.Context, internID string) (*models.VolunteerHoursStats, error)
}

type adminActionService interface {
	List(ctx context.Context, limit int) ([]models.AdminAction, error)
}

// AdminHandler exposes the admin review queue and reporting endpoints.
type AdminHandler struct {
	hours   volunteerReviewService
	actions adminActionService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(hours volunteerReviewService, actions adminActionService) *AdminHandler {
	return &AdminHandler{hours: hours, actions: actions}
}

// ListPending godoc
// @Summary List volunteer hours awaiting review
// @Tags Admin
// @Produce json
// @Param limit query int false "Page size, capped at 500" default(100)
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Router /admin/volunteer-hours/pending [get]
func (h *AdminHandler) ListPending(c *gin.Context) {
	page, err := h.hours.ListPending(c.Request.Context(), queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, &models.Pagination{
		Page:       page.Offset/maxInt(page.Limit, 1) + 1,
		PageSize:   page.Limit,
		TotalCount: page.Total,
	})
}

// Overview godoc
// @Summary Volunteer hours dashboard counters
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/volunteer-hours/overview [get]
func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.hours.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// Approve godoc
// @Summary Approve pending volunteer hours
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Volunteer hours ID"
// @Param payload body dto.ApproveVolunteerHoursRequest false "Optional review note"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/volunteer-hours/{id}/approve [post]
func (h *AdminHandler) Approve(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ApproveVolunteerHoursRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid approval payload"))
			return
		}
	}
	entry, err := h.hours.Approve(c.Request.Context(), c.Param("id"), adminID, reviewMetadata(c, req.Note))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Reject godoc
// @Summary Reject pending volunteer hours
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Volunteer hours ID"
// @Param payload body dto.RejectVolunteerHoursRequest true "Rejection payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/volunteer-hours/{id}/reject [post]
func (h *AdminHandler) Reject(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.RejectVolunteerHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rejection payload"))
		return
	}
	entry, err := h.hours.Reject(c.Request.Context(), c.Param("id"), adminID, req.Reason, reviewMetadata(c, req.Note))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// InternHours godoc
// @Summary List an intern's volunteer hours
// @Tags Admin
// @Produce json
// @Param id path string true "Intern profile ID"
// @Success 200 {object} response.Envelope
// @Router /admin/interns/{id}/volunteer-hours [get]
func (h *AdminHandler) InternHours(c *gin.Context) {
	entries, err := h.hours.ListForIntern(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// InternStats godoc
// @Summary Volunteer hours statistics for an intern
// @Tags Admin
// @Produce json
// @Param id path string true "Intern profile ID"
// @Success 200 {object} response.Envelope
// @Router /admin/interns/{id}/volunteer-hours/stats [get]
func (h *AdminHandler) InternStats(c *gin.Context) {
	stats, err := h.hours.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// ActionLogs godoc
// @Summary Recent admin actions
// @Tags Admin
// @Produce json
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {object} response.Envelope
// @Router /admin/action-logs [get]
func (h *AdminHandler) ActionLogs(c *gin.Context) {
	actions, err := h.actions.List(c.Request.Context(), queryInt(c, "limit", 100))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, actions, nil)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
