package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agroledger/internal/core/apperror"
	"agroledger/internal/domain/activity"
	"agroledger/internal/infrastructure/http/v1/dto"
)

// BotHandler serves the chat-bot gate, activity log and analytics.
type BotHandler struct {
	*BaseHandler
	service *activity.Service
}

// NewBotHandler creates a new bot handler.
func NewBotHandler(base *BaseHandler, service *activity.Service) *BotHandler {
	return &BotHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Check handles POST /api/bot-user/check/
func (h *BotHandler) Check(c *gin.Context) {
	var req dto.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.CheckResponse{})
		return
	}

	res, err := h.service.Check(c.Request.Context(), req.ToInput())
	if err != nil {
		if status, ok := clientStatus(err); ok {
			c.JSON(status, dto.CheckResponse{})
			return
		}
		h.Error(c, err)
		return
	}
	h.OK(c, dto.CheckResponse{Allowed: res.Allowed, Created: res.Created})
}

// LogActivity handles POST /api/bot-user/activity/
func (h *BotHandler) LogActivity(c *gin.Context) {
	var req dto.LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.CreatedResponse{})
		return
	}

	if _, err := h.service.LogActivity(c.Request.Context(), req.ToInput()); err != nil {
		if status, ok := clientStatus(err); ok {
			c.JSON(status, dto.CreatedResponse{})
			return
		}
		h.Error(c, err)
		return
	}
	h.OK(c, dto.CreatedResponse{Created: true})
}

// Analytics handles GET /api/bot-user/activity/analytics/
func (h *BotHandler) Analytics(c *gin.Context) {
	var req dto.AnalyticsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	report, err := h.service.Analytics(c.Request.Context(), req.UserID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromAnalytics(report))
}

// clientStatus returns the status of validation and not-found errors, which
// the bot endpoints answer with their plain result body.
func clientStatus(err error) (int, bool) {
	switch {
	case apperror.IsValidation(err), apperror.IsNotFound(err):
		return apperror.GetHTTPStatus(err), true
	default:
		return 0, false
	}
}
