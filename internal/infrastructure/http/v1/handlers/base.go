package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"agroledger/internal/core/apperror"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindQuery binds query parameters. Filter values are strings, so this only
// fails on a malformed query string.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewInvalidInput("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error hands err to middleware.ErrorHandler, which renders the response.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Attachment sends data as a downloadable file.
func (h *BaseHandler) Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
