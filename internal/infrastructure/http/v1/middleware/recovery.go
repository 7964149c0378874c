// Package middleware provides HTTP middleware components.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"agroledger/internal/core/apperror"
	appctx "agroledger/internal/core/context"
	"agroledger/internal/infrastructure/http/v1/dto"
	"agroledger/pkg/logger"
)

// Recovery turns a panic into a 500. It is the outermost middleware, so the
// panic has already unwound ErrorHandler and the response is written here.
// The stack goes to the log only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			ctx := c.Request.Context()
			logger.Error(ctx, "panic recovered",
				"panic", rec,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:    apperror.CodeInternal,
				Message: "Internal server error",
				Details: map[string]any{"request_id": appctx.GetRequestID(ctx)},
			})
		}()
		c.Next()
	}
}
