package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agroledger/internal/core/apperror"
	"agroledger/internal/infrastructure/http/v1/dto"
	"agroledger/pkg/logger"
)

func newEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), Trace(), Logger(logger.NewNop()), ErrorHandler())
	r.GET("/x", handler)
	return r
}

func serve(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorHandler_AppError(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("bot user", int64(7)))
		c.Abort()
	})

	w := serve(r, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, apperror.CodeNotFound, resp.Code)
	assert.Equal(t, "bot user", resp.Details["entity"])
}

func TestErrorHandler_PlainErrorIsHidden(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		_ = c.Error(errors.New("pq: relation does not exist"))
		c.Abort()
	})

	w := serve(r, map[string]string{HeaderRequestID: "req-1"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, apperror.CodeInternal, resp.Code)
	assert.NotContains(t, w.Body.String(), "relation")
	assert.Equal(t, "req-1", resp.Details["request_id"])
}

func TestRecovery(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		panic("boom")
	})

	w := serve(r, map[string]string{HeaderRequestID: "req-2"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, apperror.CodeInternal, resp.Code)
	assert.Equal(t, "req-2", resp.Details["request_id"])
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestTrace_EchoesIDs(t *testing.T) {
	r := newEngine(func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, map[string]string{HeaderRequestID: "req-3", HeaderTraceID: "trace-3"})
	assert.Equal(t, "req-3", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "trace-3", w.Header().Get(HeaderTraceID))

	w = serve(r, nil)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	assert.NotEmpty(t, w.Header().Get(HeaderTraceID))
}
