package handlers

import (
	"bytes"

	"github.com/gin-gonic/gin"

	"agroledger/internal/domain/filter"
	"agroledger/internal/domain/reports"
	"agroledger/internal/infrastructure/export"
	"agroledger/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles the warehouse report endpoints.
// Filter values are never rejected: absent ones widen the scope and
// invalid ones produce an empty result.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Totals handles GET /api/warehouse/totals/
func (h *ReportsHandler) Totals(c *gin.Context) {
	var req dto.LedgerFilterRequest
	if !h.BindQuery(c, &req) {
		return
	}

	totals, err := h.service.Totals(c.Request.Context(), req.Ledger())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromTotals(totals))
}

// Products handles GET /api/warehouse/products/
func (h *ReportsHandler) Products(c *gin.Context) {
	var req dto.LedgerFilterRequest
	if !h.BindQuery(c, &req) {
		return
	}

	rows, err := h.service.ProductBreakdown(c.Request.Context(), req.Ledger(), filter.ParseDirections(req.Movement))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProductBalances(rows))
}

// Districts handles GET /api/warehouse/districts/
func (h *ReportsHandler) Districts(c *gin.Context) {
	var req dto.LedgerFilterRequest
	if !h.BindQuery(c, &req) {
		return
	}

	rows, err := h.service.ExpenseDistricts(c.Request.Context(), req.Ledger())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromDistricts(rows))
}

// Movements handles GET /api/warehouse/movements/
func (h *ReportsHandler) Movements(c *gin.Context) {
	m, ok := h.movements(c)
	if !ok {
		return
	}
	h.OK(c, dto.FromMovements(m))
}

// ExportMovements handles GET /api/warehouse/movements/export/
func (h *ReportsHandler) ExportMovements(c *gin.Context) {
	m, ok := h.movements(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteMovements(&buf, m); err != nil {
		h.Error(c, err)
		return
	}

	h.Attachment(c, export.FileName(m.Mode), export.ContentType, buf.Bytes())
}

func (h *ReportsHandler) movements(c *gin.Context) (*reports.Movements, bool) {
	var req dto.LedgerFilterRequest
	if !h.BindQuery(c, &req) {
		return nil, false
	}

	m, err := h.service.Movements(c.Request.Context(), req.Ledger(), req.Movement)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	return m, true
}
