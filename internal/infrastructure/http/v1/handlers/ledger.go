package handlers

import (
	"github.com/gin-gonic/gin"

	"agroledger/internal/domain/ledger"
	"agroledger/internal/infrastructure/http/v1/dto"
)

// LedgerHandler serves the plain ledger lists.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Farmers handles GET /api/farmers/
func (h *LedgerHandler) Farmers(c *gin.Context) {
	rows, err := h.service.ActiveFarmers(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromFarmerRows(rows))
}

// FarmerSummary handles GET /api/farmers/summary/
func (h *LedgerHandler) FarmerSummary(c *gin.Context) {
	rows, err := h.service.FarmerSummaries(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromFarmerSummaries(rows))
}

// Receipts handles GET /api/receipts/
func (h *LedgerHandler) Receipts(c *gin.Context) {
	rows, err := h.service.Receipts(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromReceiptRows(rows))
}

// GoodsGiven handles GET /api/goods-given/
func (h *LedgerHandler) GoodsGiven(c *gin.Context) {
	rows, err := h.service.IssuanceDocuments(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromIssuanceDocuments(rows))
}

// Warehouses handles GET /api/warehouses/
func (h *LedgerHandler) Warehouses(c *gin.Context) {
	rows, err := h.service.Warehouses(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromWarehouses(rows))
}
