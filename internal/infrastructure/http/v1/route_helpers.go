package v1

import (
	"github.com/gin-gonic/gin"

	"agroledger/internal/infrastructure/http/v1/handlers"
)

// registerLedgerRoutes registers the plain ledger lists.
func registerLedgerRoutes(rg *gin.RouterGroup, h *handlers.LedgerHandler) {
	rg.GET("/farmers/", h.Farmers)
	rg.GET("/farmers/summary/", h.FarmerSummary)
	rg.GET("/receipts/", h.Receipts)
	rg.GET("/goods-given/", h.GoodsGiven)
	rg.GET("/warehouses/", h.Warehouses)
}

// registerReportRoutes registers the warehouse report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, h *handlers.ReportsHandler) {
	rg.GET("/totals/", h.Totals)
	rg.GET("/products/", h.Products)
	rg.GET("/districts/", h.Districts)
	rg.GET("/movements/", h.Movements)
	rg.GET("/movements/export/", h.ExportMovements)
}

// registerBotRoutes registers the chat-bot endpoints.
func registerBotRoutes(rg *gin.RouterGroup, h *handlers.BotHandler) {
	rg.POST("/check/", h.Check)
	rg.POST("/activity/", h.LogActivity)
	rg.GET("/activity/analytics/", h.Analytics)
}
