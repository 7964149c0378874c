package dto

import (
	"agroledger/internal/domain/ledger"
)

// --- Farmers ---

// FarmerResponse represents an active farmer with its hierarchy.
type FarmerResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	INN          *string `json:"inn"`
	Phone        *string `json:"phone"`
	Maydon       string  `json:"maydon"`
	IsActive     bool    `json:"is_active"`
	MassiveID    *int64  `json:"massive_id"`
	MassiveName  *string `json:"massive_name"`
	DistrictID   *int64  `json:"district_id"`
	DistrictName *string `json:"district_name"`
	RegionID     *int64  `json:"region_id"`
	RegionName   *string `json:"region_name"`
}

// FromFarmerRow converts a farmer row to response DTO.
func FromFarmerRow(f ledger.FarmerRow) FarmerResponse {
	return FarmerResponse{
		ID:           f.ID,
		Name:         f.Name,
		INN:          f.INN,
		Phone:        f.Phone,
		Maydon:       Decimal(f.Area.Decimal),
		IsActive:     f.IsActive,
		MassiveID:    f.MassiveID,
		MassiveName:  f.MassiveName,
		DistrictID:   f.DistrictID,
		DistrictName: f.DistrictName,
		RegionID:     f.RegionID,
		RegionName:   f.RegionName,
	}
}

// FromFarmerRows converts a farmer list.
func FromFarmerRows(rows []ledger.FarmerRow) []FarmerResponse {
	out := make([]FarmerResponse, len(rows))
	for i, r := range rows {
		out[i] = FromFarmerRow(r)
	}
	return out
}

// FarmerSummaryResponse is a farmer with contract sums.
type FarmerSummaryResponse struct {
	FarmerResponse
	Quantity string `json:"quantity"`
	Amount   string `json:"amount"`
}

// FromFarmerSummaries converts the farmer summary list.
func FromFarmerSummaries(rows []ledger.FarmerSummary) []FarmerSummaryResponse {
	out := make([]FarmerSummaryResponse, len(rows))
	for i, r := range rows {
		out[i] = FarmerSummaryResponse{
			FarmerResponse: FromFarmerRow(r.FarmerRow),
			Quantity:       Decimal(r.Quantity),
			Amount:         Decimal(r.Amount),
		}
	}
	return out
}

// --- Receipts ---

// ReceiptResponse represents a warehouse receipt.
type ReceiptResponse struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	WarehouseID   *int64  `json:"warehouse_id"`
	WarehouseName *string `json:"warehouse_name"`
	ProductID     *int64  `json:"product_id"`
	ProductName   *string `json:"product_name"`
	InvoiceNumber string  `json:"invoice_number"`
	BagCount      int     `json:"bag_count"`
	Quantity      string  `json:"quantity"`
	Amount        string  `json:"amount"`
}

// FromReceiptRows converts the receipt list.
func FromReceiptRows(rows []ledger.ReceiptRow) []ReceiptResponse {
	out := make([]ReceiptResponse, len(rows))
	for i, r := range rows {
		out[i] = ReceiptResponse{
			ID:            r.ID,
			Date:          Date(r.Date),
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			InvoiceNumber: r.InvoiceNumber,
			BagCount:      r.BagCount,
			Quantity:      Decimal(r.Quantity),
			Amount:        Decimal(r.Amount),
		}
	}
	return out
}

// --- Goods given ---

// IssuanceDocumentResponse is a goods-given document with its item quantity.
type IssuanceDocumentResponse struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	Number        string  `json:"number"`
	WarehouseID   *int64  `json:"warehouse_id"`
	WarehouseName *string `json:"warehouse_name"`
	FarmerID      *int64  `json:"farmer_id"`
	FarmerName    *string `json:"farmer_name"`
	Quantity      string  `json:"quantity"`
}

// FromIssuanceDocuments converts the document summary list.
func FromIssuanceDocuments(rows []ledger.IssuanceDocumentSummary) []IssuanceDocumentResponse {
	out := make([]IssuanceDocumentResponse, len(rows))
	for i, r := range rows {
		out[i] = IssuanceDocumentResponse{
			ID:            r.ID,
			Date:          Date(r.Date),
			Number:        r.Number,
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			FarmerID:      r.FarmerID,
			FarmerName:    r.FarmerName,
			Quantity:      Decimal(r.TotalQuantity),
		}
	}
	return out
}

// --- Warehouses ---

// WarehouseResponse represents a warehouse.
type WarehouseResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
}

// FromWarehouses converts the warehouse list.
func FromWarehouses(rows []ledger.Warehouse) []WarehouseResponse {
	out := make([]WarehouseResponse, len(rows))
	for i, w := range rows {
		out[i] = WarehouseResponse{ID: w.ID, Name: w.Name, Address: w.Address}
	}
	return out
}
