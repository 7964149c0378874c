package dto

import (
	"agroledger/internal/domain/filter"
	"agroledger/internal/domain/reports"
)

// LedgerFilterRequest carries the optional report filters as raw strings;
// the filter layer decides what is absent or invalid.
type LedgerFilterRequest struct {
	WarehouseID string `form:"warehouse_id"`
	ProductID   string `form:"product_id"`
	DistrictID  string `form:"district_id"`
	Movement    string `form:"movement"`
}

// Ledger returns the parsed identifier axes.
func (r LedgerFilterRequest) Ledger() filter.Ledger {
	return filter.ParseLedger(r.WarehouseID, r.ProductID, r.DistrictID)
}

// --- Totals ---

// TotalsResponse is the warehouse balance.
type TotalsResponse struct {
	TotalIn        string `json:"total_in"`
	TotalOut       string `json:"total_out"`
	Balance        string `json:"balance"`
	TotalInAmount  string `json:"total_in_amount"`
	TotalOutAmount string `json:"total_out_amount"`
	BalanceAmount  string `json:"balance_amount"`
}

// FromTotals converts domain totals to response DTO.
func FromTotals(t reports.Totals) TotalsResponse {
	return TotalsResponse{
		TotalIn:        Decimal(t.TotalIn),
		TotalOut:       Decimal(t.TotalOut),
		Balance:        Decimal(t.Balance),
		TotalInAmount:  Decimal(t.TotalInAmount),
		TotalOutAmount: Decimal(t.TotalOutAmount),
		BalanceAmount:  Decimal(t.BalanceAmount),
	}
}

// --- Products ---

// ProductBalanceResponse is one row of the per-product breakdown.
type ProductBalanceResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalIn     string `json:"total_in"`
	TotalOut    string `json:"total_out"`
	Balance     string `json:"balance"`
}

// FromProductBalances converts the breakdown.
func FromProductBalances(rows []reports.ProductBalance) []ProductBalanceResponse {
	out := make([]ProductBalanceResponse, len(rows))
	for i, r := range rows {
		out[i] = ProductBalanceResponse{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			TotalIn:     Decimal(r.TotalIn),
			TotalOut:    Decimal(r.TotalOut),
			Balance:     Decimal(r.Balance),
		}
	}
	return out
}

// --- Districts ---

// DistrictResponse is one expense district.
type DistrictResponse struct {
	DistrictID   int64  `json:"district_id"`
	DistrictName string `json:"district_name"`
}

// FromDistricts converts the district list.
func FromDistricts(rows []reports.District) []DistrictResponse {
	out := make([]DistrictResponse, len(rows))
	for i, d := range rows {
		out[i] = DistrictResponse{DistrictID: d.ID, DistrictName: d.Name}
	}
	return out
}

// --- Movements ---

// ReceiptMovementResponse is one row of the "in" listing.
type ReceiptMovementResponse struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	WarehouseName *string `json:"warehouse_name"`
	ProductID     *int64  `json:"product_id"`
	ProductName   *string `json:"product_name"`
	InvoiceNumber string  `json:"invoice_number"`
	BagCount      int     `json:"bag_count"`
	Quantity      string  `json:"quantity"`
}

// DailyDistrictResponse is one row of the "report" listing.
type DailyDistrictResponse struct {
	Date         string `json:"date"`
	DistrictName string `json:"district_name"`
	Quantity     string `json:"quantity"`
}

// FarmerMovementResponse is one row of the farmer-level listing.
type FarmerMovementResponse struct {
	ID              int     `json:"id"`
	DocumentID      int64   `json:"document_id"`
	Date            string  `json:"date"`
	WarehouseName   *string `json:"warehouse_name"`
	Number          string  `json:"number"`
	FarmerName      string  `json:"farmer_name"`
	ProductID       *int64  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        string  `json:"quantity"`
	Maydon          string  `json:"maydon"`
	QuantityPerArea string  `json:"quantity_per_area"`
}

// FromMovements converts the listing to the row set of its mode.
// An unrecognized selector yields an empty list.
func FromMovements(m *reports.Movements) any {
	switch m.Mode {
	case filter.MovementIn:
		out := make([]ReceiptMovementResponse, len(m.Receipts))
		for i, r := range m.Receipts {
			out[i] = ReceiptMovementResponse{
				ID:            r.ID,
				Date:          Date(r.Date),
				WarehouseName: r.WarehouseName,
				ProductID:     r.ProductID,
				ProductName:   r.ProductName,
				InvoiceNumber: r.InvoiceNumber,
				BagCount:      r.BagCount,
				Quantity:      Decimal(r.Quantity),
			}
		}
		return out
	case filter.MovementReport:
		out := make([]DailyDistrictResponse, len(m.Daily))
		for i, r := range m.Daily {
			out[i] = DailyDistrictResponse{
				Date:         Date(r.Date),
				DistrictName: r.DistrictName,
				Quantity:     Decimal(r.Quantity),
			}
		}
		return out
	case filter.MovementOut:
		out := make([]FarmerMovementResponse, len(m.Farmers))
		for i, r := range m.Farmers {
			out[i] = FarmerMovementResponse{
				ID:              r.RowID,
				DocumentID:      r.DocumentID,
				Date:            Date(r.Date),
				Number:          r.Number,
				FarmerName:      r.FarmerName,
				ProductID:       r.ProductID,
				ProductName:     r.ProductName,
				Quantity:        Decimal(r.Quantity),
				Maydon:          Decimal(r.Area),
				QuantityPerArea: Decimal(r.QuantityPerArea),
			}
		}
		return out
	default:
		return []struct{}{}
	}
}
