// Package ledger holds the supply-chain ledger records (reference hierarchy,
// contracts, warehouse receipts, goods-given documents) and the plain list
// queries over them.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Region is the top of the region→district→massive hierarchy.
type Region struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// District belongs to a region.
type District struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	RegionID *int64 `db:"region_id"`
}

// Massive is a land tract inside a district.
type Massive struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	DistrictID *int64 `db:"district_id"`
}

// Farmer is a counterparty receiving inputs under contracts.
// Area is the registered land size used as the yield-ratio denominator.
type Farmer struct {
	ID        int64               `db:"id"`
	Name      string              `db:"name"`
	INN       *string             `db:"inn"`
	Phone     *string             `db:"phone"`
	MassiveID *int64              `db:"massive_id"`
	Area      decimal.NullDecimal `db:"maydon"`
	IsActive  bool                `db:"is_active"`
}

// Contract fixes the planned supply for a farmer.
type Contract struct {
	ID              int64           `db:"id"`
	FarmerID        int64           `db:"farmer_id"`
	Number          string          `db:"number"`
	Date            time.Time       `db:"date"`
	PlannedQuantity decimal.Decimal `db:"planned_quantity"`
	Price           decimal.Decimal `db:"price"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
}

// Unit of measure.
type Unit struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Product is a mineral input tracked by the ledger.
type Product struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	UnitID *int64 `db:"unit_id"`
}

// Warehouse stores products between receipt and issuance.
type Warehouse struct {
	ID      int64   `db:"id"`
	Name    string  `db:"name"`
	Address *string `db:"address"`
}

// Receipt is a warehouse intake record ("in" movement).
type Receipt struct {
	ID            int64           `db:"id"`
	Date          time.Time       `db:"date"`
	WarehouseID   *int64          `db:"warehouse_id"`
	ProductID     *int64          `db:"product_id"`
	InvoiceNumber string          `db:"invoice_number"`
	BagCount      int             `db:"bag_count"`
	Quantity      decimal.Decimal `db:"quantity"`
	Amount        decimal.Decimal `db:"amount"`
}

// IssuanceDocument is a goods-given record ("out" movement) addressed to a farmer.
type IssuanceDocument struct {
	ID          int64     `db:"id"`
	Date        time.Time `db:"date"`
	Number      string    `db:"number"`
	WarehouseID *int64    `db:"warehouse_id"`
	FarmerID    *int64    `db:"farmer_id"`
}

// IssuanceItem is one product line of an issuance document.
type IssuanceItem struct {
	ID         int64           `db:"id"`
	DocumentID int64           `db:"document_id"`
	ProductID  *int64          `db:"product_id"`
	Quantity   decimal.Decimal `db:"quantity"`
	Price      decimal.Decimal `db:"price"`
	Amount     decimal.Decimal `db:"amount"`
}

// NewIssuanceItem computes the line amount from quantity and price.
func NewIssuanceItem(id, documentID int64, productID *int64, quantity, price decimal.Decimal) IssuanceItem {
	return IssuanceItem{
		ID:         id,
		DocumentID: documentID,
		ProductID:  productID,
		Quantity:   quantity,
		Price:      price,
		Amount:     quantity.Mul(price),
	}
}

// --- Read models ---

// FarmerRow is a farmer with its hierarchy names resolved.
type FarmerRow struct {
	ID           int64               `db:"id"`
	Name         string              `db:"name"`
	INN          *string             `db:"inn"`
	Phone        *string             `db:"phone"`
	Area         decimal.NullDecimal `db:"maydon"`
	IsActive     bool                `db:"is_active"`
	MassiveID    *int64              `db:"massive_id"`
	MassiveName  *string             `db:"massive_name"`
	DistrictID   *int64              `db:"district_id"`
	DistrictName *string             `db:"district_name"`
	RegionID     *int64              `db:"region_id"`
	RegionName   *string             `db:"region_name"`
}

// FarmerSummaryRow is a farmer with contract sums as read from the store.
type FarmerSummaryRow struct {
	FarmerRow
	Quantity decimal.NullDecimal `db:"quantity"`
	Amount   decimal.NullDecimal `db:"amount"`
}

// FarmerSummary is a farmer with zero-defaulted contract sums.
type FarmerSummary struct {
	FarmerRow
	Quantity decimal.Decimal
	Amount   decimal.Decimal
}

// ReceiptRow is a receipt with warehouse and product names resolved.
type ReceiptRow struct {
	Receipt
	WarehouseName *string `db:"warehouse_name"`
	ProductName   *string `db:"product_name"`
}

// IssuanceDocumentRow is a document summary as read from the store.
type IssuanceDocumentRow struct {
	ID            int64               `db:"id"`
	Date          time.Time           `db:"date"`
	Number        string              `db:"number"`
	WarehouseID   *int64              `db:"warehouse_id"`
	WarehouseName *string             `db:"warehouse_name"`
	FarmerID      *int64              `db:"farmer_id"`
	FarmerName    *string             `db:"farmer_name"`
	Quantity      decimal.NullDecimal `db:"quantity"`
}

// IssuanceDocumentSummary is a document with its zero-defaulted item quantity.
type IssuanceDocumentSummary struct {
	IssuanceDocumentRow
	TotalQuantity decimal.Decimal
}
