// Package reports is the aggregation engine behind the warehouse endpoints:
// balances, per-product and per-district breakdowns, movement listings.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"agroledger/internal/domain/filter"
)

// Placeholder is shown wherever a display name is missing.
const Placeholder = "-"

// --- Store rows (sums may be NULL) ---

// Sums is a quantity/amount aggregate pair.
type Sums struct {
	Quantity decimal.NullDecimal `db:"quantity"`
	Amount   decimal.NullDecimal `db:"amount"`
}

// ProductSum is the quantity of one product on one side of the ledger.
// Rows for the same product are accumulated by the engine.
type ProductSum struct {
	ProductID   *int64              `db:"product_id"`
	ProductName *string             `db:"product_name"`
	Quantity    decimal.NullDecimal `db:"quantity"`
}

// DistrictRef is the district an issuance document reaches through its
// farmer and massive. Both fields are nil when the chain is incomplete.
type DistrictRef struct {
	DistrictID   *int64  `db:"district_id"`
	DistrictName *string `db:"district_name"`
}

// ReceiptMovement is one receipt in the "in" listing.
type ReceiptMovement struct {
	ID            int64           `db:"id"`
	Date          time.Time       `db:"date"`
	WarehouseName *string         `db:"warehouse_name"`
	ProductID     *int64          `db:"product_id"`
	ProductName   *string         `db:"product_name"`
	InvoiceNumber string          `db:"invoice_number"`
	BagCount      int             `db:"bag_count"`
	Quantity      decimal.Decimal `db:"quantity"`
}

// DailyDistrictSum is issued quantity for one day and district.
type DailyDistrictSum struct {
	Date         time.Time           `db:"date"`
	DistrictName *string             `db:"district_name"`
	Quantity     decimal.NullDecimal `db:"quantity"`
}

// FarmerIssuanceSum is issued quantity for one document and product.
type FarmerIssuanceSum struct {
	DocumentID  int64               `db:"document_id"`
	Date        time.Time           `db:"date"`
	Number      *string             `db:"number"`
	FarmerName  *string             `db:"farmer_name"`
	FarmerArea  decimal.NullDecimal `db:"farmer_area"`
	ProductID   *int64              `db:"product_id"`
	ProductName *string             `db:"product_name"`
	Quantity    decimal.NullDecimal `db:"quantity"`
}

// --- Report results ---

// Totals is the warehouse balance under a filter set.
type Totals struct {
	TotalIn        decimal.Decimal
	TotalOut       decimal.Decimal
	Balance        decimal.Decimal
	TotalInAmount  decimal.Decimal
	TotalOutAmount decimal.Decimal
	BalanceAmount  decimal.Decimal
}

// ProductBalance is one row of the per-product breakdown.
type ProductBalance struct {
	ProductID   int64
	ProductName string
	TotalIn     decimal.Decimal
	TotalOut    decimal.Decimal
	Balance     decimal.Decimal
}

// District is one entry of the expense district list.
type District struct {
	ID   int64
	Name string
}

// DailyDistrictRow is one row of the "report" movement listing.
type DailyDistrictRow struct {
	Date         time.Time
	DistrictName string
	Quantity     decimal.Decimal
}

// FarmerMovementRow is one row of the farmer-level movement listing.
// RowID is a display number, 1..N in result order.
type FarmerMovementRow struct {
	RowID           int
	DocumentID      int64
	Date            time.Time
	Number          string
	FarmerName      string
	ProductID       *int64
	ProductName     string
	Quantity        decimal.Decimal
	Area            decimal.Decimal
	QuantityPerArea decimal.Decimal
}

// Movements is the movement listing. Exactly one of the row sets is used,
// chosen by Mode; Mode is empty when the selector was not recognized.
type Movements struct {
	Mode     filter.Movement
	Receipts []ReceiptMovement
	Daily    []DailyDistrictRow
	Farmers  []FarmerMovementRow
}

// Len returns the number of rows in the selected listing.
func (m *Movements) Len() int {
	switch m.Mode {
	case filter.MovementIn:
		return len(m.Receipts)
	case filter.MovementReport:
		return len(m.Daily)
	case filter.MovementOut:
		return len(m.Farmers)
	default:
		return 0
	}
}
