package reports

import (
	"context"

	"agroledger/internal/domain/filter"
)

// Repository defines report data access.
// Filters arrive as AND-combined items built by filter.Ledger.Items; an
// implementation rejects fields it does not know.
type Repository interface {
	// ReceiptTotals sums receipt quantity and amount.
	ReceiptTotals(ctx context.Context, items []filter.Item) (Sums, error)

	// IssuedTotals sums issuance item quantity and amount.
	IssuedTotals(ctx context.Context, items []filter.Item) (Sums, error)

	// ReceiptsByProduct sums receipt quantity per product.
	ReceiptsByProduct(ctx context.Context, items []filter.Item) ([]ProductSum, error)

	// IssuedByProduct sums issuance item quantity per product.
	IssuedByProduct(ctx context.Context, items []filter.Item) ([]ProductSum, error)

	// IssuanceDistricts resolves the district of every matching document.
	IssuanceDistricts(ctx context.Context, items []filter.Item) ([]DistrictRef, error)

	// ReceiptMovements lists matching receipts.
	ReceiptMovements(ctx context.Context, items []filter.Item) ([]ReceiptMovement, error)

	// DailyDistrictIssuance sums issued quantity per (date, district name).
	DailyDistrictIssuance(ctx context.Context, items []filter.Item) ([]DailyDistrictSum, error)

	// FarmerIssuance sums issued quantity per (document, product).
	FarmerIssuance(ctx context.Context, items []filter.Item) ([]FarmerIssuanceSum, error)
}
