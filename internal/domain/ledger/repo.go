package ledger

import "context"

// Repository defines read access to the ledger lists.
// Sums may come back NULL; the service applies the zero default.
type Repository interface {
	// ListActiveFarmers returns active farmers ordered by district id, massive id, name.
	ListActiveFarmers(ctx context.Context) ([]FarmerRow, error)

	// FarmerSummaries returns every farmer with Σ contract planned quantity and
	// total amount, ordered by district id, massive id.
	FarmerSummaries(ctx context.Context) ([]FarmerSummaryRow, error)

	// ListReceipts returns receipts newest first (date desc, id desc).
	ListReceipts(ctx context.Context) ([]ReceiptRow, error)

	// ListIssuanceDocuments returns documents with Σ item quantity, newest first.
	ListIssuanceDocuments(ctx context.Context) ([]IssuanceDocumentRow, error)

	// ListWarehouses returns warehouses ordered by name.
	ListWarehouses(ctx context.Context) ([]Warehouse, error)
}
