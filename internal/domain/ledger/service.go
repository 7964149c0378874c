package ledger

import (
	"context"
	"fmt"

	"agroledger/internal/core/types"
)

// Service serves the ledger reference lists.
type Service struct {
	repo Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ActiveFarmers returns the active farmer list.
func (s *Service) ActiveFarmers(ctx context.Context) ([]FarmerRow, error) {
	rows, err := s.repo.ListActiveFarmers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active farmers: %w", err)
	}
	return rows, nil
}

// FarmerSummaries returns all farmers with their contract totals.
func (s *Service) FarmerSummaries(ctx context.Context) ([]FarmerSummary, error) {
	rows, err := s.repo.FarmerSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("farmer summaries: %w", err)
	}

	result := make([]FarmerSummary, 0, len(rows))
	for _, row := range rows {
		result = append(result, FarmerSummary{
			FarmerRow: row.FarmerRow,
			Quantity:  types.Coalesce(row.Quantity),
			Amount:    types.Coalesce(row.Amount),
		})
	}
	return result, nil
}

// Receipts returns the receipt list.
func (s *Service) Receipts(ctx context.Context) ([]ReceiptRow, error) {
	rows, err := s.repo.ListReceipts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return rows, nil
}

// IssuanceDocuments returns the goods-given document summaries.
func (s *Service) IssuanceDocuments(ctx context.Context) ([]IssuanceDocumentSummary, error) {
	rows, err := s.repo.ListIssuanceDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list issuance documents: %w", err)
	}

	result := make([]IssuanceDocumentSummary, 0, len(rows))
	for _, row := range rows {
		result = append(result, IssuanceDocumentSummary{
			IssuanceDocumentRow: row,
			TotalQuantity:       types.Coalesce(row.Quantity),
		})
	}
	return result, nil
}

// Warehouses returns the warehouse list.
func (s *Service) Warehouses(ctx context.Context) ([]Warehouse, error) {
	rows, err := s.repo.ListWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	return rows, nil
}
