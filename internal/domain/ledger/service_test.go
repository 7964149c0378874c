package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	summaries []FarmerSummaryRow
	documents []IssuanceDocumentRow
	err       error
}

func (s *stubRepo) ListActiveFarmers(context.Context) ([]FarmerRow, error) { return nil, s.err }
func (s *stubRepo) FarmerSummaries(context.Context) ([]FarmerSummaryRow, error) {
	return s.summaries, s.err
}
func (s *stubRepo) ListReceipts(context.Context) ([]ReceiptRow, error) { return nil, s.err }
func (s *stubRepo) ListIssuanceDocuments(context.Context) ([]IssuanceDocumentRow, error) {
	return s.documents, s.err
}
func (s *stubRepo) ListWarehouses(context.Context) ([]Warehouse, error) { return nil, s.err }

func TestFarmerSummaries_ZeroDefault(t *testing.T) {
	repo := &stubRepo{summaries: []FarmerSummaryRow{
		{FarmerRow: FarmerRow{ID: 1, Name: "Karimov"}},
		{
			FarmerRow: FarmerRow{ID: 2, Name: "Rashidov"},
			Quantity:  decimal.NewNullDecimal(decimal.RequireFromString("12.5")),
			Amount:    decimal.NewNullDecimal(decimal.RequireFromString("1000")),
		},
	}}

	got, err := NewService(repo).FarmerSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.True(t, got[0].Quantity.IsZero())
	assert.True(t, got[0].Amount.IsZero())
	assert.Equal(t, "12.5", got[1].Quantity.String())
	assert.Equal(t, "1000", got[1].Amount.String())
}

func TestIssuanceDocuments_ZeroDefault(t *testing.T) {
	repo := &stubRepo{documents: []IssuanceDocumentRow{{ID: 9, Number: "GG-9"}}}

	got, err := NewService(repo).IssuanceDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].TotalQuantity.IsZero())
	assert.Equal(t, "GG-9", got[0].Number)
}

func TestService_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(&stubRepo{err: boom})

	_, err := svc.Warehouses(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = svc.ActiveFarmers(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = svc.Receipts(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestNewIssuanceItem_Amount(t *testing.T) {
	pid := int64(4)
	item := NewIssuanceItem(1, 2, &pid, decimal.RequireFromString("200.00"), decimal.RequireFromString("3.50"))
	assert.True(t, item.Amount.Equal(decimal.RequireFromString("700")))
}
