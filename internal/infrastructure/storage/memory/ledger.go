package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"agroledger/internal/domain/ledger"
)

// compareNullable orders nil after every value, like ASC NULLS LAST.
func compareNullable(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*a, *b)
	}
}

func (idx index) farmerRow(f ledger.Farmer) ledger.FarmerRow {
	row := ledger.FarmerRow{
		ID:        f.ID,
		Name:      f.Name,
		INN:       f.INN,
		Phone:     f.Phone,
		Area:      f.Area,
		IsActive:  f.IsActive,
		MassiveID: f.MassiveID,
	}
	if f.MassiveID == nil {
		return row
	}
	m, ok := idx.massives[*f.MassiveID]
	if !ok {
		return row
	}
	row.MassiveName = &m.Name
	if m.DistrictID == nil {
		return row
	}
	d, ok := idx.districts[*m.DistrictID]
	if !ok {
		return row
	}
	row.DistrictID = &d.ID
	row.DistrictName = &d.Name
	if d.RegionID == nil {
		return row
	}
	if r, ok := idx.regions[*d.RegionID]; ok {
		row.RegionID = &r.ID
		row.RegionName = &r.Name
	}
	return row
}

func compareFarmerRows(a, b ledger.FarmerRow) int {
	if c := compareNullable(a.DistrictID, b.DistrictID); c != 0 {
		return c
	}
	return compareNullable(a.MassiveID, b.MassiveID)
}

// ListActiveFarmers implements ledger.Repository.
func (s *Store) ListActiveFarmers(context.Context) ([]ledger.FarmerRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.buildIndex()
	out := make([]ledger.FarmerRow, 0, len(s.state.Farmers))
	for _, f := range s.state.Farmers {
		if f.IsActive {
			out = append(out, idx.farmerRow(f))
		}
	}
	slices.SortFunc(out, func(a, b ledger.FarmerRow) int {
		if c := compareFarmerRows(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out, nil
}

// FarmerSummaries implements ledger.Repository.
func (s *Store) FarmerSummaries(context.Context) ([]ledger.FarmerSummaryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.buildIndex()
	byFarmer := make(map[int64][]ledger.Contract)
	for _, c := range s.state.Contracts {
		byFarmer[c.FarmerID] = append(byFarmer[c.FarmerID], c)
	}

	out := make([]ledger.FarmerSummaryRow, 0, len(s.state.Farmers))
	for _, f := range s.state.Farmers {
		row := ledger.FarmerSummaryRow{FarmerRow: idx.farmerRow(f)}
		var qty, amount []decimal.Decimal
		for _, c := range byFarmer[f.ID] {
			qty = append(qty, c.PlannedQuantity)
			amount = append(amount, c.TotalAmount)
		}
		row.Quantity = sumNull(qty)
		row.Amount = sumNull(amount)
		out = append(out, row)
	}
	slices.SortStableFunc(out, func(a, b ledger.FarmerSummaryRow) int {
		if c := compareFarmerRows(a.FarmerRow, b.FarmerRow); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// ListReceipts implements ledger.Repository.
func (s *Store) ListReceipts(context.Context) ([]ledger.ReceiptRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.buildIndex()
	out := make([]ledger.ReceiptRow, 0, len(s.state.Receipts))
	for _, r := range s.state.Receipts {
		out = append(out, ledger.ReceiptRow{
			Receipt:       r,
			WarehouseName: idx.warehouseName(r.WarehouseID),
			ProductName:   idx.productName(r.ProductID),
		})
	}
	slices.SortFunc(out, func(a, b ledger.ReceiptRow) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

// ListIssuanceDocuments implements ledger.Repository.
func (s *Store) ListIssuanceDocuments(context.Context) ([]ledger.IssuanceDocumentRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.buildIndex()
	out := make([]ledger.IssuanceDocumentRow, 0, len(s.state.Documents))
	for _, d := range s.state.Documents {
		row := ledger.IssuanceDocumentRow{
			ID:            d.ID,
			Date:          d.Date,
			Number:        d.Number,
			WarehouseID:   d.WarehouseID,
			WarehouseName: idx.warehouseName(d.WarehouseID),
			FarmerID:      d.FarmerID,
		}
		if d.FarmerID != nil {
			if f, ok := idx.farmers[*d.FarmerID]; ok {
				row.FarmerName = &f.Name
			}
		}
		var qty []decimal.Decimal
		for _, item := range idx.items[d.ID] {
			qty = append(qty, item.Quantity)
		}
		row.Quantity = sumNull(qty)
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b ledger.IssuanceDocumentRow) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

// ListWarehouses implements ledger.Repository.
func (s *Store) ListWarehouses(context.Context) ([]ledger.Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.state.Warehouses)
	if out == nil {
		out = []ledger.Warehouse{}
	}
	slices.SortFunc(out, func(a, b ledger.Warehouse) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}
