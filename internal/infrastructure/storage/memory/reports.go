package memory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"agroledger/internal/domain/filter"
	"agroledger/internal/domain/ledger"
	"agroledger/internal/domain/reports"
)

var (
	receiptFields  = []string{filter.FieldWarehouse, filter.FieldProduct}
	issuanceFields = []string{filter.FieldWarehouse, filter.FieldProduct, filter.FieldDistrict}
)

func checkFields(items []filter.Item, allowed []string) error {
	for _, item := range items {
		ok := false
		for _, f := range allowed {
			if item.Field == f {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("invalid filter column: %s", item.Field)
		}
	}
	return nil
}

func optional(v *int64) (int64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// matchingReceipts applies receipt predicates.
func (s *Store) matchingReceipts(items []filter.Item) ([]ledger.Receipt, error) {
	if err := checkFields(items, receiptFields); err != nil {
		return nil, err
	}
	var out []ledger.Receipt
	for _, r := range s.state.Receipts {
		ok, err := filter.Matches(items, func(field string) (int64, bool) {
			switch field {
			case filter.FieldWarehouse:
				return optional(r.WarehouseID)
			case filter.FieldProduct:
				return optional(r.ProductID)
			}
			return 0, false
		})
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// issuanceRow is a document joined to one of its items. item is nil for a
// document without items.
type issuanceRow struct {
	doc      ledger.IssuanceDocument
	item     *ledger.IssuanceItem
	district *ledger.District
}

// matchingIssuance expands documents into item rows and applies predicates.
// The product axis matches on the item, the district axis on the farmer chain.
func (s *Store) matchingIssuance(idx index, items []filter.Item) ([]issuanceRow, error) {
	if err := checkFields(items, issuanceFields); err != nil {
		return nil, err
	}

	var out []issuanceRow
	for _, doc := range s.state.Documents {
		district := idx.farmerDistrict(doc.FarmerID)

		lines := idx.items[doc.ID]
		candidates := make([]*ledger.IssuanceItem, 0, max(len(lines), 1))
		for i := range lines {
			candidates = append(candidates, &lines[i])
		}
		if len(candidates) == 0 {
			candidates = append(candidates, nil)
		}

		for _, item := range candidates {
			ok, err := filter.Matches(items, func(field string) (int64, bool) {
				switch field {
				case filter.FieldWarehouse:
					return optional(doc.WarehouseID)
				case filter.FieldProduct:
					if item == nil {
						return 0, false
					}
					return optional(item.ProductID)
				case filter.FieldDistrict:
					if district == nil {
						return 0, false
					}
					return district.ID, true
				}
				return 0, false
			})
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, issuanceRow{doc: doc, item: item, district: district})
			}
		}
	}
	return out, nil
}

func sumNull(values []decimal.Decimal) decimal.NullDecimal {
	if len(values) == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.Sum(values[0], values[1:]...))
}

// ReceiptTotals implements reports.Repository.
func (s *Store) ReceiptTotals(_ context.Context, items []filter.Item) (reports.Sums, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.matchingReceipts(items)
	if err != nil {
		return reports.Sums{}, err
	}
	var qty, amount []decimal.Decimal
	for _, r := range rows {
		qty = append(qty, r.Quantity)
		amount = append(amount, r.Amount)
	}
	return reports.Sums{Quantity: sumNull(qty), Amount: sumNull(amount)}, nil
}

// IssuedTotals implements reports.Repository.
func (s *Store) IssuedTotals(_ context.Context, items []filter.Item) (reports.Sums, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.matchingIssuance(s.buildIndex(), items)
	if err != nil {
		return reports.Sums{}, err
	}
	var qty, amount []decimal.Decimal
	for _, r := range rows {
		if r.item == nil {
			continue
		}
		qty = append(qty, r.item.Quantity)
		amount = append(amount, r.item.Amount)
	}
	return reports.Sums{Quantity: sumNull(qty), Amount: sumNull(amount)}, nil
}

// ReceiptsByProduct implements reports.Repository.
func (s *Store) ReceiptsByProduct(_ context.Context, items []filter.Item) ([]reports.ProductSum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.buildIndex()
	rows, err := s.matchingReceipts(items)
	if err != nil {
		return nil, err
	}
	out := make([]reports.ProductSum, 0, len(rows))
	for _, r := range rows {
		out = append(out, reports.ProductSum{
			ProductID:   r.ProductID,
			ProductName: idx.productName(r.ProductID),
			Quantity:    decimal.NewNullDecimal(r.Quantity),
		})
	}
	return out, nil
}

// IssuedByProduct implements reports.Repository.
func (s *Store) IssuedByProduct(_ context.Context, items []filter.Item) ([]reports.ProductSum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.buildIndex()
	rows, err := s.matchingIssuance(idx, items)
	if err != nil {
		return nil, err
	}
	out := make([]reports.ProductSum, 0, len(rows))
	for _, r := range rows {
		if r.item == nil {
			out = append(out, reports.ProductSum{})
			continue
		}
		out = append(out, reports.ProductSum{
			ProductID:   r.item.ProductID,
			ProductName: idx.productName(r.item.ProductID),
			Quantity:    decimal.NewNullDecimal(r.item.Quantity),
		})
	}
	return out, nil
}

// IssuanceDistricts implements reports.Repository. One ref per matching document.
func (s *Store) IssuanceDistricts(_ context.Context, items []filter.Item) ([]reports.DistrictRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.matchingIssuance(s.buildIndex(), items)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(rows))
	out := make([]reports.DistrictRef, 0, len(rows))
	for _, r := range rows {
		if _, dup := seen[r.doc.ID]; dup {
			continue
		}
		seen[r.doc.ID] = struct{}{}
		if r.district == nil {
			out = append(out, reports.DistrictRef{})
			continue
		}
		d := *r.district
		out = append(out, reports.DistrictRef{DistrictID: &d.ID, DistrictName: &d.Name})
	}
	return out, nil
}

// ReceiptMovements implements reports.Repository.
func (s *Store) ReceiptMovements(_ context.Context, items []filter.Item) ([]reports.ReceiptMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.buildIndex()
	rows, err := s.matchingReceipts(items)
	if err != nil {
		return nil, err
	}
	out := make([]reports.ReceiptMovement, 0, len(rows))
	for _, r := range rows {
		out = append(out, reports.ReceiptMovement{
			ID:            r.ID,
			Date:          r.Date,
			WarehouseName: idx.warehouseName(r.WarehouseID),
			ProductID:     r.ProductID,
			ProductName:   idx.productName(r.ProductID),
			InvoiceNumber: r.InvoiceNumber,
			BagCount:      r.BagCount,
			Quantity:      r.Quantity,
		})
	}
	return out, nil
}

// DailyDistrictIssuance implements reports.Repository. Rows are per item;
// the engine groups them.
func (s *Store) DailyDistrictIssuance(_ context.Context, items []filter.Item) ([]reports.DailyDistrictSum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.matchingIssuance(s.buildIndex(), items)
	if err != nil {
		return nil, err
	}
	out := make([]reports.DailyDistrictSum, 0, len(rows))
	for _, r := range rows {
		row := reports.DailyDistrictSum{Date: r.doc.Date}
		if r.district != nil {
			name := r.district.Name
			row.DistrictName = &name
		}
		if r.item != nil {
			row.Quantity = decimal.NewNullDecimal(r.item.Quantity)
		}
		out = append(out, row)
	}
	return out, nil
}

// FarmerIssuance implements reports.Repository. Rows are per item;
// the engine groups them.
func (s *Store) FarmerIssuance(_ context.Context, items []filter.Item) ([]reports.FarmerIssuanceSum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.buildIndex()
	rows, err := s.matchingIssuance(idx, items)
	if err != nil {
		return nil, err
	}
	out := make([]reports.FarmerIssuanceSum, 0, len(rows))
	for _, r := range rows {
		number := r.doc.Number
		row := reports.FarmerIssuanceSum{
			DocumentID: r.doc.ID,
			Date:       r.doc.Date,
			Number:     &number,
		}
		if r.doc.FarmerID != nil {
			if f, ok := idx.farmers[*r.doc.FarmerID]; ok {
				name := f.Name
				row.FarmerName = &name
				row.FarmerArea = f.Area
			}
		}
		if r.item != nil {
			row.ProductID = r.item.ProductID
			row.ProductName = idx.productName(r.item.ProductID)
			row.Quantity = decimal.NewNullDecimal(r.item.Quantity)
		}
		out = append(out, row)
	}
	return out, nil
}
