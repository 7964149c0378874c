package reports

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"agroledger/internal/core/types"
)

// BuildTotals turns the two ledger sides into a balance.
// Missing sums count as zero, so the balance identities always hold.
func BuildTotals(in, out Sums) Totals {
	t := Totals{
		TotalIn:        types.Coalesce(in.Quantity),
		TotalOut:       types.Coalesce(out.Quantity),
		TotalInAmount:  types.Coalesce(in.Amount),
		TotalOutAmount: types.Coalesce(out.Amount),
	}
	t.Balance = t.TotalIn.Sub(t.TotalOut)
	t.BalanceAmount = t.TotalInAmount.Sub(t.TotalOutAmount)
	return t
}

// MergeProductBalances outer-merges receipt and issuance sums by product id.
// A product seen on one side only gets zero on the other. Rows without a
// product id are dropped. The result is ordered by name, then id.
func MergeProductBalances(in, out []ProductSum) []ProductBalance {
	byID := make(map[int64]*ProductBalance, len(in)+len(out))

	entry := func(row ProductSum) *ProductBalance {
		p, ok := byID[*row.ProductID]
		if !ok {
			p = &ProductBalance{
				ProductID:   *row.ProductID,
				ProductName: nameOr(row.ProductName),
				TotalIn:     decimal.Zero,
				TotalOut:    decimal.Zero,
			}
			byID[*row.ProductID] = p
		}
		return p
	}

	for _, row := range in {
		if row.ProductID == nil {
			continue
		}
		p := entry(row)
		p.TotalIn = p.TotalIn.Add(types.Coalesce(row.Quantity))
	}
	for _, row := range out {
		if row.ProductID == nil {
			continue
		}
		p := entry(row)
		p.TotalOut = p.TotalOut.Add(types.Coalesce(row.Quantity))
	}

	result := make([]ProductBalance, 0, len(byID))
	for _, p := range byID {
		p.Balance = p.TotalIn.Sub(p.TotalOut)
		result = append(result, *p)
	}

	slices.SortFunc(result, func(a, b ProductBalance) int {
		if c := cmp.Compare(a.ProductName, b.ProductName); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	return result
}

// CollectDistricts dedupes document districts, skipping incomplete chains,
// ordered by name, then id.
func CollectDistricts(refs []DistrictRef) []District {
	seen := make(map[int64]string, len(refs))
	for _, ref := range refs {
		if ref.DistrictID == nil {
			continue
		}
		seen[*ref.DistrictID] = nameOr(ref.DistrictName)
	}

	result := make([]District, 0, len(seen))
	for id, name := range seen {
		result = append(result, District{ID: id, Name: name})
	}

	slices.SortFunc(result, func(a, b District) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// SortReceiptMovements orders receipts newest first (date desc, id desc).
func SortReceiptMovements(rows []ReceiptMovement) []ReceiptMovement {
	if rows == nil {
		return []ReceiptMovement{}
	}
	slices.SortStableFunc(rows, func(a, b ReceiptMovement) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return rows
}

type dailyKey struct {
	day      string
	district string
}

// BuildDailyReport groups issued quantity by (date, district name).
// Different dates never merge. Ordered by date desc, then district name.
func BuildDailyReport(rows []DailyDistrictSum) []DailyDistrictRow {
	index := make(map[dailyKey]int, len(rows))
	result := make([]DailyDistrictRow, 0, len(rows))

	for _, row := range rows {
		name := nameOr(row.DistrictName)
		key := dailyKey{day: row.Date.Format(time.DateOnly), district: name}
		if i, ok := index[key]; ok {
			result[i].Quantity = result[i].Quantity.Add(types.Coalesce(row.Quantity))
			continue
		}
		index[key] = len(result)
		result = append(result, DailyDistrictRow{
			Date:         row.Date,
			DistrictName: name,
			Quantity:     types.Coalesce(row.Quantity),
		})
	}

	slices.SortFunc(result, func(a, b DailyDistrictRow) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.DistrictName, b.DistrictName)
	})
	return result
}

type farmerKey struct {
	document int64
	product  int64
	noItem   bool
}

// BuildFarmerMovements groups issued quantity per document and product,
// computes quantity per area and numbers rows 1..N. Ordered by date desc,
// document id desc, product name (rows without a product last).
func BuildFarmerMovements(rows []FarmerIssuanceSum) []FarmerMovementRow {
	index := make(map[farmerKey]int, len(rows))
	result := make([]FarmerMovementRow, 0, len(rows))

	for _, row := range rows {
		key := farmerKey{document: row.DocumentID, noItem: row.ProductID == nil}
		if row.ProductID != nil {
			key.product = *row.ProductID
		}
		if i, ok := index[key]; ok {
			result[i].Quantity = result[i].Quantity.Add(types.Coalesce(row.Quantity))
			continue
		}
		index[key] = len(result)
		result = append(result, FarmerMovementRow{
			DocumentID:  row.DocumentID,
			Date:        row.Date,
			Number:      nameOr(row.Number),
			FarmerName:  nameOr(row.FarmerName),
			ProductID:   row.ProductID,
			ProductName: nameOr(row.ProductName),
			Quantity:    types.Coalesce(row.Quantity),
			Area:        types.Coalesce(row.FarmerArea),
		})
	}

	for i := range result {
		result[i].QuantityPerArea = types.SafeDiv(result[i].Quantity, types.NullFrom(result[i].Area))
	}

	slices.SortFunc(result, func(a, b FarmerMovementRow) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		if c := cmp.Compare(b.DocumentID, a.DocumentID); c != 0 {
			return c
		}
		if (a.ProductID == nil) != (b.ProductID == nil) {
			if a.ProductID == nil {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.ProductName, b.ProductName)
	})

	for i := range result {
		result[i].RowID = i + 1
	}
	return result
}

func nameOr(name *string) string {
	if name == nil || *name == "" {
		return Placeholder
	}
	return *name
}
