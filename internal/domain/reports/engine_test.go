package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agroledger/internal/core/types"
)

func ptr[T any](v T) *T { return &v }

func qty(s string) decimal.NullDecimal { return types.NullFrom(types.MustDecimal(s)) }

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuildTotals(t *testing.T) {
	tests := []struct {
		name          string
		in, out       Sums
		balance       string
		balanceAmount string
	}{
		{name: "empty ledger", balance: "0.00", balanceAmount: "0.00"},
		{
			name:          "only receipts",
			in:            Sums{Quantity: qty("1000.50"), Amount: qty("25000")},
			balance:       "1000.50",
			balanceAmount: "25000.00",
		},
		{
			name:          "both sides",
			in:            Sums{Quantity: qty("1000"), Amount: qty("5000")},
			out:           Sums{Quantity: qty("600.25"), Amount: qty("3001.25")},
			balance:       "399.75",
			balanceAmount: "1998.75",
		},
		{
			name:          "overdrawn",
			out:           Sums{Quantity: qty("10"), Amount: qty("1")},
			balance:       "-10.00",
			balanceAmount: "-1.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTotals(tt.in, tt.out)
			assert.Equal(t, tt.balance, types.Format(got.Balance))
			assert.Equal(t, tt.balanceAmount, types.Format(got.BalanceAmount))
			assert.True(t, got.Balance.Equal(got.TotalIn.Sub(got.TotalOut)))
			assert.True(t, got.BalanceAmount.Equal(got.TotalInAmount.Sub(got.TotalOutAmount)))
		})
	}
}

func TestMergeProductBalances_OuterMerge(t *testing.T) {
	in := []ProductSum{
		{ProductID: ptr(int64(1)), ProductName: ptr("Urea"), Quantity: qty("500")},
		{ProductID: ptr(int64(2)), ProductName: ptr("Ammophos"), Quantity: qty("300")},
		{ProductID: nil, ProductName: ptr("orphan"), Quantity: qty("999")},
	}
	out := []ProductSum{
		{ProductID: ptr(int64(2)), ProductName: ptr("Ammophos"), Quantity: qty("120")},
		{ProductID: ptr(int64(3)), ProductName: ptr("Saltpeter"), Quantity: qty("40")},
		{ProductID: nil, Quantity: qty("1")},
	}

	got := MergeProductBalances(in, out)
	require.Len(t, got, 3)

	assert.Equal(t, "Ammophos", got[0].ProductName)
	assert.Equal(t, "300.00", types.Format(got[0].TotalIn))
	assert.Equal(t, "120.00", types.Format(got[0].TotalOut))
	assert.Equal(t, "180.00", types.Format(got[0].Balance))

	assert.Equal(t, "Saltpeter", got[1].ProductName)
	assert.Equal(t, "0.00", types.Format(got[1].TotalIn))
	assert.Equal(t, "-40.00", types.Format(got[1].Balance))

	assert.Equal(t, "Urea", got[2].ProductName)
	assert.Equal(t, "0.00", types.Format(got[2].TotalOut))
	assert.Equal(t, "500.00", types.Format(got[2].Balance))
}

func TestMergeProductBalances_AccumulatesAndDefaultsName(t *testing.T) {
	in := []ProductSum{
		{ProductID: ptr(int64(7)), Quantity: qty("1")},
		{ProductID: ptr(int64(7)), ProductName: ptr("later"), Quantity: qty("2")},
		{ProductID: ptr(int64(8)), ProductName: ptr("Borax"), Quantity: decimal.NullDecimal{}},
	}

	got := MergeProductBalances(in, nil)
	require.Len(t, got, 2)
	assert.Equal(t, Placeholder, got[0].ProductName)
	assert.Equal(t, "3.00", types.Format(got[0].TotalIn))
	assert.Equal(t, "Borax", got[1].ProductName)
	assert.Equal(t, "0.00", types.Format(got[1].TotalIn))
}

func TestMergeProductBalances_Empty(t *testing.T) {
	got := MergeProductBalances(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollectDistricts(t *testing.T) {
	refs := []DistrictRef{
		{DistrictID: ptr(int64(2)), DistrictName: ptr("Yangiyer")},
		{},
		{DistrictID: ptr(int64(1)), DistrictName: ptr("Boyovut")},
		{DistrictID: ptr(int64(2)), DistrictName: ptr("Yangiyer")},
	}

	got := CollectDistricts(refs)
	assert.Equal(t, []District{{ID: 1, Name: "Boyovut"}, {ID: 2, Name: "Yangiyer"}}, got)
	assert.Empty(t, CollectDistricts(nil))
}

func TestSortReceiptMovements(t *testing.T) {
	rows := []ReceiptMovement{
		{ID: 1, Date: day("2025-03-01")},
		{ID: 3, Date: day("2025-03-02")},
		{ID: 2, Date: day("2025-03-02")},
	}

	got := SortReceiptMovements(rows)
	assert.Equal(t, []int64{3, 2, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})
	assert.NotNil(t, SortReceiptMovements(nil))
}

func TestBuildDailyReport_NoCrossDateSummation(t *testing.T) {
	rows := []DailyDistrictSum{
		{Date: day("2025-04-10"), DistrictName: ptr("Sardoba"), Quantity: qty("200.00")},
		{Date: day("2025-04-11"), DistrictName: ptr("Sardoba"), Quantity: qty("400.00")},
	}

	got := BuildDailyReport(rows)
	require.Len(t, got, 2)
	assert.Equal(t, day("2025-04-11"), got[0].Date)
	assert.Equal(t, "400.00", types.Format(got[0].Quantity))
	assert.Equal(t, day("2025-04-10"), got[1].Date)
	assert.Equal(t, "200.00", types.Format(got[1].Quantity))
}

func TestBuildDailyReport_GroupsAndOrders(t *testing.T) {
	rows := []DailyDistrictSum{
		{Date: day("2025-04-10"), DistrictName: ptr("Sardoba"), Quantity: qty("1")},
		{Date: day("2025-04-10"), DistrictName: ptr("Oqoltin"), Quantity: qty("2")},
		{Date: day("2025-04-10"), DistrictName: ptr("Sardoba"), Quantity: qty("3")},
		{Date: day("2025-04-10"), Quantity: decimal.NullDecimal{}},
	}

	got := BuildDailyReport(rows)
	require.Len(t, got, 3)
	assert.Equal(t, Placeholder, got[0].DistrictName)
	assert.Equal(t, "0.00", types.Format(got[0].Quantity))
	assert.Equal(t, "Oqoltin", got[1].DistrictName)
	assert.Equal(t, "Sardoba", got[2].DistrictName)
	assert.Equal(t, "4.00", types.Format(got[2].Quantity))
}

func TestBuildFarmerMovements(t *testing.T) {
	rows := []FarmerIssuanceSum{
		{
			DocumentID: 10, Date: day("2025-05-01"), Number: ptr("GG-10"), FarmerName: ptr("Aliyev"),
			FarmerArea: qty("10.00"), ProductID: ptr(int64(2)), ProductName: ptr("Urea"), Quantity: qty("150"),
		},
		{
			DocumentID: 10, Date: day("2025-05-01"), Number: ptr("GG-10"), FarmerName: ptr("Aliyev"),
			FarmerArea: qty("10.00"), ProductID: ptr(int64(2)), ProductName: ptr("Urea"), Quantity: qty("50"),
		},
		{
			DocumentID: 10, Date: day("2025-05-01"), Number: ptr("GG-10"), FarmerName: ptr("Aliyev"),
			FarmerArea: qty("10.00"), ProductID: ptr(int64(1)), ProductName: ptr("Ammophos"), Quantity: qty("30"),
		},
		{
			DocumentID: 11, Date: day("2025-05-01"), FarmerArea: qty("0"),
			ProductID: ptr(int64(2)), ProductName: ptr("Urea"), Quantity: qty("70"),
		},
		{DocumentID: 9, Date: day("2025-06-01"), Number: ptr("GG-9")},
	}

	got := BuildFarmerMovements(rows)
	require.Len(t, got, 4)

	assert.Equal(t, 1, got[0].RowID)
	assert.Equal(t, int64(9), got[0].DocumentID)
	assert.Nil(t, got[0].ProductID)
	assert.Equal(t, Placeholder, got[0].ProductName)
	assert.Equal(t, Placeholder, got[0].FarmerName)
	assert.Equal(t, "0.00", types.Format(got[0].QuantityPerArea))

	assert.Equal(t, int64(11), got[1].DocumentID)
	assert.Equal(t, Placeholder, got[1].Number)
	assert.Equal(t, "0.00", types.Format(got[1].QuantityPerArea))

	assert.Equal(t, "Ammophos", got[2].ProductName)
	assert.Equal(t, "3.00", types.Format(got[2].QuantityPerArea))

	assert.Equal(t, 4, got[3].RowID)
	assert.Equal(t, "Urea", got[3].ProductName)
	assert.Equal(t, "200.00", types.Format(got[3].Quantity))
	assert.Equal(t, "10.00", types.Format(got[3].Area))
	assert.Equal(t, "20.00", types.Format(got[3].QuantityPerArea))
}

func TestBuildFarmerMovements_MissingAreaIsZero(t *testing.T) {
	rows := []FarmerIssuanceSum{
		{DocumentID: 1, Date: day("2025-01-01"), ProductID: ptr(int64(1)), Quantity: qty("999.99")},
		{DocumentID: 2, Date: day("2025-01-01"), ProductID: ptr(int64(1)), FarmerArea: qty("-5"), Quantity: qty("1")},
	}

	for _, row := range BuildFarmerMovements(rows) {
		assert.Equal(t, "0.00", types.Format(row.QuantityPerArea))
	}
}
