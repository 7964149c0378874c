package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"agroledger/internal/domain/activity"
	"agroledger/internal/domain/ledger"
)

func ref(v int64) *int64 { return &v }

func str(v string) *string { return &v }

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func area(v string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(v)) }

func date(v string) time.Time {
	d, err := time.Parse(time.DateOnly, v)
	if err != nil {
		panic(err)
	}
	return d
}

// DemoSnapshot returns a small but complete ledger: two warehouses, a
// region→district→massive hierarchy, contracts, receipts and goods-given
// documents including the awkward cases (document without items, farmer
// without massive, zero area) plus a few bot users with activity.
func DemoSnapshot() Snapshot {
	receipt := func(id int64, day string, wh, product int64, invoice string, bags int, qty, price string) ledger.Receipt {
		return ledger.Receipt{
			ID:            id,
			Date:          date(day),
			WarehouseID:   ref(wh),
			ProductID:     ref(product),
			InvoiceNumber: invoice,
			BagCount:      bags,
			Quantity:      dec(qty),
			Amount:        dec(qty).Mul(dec(price)),
		}
	}
	contract := func(id, farmer int64, number, qty, price string) ledger.Contract {
		return ledger.Contract{
			ID:              id,
			FarmerID:        farmer,
			Number:          number,
			Date:            date("2025-01-15"),
			PlannedQuantity: dec(qty),
			Price:           dec(price),
			TotalAmount:     dec(qty).Mul(dec(price)),
		}
	}
	at := func(day, clock string) time.Time {
		t, err := time.Parse(time.DateTime, day+" "+clock)
		if err != nil {
			panic(err)
		}
		return t
	}

	return Snapshot{
		Regions: []ledger.Region{
			{ID: 1, Name: "Sirdaryo"},
			{ID: 2, Name: "Jizzax"},
		},
		Districts: []ledger.District{
			{ID: 1, Name: "Sardoba", RegionID: ref(1)},
			{ID: 2, Name: "Boyovut", RegionID: ref(1)},
			{ID: 3, Name: "Arnasoy", RegionID: ref(2)},
		},
		Massives: []ledger.Massive{
			{ID: 1, Name: "Paxtakor-1", DistrictID: ref(1)},
			{ID: 2, Name: "Guliston", DistrictID: ref(1)},
			{ID: 3, Name: "Navbahor", DistrictID: ref(2)},
			{ID: 4, Name: "Yangiobod", DistrictID: ref(3)},
		},
		Farmers: []ledger.Farmer{
			{ID: 1, Name: "Karimov Anvar", INN: str("301245678"), MassiveID: ref(1), Area: area("42.50"), IsActive: true},
			{ID: 2, Name: "Rashidova Dilnoza", INN: str("302998877"), MassiveID: ref(2), Area: area("18.00"), IsActive: true},
			{ID: 3, Name: "Tursunov Bekzod", INN: str("305551212"), MassiveID: ref(3), Area: area("0"), IsActive: true},
			{ID: 4, Name: "Yusupov Sardor", MassiveID: ref(4), Area: area("27.25"), IsActive: true},
			{ID: 5, Name: "Qodirov Jasur", Area: area("12.00"), IsActive: true},
			{ID: 6, Name: "Ergashev Otabek", MassiveID: ref(1), IsActive: false},
		},
		Contracts: []ledger.Contract{
			contract(1, 1, "K-2025/001", "4000", "4150.00"),
			contract(2, 1, "K-2025/002", "1500", "6200.00"),
			contract(3, 2, "K-2025/003", "2200", "4150.00"),
			contract(4, 4, "K-2025/004", "3100", "4150.00"),
		},
		Units: []ledger.Unit{
			{ID: 1, Name: "kg"},
		},
		Products: []ledger.Product{
			{ID: 1, Name: "Ammophos", UnitID: ref(1)},
			{ID: 2, Name: "Urea (carbamide)", UnitID: ref(1)},
			{ID: 3, Name: "Potassium chloride", UnitID: ref(1)},
			{ID: 4, Name: "Ammonium nitrate", UnitID: ref(1)},
		},
		Warehouses: []ledger.Warehouse{
			{ID: 1, Name: "Guliston central", Address: str("Guliston, Mustaqillik 12")},
			{ID: 2, Name: "Arnasoy depot"},
		},
		Receipts: []ledger.Receipt{
			receipt(1, "2025-03-01", 1, 1, "INV-1001", 200, "10000", "4100.00"),
			receipt(2, "2025-03-01", 1, 2, "INV-1002", 160, "8000", "3900.00"),
			receipt(3, "2025-03-05", 1, 4, "INV-1010", 100, "5000", "3500.00"),
			receipt(4, "2025-03-07", 2, 1, "INV-2001", 60, "3000", "4120.00"),
			receipt(5, "2025-03-09", 2, 3, "INV-2002", 40, "2000", "5200.00"),
		},
		Documents: []ledger.IssuanceDocument{
			{ID: 1, Date: date("2025-04-02"), Number: "GG-0001", WarehouseID: ref(1), FarmerID: ref(1)},
			{ID: 2, Date: date("2025-04-02"), Number: "GG-0002", WarehouseID: ref(1), FarmerID: ref(2)},
			{ID: 3, Date: date("2025-04-03"), Number: "GG-0003", WarehouseID: ref(1), FarmerID: ref(3)},
			{ID: 4, Date: date("2025-04-04"), Number: "GG-0004", WarehouseID: ref(2), FarmerID: ref(4)},
			{ID: 5, Date: date("2025-04-05"), Number: "GG-0005", WarehouseID: ref(1), FarmerID: ref(5)},
			{ID: 6, Date: date("2025-04-06"), Number: "GG-0006", WarehouseID: ref(1), FarmerID: ref(1)},
		},
		Items: []ledger.IssuanceItem{
			ledger.NewIssuanceItem(1, 1, ref(1), dec("850.00"), dec("4150.00")),
			ledger.NewIssuanceItem(2, 1, ref(2), dec("425.00"), dec("3950.00")),
			ledger.NewIssuanceItem(3, 2, ref(1), dec("360.00"), dec("4150.00")),
			ledger.NewIssuanceItem(4, 3, ref(4), dec("300.00"), dec("3600.00")),
			ledger.NewIssuanceItem(5, 4, ref(1), dec("545.00"), dec("4150.00")),
			ledger.NewIssuanceItem(6, 4, ref(3), dec("200.00"), dec("5300.00")),
			ledger.NewIssuanceItem(7, 5, ref(2), dec("150.00"), dec("3950.00")),
		},
		BotUsers: []activity.User{
			{ID: 1, TelegramID: 99887766, FullName: "Aliyev Jamshid", IsActive: true, CreatedAt: at("2025-04-01", "08:00:00")},
			{ID: 2, TelegramID: 55443322, FullName: "Nazarova Malika", IsActive: false, CreatedAt: at("2025-04-02", "10:30:00")},
		},
		Activities: []activity.Activity{
			{ID: 1, UserID: 1, ActionType: activity.ActionSystem, ActionName: activity.AccessCheckAction, ActionPayload: activity.AccessCheckPayload, IsAllowed: true, CreatedAt: at("2025-04-01", "08:00:00")},
			{ID: 2, UserID: 1, ActionType: activity.ActionMessage, ActionName: "farmers_menu", ActionPayload: "Farmers", IsAllowed: true, CreatedAt: at("2025-04-01", "08:01:15")},
			{ID: 3, UserID: 1, ActionType: activity.ActionCallback, ActionName: "contracts_menu", ActionPayload: "contracts", IsAllowed: true, CreatedAt: at("2025-04-01", "09:12:40")},
			{ID: 4, UserID: 2, ActionType: activity.ActionSystem, ActionName: activity.AccessCheckAction, ActionPayload: activity.AccessCheckPayload, IsAllowed: false, CreatedAt: at("2025-04-02", "10:30:00")},
		},
	}
}
