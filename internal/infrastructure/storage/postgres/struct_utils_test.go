package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agroledger/internal/core/types"
	"agroledger/internal/domain/ledger"
)

type taggedRow struct {
	ledger.Warehouse
	Note    string `db:"note"`
	Skipped string `db:"-"`
	Plain   string
}

func TestExtractDBColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"id", "date", "warehouse_id", "product_id", "invoice_number", "bag_count", "quantity", "amount"},
		ExtractDBColumns[ledger.Receipt](),
	)
	assert.Equal(t, []string{"id", "name", "address", "note"}, ExtractDBColumns[taggedRow]())
	assert.Nil(t, ExtractDBColumns[int]())
}

func TestStructToMap(t *testing.T) {
	addr := "Guliston"
	row := taggedRow{
		Warehouse: ledger.Warehouse{ID: 3, Name: "Central", Address: &addr},
		Note:      "n",
		Skipped:   "s",
		Plain:     "p",
	}

	m := StructToMap(&row)

	assert.Len(t, m, 4)
	assert.Equal(t, int64(3), m["id"])
	assert.Equal(t, "Central", m["name"])
	assert.Equal(t, &addr, m["address"])
	assert.Equal(t, "n", m["note"])
	assert.NotContains(t, m, "Skipped")
	assert.Nil(t, StructToMap(42))
}

func TestStructValues_FollowsColumnOrder(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	receipt := ledger.Receipt{
		ID:            7,
		Date:          date,
		InvoiceNumber: "INV-7",
		BagCount:      12,
		Quantity:      types.MustDecimal("600"),
		Amount:        types.MustDecimal("1200.50"),
	}

	values := StructValues(receipt, []string{"invoice_number", "id", "missing"})

	assert.Equal(t, []any{"INV-7", int64(7), nil}, values)
}
