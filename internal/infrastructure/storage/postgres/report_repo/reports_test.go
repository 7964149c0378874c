package report_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agroledger/internal/domain/filter"
)

const issuanceFrom = "FROM query_goodsgivendocument d" +
	" LEFT JOIN query_goodsgivenitem i ON i.document_id = d.id" +
	" LEFT JOIN query_farmer f ON f.id = d.farmer_id" +
	" LEFT JOIN query_massive m ON m.id = f.massive_id" +
	" LEFT JOIN query_district ds ON ds.id = m.district_id"

func TestReportQueries(t *testing.T) {
	repo := NewReportRepo(nil)
	all := filter.ParseLedger("1", "2", "3")

	tests := []struct {
		name     string
		build    func() (squirrel.SelectBuilder, error)
		wantSQL  string
		wantArgs []any
	}{
		{
			name: "receipt totals ignore district",
			build: func() (squirrel.SelectBuilder, error) {
				return repo.receiptTotalsQuery(all.Items(filter.Receipts))
			},
			wantSQL: "SELECT SUM(r.quantity) AS quantity, SUM(r.amount) AS amount" +
				" FROM query_mineralwarehousereceipt r WHERE r.warehouse_id = $1 AND r.product_id = $2",
			wantArgs: []any{int64(1), int64(2)},
		},
		{
			name: "issued totals filter items",
			build: func() (squirrel.SelectBuilder, error) {
				return repo.issuedTotalsQuery(all.Items(filter.Issuance))
			},
			wantSQL: "SELECT SUM(i.quantity) AS quantity, SUM(i.amount) AS amount " + issuanceFrom +
				" WHERE d.warehouse_id = $1 AND i.product_id = $2 AND m.district_id = $3",
			wantArgs: []any{int64(1), int64(2), int64(3)},
		},
		{
			name: "issued by product",
			build: func() (squirrel.SelectBuilder, error) {
				return repo.issuedByProductQuery(filter.ParseLedger("4", "", "").Items(filter.Issuance))
			},
			wantSQL: "SELECT i.product_id, p.name AS product_name, SUM(i.quantity) AS quantity " + issuanceFrom +
				" LEFT JOIN query_product p ON p.id = i.product_id WHERE d.warehouse_id = $1 GROUP BY i.product_id, p.name",
			wantArgs: []any{int64(4)},
		},
		{
			name: "districts match product on any item",
			build: func() (squirrel.SelectBuilder, error) {
				return repo.issuanceDistrictsQuery(filter.ParseLedger("1", "2", "").Items(filter.Issuance))
			},
			wantSQL: "SELECT DISTINCT ds.id AS district_id, ds.name AS district_name FROM query_goodsgivendocument d" +
				" LEFT JOIN query_farmer f ON f.id = d.farmer_id" +
				" LEFT JOIN query_massive m ON m.id = f.massive_id" +
				" LEFT JOIN query_district ds ON ds.id = m.district_id" +
				" WHERE d.warehouse_id = $1 AND EXISTS (SELECT 1 FROM query_goodsgivenitem gi WHERE gi.document_id = d.id AND gi.product_id = $2)",
			wantArgs: []any{int64(1), int64(2)},
		},
		{
			name: "receipt movements newest first",
			build: func() (squirrel.SelectBuilder, error) {
				return repo.receiptMovementsQuery(nil)
			},
			wantSQL: "SELECT r.id, r.date, w.name AS warehouse_name, r.product_id, p.name AS product_name," +
				" r.invoice_number, r.bag_count, r.quantity FROM query_mineralwarehousereceipt r" +
				" LEFT JOIN query_warehouse w ON w.id = r.warehouse_id" +
				" LEFT JOIN query_product p ON p.id = r.product_id ORDER BY r.date DESC, r.id DESC",
		},
		{
			name: "daily district report",
			build: func() (squirrel.SelectBuilder, error) {
				return repo.dailyDistrictQuery(nil)
			},
			wantSQL: "SELECT d.date, ds.name AS district_name, SUM(i.quantity) AS quantity " + issuanceFrom +
				" GROUP BY d.date, ds.name ORDER BY d.date DESC, ds.name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.build()
			require.NoError(t, err)

			sql, args, err := q.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, len(tt.wantArgs), len(args))
			for i := range tt.wantArgs {
				assert.Equal(t, tt.wantArgs[i], args[i])
			}
		})
	}
}

func TestReportQueries_RejectUnknownField(t *testing.T) {
	repo := NewReportRepo(nil)

	_, err := repo.receiptTotalsQuery([]filter.Item{{Field: filter.FieldDistrict, Operator: filter.Equal, Value: int64(1)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter column: district_id")

	_, err = repo.issuedTotalsQuery([]filter.Item{{Field: "farmer_id", Operator: filter.Equal, Value: int64(1)}})
	require.Error(t, err)
}

func TestFarmerIssuanceQuery_GroupsPerDocumentAndProduct(t *testing.T) {
	repo := NewReportRepo(nil)

	q, err := repo.farmerIssuanceQuery(filter.ParseLedger("", "", "7").Items(filter.Issuance))
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "f.maydon AS farmer_area")
	assert.Contains(t, sql, "WHERE m.district_id = $1")
	assert.Contains(t, sql, "GROUP BY d.id, d.date, d.number, f.name, f.maydon, i.product_id, p.name")
	assert.Contains(t, sql, "ORDER BY d.date DESC, d.id DESC, p.name")
	assert.Equal(t, []any{int64(7)}, args)
}
