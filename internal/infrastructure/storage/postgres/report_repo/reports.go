// Package report_repo provides the PostgreSQL implementation of reports.Repository.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"agroledger/internal/core/apperror"
	"agroledger/internal/domain/filter"
	"agroledger/internal/domain/reports"
	"agroledger/internal/infrastructure/storage/postgres"
)

const (
	tableReceipts  = "query_mineralwarehousereceipt r"
	tableDocuments = "query_goodsgivendocument d"

	joinItems     = "query_goodsgivenitem i ON i.document_id = d.id"
	joinFarmer    = "query_farmer f ON f.id = d.farmer_id"
	joinMassive   = "query_massive m ON m.id = f.massive_id"
	joinDistrict  = "query_district ds ON ds.id = m.district_id"
	joinWarehouse = "query_warehouse w ON w.id = r.warehouse_id"
)

// receiptColumns are the filters a receipt understands; district is not one.
var receiptColumns = postgres.Columns{
	filter.FieldWarehouse: postgres.EqColumn("r.warehouse_id"),
	filter.FieldProduct:   postgres.EqColumn("r.product_id"),
}

// itemColumns filter issuance at line-item level.
var itemColumns = postgres.Columns{
	filter.FieldWarehouse: postgres.EqColumn("d.warehouse_id"),
	filter.FieldProduct:   postgres.EqColumn("i.product_id"),
	filter.FieldDistrict:  postgres.EqColumn("m.district_id"),
}

// documentColumns filter issuance at document level: a product matches when
// any item of the document carries it.
var documentColumns = postgres.Columns{
	filter.FieldWarehouse: postgres.EqColumn("d.warehouse_id"),
	filter.FieldProduct: func(value any) squirrel.Sqlizer {
		return squirrel.Expr("EXISTS (SELECT 1 FROM query_goodsgivenitem gi WHERE gi.document_id = d.id AND gi.product_id = ?)", value)
	},
	filter.FieldDistrict: postgres.EqColumn("m.district_id"),
}

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

var _ reports.Repository = (*ReportRepo)(nil)

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: postgres.Builder(),
	}
}

// issuance selects from documents joined down to their items and up to the district.
func (r *ReportRepo) issuance(columns ...string) squirrel.SelectBuilder {
	return r.builder.Select(columns...).
		From(tableDocuments).
		LeftJoin(joinItems).
		LeftJoin(joinFarmer).
		LeftJoin(joinMassive).
		LeftJoin(joinDistrict)
}

func (r *ReportRepo) receiptTotalsQuery(items []filter.Item) (squirrel.SelectBuilder, error) {
	q := r.builder.Select("SUM(r.quantity) AS quantity", "SUM(r.amount) AS amount").
		From(tableReceipts)
	return postgres.ApplyFilters(q, items, receiptColumns)
}

func (r *ReportRepo) issuedTotalsQuery(items []filter.Item) (squirrel.SelectBuilder, error) {
	q := r.issuance("SUM(i.quantity) AS quantity", "SUM(i.amount) AS amount")
	return postgres.ApplyFilters(q, items, itemColumns)
}

func (r *ReportRepo) receiptsByProductQuery(items []filter.Item) (squirrel.SelectBuilder, error) {
	q := r.builder.Select("r.product_id", "p.name AS product_name", "SUM(r.quantity) AS quantity").
		From(tableReceipts).
		LeftJoin("query_product p ON p.id = r.product_id")
	q, err := postgres.ApplyFilters(q, items, receiptColumns)
	return q.GroupBy("r.product_id", "p.name"), err
}

func (r *ReportRepo) issuedByProductQuery(items []filter.Item) (squirrel.SelectBuilder, error) {
	q := r.issuance("i.product_id", "p.name AS product_name", "SUM(i.quantity) AS quantity").
		LeftJoin("query_product p ON p.id = i.product_id")
	q, err := postgres.ApplyFilters(q, items, itemColumns)
	return q.GroupBy("i.product_id", "p.name"), err
}

func (r *ReportRepo) issuanceDistrictsQuery(items []filter.Item) (squirrel.SelectBuilder, error) {
	q := r.builder.Select("ds.id AS district_id", "ds.name AS district_name").
		Distinct().
		From(tableDocuments).
		LeftJoin(joinFarmer).
		LeftJoin(joinMassive).
		LeftJoin(joinDistrict)
	return postgres.ApplyFilters(q, items, documentColumns)
}

func (r *ReportRepo) receiptMovementsQuery(items []filter.Item) (squirrel.SelectBuilder, error) {
	q := r.builder.Select(
		"r.id", "r.date", "w.name AS warehouse_name", "r.product_id", "p.name AS product_name",
		"r.invoice_number", "r.bag_count", "r.quantity",
	).
		From(tableReceipts).
		LeftJoin(joinWarehouse).
		LeftJoin("query_product p ON p.id = r.product_id")
	q, err := postgres.ApplyFilters(q, items, receiptColumns)
	return q.OrderBy("r.date DESC", "r.id DESC"), err
}

func (r *ReportRepo) dailyDistrictQuery(items []filter.Item) (squirrel.SelectBuilder, error) {
	q := r.issuance("d.date", "ds.name AS district_name", "SUM(i.quantity) AS quantity")
	q, err := postgres.ApplyFilters(q, items, itemColumns)
	return q.GroupBy("d.date", "ds.name").OrderBy("d.date DESC", "ds.name"), err
}

func (r *ReportRepo) farmerIssuanceQuery(items []filter.Item) (squirrel.SelectBuilder, error) {
	q := r.issuance(
		"d.id AS document_id", "d.date", "d.number", "f.name AS farmer_name", "f.maydon AS farmer_area",
		"i.product_id", "p.name AS product_name", "SUM(i.quantity) AS quantity",
	).
		LeftJoin("query_product p ON p.id = i.product_id")
	q, err := postgres.ApplyFilters(q, items, itemColumns)
	return q.
		GroupBy("d.id", "d.date", "d.number", "f.name", "f.maydon", "i.product_id", "p.name").
		OrderBy("d.date DESC", "d.id DESC", "p.name"), err
}

// get runs a single-row aggregate.
func get[T any](ctx context.Context, r *ReportRepo, op string, q squirrel.SelectBuilder, buildErr error) (T, error) {
	var dest T
	if buildErr != nil {
		return dest, buildErr
	}
	query, args, err := q.ToSql()
	if err != nil {
		return dest, fmt.Errorf("build %s query: %w", op, err)
	}
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &dest, query, args...); err != nil {
		return dest, apperror.NewDatabase(op, err)
	}
	return dest, nil
}

// list runs a multi-row query.
func list[T any](ctx context.Context, r *ReportRepo, op string, q squirrel.SelectBuilder, buildErr error) ([]T, error) {
	if buildErr != nil {
		return nil, buildErr
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}
	var dest []T
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &dest, query, args...); err != nil {
		return nil, apperror.NewDatabase(op, err)
	}
	return dest, nil
}

// ReceiptTotals sums receipt quantity and amount.
func (r *ReportRepo) ReceiptTotals(ctx context.Context, items []filter.Item) (reports.Sums, error) {
	q, err := r.receiptTotalsQuery(items)
	return get[reports.Sums](ctx, r, "receipt totals", q, err)
}

// IssuedTotals sums issuance item quantity and amount.
func (r *ReportRepo) IssuedTotals(ctx context.Context, items []filter.Item) (reports.Sums, error) {
	q, err := r.issuedTotalsQuery(items)
	return get[reports.Sums](ctx, r, "issued totals", q, err)
}

// ReceiptsByProduct sums receipt quantity per product.
func (r *ReportRepo) ReceiptsByProduct(ctx context.Context, items []filter.Item) ([]reports.ProductSum, error) {
	q, err := r.receiptsByProductQuery(items)
	return list[reports.ProductSum](ctx, r, "receipts by product", q, err)
}

// IssuedByProduct sums issuance item quantity per product.
func (r *ReportRepo) IssuedByProduct(ctx context.Context, items []filter.Item) ([]reports.ProductSum, error) {
	q, err := r.issuedByProductQuery(items)
	return list[reports.ProductSum](ctx, r, "issued by product", q, err)
}

// IssuanceDistricts resolves the distinct districts of matching documents.
func (r *ReportRepo) IssuanceDistricts(ctx context.Context, items []filter.Item) ([]reports.DistrictRef, error) {
	q, err := r.issuanceDistrictsQuery(items)
	return list[reports.DistrictRef](ctx, r, "issuance districts", q, err)
}

// ReceiptMovements lists matching receipts.
func (r *ReportRepo) ReceiptMovements(ctx context.Context, items []filter.Item) ([]reports.ReceiptMovement, error) {
	q, err := r.receiptMovementsQuery(items)
	return list[reports.ReceiptMovement](ctx, r, "receipt movements", q, err)
}

// DailyDistrictIssuance sums issued quantity per (date, district name).
func (r *ReportRepo) DailyDistrictIssuance(ctx context.Context, items []filter.Item) ([]reports.DailyDistrictSum, error) {
	q, err := r.dailyDistrictQuery(items)
	return list[reports.DailyDistrictSum](ctx, r, "daily district issuance", q, err)
}

// FarmerIssuance sums issued quantity per (document, product).
func (r *ReportRepo) FarmerIssuance(ctx context.Context, items []filter.Item) ([]reports.FarmerIssuanceSum, error) {
	q, err := r.farmerIssuanceQuery(items)
	return list[reports.FarmerIssuanceSum](ctx, r, "farmer issuance", q, err)
}
