// Package ledger_repo provides the PostgreSQL implementation of ledger.Repository.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"agroledger/internal/core/apperror"
	"agroledger/internal/domain/ledger"
	"agroledger/internal/infrastructure/storage/postgres"
)

var farmerColumns = []string{
	"f.id", "f.name", "f.inn", "f.phone", "f.maydon", "f.is_active", "f.massive_id",
	"m.name AS massive_name", "ds.id AS district_id", "ds.name AS district_name",
	"rg.id AS region_id", "rg.name AS region_name",
}

// LedgerRepo implements ledger.Repository.
type LedgerRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

var _ ledger.Repository = (*LedgerRepo)(nil)

// NewLedgerRepo creates a new ledger repository.
func NewLedgerRepo(txm *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{
		txm:     txm,
		builder: postgres.Builder(),
	}
}

// farmers selects farmers with the massive→district→region chain resolved.
func (r *LedgerRepo) farmers(extra ...string) squirrel.SelectBuilder {
	return r.builder.Select(append(append([]string{}, farmerColumns...), extra...)...).
		From("query_farmer f").
		LeftJoin("query_massive m ON m.id = f.massive_id").
		LeftJoin("query_district ds ON ds.id = m.district_id").
		LeftJoin("query_region rg ON rg.id = ds.region_id")
}

func (r *LedgerRepo) activeFarmersQuery() squirrel.SelectBuilder {
	return r.farmers().
		Where(squirrel.Eq{"f.is_active": true}).
		OrderBy("ds.id NULLS LAST", "f.massive_id NULLS LAST", "f.name", "f.id")
}

func (r *LedgerRepo) farmerSummariesQuery() squirrel.SelectBuilder {
	return r.farmers("SUM(c.planned_quantity) AS quantity", "SUM(c.total_amount) AS amount").
		LeftJoin("query_contract c ON c.farmer_id = f.id").
		GroupBy("f.id", "m.id", "ds.id", "rg.id").
		OrderBy("ds.id NULLS LAST", "f.massive_id NULLS LAST", "f.id")
}

func (r *LedgerRepo) receiptsQuery() squirrel.SelectBuilder {
	return r.builder.Select(
		"r.id", "r.date", "r.warehouse_id", "r.product_id", "r.invoice_number", "r.bag_count",
		"r.quantity", "r.amount", "w.name AS warehouse_name", "p.name AS product_name",
	).
		From("query_mineralwarehousereceipt r").
		LeftJoin("query_warehouse w ON w.id = r.warehouse_id").
		LeftJoin("query_product p ON p.id = r.product_id").
		OrderBy("r.date DESC", "r.id DESC")
}

func (r *LedgerRepo) issuanceDocumentsQuery() squirrel.SelectBuilder {
	return r.builder.Select(
		"d.id", "d.date", "d.number", "d.warehouse_id", "w.name AS warehouse_name",
		"d.farmer_id", "f.name AS farmer_name", "SUM(i.quantity) AS quantity",
	).
		From("query_goodsgivendocument d").
		LeftJoin("query_goodsgivenitem i ON i.document_id = d.id").
		LeftJoin("query_warehouse w ON w.id = d.warehouse_id").
		LeftJoin("query_farmer f ON f.id = d.farmer_id").
		GroupBy("d.id", "w.name", "f.name").
		OrderBy("d.date DESC", "d.id DESC")
}

func selectAll[T any](ctx context.Context, r *LedgerRepo, op string, q squirrel.SelectBuilder) ([]T, error) {
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

// ListActiveFarmers returns active farmers ordered by district, massive, name.
func (r *LedgerRepo) ListActiveFarmers(ctx context.Context) ([]ledger.FarmerRow, error) {
	return selectAll[ledger.FarmerRow](ctx, r, "list active farmers", r.activeFarmersQuery())
}

// FarmerSummaries returns every farmer with its contract sums.
func (r *LedgerRepo) FarmerSummaries(ctx context.Context) ([]ledger.FarmerSummaryRow, error) {
	return selectAll[ledger.FarmerSummaryRow](ctx, r, "farmer summaries", r.farmerSummariesQuery())
}

// ListReceipts returns receipts newest first.
func (r *LedgerRepo) ListReceipts(ctx context.Context) ([]ledger.ReceiptRow, error) {
	return selectAll[ledger.ReceiptRow](ctx, r, "list receipts", r.receiptsQuery())
}

// ListIssuanceDocuments returns documents with their item quantity, newest first.
func (r *LedgerRepo) ListIssuanceDocuments(ctx context.Context) ([]ledger.IssuanceDocumentRow, error) {
	return selectAll[ledger.IssuanceDocumentRow](ctx, r, "list issuance documents", r.issuanceDocumentsQuery())
}

// ListWarehouses returns warehouses ordered by name.
func (r *LedgerRepo) ListWarehouses(ctx context.Context) ([]ledger.Warehouse, error) {
	q := r.builder.Select("id", "name", "address").From("query_warehouse").OrderBy("name", "id")
	return selectAll[ledger.Warehouse](ctx, r, "list warehouses", q)
}
