package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// BatchInserter provides bulk inserts over the COPY protocol.
type BatchInserter struct {
	txManager *TxManager
}

// NewBatchInserter creates a new batch inserter.
func NewBatchInserter(txManager *TxManager) *BatchInserter {
	return &BatchInserter{txManager: txManager}
}

// CopyFromSlice performs bulk insert from a slice of rows.
func (b *BatchInserter) CopyFromSlice(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	tx := b.txManager.GetTx(ctx)
	if tx == nil {
		return 0, fmt.Errorf("CopyFromSlice requires transaction context")
	}
	return tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
}

// CopyStructs copies records into table using their "db" tags as columns.
func CopyStructs[T any](ctx context.Context, b *BatchInserter, table string, records []T) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	columns := ExtractDBColumns[T]()
	return b.CopyFromSlice(ctx, table, columns, CopyRows(records, columns))
}

// CopyRows converts records into COPY rows.
// Decimals are passed as pgtype.Numeric, which COPY can encode in binary.
func CopyRows[T any](records []T, columns []string) [][]any {
	rows := make([][]any, len(records))
	for i, rec := range records {
		values := StructValues(rec, columns)
		for j, v := range values {
			values[j] = copyValue(v)
		}
		rows[i] = values
	}
	return rows
}

func copyValue(v any) any {
	switch d := v.(type) {
	case decimal.Decimal:
		return numeric(d)
	case decimal.NullDecimal:
		if !d.Valid {
			return pgtype.Numeric{}
		}
		return numeric(d.Decimal)
	default:
		return v
	}
}

func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// BatchExecutor provides batch query execution.
type BatchExecutor struct {
	txManager *TxManager
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(txManager *TxManager) *BatchExecutor {
	return &BatchExecutor{txManager: txManager}
}

// BatchQuery represents a query in a batch.
type BatchQuery struct {
	SQL  string
	Args []any
}

// ExecuteBatch executes multiple queries in a single round-trip.
func (e *BatchExecutor) ExecuteBatch(ctx context.Context, queries []BatchQuery) error {
	tx := e.txManager.GetTx(ctx)
	if tx == nil {
		return fmt.Errorf("ExecuteBatch requires transaction context")
	}

	batch := &pgx.Batch{}
	for _, q := range queries {
		batch.Queue(q.SQL, q.Args...)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range queries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch query %d failed: %w", i, err)
		}
	}
	return nil
}
