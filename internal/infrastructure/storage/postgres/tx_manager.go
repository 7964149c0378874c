package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"agroledger/internal/core/tx"
	"agroledger/pkg/logger"
)

var tracer = otel.Tracer("agroledger/tx")

var _ tx.Manager = (*TxManager)(nil)

// DefaultStatementTimeout bounds every statement run inside a transaction.
const DefaultStatementTimeout = 30 * time.Second

// TxOptions configures a transaction.
type TxOptions struct {
	AccessMode pgx.TxAccessMode

	// StatementTimeout is applied with SET LOCAL. Zero disables it.
	StatementTimeout time.Duration
}

// DefaultTxOptions returns read-write options with the default timeout.
func DefaultTxOptions() TxOptions {
	return TxOptions{
		AccessMode:       pgx.ReadWrite,
		StatementTimeout: DefaultStatementTimeout,
	}
}

// TxManager runs functions inside PostgreSQL transactions carried on the
// context. Repositories pick the active transaction up through GetQuerier.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a transaction manager over pool.
func NewTxManager(pool *Pool) *TxManager {
	return &TxManager{pool: pool.Pool}
}

type txKey struct{}

// Tx is the transaction stored in the context.
type Tx struct {
	pgx.Tx
}

// RunInTransaction implements tx.Manager with DefaultTxOptions.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTransactionWithOptions(ctx, DefaultTxOptions(), fn)
}

// RunInTransactionWithOptions runs fn in a transaction configured by opts.
// A transaction already on ctx is joined and opts are ignored.
func (m *TxManager) RunInTransactionWithOptions(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error {
	outer := m.GetTx(ctx)

	ctx, span := tracer.Start(ctx, "transaction", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("tx.access_mode", string(opts.AccessMode)),
		attribute.Bool("tx.nested", outer != nil),
	))
	defer span.End()

	var err error
	if outer == nil {
		err = m.begin(ctx, opts, fn)
	} else {
		err = fn(ctx)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction failed")
	}
	return err
}

func (m *TxManager) begin(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error {
	pgtx, err := m.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: opts.AccessMode,
	})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if opts.StatementTimeout > 0 {
		if _, err := pgtx.Exec(ctx, statementTimeoutSQL(opts.StatementTimeout)); err != nil {
			rollback(ctx, pgtx, err)
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}

	if err := fn(context.WithValue(ctx, txKey{}, &Tx{Tx: pgtx})); err != nil {
		rollback(ctx, pgtx, err)
		return err
	}

	if err := pgtx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// rollback must finish even when ctx was cancelled.
func rollback(ctx context.Context, pgtx pgx.Tx, cause error) {
	if err := pgtx.Rollback(context.WithoutCancel(ctx)); err != nil {
		logger.Error(ctx, "rollback failed", "error", err, "cause", cause)
	}
}

func statementTimeoutSQL(d time.Duration) string {
	return fmt.Sprintf("SET LOCAL statement_timeout = %d", d.Milliseconds())
}

// GetTx returns the transaction on ctx, or nil.
func (m *TxManager) GetTx(ctx context.Context) *Tx {
	if t, ok := ctx.Value(txKey{}).(*Tx); ok {
		return t
	}
	return nil
}

// Querier is satisfied by both a pool and a transaction, so repositories
// work inside and outside RunInTransaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetQuerier returns the transaction on ctx, falling back to the pool.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if t := m.GetTx(ctx); t != nil {
		return t.Tx
	}
	return m.pool
}

// Ping checks that the database answers.
func (m *TxManager) Ping(ctx context.Context) error {
	return m.pool.Ping(ctx)
}
