package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTxOptions(t *testing.T) {
	opts := DefaultTxOptions()
	assert.Equal(t, pgx.ReadWrite, opts.AccessMode)
	assert.Equal(t, DefaultStatementTimeout, opts.StatementTimeout)
}

func TestStatementTimeoutSQL(t *testing.T) {
	assert.Equal(t, "SET LOCAL statement_timeout = 30000", statementTimeoutSQL(30*time.Second))
	assert.Equal(t, "SET LOCAL statement_timeout = 250", statementTimeoutSQL(250*time.Millisecond))
}

func TestGetTx_Empty(t *testing.T) {
	m := &TxManager{}
	assert.Nil(t, m.GetTx(context.Background()))
}
