// Package main provides a CLI tool for loading the demo ledger into PostgreSQL.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"agroledger/internal/config"
	"agroledger/internal/infrastructure/storage/memory"
	"agroledger/internal/infrastructure/storage/postgres"
	"agroledger/pkg/logger"
)

// schema bootstraps the tables the API reads. Migrations of a real
// deployment are owned elsewhere; IF NOT EXISTS keeps this harmless there.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS query_region (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS query_district (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		region_id BIGINT REFERENCES query_region(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS query_massive (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		district_id BIGINT REFERENCES query_district(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS query_farmer (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		inn VARCHAR(32),
		phone VARCHAR(32),
		massive_id BIGINT REFERENCES query_massive(id) ON DELETE SET NULL,
		maydon NUMERIC(12,2),
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS query_contract (
		id BIGSERIAL PRIMARY KEY,
		farmer_id BIGINT NOT NULL REFERENCES query_farmer(id) ON DELETE CASCADE,
		number VARCHAR(64) NOT NULL,
		date DATE NOT NULL,
		planned_quantity NUMERIC(14,2) NOT NULL DEFAULT 0,
		price NUMERIC(14,2) NOT NULL DEFAULT 0,
		total_amount NUMERIC(16,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS query_unit (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(64) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS query_product (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		unit_id BIGINT REFERENCES query_unit(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS query_warehouse (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		address VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS query_mineralwarehousereceipt (
		id BIGSERIAL PRIMARY KEY,
		date DATE NOT NULL,
		warehouse_id BIGINT REFERENCES query_warehouse(id) ON DELETE SET NULL,
		product_id BIGINT REFERENCES query_product(id) ON DELETE SET NULL,
		invoice_number VARCHAR(64) NOT NULL DEFAULT '',
		bag_count INTEGER NOT NULL DEFAULT 0,
		quantity NUMERIC(14,2) NOT NULL DEFAULT 0,
		amount NUMERIC(16,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS query_goodsgivendocument (
		id BIGSERIAL PRIMARY KEY,
		date DATE NOT NULL,
		number VARCHAR(64) NOT NULL,
		warehouse_id BIGINT REFERENCES query_warehouse(id) ON DELETE SET NULL,
		farmer_id BIGINT REFERENCES query_farmer(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS query_goodsgivenitem (
		id BIGSERIAL PRIMARY KEY,
		document_id BIGINT NOT NULL REFERENCES query_goodsgivendocument(id) ON DELETE CASCADE,
		product_id BIGINT REFERENCES query_product(id) ON DELETE SET NULL,
		quantity NUMERIC(14,2) NOT NULL DEFAULT 0,
		price NUMERIC(14,2) NOT NULL DEFAULT 0,
		amount NUMERIC(16,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS query_botuser (
		id BIGSERIAL PRIMARY KEY,
		telegram_id BIGINT NOT NULL UNIQUE,
		full_name VARCHAR(255) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS query_botuseractivity (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES query_botuser(id) ON DELETE CASCADE,
		action_type VARCHAR(20) NOT NULL,
		action_name VARCHAR(255) NOT NULL,
		action_payload TEXT NOT NULL DEFAULT '',
		is_allowed BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_botuseractivity_created ON query_botuseractivity (created_at DESC, id DESC)`,
}

// seedStatementTimeout allows for the COPY of a full snapshot.
const seedStatementTimeout = 5 * time.Minute

// tables lists every seeded table in foreign-key order.
var tables = []string{
	"query_region",
	"query_district",
	"query_massive",
	"query_farmer",
	"query_contract",
	"query_unit",
	"query_product",
	"query_warehouse",
	"query_mineralwarehousereceipt",
	"query_goodsgivendocument",
	"query_goodsgivenitem",
	"query_botuser",
	"query_botuseractivity",
}

func main() {
	_ = godotenv.Load()

	base, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
		Service:     postgres.ApplicationName,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	log := base.WithComponent("seed")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}
	if cfg.App.UsesMemoryStore() {
		log.Fatalw("seeding needs a database", "store", cfg.App.Store)
	}

	ctx := logger.WithLogger(context.Background(), log)

	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg.DB))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txm := postgres.NewTxManager(pool)
	opts := postgres.DefaultTxOptions()
	opts.StatementTimeout = seedStatementTimeout
	if err := txm.RunInTransactionWithOptions(ctx, opts, func(ctx context.Context) error {
		return seed(ctx, txm)
	}); err != nil {
		log.Fatalw("failed to seed demo ledger", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seed(ctx context.Context, txm *postgres.TxManager) error {
	queries := make([]postgres.BatchQuery, 0, len(schema))
	for _, stmt := range schema {
		queries = append(queries, postgres.BatchQuery{SQL: stmt})
	}
	if err := postgres.NewBatchExecutor(txm).ExecuteBatch(ctx, queries); err != nil {
		return fmt.Errorf("bootstrap schema: %w", err)
	}

	var exists bool
	err := txm.GetQuerier(ctx).QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM query_warehouse)").Scan(&exists)
	if err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if exists {
		logger.Info(ctx, "ledger already has data, skipping")
		return nil
	}

	snap := memory.DemoSnapshot()
	b := postgres.NewBatchInserter(txm)
	steps := []struct {
		table string
		copy  func() (int64, error)
	}{
		{"query_region", func() (int64, error) { return postgres.CopyStructs(ctx, b, "query_region", snap.Regions) }},
		{"query_district", func() (int64, error) { return postgres.CopyStructs(ctx, b, "query_district", snap.Districts) }},
		{"query_massive", func() (int64, error) { return postgres.CopyStructs(ctx, b, "query_massive", snap.Massives) }},
		{"query_farmer", func() (int64, error) { return postgres.CopyStructs(ctx, b, "query_farmer", snap.Farmers) }},
		{"query_contract", func() (int64, error) { return postgres.CopyStructs(ctx, b, "query_contract", snap.Contracts) }},
		{"query_unit", func() (int64, error) { return postgres.CopyStructs(ctx, b, "query_unit", snap.Units) }},
		{"query_product", func() (int64, error) { return postgres.CopyStructs(ctx, b, "query_product", snap.Products) }},
		{"query_warehouse", func() (int64, error) { return postgres.CopyStructs(ctx, b, "query_warehouse", snap.Warehouses) }},
		{"query_mineralwarehousereceipt", func() (int64, error) {
			return postgres.CopyStructs(ctx, b, "query_mineralwarehousereceipt", snap.Receipts)
		}},
		{"query_goodsgivendocument", func() (int64, error) {
			return postgres.CopyStructs(ctx, b, "query_goodsgivendocument", snap.Documents)
		}},
		{"query_goodsgivenitem", func() (int64, error) { return postgres.CopyStructs(ctx, b, "query_goodsgivenitem", snap.Items) }},
		{"query_botuser", func() (int64, error) { return postgres.CopyStructs(ctx, b, "query_botuser", snap.BotUsers) }},
		{"query_botuseractivity", func() (int64, error) {
			return postgres.CopyStructs(ctx, b, "query_botuseractivity", snap.Activities)
		}},
	}
	for _, step := range steps {
		n, err := step.copy()
		if err != nil {
			return fmt.Errorf("copy %s: %w", step.table, err)
		}
		logger.Info(ctx, "table seeded", "table", step.table, "rows", n)
	}

	// Explicit ids leave the serial sequences behind.
	resets := make([]postgres.BatchQuery, 0, len(tables))
	for _, table := range tables {
		resets = append(resets, postgres.BatchQuery{
			SQL: fmt.Sprintf(
				"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)",
				table,
			),
		})
	}
	if err := postgres.NewBatchExecutor(txm).ExecuteBatch(ctx, resets); err != nil {
		return fmt.Errorf("reset sequences: %w", err)
	}
	return nil
}
