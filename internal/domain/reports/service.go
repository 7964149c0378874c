package reports

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"agroledger/internal/domain/filter"
)

var tracer = otel.Tracer("agroledger/reports")

// Service provides report generation operations.
// Every call recomputes from the store; nothing is cached.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Totals computes receipts, issuance and their balance.
// The district axis narrows only the issuance side.
func (s *Service) Totals(ctx context.Context, f filter.Ledger) (Totals, error) {
	ctx, span := startSpan(ctx, "reports.totals", f)
	defer span.End()

	if f.Unsatisfiable() {
		return BuildTotals(Sums{}, Sums{}), nil
	}

	var in, out Sums
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in, err = s.repo.ReceiptTotals(gctx, f.Items(filter.Receipts))
		return err
	})
	g.Go(func() error {
		var err error
		out, err = s.repo.IssuedTotals(gctx, f.Items(filter.Issuance))
		return err
	})
	if err := g.Wait(); err != nil {
		return Totals{}, fmt.Errorf("totals: %w", err)
	}

	return BuildTotals(in, out), nil
}

// ProductBreakdown outer-merges per-product receipts and issuance.
// Only the warehouse and district axes apply.
func (s *Service) ProductBreakdown(ctx context.Context, f filter.Ledger, dirs filter.Directions) ([]ProductBalance, error) {
	f = f.WithoutProduct()
	ctx, span := startSpan(ctx, "reports.product_breakdown", f)
	defer span.End()

	if f.Unsatisfiable() || dirs.None() {
		return []ProductBalance{}, nil
	}

	var in, out []ProductSum
	g, gctx := errgroup.WithContext(ctx)
	if dirs.In {
		g.Go(func() error {
			var err error
			in, err = s.repo.ReceiptsByProduct(gctx, f.Items(filter.Receipts))
			return err
		})
	}
	if dirs.Out {
		g.Go(func() error {
			var err error
			out, err = s.repo.IssuedByProduct(gctx, f.Items(filter.Issuance))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("product breakdown: %w", err)
	}

	return MergeProductBalances(in, out), nil
}

// ExpenseDistricts lists districts reached by issuance documents of the
// selected warehouse.
func (s *Service) ExpenseDistricts(ctx context.Context, f filter.Ledger) ([]District, error) {
	f = f.WarehouseOnly()
	ctx, span := startSpan(ctx, "reports.expense_districts", f)
	defer span.End()

	if f.Unsatisfiable() {
		return []District{}, nil
	}

	refs, err := s.repo.IssuanceDistricts(ctx, f.Items(filter.Issuance))
	if err != nil {
		return nil, fmt.Errorf("expense districts: %w", err)
	}
	return CollectDistricts(refs), nil
}

// Movements builds the movement listing selected by raw. An unrecognized
// selector yields an empty listing, never an error.
func (s *Service) Movements(ctx context.Context, f filter.Ledger, raw string) (*Movements, error) {
	ctx, span := startSpan(ctx, "reports.movements", f)
	defer span.End()

	mode, ok := filter.ListingMode(raw)
	if !ok {
		return &Movements{}, nil
	}
	span.SetAttributes(attribute.String("report.movement", string(mode)))

	result := &Movements{
		Mode:     mode,
		Receipts: []ReceiptMovement{},
		Daily:    []DailyDistrictRow{},
		Farmers:  []FarmerMovementRow{},
	}
	if f.Unsatisfiable() {
		return result, nil
	}

	switch mode {
	case filter.MovementIn:
		rows, err := s.repo.ReceiptMovements(ctx, f.Items(filter.Receipts))
		if err != nil {
			return nil, fmt.Errorf("receipt movements: %w", err)
		}
		result.Receipts = SortReceiptMovements(rows)

	case filter.MovementReport:
		rows, err := s.repo.DailyDistrictIssuance(ctx, f.Items(filter.Issuance))
		if err != nil {
			return nil, fmt.Errorf("daily district issuance: %w", err)
		}
		result.Daily = BuildDailyReport(rows)

	default:
		rows, err := s.repo.FarmerIssuance(ctx, f.Items(filter.Issuance))
		if err != nil {
			return nil, fmt.Errorf("farmer issuance: %w", err)
		}
		result.Farmers = BuildFarmerMovements(rows)
	}

	return result, nil
}

func startSpan(ctx context.Context, name string, f filter.Ledger) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.Int64("filter.warehouse_id", f.Warehouse.Value()),
			attribute.Int64("filter.product_id", f.Product.Value()),
			attribute.Int64("filter.district_id", f.District.Value()),
		))
}
