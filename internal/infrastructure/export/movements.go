// Package export renders report listings as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"agroledger/internal/core/types"
	"agroledger/internal/domain/filter"
	"agroledger/internal/domain/reports"
)

// ContentType is the media type of the produced workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName is the single sheet every movement workbook holds.
const SheetName = "Movements"

const dateLayout = "2006-01-02"

var (
	receiptHeader = []any{"ID", "Date", "Warehouse", "Product ID", "Product", "Invoice", "Bags", "Quantity"}
	dailyHeader   = []any{"Date", "District", "Quantity"}
	farmerHeader  = []any{"#", "Document", "Date", "Number", "Farmer", "Product ID", "Product", "Quantity", "Maydon", "Quantity per area"}
)

// FileName returns the attachment name for a listing mode.
func FileName(mode filter.Movement) string {
	if mode == "" {
		return "movements.xlsx"
	}
	return fmt.Sprintf("movements-%s.xlsx", mode)
}

// WriteMovements writes the listing as an xlsx workbook. Decimals are
// written as text to keep their exact value. An unrecognized listing
// produces the farmer header alone.
func WriteMovements(w io.Writer, m *reports.Movements) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header, rows := movementRows(m)
	if err := setRow(f, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, n int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", n, err)
	}
	return nil
}

func movementRows(m *reports.Movements) ([]any, [][]any) {
	switch m.Mode {
	case filter.MovementIn:
		rows := make([][]any, len(m.Receipts))
		for i, r := range m.Receipts {
			rows[i] = []any{
				r.ID, r.Date.Format(dateLayout), deref(r.WarehouseName), derefID(r.ProductID),
				deref(r.ProductName), r.InvoiceNumber, r.BagCount, types.Format(r.Quantity),
			}
		}
		return receiptHeader, rows
	case filter.MovementReport:
		rows := make([][]any, len(m.Daily))
		for i, r := range m.Daily {
			rows[i] = []any{r.Date.Format(dateLayout), r.DistrictName, types.Format(r.Quantity)}
		}
		return dailyHeader, rows
	case filter.MovementOut:
		rows := make([][]any, len(m.Farmers))
		for i, r := range m.Farmers {
			rows[i] = []any{
				r.RowID, r.DocumentID, r.Date.Format(dateLayout), r.Number, r.FarmerName,
				derefID(r.ProductID), r.ProductName, types.Format(r.Quantity),
				types.Format(r.Area), types.Format(r.QuantityPerArea),
			}
		}
		return farmerHeader, rows
	default:
		return farmerHeader, nil
	}
}

func deref(s *string) string {
	if s == nil {
		return reports.Placeholder
	}
	return *s
}

func derefID(id *int64) any {
	if id == nil {
		return ""
	}
	return *id
}
