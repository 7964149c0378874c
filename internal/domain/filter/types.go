// Package filter is the filter composition layer shared by every report:
// optional warehouse, product and district axes combined with AND, plus the
// movement selector.
package filter

import (
	"strconv"
	"strings"
)

// ComparisonType определяет виды сравнения.
type ComparisonType string

const (
	Equal ComparisonType = "eq" // Равно
)

// Filter fields understood by the report stores.
const (
	FieldWarehouse = "warehouse_id"
	FieldProduct   = "product_id"
	FieldDistrict  = "district_id"
)

// Item представляет одну строку отбора.
type Item struct {
	Field    string         `json:"field"`    // Имя поля (snake_case)
	Operator ComparisonType `json:"operator"` // Вид сравнения
	Value    any            `json:"value"`    // Значение
}

// ID is one optional identifier axis parsed from a query parameter.
type ID struct {
	value   int64
	present bool
	valid   bool
}

// ParseID parses a raw query value. An empty value is an absent axis;
// anything that is not a positive integer is present but invalid.
func ParseID(raw string) ID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ID{}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return ID{present: true}
	}
	return ID{value: v, present: true, valid: true}
}

// IDOf returns a set axis for a known identifier.
func IDOf(v int64) ID {
	return ID{value: v, present: true, valid: v > 0}
}

// IsSet reports whether the axis restricts the result.
func (id ID) IsSet() bool { return id.present }

// Invalid reports whether the axis was supplied but cannot match any row.
func (id ID) Invalid() bool { return id.present && !id.valid }

// Value returns the parsed identifier, zero when absent or invalid.
func (id ID) Value() int64 { return id.value }

// Source selects which ledger records a predicate set applies to.
type Source int

const (
	// Receipts are warehouse intake records. They carry no district.
	Receipts Source = iota
	// Issuance covers goods-given documents and their line items.
	Issuance
)

// Ledger holds the three identifier axes of the report endpoints.
type Ledger struct {
	Warehouse ID
	Product   ID
	District  ID
}

// ParseLedger builds a filter from raw query parameters.
func ParseLedger(warehouseID, productID, districtID string) Ledger {
	return Ledger{
		Warehouse: ParseID(warehouseID),
		Product:   ParseID(productID),
		District:  ParseID(districtID),
	}
}

// Unsatisfiable reports whether some axis can never match, in which case
// reads return their empty result without touching the store.
func (l Ledger) Unsatisfiable() bool {
	return l.Warehouse.Invalid() || l.Product.Invalid() || l.District.Invalid()
}

// Items returns the AND-combined predicates for one record source.
// The district axis only narrows issuance records.
func (l Ledger) Items(src Source) []Item {
	items := make([]Item, 0, 3)
	if l.Warehouse.IsSet() {
		items = append(items, Item{Field: FieldWarehouse, Operator: Equal, Value: l.Warehouse.Value()})
	}
	if l.Product.IsSet() {
		items = append(items, Item{Field: FieldProduct, Operator: Equal, Value: l.Product.Value()})
	}
	if src == Issuance && l.District.IsSet() {
		items = append(items, Item{Field: FieldDistrict, Operator: Equal, Value: l.District.Value()})
	}
	return items
}

// WithoutProduct drops the product axis.
func (l Ledger) WithoutProduct() Ledger {
	l.Product = ID{}
	return l
}

// WarehouseOnly keeps only the warehouse axis.
func (l Ledger) WarehouseOnly() Ledger {
	return Ledger{Warehouse: l.Warehouse}
}
