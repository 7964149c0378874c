package postgres

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"agroledger/internal/domain/filter"
)

// Columns maps a filter field to the predicate it becomes in one query.
type Columns map[string]func(value any) squirrel.Sqlizer

// EqColumn compares a qualified column for equality.
func EqColumn(column string) func(value any) squirrel.Sqlizer {
	return func(value any) squirrel.Sqlizer {
		return squirrel.Eq{column: value}
	}
}

// Builder returns the statement builder with PostgreSQL placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ApplyFilters ANDs every item onto q. Unknown fields and operators are rejected.
func ApplyFilters(q squirrel.SelectBuilder, items []filter.Item, columns Columns) (squirrel.SelectBuilder, error) {
	for _, item := range items {
		pred, ok := columns[item.Field]
		if !ok {
			return q, fmt.Errorf("invalid filter column: %s", item.Field)
		}
		switch item.Operator {
		case filter.Equal, "":
			q = q.Where(pred(item.Value))
		default:
			return q, fmt.Errorf("unsupported filter operator: %s", item.Operator)
		}
	}
	return q, nil
}
