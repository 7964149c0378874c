package filter

import "fmt"

// Lookup resolves a filter field against one in-memory record.
// ok is false when the record has no value for the field (NULL relation).
type Lookup func(field string) (value int64, ok bool)

// Matches evaluates AND-combined Equal predicates against a record.
// A record whose relation is missing never matches a predicate on it.
func Matches(items []Item, lookup Lookup) (bool, error) {
	for _, item := range items {
		if item.Operator != Equal {
			return false, fmt.Errorf("unsupported filter operator: %s", item.Operator)
		}
		want, ok := item.Value.(int64)
		if !ok {
			return false, fmt.Errorf("invalid filter value for %s: %v", item.Field, item.Value)
		}
		got, present := lookup(item.Field)
		if !present || got != want {
			return false, nil
		}
	}
	return true, nil
}
