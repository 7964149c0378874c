// Package tx lets domain services group repository calls atomically without
// depending on a storage engine.
package tx

import "context"

// Manager runs fn so that every repository call made with the ctx it
// receives either commits together or not at all. Nested calls join the
// enclosing unit of work.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
