package admin

import "context"

// Transactor runs fn with a context whose repository calls share one transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
