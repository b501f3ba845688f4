package checkout

import (
	"context"

	"github.com/ken-eddy/salesApp/models"
)

// Store runs fn inside one isolated transaction. If fn returns an error
// nothing is persisted. A version conflict detected at commit is reported as
// an error wrapping ErrVersionConflict.
type Store interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}

type Tx interface {
	// GetProduct returns nil, nil when the product does not exist.
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	// DecrementStock takes amount units from the product, provided its
	// version still equals version and the stock covers amount.
	DecrementStock(ctx context.Context, id uint, version, amount int) error
	InsertLines(ctx context.Context, lines []models.SalesOrderLine) error
}
