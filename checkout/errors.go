package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart is returned when a checkout carries no items.
	ErrEmptyCart = errors.New("checkout: cart is empty")

	// ErrCommitFailed matches every *CommitFailedError via errors.Is.
	ErrCommitFailed = errors.New("checkout: commit failed")

	// ErrVersionConflict is returned by a Store when a product row changed
	// between the read and the decrement of the same transaction.
	ErrVersionConflict = errors.New("checkout: product modified concurrently")
)

type InvalidQuantityError struct {
	ProductID uint
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("checkout: quantity %d for product %d must be between %d and %d",
		e.Quantity, e.ProductID, MinQuantity, MaxQuantity)
}

// InsufficientStockError aborts the whole checkout. Available is the stock
// left for this line after earlier lines of the same cart were staged.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("checkout: not enough stock for %s (product %d): requested %d, available %d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

// CommitFailedError wraps a storage failure or a concurrency conflict. Nothing
// from the checkout was persisted; the caller may resubmit the cart.
type CommitFailedError struct {
	InvoiceNumber string
	Err           error
}

func (e *CommitFailedError) Error() string {
	return fmt.Sprintf("checkout: commit of %s failed: %v", e.InvoiceNumber, e.Err)
}

func (e *CommitFailedError) Unwrap() error {
	return e.Err
}

func (e *CommitFailedError) Is(target error) bool {
	return target == ErrCommitFailed
}

// Conflict reports whether the failure was a concurrent modification rather
// than a plain storage error.
func (e *CommitFailedError) Conflict() bool {
	return errors.Is(e.Err, ErrVersionConflict)
}

const (
	OutcomeSuccess           = "success"
	OutcomeEmptyCart         = "empty_cart"
	OutcomeInvalidQuantity   = "invalid_quantity"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeCommitFailed      = "commit_failed"
)

// Outcome classifies a Checkout result for metrics and logs.
func Outcome(err error) string {
	var invalid *InvalidQuantityError
	var insufficient *InsufficientStockError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrEmptyCart):
		return OutcomeEmptyCart
	case errors.As(err, &invalid):
		return OutcomeInvalidQuantity
	case errors.As(err, &insufficient):
		return OutcomeInsufficientStock
	default:
		return OutcomeCommitFailed
	}
}
