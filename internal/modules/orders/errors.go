package orders

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNoItems       = errors.New("order has no items")
	ErrConflict      = errors.New("order was modified concurrently")
)

// ProductNotFoundError aborts checkout when a line references a product that
// does not exist or is not active. Nothing is persisted in that case.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return "product " + e.ProductID + " not found"
}
