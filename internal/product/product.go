package product

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("product not found")

	// ErrReferenced is returned when deleting a product that existing
	// purchase details still point at.
	ErrReferenced = errors.New("product is referenced by existing purchases")
)

// Product is a catalog entry with its available stock. The stock counter is
// only moved by the purchase engine; product updates here set it directly.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
