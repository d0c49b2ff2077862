package purchase

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the referenced purchase does not exist.
	ErrNotFound = errors.New("purchase not found")

	// ErrCompleted is returned when an update or delete targets a purchase
	// that has reached its terminal state.
	ErrCompleted = errors.New("completed purchase cannot be modified")

	// ErrProductNotFound is returned when a line item references a product
	// that does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when a product's available stock is
	// lower than the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrTotalExceeded is returned when the purchase total is above MaxTotal.
	ErrTotalExceeded = errors.New("purchase total exceeds the maximum allowed")
)

// ValidationError reports the first business rule violated by a purchase
// payload, before any storage access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
