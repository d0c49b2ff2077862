package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a purchase. The set is open:
// any non-empty value is accepted on input, but StatusCompleted is terminal
// and freezes the purchase against further updates or deletion.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
)

const (
	// MaxDetails is the maximum number of line items a purchase may carry.
	MaxDetails = 5
)

// MaxTotal is the ceiling for a purchase total. The boundary is inclusive:
// a total of exactly 3500 is accepted.
var MaxTotal = decimal.NewFromInt(3500)

// Purchase is an order header with its line items.
type Purchase struct {
	ID           int64
	Reference    uuid.UUID
	UserID       int64
	UserName     string // Loaded via JOIN
	Total        decimal.Decimal
	Status       Status
	PurchaseDate time.Time
	Details      []Detail
}

// Detail is one line item of a purchase. Price is a snapshot of the
// product's price at transaction time, not a live reference.
type Detail struct {
	ID          int64
	PurchaseID  int64
	ProductID   int64
	ProductName string // Loaded via JOIN
	Quantity    int
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}

// Completed reports whether the purchase is in its terminal state.
func (p *Purchase) Completed() bool {
	return p.Status == StatusCompleted
}
