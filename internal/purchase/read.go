package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JoinedRow is one flat row of the left-joined purchase query
// (purchases ⨝ users ⨝ purchase_details ⨝ products). Detail columns are
// nil when the purchase has no details.
type JoinedRow struct {
	PurchaseID   int64
	Reference    uuid.UUID
	UserID       int64
	UserName     string
	Total        decimal.Decimal
	Status       Status
	PurchaseDate time.Time

	DetailID    *int64
	ProductID   *int64
	ProductName *string
	Quantity    *int
	Price       *decimal.Decimal
	Subtotal    *decimal.Decimal
}

// BuildAggregates folds flat joined rows into purchase aggregates. Rows are
// grouped by purchase id; both the purchase order and the detail order of
// the input are preserved, never re-sorted. A purchase whose detail columns
// are null yields an empty detail list.
func BuildAggregates(rows []JoinedRow) []*Purchase {
	var purchases []*Purchase

	byID := make(map[int64]*Purchase)

	for _, row := range rows {
		p, seen := byID[row.PurchaseID]
		if !seen {
			p = &Purchase{
				ID:           row.PurchaseID,
				Reference:    row.Reference,
				UserID:       row.UserID,
				UserName:     row.UserName,
				Total:        row.Total,
				Status:       row.Status,
				PurchaseDate: row.PurchaseDate,
				Details:      []Detail{},
			}

			byID[row.PurchaseID] = p
			purchases = append(purchases, p)
		}

		if row.DetailID == nil {
			continue
		}

		detail := Detail{
			ID:         *row.DetailID,
			PurchaseID: row.PurchaseID,
		}

		if row.ProductID != nil {
			detail.ProductID = *row.ProductID
		}

		if row.ProductName != nil {
			detail.ProductName = *row.ProductName
		}

		if row.Quantity != nil {
			detail.Quantity = *row.Quantity
		}

		if row.Price != nil {
			detail.Price = *row.Price
		}

		if row.Subtotal != nil {
			detail.Subtotal = *row.Subtotal
		}

		p.Details = append(p.Details, detail)
	}

	return purchases
}
