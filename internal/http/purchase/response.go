package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acuenca/tienda/internal/purchase"
)

type purchaseResponse struct {
	ID           int64            `json:"id"`
	Reference    uuid.UUID        `json:"reference"`
	UserID       int64            `json:"user_id"`
	UserName     string           `json:"user_name,omitempty"`
	Total        decimal.Decimal  `json:"total"`
	Status       purchase.Status  `json:"status"`
	PurchaseDate time.Time        `json:"purchase_date"`
	Details      []detailResponse `json:"details"`
}

type detailResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

func toResponse(p *purchase.Purchase) purchaseResponse {
	resp := purchaseResponse{
		ID:           p.ID,
		Reference:    p.Reference,
		UserID:       p.UserID,
		UserName:     p.UserName,
		Total:        p.Total,
		Status:       p.Status,
		PurchaseDate: p.PurchaseDate,
		Details:      make([]detailResponse, 0, len(p.Details)),
	}

	for _, d := range p.Details {
		resp.Details = append(resp.Details, detailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Quantity:    d.Quantity,
			Price:       d.Price,
			Subtotal:    d.Subtotal,
		})
	}

	return resp
}

func toResponseList(purchases []*purchase.Purchase) []purchaseResponse {
	resp := make([]purchaseResponse, len(purchases))
	for i, p := range purchases {
		resp[i] = toResponse(p)
	}

	return resp
}
