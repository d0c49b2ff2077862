package purchase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acuenca/tienda/internal/purchase"
)

func detail(productID int64, quantity int, price string) purchase.DetailParams {
	p := decimal.RequireFromString(price)

	return purchase.DetailParams{
		ProductID: productID,
		Quantity:  &quantity,
		Price:     &p,
	}
}

func TestValidateCreate(t *testing.T) {
	type testCase struct {
		name    string
		params  purchase.CreateParams
		wantMsg string
	}

	tests := []testCase{
		{
			name: "Valid",
			params: purchase.CreateParams{
				UserID:  1,
				Status:  purchase.StatusPending,
				Details: []purchase.DetailParams{detail(1, 2, "10")},
			},
		},
		{
			name: "ZeroPriceIsValid",
			params: purchase.CreateParams{
				UserID:  1,
				Status:  purchase.StatusPending,
				Details: []purchase.DetailParams{detail(1, 1, "0")},
			},
		},
		{
			name: "MissingUserID",
			params: purchase.CreateParams{
				Status:  purchase.StatusPending,
				Details: []purchase.DetailParams{detail(1, 2, "10")},
			},
			wantMsg: "user_id is required",
		},
		{
			name: "MissingStatus",
			params: purchase.CreateParams{
				UserID:  1,
				Details: []purchase.DetailParams{detail(1, 2, "10")},
			},
			wantMsg: "status is required",
		},
		{
			name: "EmptyDetails",
			params: purchase.CreateParams{
				UserID: 1,
				Status: purchase.StatusPending,
			},
			wantMsg: "details must contain at least one item",
		},
		{
			name: "TooManyDetails",
			params: purchase.CreateParams{
				UserID: 1,
				Status: purchase.StatusPending,
				Details: []purchase.DetailParams{
					detail(1, 1, "1"), detail(2, 1, "1"), detail(3, 1, "1"),
					detail(4, 1, "1"), detail(5, 1, "1"), detail(6, 1, "1"),
				},
			},
			wantMsg: "details cannot contain more than 5 items",
		},
		{
			name: "MissingQuantity",
			params: purchase.CreateParams{
				UserID: 1,
				Status: purchase.StatusPending,
				Details: []purchase.DetailParams{
					{ProductID: 1, Price: ptr(decimal.NewFromInt(10))},
				},
			},
			wantMsg: "detail 1: product_id, quantity and price are required",
		},
		{
			name: "MissingPrice",
			params: purchase.CreateParams{
				UserID: 1,
				Status: purchase.StatusPending,
				Details: []purchase.DetailParams{
					{ProductID: 1, Quantity: ptr(2)},
				},
			},
			wantMsg: "detail 1: product_id, quantity and price are required",
		},
		{
			name: "ZeroQuantity",
			params: purchase.CreateParams{
				UserID:  1,
				Status:  purchase.StatusPending,
				Details: []purchase.DetailParams{detail(1, 0, "10")},
			},
			wantMsg: "detail 1: quantity must be a positive integer",
		},
		{
			name: "NegativePrice",
			params: purchase.CreateParams{
				UserID:  1,
				Status:  purchase.StatusPending,
				Details: []purchase.DetailParams{detail(1, 1, "-0.01")},
			},
			wantMsg: "detail 1: price cannot be negative",
		},
		{
			// Field presence is checked for the whole list before value rules
			// run on any item.
			name: "PresenceCheckedBeforeQuantityRule",
			params: purchase.CreateParams{
				UserID: 1,
				Status: purchase.StatusPending,
				Details: []purchase.DetailParams{
					detail(1, 0, "10"),
					{ProductID: 2, Quantity: ptr(1)},
				},
			},
			wantMsg: "detail 2: product_id, quantity and price are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := purchase.ValidateCreate(tt.params)

			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			var verr *purchase.ValidationError

			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}
