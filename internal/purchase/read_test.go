package purchase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acuenca/tienda/internal/purchase"
)

func joinedRow(purchaseID int64, detailID int64, productID int64) purchase.JoinedRow {
	row := purchase.JoinedRow{
		PurchaseID:   purchaseID,
		Reference:    uuid.NewSHA1(uuid.NameSpaceOID, []byte{byte(purchaseID)}),
		UserID:       7,
		UserName:     "Ana",
		Total:        decimal.NewFromInt(100),
		Status:       purchase.StatusPending,
		PurchaseDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	if detailID == 0 {
		return row
	}

	qty := 2
	price := decimal.NewFromInt(10)
	subtotal := decimal.NewFromInt(20)
	name := "Widget"

	row.DetailID = &detailID
	row.ProductID = &productID
	row.ProductName = &name
	row.Quantity = &qty
	row.Price = &price
	row.Subtotal = &subtotal

	return row
}

func TestBuildAggregates_GroupsByPurchase(t *testing.T) {
	rows := []purchase.JoinedRow{
		joinedRow(3, 10, 1),
		joinedRow(3, 11, 2),
		joinedRow(2, 5, 1),
		joinedRow(1, 0, 0), // left join produced no details
	}

	got := purchase.BuildAggregates(rows)

	require.Len(t, got, 3)

	assert.Equal(t, int64(3), got[0].ID)
	require.Len(t, got[0].Details, 2)
	assert.Equal(t, int64(10), got[0].Details[0].ID)
	assert.Equal(t, int64(11), got[0].Details[1].ID)

	assert.Equal(t, int64(2), got[1].ID)
	require.Len(t, got[1].Details, 1)
	assert.Equal(t, int64(5), got[1].Details[0].ID)

	assert.Equal(t, int64(1), got[2].ID)
	assert.Empty(t, got[2].Details)
	assert.NotNil(t, got[2].Details)
}

func TestBuildAggregates_PreservesRowOrder(t *testing.T) {
	// Row order is the query's declared ordering; reconstruction must keep
	// it rather than re-sort.
	rows := []purchase.JoinedRow{
		joinedRow(5, 21, 9),
		joinedRow(9, 30, 4),
		joinedRow(5, 22, 3),
	}

	got := purchase.BuildAggregates(rows)

	require.Len(t, got, 2)
	assert.Equal(t, int64(5), got[0].ID)
	assert.Equal(t, int64(9), got[1].ID)

	require.Len(t, got[0].Details, 2)
	assert.Equal(t, int64(21), got[0].Details[0].ID)
	assert.Equal(t, int64(22), got[0].Details[1].ID)
}

func TestBuildAggregates_CarriesJoinedColumns(t *testing.T) {
	rows := []purchase.JoinedRow{joinedRow(1, 4, 8)}

	got := purchase.BuildAggregates(rows)

	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].UserName)

	d := got[0].Details[0]
	assert.Equal(t, int64(8), d.ProductID)
	assert.Equal(t, "Widget", d.ProductName)
	assert.Equal(t, 2, d.Quantity)
	assert.True(t, d.Subtotal.Equal(decimal.NewFromInt(20)))
}

func TestBuildAggregates_Deterministic(t *testing.T) {
	rows := []purchase.JoinedRow{
		joinedRow(3, 10, 1),
		joinedRow(3, 11, 2),
		joinedRow(2, 0, 0),
	}

	first := purchase.BuildAggregates(rows)
	second := purchase.BuildAggregates(rows)

	assert.Equal(t, first, second)
}

func TestBuildAggregates_Empty(t *testing.T) {
	assert.Empty(t, purchase.BuildAggregates(nil))
}
