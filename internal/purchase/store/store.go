package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acuenca/tienda/internal/purchase"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectAggregateColumns = `
	p.id, p.reference, p.user_id, COALESCE(u.name, ''), p.total, p.status, p.purchase_date,
	d.id, d.product_id, pr.name, d.quantity, d.price, d.subtotal
`

const selectAggregateFrom = `
	FROM purchases p
	LEFT JOIN users u ON u.id = p.user_id
	LEFT JOIN purchase_details d ON d.purchase_id = p.id
	LEFT JOIN products pr ON pr.id = d.product_id
`

// scanJoinedRow reads one flat row of the aggregate query. Detail columns
// come back null for purchases without details.
func scanJoinedRow(s scanner) (purchase.JoinedRow, error) {
	var (
		row         purchase.JoinedRow
		statusStr   string
		detailID    sql.NullInt64
		productID   sql.NullInt64
		productName sql.NullString
		quantity    sql.NullInt64
		price       decimal.NullDecimal
		subtotal    decimal.NullDecimal
	)

	if err := s.Scan(
		&row.PurchaseID, &row.Reference, &row.UserID, &row.UserName, &row.Total, &statusStr, &row.PurchaseDate,
		&detailID, &productID, &productName, &quantity, &price, &subtotal,
	); err != nil {
		return purchase.JoinedRow{}, err
	}

	row.Status = purchase.Status(statusStr)

	if detailID.Valid {
		row.DetailID = &detailID.Int64
	}

	if productID.Valid {
		row.ProductID = &productID.Int64
	}

	if productName.Valid {
		row.ProductName = &productName.String
	}

	if quantity.Valid {
		q := int(quantity.Int64)
		row.Quantity = &q
	}

	if price.Valid {
		row.Price = &price.Decimal
	}

	if subtotal.Valid {
		row.Subtotal = &subtotal.Decimal
	}

	return row, nil
}

func (s *Store) queryAggregates(ctx context.Context, query string, args ...any) ([]*purchase.Purchase, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying purchases: %w", err)
	}
	defer rows.Close()

	var joined []purchase.JoinedRow

	for rows.Next() {
		row, err := scanJoinedRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase row: %w", err)
		}

		joined = append(joined, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase rows: %w", err)
	}

	return purchase.BuildAggregates(joined), nil
}

func (s *Store) ListPurchases(ctx context.Context) ([]*purchase.Purchase, error) {
	query := `SELECT ` + selectAggregateColumns + selectAggregateFrom + `
		ORDER BY p.id DESC, d.id ASC`

	return s.queryAggregates(ctx, query)
}

func (s *Store) GetPurchase(ctx context.Context, id int64) (*purchase.Purchase, error) {
	query := `SELECT ` + selectAggregateColumns + selectAggregateFrom + `
		WHERE p.id = $1
		ORDER BY d.id ASC`

	purchases, err := s.queryAggregates(ctx, query, id)
	if err != nil {
		return nil, err
	}

	if len(purchases) == 0 {
		return nil, purchase.ErrNotFound
	}

	return purchases[0], nil
}

func (s *Store) Begin(ctx context.Context) (purchase.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning purchase tx: %w", err)
	}

	return &purchaseTx{tx: dbTx}, nil
}

// purchaseTx owns one database transaction; FOR UPDATE locks taken through
// it are held until Commit or Rollback.
type purchaseTx struct {
	tx *sql.Tx
}

func (t *purchaseTx) Commit() error   { return t.tx.Commit() }
func (t *purchaseTx) Rollback() error { return t.tx.Rollback() }

func (t *purchaseTx) LockPurchase(ctx context.Context, id int64) (*purchase.Purchase, error) {
	query := `
		SELECT id, reference, user_id, total, status, purchase_date
		FROM purchases
		WHERE id = $1
		FOR UPDATE
	`

	var (
		p         purchase.Purchase
		statusStr string
	)

	err := t.tx.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Reference, &p.UserID, &p.Total, &statusStr, &p.PurchaseDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, purchase.ErrNotFound
		}

		return nil, fmt.Errorf("locking purchase: %w", err)
	}

	p.Status = purchase.Status(statusStr)

	return &p, nil
}

func (t *purchaseTx) ListDetails(ctx context.Context, purchaseID int64) ([]purchase.Detail, error) {
	query := `
		SELECT id, purchase_id, product_id, quantity, price, subtotal
		FROM purchase_details
		WHERE purchase_id = $1
		ORDER BY id ASC
	`

	rows, err := t.tx.QueryContext(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("listing details: %w", err)
	}
	defer rows.Close()

	var details []purchase.Detail

	for rows.Next() {
		var d purchase.Detail
		if err := rows.Scan(&d.ID, &d.PurchaseID, &d.ProductID, &d.Quantity, &d.Price, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scanning detail: %w", err)
		}

		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating details: %w", err)
	}

	return details, nil
}

func (t *purchaseTx) DeleteDetails(ctx context.Context, purchaseID int64) error {
	query := `DELETE FROM purchase_details WHERE purchase_id = $1`

	if _, err := t.tx.ExecContext(ctx, query, purchaseID); err != nil {
		return fmt.Errorf("deleting details: %w", err)
	}

	return nil
}

func (t *purchaseTx) InsertPurchase(ctx context.Context, p *purchase.Purchase) error {
	query := `
		INSERT INTO purchases (reference, user_id, total, status, purchase_date)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, purchase_date
	`

	p.Reference = uuid.New()

	err := t.tx.QueryRowContext(ctx, query,
		p.Reference,
		p.UserID,
		p.Total,
		p.Status,
	).Scan(&p.ID, &p.PurchaseDate)
	if err != nil {
		return fmt.Errorf("inserting purchase: %w", err)
	}

	return nil
}

func (t *purchaseTx) UpdatePurchase(ctx context.Context, p *purchase.Purchase) error {
	query := `
		UPDATE purchases
		SET user_id = $1, total = $2, status = $3
		WHERE id = $4
	`

	_, err := t.tx.ExecContext(ctx, query, p.UserID, p.Total, p.Status, p.ID)
	if err != nil {
		return fmt.Errorf("updating purchase: %w", err)
	}

	return nil
}

func (t *purchaseTx) DeletePurchase(ctx context.Context, id int64) error {
	query := `DELETE FROM purchases WHERE id = $1`

	if _, err := t.tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting purchase: %w", err)
	}

	return nil
}

func (t *purchaseTx) InsertDetail(ctx context.Context, d *purchase.Detail) error {
	query := `
		INSERT INTO purchase_details (purchase_id, product_id, quantity, price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := t.tx.QueryRowContext(ctx, query,
		d.PurchaseID,
		d.ProductID,
		d.Quantity,
		d.Price,
		d.Subtotal,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("inserting detail: %w", err)
	}

	return nil
}

func (t *purchaseTx) LockProduct(ctx context.Context, productID int64) (*purchase.ProductStock, error) {
	query := `SELECT id, stock FROM products WHERE id = $1 FOR UPDATE`

	var ps purchase.ProductStock

	err := t.tx.QueryRowContext(ctx, query, productID).Scan(&ps.ID, &ps.Stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, purchase.ErrProductNotFound
		}

		return nil, fmt.Errorf("locking product: %w", err)
	}

	return &ps, nil
}

// AdjustStock moves a product's counter by delta under the row lock the
// caller already holds. The conditional update backstops the engine's
// availability check so stock can never go negative.
func (t *purchaseTx) AdjustStock(ctx context.Context, productID int64, delta int) error {
	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1 AND stock + $2 >= 0
	`

	result, err := t.tx.ExecContext(ctx, query, productID, delta)
	if err != nil {
		return fmt.Errorf("adjusting stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjusting stock: %w", err)
	}

	if affected == 0 {
		return purchase.ErrInsufficientStock
	}

	return nil
}
