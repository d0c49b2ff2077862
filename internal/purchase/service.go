package purchase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=purchase
type Repository interface {
	Begin(ctx context.Context) (Tx, error)

	GetPurchase(ctx context.Context, id int64) (*Purchase, error)
	ListPurchases(ctx context.Context) ([]*Purchase, error)
}

// ProductStock is the slice of a product row the engine needs while holding
// its row lock.
type ProductStock struct {
	ID    int64
	Stock int
}

// Tx is a storage session holding one database transaction. Row locks taken
// through it are held until Commit or Rollback, and every mutation is
// all-or-nothing with the rest of the session.
type Tx interface {
	LockPurchase(ctx context.Context, id int64) (*Purchase, error)
	ListDetails(ctx context.Context, purchaseID int64) ([]Detail, error)
	DeleteDetails(ctx context.Context, purchaseID int64) error
	InsertPurchase(ctx context.Context, p *Purchase) error
	UpdatePurchase(ctx context.Context, p *Purchase) error
	DeletePurchase(ctx context.Context, id int64) error
	InsertDetail(ctx context.Context, d *Detail) error

	LockProduct(ctx context.Context, productID int64) (*ProductStock, error)
	AdjustStock(ctx context.Context, productID int64, delta int) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type DetailParams struct {
	ProductID int64
	Quantity  *int
	Price     *decimal.Decimal
}

type CreateParams struct {
	UserID  int64
	Status  Status
	Details []DetailParams
}

// UpdateParams carries a partial update. Nil fields keep their stored
// values; a nil Details slice means the line items are unchanged and no
// stock moves.
type UpdateParams struct {
	UserID  *int64
	Status  *Status
	Details []DetailParams
}

// Create validates the payload, reserves stock for every line item and
// inserts the purchase with its details, all inside one transaction.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Purchase, error) {
	if err := ValidateCreate(params); err != nil {
		return nil, err
	}

	total := detailsTotal(params.Details)
	if total.GreaterThan(MaxTotal) {
		return nil, fmt.Errorf("total %s: %w", total.StringFixed(2), ErrTotalExceeded)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin purchase tx: %w", err)
	}
	defer tx.Rollback()

	if err := lockAndVerifyStock(ctx, tx, params.Details); err != nil {
		return nil, err
	}

	p := &Purchase{
		UserID: params.UserID,
		Status: params.Status,
		Total:  total,
	}

	if err := tx.InsertPurchase(ctx, p); err != nil {
		return nil, fmt.Errorf("inserting purchase: %w", err)
	}

	if err := insertAndReserve(ctx, tx, p, params.Details); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit purchase: %w", err)
	}

	return p, nil
}

// Update mutates a non-completed purchase. When new details are supplied,
// stock for the current details is released and the whole list is replaced;
// the release and the re-reservation share the transaction, so a failure
// rolls both back.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Purchase, error) {
	if params.Status != nil && *params.Status == "" {
		return nil, invalidf("status cannot be empty")
	}

	if params.Details != nil {
		if err := validateDetails(params.Details); err != nil {
			return nil, err
		}
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin purchase tx: %w", err)
	}
	defer tx.Rollback()

	p, err := tx.LockPurchase(ctx, id)
	if err != nil {
		return nil, err
	}

	// The terminal-state check short-circuits before any stock mutation.
	if p.Completed() {
		return nil, ErrCompleted
	}

	if params.UserID != nil {
		p.UserID = *params.UserID
	}

	if params.Status != nil {
		p.Status = *params.Status
	}

	if params.Details != nil {
		if err := s.replaceDetails(ctx, tx, p, params.Details); err != nil {
			return nil, err
		}
	}

	if err := tx.UpdatePurchase(ctx, p); err != nil {
		return nil, fmt.Errorf("updating purchase: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit purchase: %w", err)
	}

	return p, nil
}

// Delete removes a non-completed purchase, releasing the stock its details
// had reserved.
func (s *Service) Delete(ctx context.Context, id int64) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin purchase tx: %w", err)
	}
	defer tx.Rollback()

	p, err := tx.LockPurchase(ctx, id)
	if err != nil {
		return err
	}

	if p.Completed() {
		return ErrCompleted
	}

	if err := releaseDetails(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.DeletePurchase(ctx, id); err != nil {
		return fmt.Errorf("deleting purchase: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit purchase: %w", err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Purchase, error) {
	return s.repo.GetPurchase(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Purchase, error) {
	return s.repo.ListPurchases(ctx)
}

// replaceDetails swaps the purchase's current details for the supplied ones:
// release stock for the old list, delete it, then re-verify and re-reserve
// stock for the new list against the restored counters.
func (s *Service) replaceDetails(ctx context.Context, tx Tx, p *Purchase, details []DetailParams) error {
	if err := releaseDetails(ctx, tx, p.ID); err != nil {
		return err
	}

	total := detailsTotal(details)
	if total.GreaterThan(MaxTotal) {
		return fmt.Errorf("total %s: %w", total.StringFixed(2), ErrTotalExceeded)
	}

	if err := lockAndVerifyStock(ctx, tx, details); err != nil {
		return err
	}

	p.Total = total
	p.Details = nil

	return insertAndReserve(ctx, tx, p, details)
}

// releaseDetails gives back the stock reserved by the purchase's current
// details and deletes the detail rows.
func releaseDetails(ctx context.Context, tx Tx, purchaseID int64) error {
	details, err := tx.ListDetails(ctx, purchaseID)
	if err != nil {
		return fmt.Errorf("listing details: %w", err)
	}

	for _, d := range details {
		if err := tx.AdjustStock(ctx, d.ProductID, d.Quantity); err != nil {
			return fmt.Errorf("releasing stock for product %d: %w", d.ProductID, err)
		}
	}

	if err := tx.DeleteDetails(ctx, purchaseID); err != nil {
		return fmt.Errorf("deleting details: %w", err)
	}

	return nil
}

// lockAndVerifyStock takes the row lock on every referenced product, in the
// order the details were supplied, and checks availability. No stock moves
// here; the locks stay held so the counts cannot change underneath.
func lockAndVerifyStock(ctx context.Context, tx Tx, details []DetailParams) error {
	for _, d := range details {
		product, err := tx.LockProduct(ctx, d.ProductID)
		if err != nil {
			return fmt.Errorf("product %d: %w", d.ProductID, err)
		}

		if product.Stock < *d.Quantity {
			return fmt.Errorf("product %d: %w", d.ProductID, ErrInsufficientStock)
		}
	}

	return nil
}

// insertAndReserve inserts the detail rows and decrements each product's
// stock. Callers must have verified availability under lock first.
func insertAndReserve(ctx context.Context, tx Tx, p *Purchase, details []DetailParams) error {
	for _, d := range details {
		detail := Detail{
			PurchaseID: p.ID,
			ProductID:  d.ProductID,
			Quantity:   *d.Quantity,
			Price:      *d.Price,
			Subtotal:   subtotal(d),
		}

		if err := tx.InsertDetail(ctx, &detail); err != nil {
			return fmt.Errorf("inserting detail: %w", err)
		}

		if err := tx.AdjustStock(ctx, d.ProductID, -detail.Quantity); err != nil {
			return fmt.Errorf("reserving stock for product %d: %w", d.ProductID, err)
		}

		p.Details = append(p.Details, detail)
	}

	return nil
}

func detailsTotal(details []DetailParams) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(subtotal(d))
	}

	return total
}

func subtotal(d DetailParams) decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(int64(*d.Quantity)))
}
