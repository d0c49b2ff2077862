package product

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id int64) error
	CountDetailReferences(ctx context.Context, productID int64) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p *Product) error {
	return s.repo.CreateProduct(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) Update(ctx context.Context, p *Product) error {
	return s.repo.UpdateProduct(ctx, p)
}

// Delete removes a product unless purchase details still reference it; a
// referenced product stays until those purchases are gone.
func (s *Service) Delete(ctx context.Context, id int64) error {
	refs, err := s.repo.CountDetailReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("counting references: %w", err)
	}

	if refs > 0 {
		return ErrReferenced
	}

	return s.repo.DeleteProduct(ctx, id)
}
