package user

import (
	"context"
)

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	ListUsers(ctx context.Context) ([]*User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, u *User) error {
	return s.repo.CreateUser(ctx, u)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}
