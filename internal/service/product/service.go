package product

import (
	"context"
	"strings"

	"harvest-direct/internal/domain"
	productrepo "harvest-direct/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, category string) ([]domain.Product, error) {
	if strings.TrimSpace(category) != "" {
		return s.repo.ListByCategory(ctx, category)
	}
	return s.repo.List(ctx)
}

func (s *Service) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListFeatured(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}
