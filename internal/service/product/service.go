package product

import (
	"context"
	"fmt"

	"storefront-api/internal/domain"
	productrepo "storefront-api/internal/repository/product"
)

// Service is a thin validation layer over the catalog store.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

type AddInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	SubCategory string   `json:"subCategory"`
	Sizes       []string `json:"sizes"`
	Bestseller  bool     `json:"bestseller"`
}

func (s *Service) Add(ctx context.Context, in AddInput) (*domain.Product, error) {
	if in.Name == "" || in.Description == "" || in.Category == "" || in.SubCategory == "" || len(in.Sizes) == 0 {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrInvalidInput)
	}
	if in.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}
	return s.repo.Create(ctx, domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
		Category:    in.Category,
		SubCategory: in.SubCategory,
		Sizes:       in.Sizes,
		Bestseller:  in.Bestseller,
	})
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: productId required", domain.ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id required", domain.ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}
