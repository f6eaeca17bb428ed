package product

import (
	"context"
	"errors"
	"testing"

	"storefront-api/internal/domain"
)

type stubRepo struct {
	created   *domain.Product
	products  []domain.Product
	deletedID string
	err       error
}

func (s *stubRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p.ID = "p1"
	s.created = &p
	return &p, nil
}

func (s *stubRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func validInput() AddInput {
	return AddInput{
		Name:        "Shirt",
		Description: "A shirt",
		Price:       20,
		Images:      []string{"https://images.example.com/shirt.png"},
		Category:    "Men",
		SubCategory: "Topwear",
		Sizes:       []string{"M", "L"},
	}
}

func TestAdd(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	created, err := svc.Add(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.ID != "p1" {
		t.Fatalf("expected assigned ID, got %q", created.ID)
	}
	if repo.created.Name != "Shirt" || repo.created.Price != 20 {
		t.Fatalf("unexpected stored product %+v", repo.created)
	}
}

func TestAdd_Validation(t *testing.T) {
	svc := New(&stubRepo{})

	cases := map[string]func(*AddInput){
		"missing name":        func(in *AddInput) { in.Name = "" },
		"missing description": func(in *AddInput) { in.Description = "" },
		"missing category":    func(in *AddInput) { in.Category = "" },
		"missing subcategory": func(in *AddInput) { in.SubCategory = "" },
		"no sizes":            func(in *AddInput) { in.Sizes = nil },
		"zero price":          func(in *AddInput) { in.Price = 0 },
		"negative price":      func(in *AddInput) { in.Price = -5 },
	}
	for name, mutate := range cases {
		in := validInput()
		mutate(&in)
		if _, err := svc.Add(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestGet(t *testing.T) {
	repo := &stubRepo{products: []domain.Product{{ID: "p1", Name: "Shirt"}}}
	svc := New(repo)

	got, err := svc.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Shirt" {
		t.Fatalf("unexpected product %+v", got)
	}

	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty id, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	if err := svc.Remove(context.Background(), "p1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if repo.deletedID != "p1" {
		t.Fatalf("expected delete of p1, got %q", repo.deletedID)
	}

	if err := svc.Remove(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty id, got %v", err)
	}
}
