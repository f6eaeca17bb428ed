package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	ID          string
	Name        string
	Description string
	Price       int64
	Images      []string
	Category    string
	SubCategory string
	Sizes       []string
	Bestseller  bool
}

// Apply inserts demo catalog data for manual testing. Seed rows carry fixed
// IDs so reruns update in place instead of duplicating.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			ID:          "7d4f2c7e-0001-4a5e-9d20-6f3e1b1a0001",
			Name:        "Women Round Neck Cotton Top",
			Description: "A lightweight knitted top with a round neckline and short sleeves",
			Price:       100,
			Images:      []string{"https://images.example.com/p_img1.png"},
			Category:    "Women",
			SubCategory: "Topwear",
			Sizes:       []string{"S", "M", "L"},
			Bestseller:  true,
		},
		{
			ID:          "7d4f2c7e-0002-4a5e-9d20-6f3e1b1a0002",
			Name:        "Men Round Neck Pure Cotton T-shirt",
			Description: "A close-fitting crew neck tee in pure cotton",
			Price:       200,
			Images:      []string{"https://images.example.com/p_img2.png"},
			Category:    "Men",
			SubCategory: "Topwear",
			Sizes:       []string{"M", "L", "XL"},
			Bestseller:  true,
		},
		{
			ID:          "7d4f2c7e-0003-4a5e-9d20-6f3e1b1a0003",
			Name:        "Kid Tapered Slim Fit Trouser",
			Description: "Tapered trousers with a flat front and slant pockets",
			Price:       220,
			Images:      []string{"https://images.example.com/p_img3.png"},
			Category:    "Kids",
			SubCategory: "Bottomwear",
			Sizes:       []string{"S", "M", "L", "XL"},
			Bestseller:  false,
		},
		{
			ID:          "7d4f2c7e-0004-4a5e-9d20-6f3e1b1a0004",
			Name:        "Women Zip-Front Relaxed Fit Jacket",
			Description: "A relaxed-fit jacket with a zip closure and side pockets",
			Price:       350,
			Images:      []string{"https://images.example.com/p_img4.png"},
			Category:    "Women",
			SubCategory: "Winterwear",
			Sizes:       []string{"S", "M", "L"},
			Bestseller:  false,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (id, name, description, price, images, category, sub_category, sizes, bestseller)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    images = EXCLUDED.images,
    category = EXCLUDED.category,
    sub_category = EXCLUDED.sub_category,
    sizes = EXCLUDED.sizes,
    bestseller = EXCLUDED.bestseller
`
	_, err := pool.Exec(ctx, q, p.ID, p.Name, p.Description, p.Price, p.Images, p.Category, p.SubCategory, p.Sizes, p.Bestseller)
	if err != nil {
		return err
	}
	return nil
}
