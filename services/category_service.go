package services

import (
	"context"
	"errors"
	"fmt"
	"promo_store_server/database"
	"promo_store_server/lib"
	"promo_store_server/structs"
	"promo_store_server/structs/tables"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

type CategoryService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewCategoryService(logger *gecho.Logger, db *database.DB) *CategoryService {
	return &CategoryService{
		logger: logger,
		db:     db,
	}
}

func (cs *CategoryService) ListCategories(ctx context.Context) ([]tables.Category, error) {
	categories, err := database.Query[tables.Category](cs.db).
		Timeout(catalogQueryTimeout).
		OrderBy("id", database.ASC).
		All(ctx)
	if err != nil {
		cs.logger.Error("Failed to list categories", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (cs *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*tables.Category, error) {
	category, err := database.Query[tables.Category](cs.db).
		Where("slug", strings.ToLower(strings.TrimSpace(slug))).
		First(ctx)
	if err != nil {
		cs.logger.Error("Failed to fetch category", gecho.Field("error", err), gecho.Field("slug", slug))
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %q: %w", slug, lib.ErrNotFound)
	}
	return category, nil
}

// CreateCategory returns lib.ErrConflict when the slug is taken.
func (cs *CategoryService) CreateCategory(ctx context.Context, req *structs.CategoryRequest) (*tables.Category, error) {
	if err := lib.Validate(req); err != nil {
		return nil, err
	}

	category := &tables.Category{
		Name:      strings.TrimSpace(req.Name),
		Slug:      req.Slug,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now().UTC(),
	}

	created, err := database.Create(cs.db, ctx, category)
	if err != nil {
		err = lib.MapDBError(err)
		if errors.Is(err, lib.ErrConflict) {
			return nil, fmt.Errorf("category slug %q already exists: %w", req.Slug, err)
		}
		cs.logger.Error("Failed to create category", gecho.Field("error", err), gecho.Field("slug", req.Slug))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

var seedCategories = []tables.Category{
	{Name: "Gifts", Slug: "gifts", ImageURL: "/images/categories/gifts.jpg"},
	{Name: "Clothing", Slug: "clothing", ImageURL: "/images/categories/clothing.jpg"},
	{Name: "Headwear", Slug: "headwear", ImageURL: "/images/categories/headwear.jpg"},
	{Name: "Workwear", Slug: "workwear", ImageURL: "/images/categories/workwear.jpg"},
	{Name: "Display", Slug: "display", ImageURL: "/images/categories/display.jpg"},
	{Name: "Custom Products", Slug: "custom-products", ImageURL: "/images/categories/custom.jpg"},
}

var seedProducts = []tables.Product{
	{
		Name:            "Corporate Notebook",
		Description:     "A5 hardcover notebook with your logo debossed on the cover.",
		Category:        "gifts",
		Price:           15000,
		ImageURL:        "/images/products/notebook.jpg",
		BrandingOptions: []string{"Debossing", "Foil Stamping", "Full Color Print"},
	},
	{
		Name:            "Classic T-Shirt",
		Description:     "Heavyweight cotton tee, available in twelve colours.",
		Category:        "clothing",
		Price:           8500,
		ImageURL:        "/images/products/tshirt.jpg",
		BrandingOptions: []string{"Screen Print", "Embroidery", "Heat Transfer"},
	},
	{
		Name:            "6-Panel Cap",
		Description:     "Structured cap with adjustable strap.",
		Category:        "headwear",
		Price:           4500,
		ImageURL:        "/images/products/cap.jpg",
		BrandingOptions: []string{"Embroidery", "Woven Patch"},
	},
	{
		Name:            "Safety Vest",
		Description:     "High visibility vest, EN ISO 20471 class 2.",
		Category:        "workwear",
		Price:           6500,
		ImageURL:        "/images/products/vest.jpg",
		BrandingOptions: []string{"Screen Print", "Reflective Print"},
	},
}

// SeedCatalog inserts the default categories and sample products. It does
// nothing when the catalog already holds products.
func (cs *CategoryService) SeedCatalog(ctx context.Context) error {
	return database.Transaction(ctx, cs.db, func(ctx context.Context, tx bun.Tx) error {
		exists, err := database.Query[tables.Product](tx).Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to inspect catalog: %w", err)
		}
		if exists {
			cs.logger.Debug("Catalog already seeded")
			return nil
		}

		now := time.Now().UTC()

		for _, seed := range seedCategories {
			category := seed
			category.CreatedAt = now
			if _, err := tx.NewInsert().Model(&category).On("CONFLICT (slug) DO NOTHING").Exec(ctx); err != nil {
				return fmt.Errorf("failed to seed category %q: %w", category.Slug, err)
			}
		}

		products := make([]tables.Product, len(seedProducts))
		for i, seed := range seedProducts {
			seed.StockStatus = tables.DefaultStockStatus
			seed.CreatedAt = now
			seed.UpdatedAt = now
			products[i] = seed
		}
		if _, err := database.CreateMany(tx, ctx, products); err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}

		cs.logger.Info("Catalog seeded",
			gecho.Field("categories", len(seedCategories)),
			gecho.Field("products", len(seedProducts)),
		)
		return nil
	})
}
