package services

import (
	"context"
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

const catalogQueryTimeout = 10 * time.Second

type ProductService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewProductService(logger *gecho.Logger, db *database.DB) *ProductService {
	return &ProductService{
		logger: logger,
		db:     db,
	}
}

// ListProducts returns every product matching the filter, ordered by id.
// Category is an exact match, Search a case-insensitive substring of the
// name. Both predicates apply together when set.
func (ps *ProductService) ListProducts(ctx context.Context, filter structs.ProductFilter) ([]tables.Product, error) {
	query := database.Query[tables.Product](ps.db).Timeout(catalogQueryTimeout)

	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.WhereContains("name", search)
	}

	products, err := query.OrderBy("id", database.ASC).All(ctx)
	if err != nil {
		ps.logger.Error("Failed to list products",
			gecho.Field("error", err),
			gecho.Field("category", filter.Category),
			gecho.Field("search", filter.Search),
		)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// GetProduct returns lib.ErrNotFound for unknown ids.
func (ps *ProductService) GetProduct(ctx context.Context, id int64) (*tables.Product, error) {
	product, err := database.FindByID[tables.Product](ps.db, ctx, id)
	if err != nil {
		ps.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("product_id", id))
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", id, lib.ErrNotFound)
	}
	return product, nil
}

func (ps *ProductService) CreateProduct(ctx context.Context, req *structs.ProductRequest) (*tables.Product, error) {
	if err := lib.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &tables.Product{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Category:        strings.TrimSpace(req.Category),
		Price:           *req.Price,
		ImageURL:        req.ImageURL,
		StockStatus:     req.StockStatus,
		BrandingOptions: req.BrandingOptions,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if product.StockStatus == "" {
		product.StockStatus = tables.DefaultStockStatus
	}
	if product.BrandingOptions == nil {
		product.BrandingOptions = []string{}
	}

	created, err := database.Create(ps.db, ctx, product)
	if err != nil {
		ps.logger.Error("Failed to create product", gecho.Field("error", err), gecho.Field("name", product.Name))
		return nil, fmt.Errorf("failed to create product: %w", lib.MapDBError(err))
	}

	ps.logger.Info("Product created", gecho.Field("product_id", created.ID), gecho.Field("name", created.Name))
	return created, nil
}

// UpdateProduct writes only the fields set in patch and refreshes updated_at.
func (ps *ProductService) UpdateProduct(ctx context.Context, id int64, patch *structs.ProductPatch) (*tables.Product, error) {
	if err := lib.Validate(patch); err != nil {
		return nil, err
	}

	return database.TransactionWithResult(ctx, ps.db, func(ctx context.Context, tx bun.Tx) (*tables.Product, error) {
		product, err := database.FindByID[tables.Product](tx, ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch product: %w", err)
		}
		if product == nil {
			return nil, fmt.Errorf("product %d: %w", id, lib.ErrNotFound)
		}

		if patch.IsEmpty() {
			return product, nil
		}

		applyProductPatch(product, patch)
		product.UpdatedAt = time.Now().UTC()

		if _, err := database.Query[tables.Product](tx).UpdateModel(ctx, product); err != nil {
			ps.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", id))
			return nil, fmt.Errorf("failed to update product: %w", lib.MapDBError(err))
		}

		return product, nil
	})
}

func applyProductPatch(product *tables.Product, patch *structs.ProductPatch) {
	if patch.Name != nil {
		product.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Category != nil {
		product.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}
	if patch.StockStatus != nil {
		product.StockStatus = *patch.StockStatus
	}
	if patch.BrandingOptions != nil {
		product.BrandingOptions = *patch.BrandingOptions
		if product.BrandingOptions == nil {
			product.BrandingOptions = []string{}
		}
	}
}

// DeleteProduct reports whether a row was removed.
func (ps *ProductService) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	deleted, err := database.DeleteByID[tables.Product](ps.db, ctx, id)
	if err != nil {
		ps.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", id))
		return false, fmt.Errorf("failed to delete product: %w", lib.MapDBError(err))
	}

	if deleted > 0 {
		ps.logger.Info("Product deleted", gecho.Field("product_id", id))
	}
	return deleted > 0, nil
}
