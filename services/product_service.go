package services

import (
	"context"
	"fmt"
	"time"

	"dewode_server/lib"
	"dewode_server/store"
	"dewode_server/structs"
	"dewode_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// catalogCache stores catalog reads. Getters report a miss as
// (nil, nil); only transport failures are errors.
type catalogCache interface {
	GetProductList(includeSoldOut bool) ([]tables.Product, error)
	SetProductList(includeSoldOut bool, products []tables.Product) error
	GetProductByID(id uuid.UUID) (*tables.Product, error)
	SetProductByID(product *tables.Product) error
	InvalidateProductCaches(id uuid.UUID) error
}

// ProductService owns the catalog: public listing and detail reads,
// plus the admin CRUD surface. Reads of the default storefront listing
// and of single products go through the cache; every write invalidates.
// The cache is optional; a nil cache disables caching entirely.
type ProductService struct {
	logger       *gecho.Logger
	store        store.Store
	cacheService catalogCache
}

func NewProductService(logger *gecho.Logger, st store.Store, cacheService catalogCache) *ProductService {
	return &ProductService{
		logger:       logger,
		store:        st,
		cacheService: cacheService,
	}
}

// GetProducts lists catalog items, newest first. Unfiltered first-page
// requests are served from cache when possible.
func (ps *ProductService) GetProducts(ctx context.Context, opts store.ProductListOptions) ([]tables.Product, error) {
	startTime := time.Now()

	cacheable := opts.Search == "" && opts.Tag == "" && opts.Page <= 1

	if cacheable && ps.cacheService != nil {
		cached, err := ps.cacheService.GetProductList(opts.IncludeSoldOut)
		if err != nil {
			ps.logger.Warn("Product list cache read failed", gecho.Field("error", err))
		} else if cached != nil {
			ps.logger.Debug("Product list retrieved from cache",
				gecho.Field("count", len(cached)),
				gecho.Field("duration", time.Since(startTime)))
			return cached, nil
		}
	}

	products, err := ps.store.ListProducts(ctx, opts)
	if err != nil {
		ps.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("duration", time.Since(startTime)))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	if cacheable && ps.cacheService != nil {
		go func() {
			if err := ps.cacheService.SetProductList(opts.IncludeSoldOut, products); err != nil {
				ps.logger.Warn("Failed to cache product list", gecho.Field("error", err))
			}
		}()
	}

	return products, nil
}

// GetProductByID retrieves a single product, cache first
func (ps *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	startTime := time.Now()

	if ps.cacheService != nil {
		cached, err := ps.cacheService.GetProductByID(id)
		if err != nil {
			ps.logger.Warn("Product cache read failed", gecho.Field("error", err), gecho.Field("id", id))
		} else if cached != nil {
			ps.logger.Debug("Product retrieved from cache", gecho.Field("id", id))
			return cached, nil
		}
	}

	product, err := ps.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if ps.cacheService != nil {
		go func() {
			if err := ps.cacheService.SetProductByID(product); err != nil {
				ps.logger.Warn("Failed to cache product", gecho.Field("error", err), gecho.Field("id", id))
			}
		}()
	}

	ps.logger.Debug("Product fetched by ID",
		gecho.Field("id", id),
		gecho.Field("duration", time.Since(startTime)))
	return product, nil
}

// validateProductInput checks the invariants shared by create and update
func validateProductInput(input *structs.ProductInput) error {
	if input.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", lib.ErrValidation)
	}
	if input.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", lib.ErrValidation)
	}
	if len(input.DetailImages) > tables.MaxDetailImages {
		return fmt.Errorf("%w: at most %d detail images allowed", lib.ErrValidation, tables.MaxDetailImages)
	}
	return nil
}

// CreateProduct adds a catalog item. The sold-out flag is derived from
// the stock level, never taken from the client.
func (ps *ProductService) CreateProduct(ctx context.Context, input *structs.ProductInput) (*tables.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &tables.Product{
		ID:           uuid.New(),
		Name:         input.Name,
		Price:        input.Price,
		Image:        input.Image,
		DetailImages: input.DetailImages,
		Description:  input.Description,
		Details:      input.Details,
		ShippingInfo: input.ShippingInfo,
		Tags:         input.Tags,
		Stock:        input.Stock,
		IsSoldOut:    input.Stock <= 0,
		CreatedAt:    time.Now(),
	}

	created, err := ps.store.CreateProduct(ctx, product)
	if err != nil {
		ps.logger.Error("Failed to create product",
			gecho.Field("error", err),
			gecho.Field("product_name", input.Name))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	ps.invalidateCaches(created.ID)

	ps.logger.Info("Product created",
		gecho.Field("id", created.ID),
		gecho.Field("name", created.Name))
	return created, nil
}

// UpdateProduct replaces the editable fields of a catalog item
func (ps *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *structs.ProductInput) (*tables.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"name":          input.Name,
		"price":         input.Price,
		"image":         input.Image,
		"detail_images": input.DetailImages,
		"description":   input.Description,
		"details":       input.Details,
		"shipping_info": input.ShippingInfo,
		"tags":          input.Tags,
		"stock":         input.Stock,
		"is_sold_out":   input.Stock <= 0,
	}

	updated, err := ps.store.UpdateProduct(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	ps.invalidateCaches(id)

	ps.logger.Info("Product updated", gecho.Field("id", id))
	return updated, nil
}

// DeleteProduct removes a catalog item. Existing order items keep
// their snapshots and are unaffected.
func (ps *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := ps.store.DeleteProduct(ctx, id); err != nil {
		return err
	}

	ps.invalidateCaches(id)

	ps.logger.Info("Product deleted", gecho.Field("id", id))
	return nil
}

func (ps *ProductService) invalidateCaches(id uuid.UUID) {
	if ps.cacheService == nil {
		return
	}
	go func() {
		if err := ps.cacheService.InvalidateProductCaches(id); err != nil {
			ps.logger.Warn("Failed to invalidate product caches",
				gecho.Field("error", err),
				gecho.Field("product_id", id))
		}
	}()
}
