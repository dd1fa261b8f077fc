package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Products holding more than this many units cannot be deleted.
const maxDeletableStock = 10

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
}

type productService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	ttl       time.Duration
	sanitizer *bluemonday.Policy
	loads     singleflight.Group
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache, ttl time.Duration) ProductService {
	return &productService{
		repo:      repo,
		cache:     cache,
		ttl:       ttl,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *productService) clean(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return appErrors.AddValidationError("price", "must not be negative")
	}

	return nil
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New(),
		CategoryID:  req.CategoryID,
		Name:        s.clean(req.Name),
		Description: s.clean(req.Description),
		Price:       req.Price,
		Stock:       req.Stock,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrReferenceViolation) {
			return nil, appErrors.BadRequestError("Category does not exist").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

// GetProductByID reads through the cache. Concurrent misses for the same
// product share a single database load.
func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.ProductKeyPrefix, id.String())

	var cached models.Product

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	metrics.RecordCacheLookup(cache.ProductKeyPrefix, found)

	if found {
		return &cached, nil
	}

	// The shared load must outlive any single caller, so it runs detached from
	// the caller's cancellation and each caller waits on its own context.
	loadCtx := context.WithoutCancel(ctx)

	results := s.loads.DoChan(key, func() (any, error) {

		product, err := s.repo.GetProductByID(loadCtx, id)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(loadCtx, key, product, s.ttl); err != nil {
			logger.Warn("Product cache write failed", slog.String("key", key), slog.Any("error", err))
		}

		return product, nil
	})

	select {
	case <-ctx.Done():
		logger.Warn("Product lookup abandoned", slog.String("key", key), slog.Any("error", ctx.Err()))
		return nil, appErrors.InternalError("Request canceled").WithError(ctx.Err())

	case res := <-results:
		if res.Err != nil {
			return nil, repoError(res.Err, "Product not found", "Failed to fetch product")
		}

		// every caller gets its own copy of the shared result
		product := *res.Val.(*models.Product)

		return &product, nil
	}
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Product not found", "Failed to fetch product")
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = s.clean(*req.Name)
	}
	if req.Description != nil {
		product.Description = s.clean(*req.Description)
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrReferenceViolation) {
			return nil, appErrors.BadRequestError("Category does not exist").WithError(err)
		}
		return nil, repoError(err, "Product not found", "Failed to update product")
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return repoError(err, "Product not found", "Failed to fetch product")
	}

	if product.Stock > maxDeletableStock {
		return appErrors.ConflictError("Product cannot be deleted while more than 10 units are in stock")
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReferenceViolation) {
			return appErrors.ConflictError("Product is referenced by existing orders").WithError(err)
		}
		return repoError(err, "Product not found", "Failed to delete product")
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	key := cache.Key(cache.ProductKeyPrefix, id.String())

	if err := s.cache.Delete(ctx, key); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Product cache invalidation failed", slog.String("key", key), slog.Any("error", err))
	}
}

// page means "page number requested"
// pageSize means "number of products to be displayed per page"
func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {

	products, total, err := s.repo.ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}
