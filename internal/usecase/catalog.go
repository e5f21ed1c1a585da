package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/elijahkelechi/Beautytrendy-API/internal/cache"
	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/repository"
)

// CatalogUseCase is the read-only product query engine. It has no side
// effects and is safe for unlimited concurrent callers.
type CatalogUseCase struct {
	products repository.ProductRepository
	cache    cache.ProductCache
	logger   *slog.Logger
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, productCache cache.ProductCache, logger *slog.Logger) *CatalogUseCase {
	return &CatalogUseCase{products: products, cache: productCache, logger: logger}
}

var sortFields = map[string]string{
	"name":      "name",
	"price":     "price",
	"createdAt": "created_at",
}

// ParseSort converts a comma-separated sort expression ("price,-name")
// into whitelisted sort keys.
func ParseSort(expr string) ([]model.ProductSort, error) {
	if expr == "" {
		return nil, nil
	}

	var keys []model.ProductSort
	for _, raw := range strings.Split(expr, ",") {
		key := strings.TrimSpace(raw)
		if key == "" {
			continue
		}
		desc := strings.HasPrefix(key, "-")
		key = strings.TrimPrefix(key, "-")
		field, ok := sortFields[key]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported sort key %q", domainErrors.ErrValidation, key)
		}
		keys = append(keys, model.ProductSort{Field: field, Desc: desc})
	}
	return keys, nil
}

// Search runs a filtered, sorted, paginated catalog query.
func (u *CatalogUseCase) Search(ctx context.Context, filter model.ProductFilter, page, limit int, sortExpr string) (*model.ProductPage, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("%w: invalid page or limit value", domainErrors.ErrValidation)
	}

	sort, err := ParseSort(sortExpr)
	if err != nil {
		return nil, err
	}

	products, total, err := u.products.Search(ctx, filter, sort, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &model.ProductPage{
		Products:    products,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasMore:     page < totalPages,
	}, nil
}

// Product returns one catalog product, served through the snapshot cache.
func (u *CatalogUseCase) Product(ctx context.Context, id int64) (*model.Product, error) {
	if cached, err := u.cache.Get(ctx, id); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		u.logger.Warn("product cache read failed", slog.Int64("product_id", id), slog.String("error", err.Error()))
	}

	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.cache.Set(ctx, product); err != nil {
		u.logger.Warn("product cache write failed", slog.Int64("product_id", id), slog.String("error", err.Error()))
	}
	return product, nil
}
