package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	"github.com/elijahkelechi/Beautytrendy-API/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestParseSortAcceptsKnownKeys(t *testing.T) {
	sort, err := ParseSort("price,-name,createdAt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.ProductSort{
		{Field: "price"},
		{Field: "name", Desc: true},
		{Field: "created_at"},
	}
	if len(sort) != len(want) {
		t.Fatalf("expected %d sort keys, got %d", len(want), len(sort))
	}
	for i, s := range sort {
		if s != want[i] {
			t.Fatalf("sort key %d: expected %+v, got %+v", i, want[i], s)
		}
	}
}

func TestParseSortRejectsUnknownKey(t *testing.T) {
	if _, err := ParseSort("price,inventory"); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseSortEmptyExpression(t *testing.T) {
	sort, err := ParseSort("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sort != nil {
		t.Fatalf("expected nil sort, got %+v", sort)
	}
}

func TestCatalogSearchRejectsInvalidPaging(t *testing.T) {
	uc := NewCatalogUseCase(test.NewProductRepositoryStub(), test.NewProductCacheStub(), discardLogger())

	if _, err := uc.Search(context.Background(), model.ProductFilter{}, 0, 10, ""); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for page 0, got %v", err)
	}
	if _, err := uc.Search(context.Background(), model.ProductFilter{}, 1, 0, ""); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for limit 0, got %v", err)
	}
}

func TestCatalogSearchPageMath(t *testing.T) {
	products := test.NewProductRepositoryStub()
	products.SearchFn = func(_ context.Context, _ model.ProductFilter, _ []model.ProductSort, offset, limit int) ([]model.Product, int64, error) {
		if offset != 20 || limit != 10 {
			t.Fatalf("unexpected offset/limit: %d/%d", offset, limit)
		}
		return []model.Product{{ID: 21}, {ID: 22}, {ID: 23}}, 23, nil
	}
	uc := NewCatalogUseCase(products, test.NewProductCacheStub(), discardLogger())

	page, err := uc.Search(context.Background(), model.ProductFilter{}, 3, 10, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 23 || page.TotalPages != 3 || page.CurrentPage != 3 {
		t.Fatalf("unexpected page math: %+v", page)
	}
	if page.HasMore {
		t.Fatalf("last page must not report more results")
	}
	if len(page.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(page.Products))
	}
}

func TestCatalogSearchBeyondLastPage(t *testing.T) {
	products := test.NewProductRepositoryStub()
	products.SearchFn = func(context.Context, model.ProductFilter, []model.ProductSort, int, int) ([]model.Product, int64, error) {
		return nil, 23, nil
	}
	uc := NewCatalogUseCase(products, test.NewProductCacheStub(), discardLogger())

	page, err := uc.Search(context.Background(), model.ProductFilter{}, 5, 10, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Products) != 0 || page.HasMore {
		t.Fatalf("expected empty page beyond range, got %+v", page)
	}
}

func TestCatalogProductCacheMissPopulatesCache(t *testing.T) {
	products := test.NewProductRepositoryStub(&model.Product{ID: 5, Name: "serum", Price: 19.5})
	productCache := test.NewProductCacheStub()
	uc := NewCatalogUseCase(products, productCache, discardLogger())

	product, err := uc.Product(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "serum" {
		t.Fatalf("unexpected product: %+v", product)
	}
	if _, ok := productCache.Entries[5]; !ok {
		t.Fatalf("expected product to be cached after read")
	}
}

func TestCatalogProductServedFromCache(t *testing.T) {
	products := test.NewProductRepositoryStub()
	products.GetByIDFn = func(context.Context, int64) (*model.Product, error) {
		t.Fatal("repository should not be hit on cache hit")
		return nil, nil
	}
	productCache := test.NewProductCacheStub()
	productCache.Entries[5] = &model.Product{ID: 5, Name: "serum"}
	uc := NewCatalogUseCase(products, productCache, discardLogger())

	product, err := uc.Product(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "serum" {
		t.Fatalf("unexpected product: %+v", product)
	}
}

func TestCatalogProductCacheFailureFallsThrough(t *testing.T) {
	products := test.NewProductRepositoryStub(&model.Product{ID: 5, Name: "serum"})
	productCache := test.NewProductCacheStub()
	productCache.GetFn = func(context.Context, int64) (*model.Product, error) {
		return nil, errors.New("redis down")
	}
	productCache.SetFn = func(context.Context, *model.Product) error {
		return errors.New("redis down")
	}
	uc := NewCatalogUseCase(products, productCache, discardLogger())

	product, err := uc.Product(context.Background(), 5)
	if err != nil {
		t.Fatalf("cache failure must not break reads: %v", err)
	}
	if product.ID != 5 {
		t.Fatalf("unexpected product: %+v", product)
	}
}

func TestCatalogProductNotFound(t *testing.T) {
	uc := NewCatalogUseCase(test.NewProductRepositoryStub(), test.NewProductCacheStub(), discardLogger())

	if _, err := uc.Product(context.Background(), 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
