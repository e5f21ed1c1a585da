package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	"github.com/elijahkelechi/Beautytrendy-API/internal/server/http/dto"
)

// ProductHandler serves the read-only catalog endpoints.
type ProductHandler struct {
	facade CatalogFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade CatalogFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/v1/products.
func (h *ProductHandler) List(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		abortWithError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		abortWithError(c, err)
		return
	}

	filter, err := parseProductFilter(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.facade.SearchProducts(c.Request.Context(), filter, page, limit, c.Query("sort"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	products := make([]dto.ProductResponse, 0, len(result.Products))
	for _, p := range result.Products {
		products = append(products, toProductResponse(p))
	}

	c.JSON(http.StatusOK, dto.ProductListResponse{
		Products:      products,
		TotalProducts: result.Total,
		TotalPages:    result.TotalPages,
		CurrentPage:   result.CurrentPage,
		HasMore:       result.HasMore,
	})
}

// Get handles GET /api/v1/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, fmt.Errorf("%w: invalid product id", domainErrors.ErrValidation))
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": toProductResponse(*product)})
}

func parseProductFilter(c *gin.Context) (model.ProductFilter, error) {
	filter := model.ProductFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Search:   c.Query("search"),
	}

	if v, ok := c.GetQuery("featured"); ok {
		b := v == "true"
		filter.Featured = &b
	}
	if v, ok := c.GetQuery("freeShipping"); ok {
		b := v == "true"
		filter.FreeShipping = &b
	}

	if v, ok := c.GetQuery("price"); ok {
		min, max, err := parsePriceRange(v)
		if err != nil {
			return filter, err
		}
		filter.PriceMin = min
		filter.PriceMax = max
	}

	return filter, nil
}

// parsePriceRange understands the "min-max" query format with either bound optional.
func parsePriceRange(v string) (*float64, *float64, error) {
	parts := strings.SplitN(v, "-", 2)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("%w: price range must look like min-max", domainErrors.ErrValidation)
	}

	var min, max *float64
	if parts[0] != "" {
		f, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid minimum price", domainErrors.ErrValidation)
		}
		min = &f
	}
	if parts[1] != "" {
		f, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid maximum price", domainErrors.ErrValidation)
		}
		max = &f
	}
	return min, max, nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s value", domainErrors.ErrValidation, key)
	}
	return n, nil
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Image:        p.Image,
		Price:        p.Price,
		Category:     p.Category,
		Brand:        p.Brand,
		Featured:     p.Featured,
		FreeShipping: p.FreeShipping,
		Inventory:    p.Inventory,
		CreatedAt:    p.CreatedAt,
	}
}
