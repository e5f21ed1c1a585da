package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	"github.com/elijahkelechi/Beautytrendy-API/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/v1/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%w: malformed order payload", domainErrors.ErrValidation))
		return
	}

	items := make([]model.CartItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		items = append(items, model.CartItem{ProductID: item.Product, Quantity: item.Quantity})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUserID(c), items, model.ShippingDetails{
		Name:    req.FormName,
		Address: req.FormAddress,
		City:    req.FormCity,
		State:   req.FormState,
		Country: req.FormCountry,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": toOrderResponse(*order)})
}

// ClientSecret handles POST /api/v1/orders/clientsSecret.
func (h *OrderHandler) ClientSecret(c *gin.Context) {
	var req dto.ClientSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == 0 {
		abortWithError(c, fmt.Errorf("%w: order id is required", domainErrors.ErrValidation))
		return
	}

	secret, err := h.facade.OrderClientSecret(c.Request.Context(), CurrentUserID(c), IsAdmin(c), req.OrderID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ClientSecretResponse{ClientSecret: secret})
}

// ListAll handles GET /api/v1/orders (admin only).
func (h *OrderHandler) ListAll(c *gin.Context) {
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

	result, err := h.facade.Orders(c.Request.Context(), page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	orders := make([]dto.OrderResponse, 0, len(result.Orders))
	for _, o := range result.Orders {
		orders = append(orders, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{
		Orders:      orders,
		TotalOrders: result.Total,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
		HasMore:     result.HasMore,
	})
}

// ListMine handles GET /api/v1/orders/currentUserOrders.
func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.facade.UserOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, gin.H{"orders": response})
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := orderIDParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), IsAdmin(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": toOrderResponse(*order)})
}

// Update handles PATCH /api/v1/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := orderIDParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		abortWithError(c, fmt.Errorf("%w: status is required", domainErrors.ErrValidation))
		return
	}

	to := model.OrderStatus(req.Status)
	if to == model.OrderStatusDelivered && !IsAdmin(c) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), CurrentUserID(c), IsAdmin(c), id, to)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": toOrderResponse(*order)})
}

func orderIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid order id", domainErrors.ErrValidation)
	}
	return id, nil
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			Product:  item.ProductID,
			Name:     item.Name,
			Image:    item.Image,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	return dto.OrderResponse{
		ID:              order.ID,
		User:            order.UserID,
		OrderItems:      items,
		Subtotal:        order.Subtotal,
		Tax:             order.Tax,
		ShippingFee:     order.ShippingFee,
		Total:           order.Total,
		Status:          string(order.Status),
		FormName:        order.Shipping.Name,
		FormAddress:     order.Shipping.Address,
		FormCity:        order.Shipping.City,
		FormState:       order.Shipping.State,
		FormCountry:     order.Shipping.Country,
		ClientSecret:    order.ClientSecret,
		PaymentIntentID: order.PaymentIntentID,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
