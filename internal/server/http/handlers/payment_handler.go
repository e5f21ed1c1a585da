package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	"github.com/elijahkelechi/Beautytrendy-API/internal/server/http/dto"
)

// PaymentHandler receives confirmation callbacks from the payment gateway.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Webhook handles POST /api/v1/payments/webhook.
//
// Duplicate or out-of-order deliveries are acknowledged with 200 so the
// gateway stops retrying; only malformed payloads are rejected.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == 0 {
		abortWithError(c, fmt.Errorf("%w: malformed confirmation payload", domainErrors.ErrValidation))
		return
	}

	outcome := model.PaymentOutcome(req.Outcome)
	if !outcome.Terminal() {
		abortWithError(c, fmt.Errorf("%w: unknown outcome %q", domainErrors.ErrValidation, req.Outcome))
		return
	}

	status, err := h.facade.ConfirmPayment(c.Request.Context(), req.OrderID, req.PaymentIntentID, outcome)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.WebhookResponse{Status: string(status), Applied: true})
	case errors.Is(err, domainErrors.ErrConflict):
		c.JSON(http.StatusOK, dto.WebhookResponse{Status: string(status), Applied: false})
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		c.JSON(http.StatusOK, dto.WebhookResponse{Status: string(status), Applied: true})
	default:
		abortWithError(c, err)
	}
}
