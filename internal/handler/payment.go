package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"aimaster-store/internal/dto"
	"aimaster-store/internal/model"
	"aimaster-store/internal/service"
)

// PaymentHandler hosts the create-payment-order function. It speaks the
// function's own wire contract: 200 with {sessionToken, orderId} or 400
// with {error}.
type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) CreatePaymentOrder(c echo.Context) error {
	ctx := c.Request().Context()

	if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
		return functionError(c, "missing Authorization header")
	}

	var req dto.PaymentOrderRequest
	if err := c.Bind(&req); err != nil {
		return functionError(c, "invalid request body")
	}

	result, err := h.paymentService.CreateGatewayOrder(ctx, &req)
	if err != nil {
		if errors.Is(err, model.ErrValidation) || errors.Is(err, model.ErrPaymentFunction) {
			return functionError(c, err.Error())
		}
		return functionError(c, "failed to create payment order")
	}

	return c.JSON(http.StatusOK, result)
}

func functionError(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
