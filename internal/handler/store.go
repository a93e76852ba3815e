package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"aimaster-store/internal/dto"
	"aimaster-store/internal/middleware"
	"aimaster-store/internal/service"
)

type StoreHandler struct {
	storeService    service.StoreService
	paymentService  service.PaymentService
	settingsService service.SettingsService
}

func NewStoreHandler(
	storeService service.StoreService,
	paymentService service.PaymentService,
	settingsService service.SettingsService,
) *StoreHandler {
	return &StoreHandler{
		storeService:    storeService,
		paymentService:  paymentService,
		settingsService: settingsService,
	}
}

func (h *StoreHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	return c.JSON(http.StatusOK, h.storeService.Products(ctx, sess))
}

func (h *StoreHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	product, err := h.storeService.ProductByID(ctx, sess, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *StoreHandler) ListBanners(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	return c.JSON(http.StatusOK, h.storeService.ActiveBanners(ctx, sess))
}

func (h *StoreHandler) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()

	settings, err := h.settingsService.Get(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *StoreHandler) MyPurchases(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	return c.JSON(http.StatusOK, h.storeService.MyPurchases(ctx, sess))
}

func (h *StoreHandler) CreatePaymentSession(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	var req dto.PaymentSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.paymentService.Initiate(ctx, sess, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *StoreHandler) RecordOrder(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	var req dto.RecordOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.storeService.RecordOrder(ctx, sess, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, order)
}
