package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"aimaster-store/internal/dto"
	"aimaster-store/internal/middleware"
	"aimaster-store/internal/model"
	"aimaster-store/internal/service"
)

// AdminHandler exposes the back-office data operations. Unlike the
// storefront reads, write failures here surface verbatim for operator
// action.
type AdminHandler struct {
	storeService    service.StoreService
	settingsService service.SettingsService
}

func NewAdminHandler(storeService service.StoreService, settingsService service.SettingsService) *AdminHandler {
	return &AdminHandler{
		storeService:    storeService,
		settingsService: settingsService,
	}
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	return c.JSON(http.StatusOK, h.storeService.Products(ctx, sess))
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	product, err := h.storeService.CreateProduct(ctx, sess, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	var patch model.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	product, err := h.storeService.UpdateProduct(ctx, sess, c.Param("id"), patch)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	if err := h.storeService.DeleteProduct(ctx, sess, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ListBanners(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	return c.JSON(http.StatusOK, h.storeService.AllBanners(ctx, sess))
}

func (h *AdminHandler) CreateBanner(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	var req dto.BannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	banner, err := h.storeService.CreateBanner(ctx, sess, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, banner)
}

func (h *AdminHandler) SetBannerActive(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	var req dto.BannerActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.storeService.SetBannerActive(ctx, sess, c.Param("id"), req.Active); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) DeleteBanner(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	if err := h.storeService.DeleteBanner(ctx, sess, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	return c.JSON(http.StatusOK, h.storeService.AllOrders(ctx, sess))
}

func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	settings, err := h.settingsService.Update(ctx, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, settings)
}
