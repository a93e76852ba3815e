package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"aimaster-store/internal/model"
)

// httpError maps service error descriptors onto HTTP statuses.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, model.ErrAuthFailed):
		return echo.NewHTTPError(http.StatusUnauthorized, model.ErrAuthFailed.Error())
	case errors.Is(err, model.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrRemoteUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "backend unavailable")
	case errors.Is(err, model.ErrPaymentFunction):
		return echo.NewHTTPError(http.StatusBadGateway, "payment gateway error")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
