package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"aimaster-store/internal/dto"
	"aimaster-store/internal/middleware"
	"aimaster-store/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	sess, token, err := h.authService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.AuthResponse{
		Token: token,
		User:  sess.Profile,
	})
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	profile, err := h.authService.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, profile)
}

func (h *AuthHandler) Session(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	return c.JSON(http.StatusOK, sess.Profile)
}

func (h *AuthHandler) SignOut(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	h.authService.SignOut(sess.ID)
	return c.NoContent(http.StatusNoContent)
}
