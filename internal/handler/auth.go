package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rooneyform-backend/internal/dto"
	"rooneyform-backend/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var payload dto.AdminLoginRequest
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if payload.Username == "" || payload.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	token, err := h.authService.Login(ctx, payload.Username, payload.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
