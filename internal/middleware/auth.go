package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"rooneyform-backend/internal/repository"
	"rooneyform-backend/internal/service"
)

const (
	telegramUserHeader = "X-Telegram-User-Id"
	userIDKey          = "user_id"
	adminUserKey       = "admin_user"
)

// TelegramAuth resolves the storefront caller from the Telegram user id
// header and lazily creates the user row on first interaction.
func TelegramAuth(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(telegramUserHeader)
			telegramID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid User ID")
			}

			if err := userRepo.EnsureUser(c.Request().Context(), telegramID, nil); err != nil {
				return err
			}

			c.Set(userIDKey, telegramID)
			return next(c)
		}
	}
}

// UserID returns the Telegram user id stashed by TelegramAuth.
func UserID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}

// AdminAuth guards the admin console endpoints with a bearer token.
func AdminAuth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			username, err := authService.ValidateToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(adminUserKey, username)
			return next(c)
		}
	}
}
