package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"rooneyform-backend/internal/service"
)

// httpError translates domain sentinels into the HTTP taxonomy. Anything
// unrecognized bubbles up to echo's recover/500 path.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrImageRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAlreadyFavorite):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return err
	}
}
