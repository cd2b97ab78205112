package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"rooneyform-backend/internal/dto"
	"rooneyform-backend/internal/middleware"
	"rooneyform-backend/internal/service"
)

type UserHandler struct {
	cartService  service.CartService
	orderService service.OrderService
}

func NewUserHandler(cartService service.CartService, orderService service.OrderService) *UserHandler {
	return &UserHandler{
		cartService:  cartService,
		orderService: orderService,
	}
}

func (h *UserHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.cartService.ReadCart(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *UserHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()

	var payload dto.CartItemCreate
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	item, err := h.cartService.AddToCart(ctx, middleware.UserID(c), payload.ProductID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, item)
}

func (h *UserHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item id")
	}

	if err := h.cartService.RemoveFromCart(ctx, middleware.UserID(c), itemID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}

func (h *UserHandler) GetFavorites(c echo.Context) error {
	ctx := c.Request().Context()

	favorites, err := h.cartService.ReadFavorites(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, favorites)
}

func (h *UserHandler) AddFavorite(c echo.Context) error {
	ctx := c.Request().Context()

	var payload dto.FavoriteCreate
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	favorite, err := h.cartService.AddFavorite(ctx, middleware.UserID(c), payload.ProductID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, favorite)
}

func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product id")
	}

	if err := h.cartService.RemoveFavorite(ctx, middleware.UserID(c), productID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}

func (h *UserHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.PlaceOrder(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, order)
}
