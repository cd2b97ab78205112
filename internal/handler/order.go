package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"rooneyform-backend/internal/dto"
	"rooneyform-backend/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	startDate, err := parseDateParam(c.QueryParam("start_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid start date")
	}
	endDate, err := parseDateParam(c.QueryParam("end_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid end date")
	}

	orders, err := h.orderService.ListOrders(ctx, startDate, endDate)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order id")
	}

	var payload dto.OrderStatusUpdate
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	order, err := h.orderService.UpdateOrderStatus(ctx, orderID, payload.Status)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return &parsed, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
