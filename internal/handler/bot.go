package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rooneyform-backend/internal/dto"
	"rooneyform-backend/internal/service"
)

type BotHandler struct {
	botService service.BotService
}

func NewBotHandler(botService service.BotService) *BotHandler {
	return &BotHandler{
		botService: botService,
	}
}

func (h *BotHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	var update dto.TelegramUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	ack, err := h.botService.HandleUpdate(ctx, &update)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ack)
}
