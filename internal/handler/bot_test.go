package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rooneyform-backend/internal/dto"
)

type stubBotService struct {
	lastUpdate *dto.TelegramUpdate
	ack        *dto.WebhookAck
}

func (s *stubBotService) HandleUpdate(_ context.Context, update *dto.TelegramUpdate) (*dto.WebhookAck, error) {
	s.lastUpdate = update
	return s.ack, nil
}

func TestWebhookMalformedPayload(t *testing.T) {
	h := NewBotHandler(&stubBotService{ack: &dto.WebhookAck{OK: true}})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/telegram/webhook", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Webhook(e.NewContext(req, rec))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestWebhookPassesDecodedUpdate(t *testing.T) {
	stub := &stubBotService{ack: &dto.WebhookAck{OK: true}}
	h := NewBotHandler(stub)

	body := `{"update_id":1,"message":{"chat":{"id":42},"text":"/start"}}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/telegram/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Webhook(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.lastUpdate.Message)
	assert.Equal(t, int64(42), stub.lastUpdate.Message.Chat.ID)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}
