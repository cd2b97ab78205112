package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rooneyform-backend/internal/config"
	"rooneyform-backend/internal/dto"
)

// TelegramClient wraps the bot-API sendMessage call. Delivery semantics
// (per-destination fan-out, swallowing failures) live in the notifier
// service; this client only knows how to perform one send.
type TelegramClient interface {
	SendMessage(ctx context.Context, chatID string, text string, replyMarkup *dto.InlineKeyboardMarkup) error
	Enabled() bool
}

type telegramClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	botToken   string
}

func NewTelegramClient(tgCfg *config.Telegram) TelegramClient {
	return &telegramClientImpl{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseApiURL: tgCfg.BaseApiURL,
		botToken:   tgCfg.BotToken,
	}
}

func (c *telegramClientImpl) Enabled() bool {
	return c.botToken != ""
}

func (c *telegramClientImpl) SendMessage(ctx context.Context, chatID string, text string, replyMarkup *dto.InlineKeyboardMarkup) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	if replyMarkup != nil {
		payload["reply_markup"] = replyMarkup
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal req payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseApiURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram sendMessage status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
