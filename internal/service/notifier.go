package service

import (
	"context"
	"log/slog"
	"strconv"

	"rooneyform-backend/internal/client"
	"rooneyform-backend/internal/config"
	"rooneyform-backend/internal/dto"
)

// NotificationPort is the fire-and-forget messaging boundary. Every method
// reports whether at least one destination accepted the message; failures
// are logged and swallowed, never returned, so a broken messaging channel
// can never turn a successful unit of work into a failed response.
type NotificationPort interface {
	NotifyAdmins(ctx context.Context, text string) bool
	Send(ctx context.Context, chatID int64, text string) bool
	SendWithKeyboard(ctx context.Context, chatID int64, text string, keyboard *dto.InlineKeyboardMarkup) bool
}

type telegramNotifier struct {
	tgClient     client.TelegramClient
	adminChatIDs []string
	logger       *slog.Logger
}

func NewTelegramNotifier(tgClient client.TelegramClient, tgCfg *config.Telegram, logger *slog.Logger) NotificationPort {
	return &telegramNotifier{
		tgClient:     tgClient,
		adminChatIDs: tgCfg.AdminChatIDs,
		logger:       logger,
	}
}

// NotifyAdmins fans the message out to every configured admin chat. Each
// destination fails independently. With no token or no destinations the
// feature is disabled and no network I/O happens.
func (n *telegramNotifier) NotifyAdmins(ctx context.Context, text string) bool {
	if !n.tgClient.Enabled() || len(n.adminChatIDs) == 0 {
		n.logger.Warn("admin notification skipped: missing bot token or admin chat ids")
		return false
	}

	delivered := false
	for _, chatID := range n.adminChatIDs {
		if err := n.tgClient.SendMessage(ctx, chatID, text, nil); err != nil {
			n.logger.Error("failed to send admin message", "chat_id", chatID, "error", err)
			continue
		}
		delivered = true
	}
	return delivered
}

func (n *telegramNotifier) Send(ctx context.Context, chatID int64, text string) bool {
	return n.send(ctx, chatID, text, nil)
}

func (n *telegramNotifier) SendWithKeyboard(ctx context.Context, chatID int64, text string, keyboard *dto.InlineKeyboardMarkup) bool {
	return n.send(ctx, chatID, text, keyboard)
}

func (n *telegramNotifier) send(ctx context.Context, chatID int64, text string, keyboard *dto.InlineKeyboardMarkup) bool {
	if !n.tgClient.Enabled() {
		n.logger.Warn("telegram message skipped: missing bot token")
		return false
	}

	if err := n.tgClient.SendMessage(ctx, strconv.FormatInt(chatID, 10), text, keyboard); err != nil {
		n.logger.Error("failed to send telegram message", "chat_id", chatID, "error", err)
		return false
	}
	return true
}
