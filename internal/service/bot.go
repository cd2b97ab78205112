package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"rooneyform-backend/internal/dto"
	"rooneyform-backend/internal/repository"
)

var sizeButtons = []string{"XS", "S", "M", "L", "XL"}

const startText = "1. Запустите бота и нажмите на его иконку.\n" +
	"2. Откройте приложение.\n" +
	"3. Добавьте понравившиеся товары в «Избранное» на будущее — или сразу положите в корзину и оформите заказ.\n\n" +
	"Если вы оформляете с компьютера или Android: бот автоматически перенаправит вас в чат с админом Rooneyform " +
	"и сам вставит список выбранных товаров.\n\n" +
	"Если вы оформляете с iPhone: потребуется дополнительный шаг — скопируйте сформированный ботом текст " +
	"и отправьте его админу (чат откроется автоматически).\n\n" +
	"Дополнительно:\n" +
	"— нажмите кнопку с размером ниже, чтобы включить уведомления,\n" +
	"— или кнопку «Отключить уведомления» чтобы их выключить."

const sizeUsageText = "Использование:\n" +
	"/size M — присылать уведомления о новых товарах размера M\n" +
	"/size off — отключить уведомления по размеру"

const sizeDisabledText = "Уведомления по размерам отключены."

const unknownCommandText = "Напишите /start, чтобы получить инструкцию по оформлению заказа.\n" +
	"Или просто нажмите кнопку с размером внизу."

// BotService interprets inbound Telegram updates. It keeps no state of its
// own; SizeSubscription and User rows are its only persistence.
type BotService interface {
	HandleUpdate(ctx context.Context, update *dto.TelegramUpdate) (*dto.WebhookAck, error)
}

type botServiceImpl struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
	notifier NotificationPort
	logger   *slog.Logger
}

func NewBotService(
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
	notifier NotificationPort,
	logger *slog.Logger,
) BotService {
	return &botServiceImpl{
		userRepo: userRepo,
		subRepo:  subRepo,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *botServiceImpl) HandleUpdate(ctx context.Context, update *dto.TelegramUpdate) (*dto.WebhookAck, error) {
	if update.CallbackQuery != nil {
		return s.handleCallback(ctx, update.CallbackQuery)
	}

	message := update.Message
	if message == nil {
		message = update.EditedMessage
	}
	if message == nil {
		// Service events and the like need nothing beyond HTTP 200.
		return &dto.WebhookAck{OK: true}, nil
	}

	if message.Chat == nil || message.Chat.ID == 0 {
		return &dto.WebhookAck{OK: false, Detail: "No chat_id in update"}, nil
	}
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)
	username := usernameOf(message.From)

	if strings.HasPrefix(text, "/start") {
		s.notifier.SendWithKeyboard(ctx, chatID, startText, sizeKeyboard())
		return &dto.WebhookAck{OK: true}, nil
	}

	var reply string
	if strings.HasPrefix(text, "/size") {
		var err error
		reply, err = s.handleSizeCommand(ctx, chatID, text, username)
		if err != nil {
			return nil, err
		}
	} else {
		reply = unknownCommandText
	}

	s.notifier.Send(ctx, chatID, reply)
	return &dto.WebhookAck{OK: true}, nil
}

func (s *botServiceImpl) handleCallback(ctx context.Context, callback *dto.CallbackQuery) (*dto.WebhookAck, error) {
	if callback.From == nil || callback.From.ID == 0 {
		return &dto.WebhookAck{OK: false, Detail: "No user_id in callback_query"}, nil
	}

	data := strings.TrimSpace(callback.Data)
	if value, found := strings.CutPrefix(data, "size:"); found {
		// Buttons are just a shorthand for the equivalent /size command.
		cmdText := "/size " + value
		if strings.EqualFold(value, "OFF") {
			cmdText = "/size off"
		}
		reply, err := s.handleSizeCommand(ctx, callback.From.ID, cmdText, usernameOf(callback.From))
		if err != nil {
			return nil, err
		}
		s.notifier.Send(ctx, callback.From.ID, reply)
	}

	// HTTP 200 is all Telegram needs; answerCallbackQuery is optional.
	return &dto.WebhookAck{OK: true}, nil
}

func (s *botServiceImpl) handleSizeCommand(ctx context.Context, chatID int64, text string, username *string) (string, error) {
	parts := strings.SplitN(text, " ", 2)
	if len(parts) == 1 || strings.TrimSpace(parts[1]) == "" {
		return sizeUsageText, nil
	}
	arg := strings.TrimSpace(parts[1])

	if err := s.userRepo.EnsureUser(ctx, chatID, username); err != nil {
		return "", fmt.Errorf("ensure user: %w", err)
	}

	switch strings.ToLower(arg) {
	case "off", "stop", "cancel":
		if err := s.subRepo.DeleteForUser(ctx, chatID); err != nil {
			return "", fmt.Errorf("delete size subscription: %w", err)
		}
		return sizeDisabledText, nil
	}

	size := strings.ToUpper(arg)
	if err := s.subRepo.Replace(ctx, chatID, size); err != nil {
		return "", fmt.Errorf("replace size subscription: %w", err)
	}

	return fmt.Sprintf("Готово! Буду присылать новые товары с размером %s.", size), nil
}

func sizeKeyboard() *dto.InlineKeyboardMarkup {
	sizeRow := make([]dto.InlineKeyboardButton, 0, len(sizeButtons))
	for _, size := range sizeButtons {
		sizeRow = append(sizeRow, dto.InlineKeyboardButton{
			Text:         size,
			CallbackData: "size:" + size,
		})
	}
	return &dto.InlineKeyboardMarkup{
		InlineKeyboard: [][]dto.InlineKeyboardButton{
			sizeRow,
			{{Text: "Отключить уведомления", CallbackData: "size:OFF"}},
		},
	}
}

func usernameOf(user *dto.TelegramUser) *string {
	if user == nil || user.Username == "" {
		return nil
	}
	username := user.Username
	return &username
}
