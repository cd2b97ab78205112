package dto

import "rooneyform-backend/internal/model"

type CartItemCreate struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type FavoriteCreate struct {
	ProductID int64 `json:"product_id"`
}

type ProductCreate struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	TgPostURL    *string  `json:"tg_post_url"`
	Team         string   `json:"team"`
	Size         string   `json:"size"`
	Brand        *string  `json:"brand"`
	League       *string  `json:"league"`
	Season       *string  `json:"season"`
	KitType      *string  `json:"kit_type"`
	ImageURL     string   `json:"image_url"`
	Gallery      []string `json:"gallery"`
	CategorySlug string   `json:"category_slug"`
}

// ProductUpdate is a partial update: nil means "leave unchanged".
type ProductUpdate struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price"`
	TgPostURL    *string   `json:"tg_post_url"`
	Team         *string   `json:"team"`
	Size         *string   `json:"size"`
	Brand        *string   `json:"brand"`
	League       *string   `json:"league"`
	Season       *string   `json:"season"`
	KitType      *string   `json:"kit_type"`
	ImageURL     *string   `json:"image_url"`
	Gallery      *[]string `json:"gallery"`
	CategorySlug *string   `json:"category_slug"`
}

type ProductResponse struct {
	model.Product
	Gallery []string `json:"gallery"`
}

type OrderStatusUpdate struct {
	Status string `json:"status"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UploadResponse struct {
	Files []string `json:"files"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type WebhookAck struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// -------- telegram update payload --------

type TelegramUpdate struct {
	UpdateID      int64            `json:"update_id"`
	Message       *TelegramMessage `json:"message"`
	EditedMessage *TelegramMessage `json:"edited_message"`
	CallbackQuery *CallbackQuery   `json:"callback_query"`
}

type TelegramMessage struct {
	MessageID int64         `json:"message_id"`
	From      *TelegramUser `json:"from"`
	Chat      *TelegramChat `json:"chat"`
	Text      string        `json:"text"`
}

type TelegramChat struct {
	ID int64 `json:"id"`
}

type TelegramUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type CallbackQuery struct {
	ID   string        `json:"id"`
	From *TelegramUser `json:"from"`
	Data string        `json:"data"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}
