package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rooneyform-backend/internal/dto"
	"rooneyform-backend/internal/model"
)

const testBaseURL = "http://localhost:8080/"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.User{},
		&model.CartItem{},
		&model.Favorite{},
		&model.Order{},
		&model.OrderItem{},
		&model.SizeSubscription{},
		&model.AdminAccount{},
	))

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeNotifier records every outbound message instead of talking to
// Telegram. With failing=true it reports nothing as delivered.
type fakeNotifier struct {
	failing       bool
	adminMessages []string
	sent          map[int64][]string
	keyboards     map[int64]*dto.InlineKeyboardMarkup
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		sent:      make(map[int64][]string),
		keyboards: make(map[int64]*dto.InlineKeyboardMarkup),
	}
}

func (f *fakeNotifier) NotifyAdmins(_ context.Context, text string) bool {
	if f.failing {
		return false
	}
	f.adminMessages = append(f.adminMessages, text)
	return true
}

func (f *fakeNotifier) Send(_ context.Context, chatID int64, text string) bool {
	if f.failing {
		return false
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return true
}

func (f *fakeNotifier) SendWithKeyboard(_ context.Context, chatID int64, text string, keyboard *dto.InlineKeyboardMarkup) bool {
	if f.failing {
		return false
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	f.keyboards[chatID] = keyboard
	return true
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID int64, name string, price float64) *model.Product {
	t.Helper()
	slug := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	product := &model.Product{
		Name:       name,
		Price:      price,
		Size:       "M",
		ImageURL:   "static/" + slug + ".jpg",
		CategoryID: categoryID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCartRow(t *testing.T, db *gorm.DB, userID, productID int64, quantity int) *model.CartItem {
	t.Helper()
	item := &model.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	require.NoError(t, db.Create(item).Error)
	return item
}

func countRows(t *testing.T, db *gorm.DB, value interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(value).Where(query, args...).Count(&count).Error)
	return count
}
