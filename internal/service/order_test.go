package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rooneyform-backend/internal/model"
	"rooneyform-backend/internal/repository"
)

func newOrderService(t *testing.T) (OrderService, *gorm.DB, *fakeNotifier) {
	t.Helper()
	db := setupTestDB(t)
	notifier := newFakeNotifier()
	svc := NewOrderService(
		db,
		repository.NewCartRepository(db),
		repository.NewOrderRepository(db),
		notifier,
		testLogger(),
	)
	return svc, db, notifier
}

func TestPlaceOrderConsolidatesCart(t *testing.T) {
	svc, db, notifier := newOrderService(t)
	ctx := context.Background()

	category := seedCategory(t, db, "Shirts", "shirts")
	shirtA := seedProduct(t, db, category.ID, "Shirt A", 85)
	shirtB := seedProduct(t, db, category.ID, "Shirt B", 90)
	seedCartRow(t, db, 100, shirtA.ID, 1)
	seedCartRow(t, db, 100, shirtB.ID, 1)

	order, err := svc.PlaceOrder(ctx, 100)
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, model.OrderStatusReceived, order.Status)
	assert.Equal(t, 175.0, order.TotalPrice)
	require.Len(t, order.Items, 2)

	// Total is exactly the sum of the line totals.
	sum := 0.0
	for _, item := range order.Items {
		sum += item.Price * float64(item.Quantity)
	}
	assert.Equal(t, order.TotalPrice, sum)

	// The cart is fully cleared.
	assert.Equal(t, int64(0), countRows(t, db, &model.CartItem{}, "user_id = ?", 100))

	// Two independent notifications went out.
	require.Len(t, notifier.adminMessages, 2)
	assert.Contains(t, notifier.adminMessages[0], "Новый заказ")
	assert.Contains(t, notifier.adminMessages[0], "Shirt A x1 = 85.00 ₽")
	assert.Contains(t, notifier.adminMessages[0], "Итого: 175.00 ₽")
	assert.Contains(t, notifier.adminMessages[1], "Хочу оформить заказ")
	assert.Contains(t, notifier.adminMessages[1], "Футболка: Shirt A")
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, db, _ := newOrderService(t)

	_, err := svc.PlaceOrder(context.Background(), 100)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, int64(0), countRows(t, db, &model.Order{}, "1 = 1"))
}

func TestPlaceOrderOnlyOrphansFailsButPurges(t *testing.T) {
	svc, db, _ := newOrderService(t)
	ctx := context.Background()

	category := seedCategory(t, db, "Shirts", "shirts")
	product := seedProduct(t, db, category.ID, "Shirt A", 85)
	seedCartRow(t, db, 100, product.ID, 1)
	require.NoError(t, db.Delete(&model.Product{}, product.ID).Error)

	_, err := svc.PlaceOrder(ctx, 100)
	assert.ErrorIs(t, err, ErrEmptyCart)

	// No order was created, but the orphan purge is committed.
	assert.Equal(t, int64(0), countRows(t, db, &model.Order{}, "1 = 1"))
	assert.Equal(t, int64(0), countRows(t, db, &model.CartItem{}, "user_id = ?", 100))
}

func TestPlaceOrderFreezesLineItems(t *testing.T) {
	svc, db, _ := newOrderService(t)
	ctx := context.Background()

	category := seedCategory(t, db, "Shirts", "shirts")
	product := seedProduct(t, db, category.ID, "Shirt A", 85)
	seedCartRow(t, db, 100, product.ID, 1)

	order, err := svc.PlaceOrder(ctx, 100)
	require.NoError(t, err)

	// Mutate and then delete the source product.
	require.NoError(t, db.Model(&model.Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{"name": "Renamed", "price": 999.0}).Error)
	require.NoError(t, db.Delete(&model.Product{}, product.ID).Error)

	var stored model.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&stored).Error)
	assert.Equal(t, "Shirt A", stored.ProductName)
	assert.Equal(t, 85.0, stored.Price)
	assert.Equal(t, 1, stored.Quantity)
}

func TestPlaceOrderSucceedsWhenNotifierIsDown(t *testing.T) {
	svc, db, notifier := newOrderService(t)
	notifier.failing = true
	ctx := context.Background()

	category := seedCategory(t, db, "Shirts", "shirts")
	product := seedProduct(t, db, category.ID, "Shirt A", 85)
	seedCartRow(t, db, 100, product.ID, 1)

	order, err := svc.PlaceOrder(ctx, 100)
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, int64(0), countRows(t, db, &model.CartItem{}, "user_id = ?", 100))
}

func TestListOrdersDateRange(t *testing.T) {
	svc, db, _ := newOrderService(t)
	ctx := context.Background()

	old := &model.Order{TotalPrice: 10, Status: model.OrderStatusReceived,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	recent := &model.Order{TotalPrice: 20, Status: model.OrderStatusReceived,
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, db.Create(recent).Error)

	all, err := svc.ListOrders(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, recent.ID, all[0].ID, "newest first")

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	filtered, err := svc.ListOrders(ctx, &from, nil)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, recent.ID, filtered[0].ID)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, db, _ := newOrderService(t)
	ctx := context.Background()

	order := &model.Order{TotalPrice: 10, Status: model.OrderStatusReceived}
	require.NoError(t, db.Create(order).Error)

	updated, err := svc.UpdateOrderStatus(ctx, order.ID, model.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, updated.Status)

	_, err = svc.UpdateOrderStatus(ctx, 9999, model.OrderStatusPaid)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUserIntentMessageLabelsByCategory(t *testing.T) {
	shirts := &model.Category{ID: 1, Name: "Shirts", Slug: "shirts"}
	posters := &model.Category{ID: 2, Name: "Posters", Slug: "posters"}
	other := &model.Category{ID: 3, Name: "Scarves", Slug: "scarves"}

	items := []*model.CartItem{
		{Quantity: 1, Product: &model.Product{Name: "Shirt A", Price: 85, Category: shirts}},
		{Quantity: 1, Product: &model.Product{Name: "Poster B", Price: 15, Category: posters}},
		{Quantity: 2, Product: &model.Product{Name: "Scarf C", Price: 20, Category: other}},
	}

	text := userIntentMessage(100, items)

	assert.Contains(t, text, "Сообщение от пользователя (ID: 100)")
	assert.Contains(t, text, "1. Футболка: Shirt A — 85.00 ₽")
	assert.Contains(t, text, "2. Постер: Poster B — 15.00 ₽")
	assert.Contains(t, text, "3. Товар: Scarf C — 20.00 ₽")
	// One line per unit of quantity.
	assert.Contains(t, text, "4. Товар: Scarf C — 20.00 ₽")
}
