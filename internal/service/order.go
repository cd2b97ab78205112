package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rooneyform-backend/internal/model"
	"rooneyform-backend/internal/repository"
)

type OrderService interface {
	// PlaceOrder consolidates the user's cart into an immutable order
	// snapshot, clears the cart and triggers the best-effort notifications.
	// With no valid cart rows it fails with ErrEmptyCart; the orphan purge
	// is committed even on that abort.
	PlaceOrder(ctx context.Context, userID int64) (*model.Order, error)
	ListOrders(ctx context.Context, startDate, endDate *time.Time) ([]*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*model.Order, error)
}

type orderServiceImpl struct {
	db        *gorm.DB
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	notifier  NotificationPort
	logger    *slog.Logger
}

func NewOrderService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	notifier NotificationPort,
	logger *slog.Logger,
) OrderService {
	return &orderServiceImpl{
		db:        db,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *orderServiceImpl) PlaceOrder(ctx context.Context, userID int64) (*model.Order, error) {
	cartItems, err := s.cartRepo.ListWithProduct(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	validItems := make([]*model.CartItem, 0, len(cartItems))
	var orphanIDs []int64
	for _, item := range cartItems {
		if item.Product == nil {
			orphanIDs = append(orphanIDs, item.ID)
			continue
		}
		validItems = append(validItems, item)
	}

	// Orphans are purged regardless of whether the order goes through:
	// removing rows that point at deleted products is pure cleanup.
	if err := s.cartRepo.DeleteByIDs(ctx, s.db, orphanIDs); err != nil {
		return nil, fmt.Errorf("purge orphan cart rows: %w", err)
	}

	if len(validItems) == 0 {
		return nil, ErrEmptyCart
	}

	order := &model.Order{Status: model.OrderStatusReceived}
	total := decimal.Zero
	for _, item := range validItems {
		productID := item.Product.ID
		lineTotal := decimal.NewFromFloat(item.Product.Price).
			Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)

		order.Items = append(order.Items, model.OrderItem{
			ProductID:   &productID,
			ProductName: item.Product.Name,
			Price:       item.Product.Price,
			Quantity:    item.Quantity,
		})
	}
	order.TotalPrice = total.InexactFloat64()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.CreateWithItems(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}
		// Full clear, not a targeted delete of the consumed rows: a row
		// added concurrently between the snapshot and this delete is
		// cleared too. Accepted behavior, see DESIGN.md.
		if err := s.cartRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Return the persisted row so server-assigned id and timestamp are
	// populated.
	placed, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}

	// Both sends are best effort: a dead messaging channel never fails a
	// committed order.
	if !s.notifier.NotifyAdmins(ctx, adminOrderSummary(placed, userID)) {
		s.logger.Warn("admin order notification not delivered", "order_id", placed.ID)
	}
	if !s.notifier.NotifyAdmins(ctx, userIntentMessage(userID, validItems)) {
		s.logger.Warn("user intent notification not delivered", "order_id", placed.ID)
	}

	return placed, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, startDate, endDate *time.Time) ([]*model.Order, error) {
	return s.orderRepo.ListByDateRange(ctx, startDate, endDate)
}

func (s *orderServiceImpl) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*model.Order, error) {
	affected, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if affected == 0 {
		return nil, ErrOrderNotFound
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("reload order: %w", err)
	}
	return order, nil
}

func adminOrderSummary(order *model.Order, userID int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Новый заказ #%d\n", order.ID)
	fmt.Fprintf(&b, "Пользователь: %d\n", userID)
	b.WriteString("Позиции:\n")
	for _, item := range order.Items {
		lineTotal := decimal.NewFromFloat(item.Price).
			Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&b, "- %s x%d = %s ₽\n", item.ProductName, item.Quantity, lineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "Итого: %s ₽", decimal.NewFromFloat(order.TotalPrice).StringFixed(2))
	return b.String()
}

// userIntentMessage is the second, differently shaped notification: the
// order restated the way the buyer would dictate it to the admin, one line
// per unit of quantity, labeled by category.
func userIntentMessage(userID int64, items []*model.CartItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💬 Сообщение от пользователя (ID: %d):\n\n", userID)
	b.WriteString("Здравствуйте! Хочу оформить заказ:\n")
	n := 0
	for _, item := range items {
		for q := 0; q < item.Quantity; q++ {
			n++
			fmt.Fprintf(&b, "%d. %s: %s — %s ₽\n",
				n,
				categoryLabel(item.Product),
				item.Product.Name,
				decimal.NewFromFloat(item.Product.Price).StringFixed(2),
			)
		}
	}
	b.WriteString("Подскажите, пожалуйста, как оплатить.")
	return b.String()
}

func categoryLabel(product *model.Product) string {
	if product.Category == nil {
		return "Товар"
	}
	slug := strings.ToLower(product.Category.Slug)
	switch {
	case strings.Contains(slug, "poster"):
		return "Постер"
	case strings.Contains(slug, "shirt"), strings.Contains(slug, "jersey"), strings.Contains(slug, "kit"):
		return "Футболка"
	default:
		return "Товар"
	}
}
