package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"rooneyform-backend/internal/model"
)

type OrderRepository interface {
	CreateWithItems(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	ListByDateRange(ctx context.Context, startDate, endDate *time.Time) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (int64, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

// CreateWithItems inserts the order and its line items in one go via the
// Items association.
func (r *orderRepoImpl) CreateWithItems(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, id).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByDateRange(ctx context.Context, startDate, endDate *time.Time) ([]*model.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC")

	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at <= ?", *endDate)
	}

	var orders []*model.Order
	err := query.Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, id int64, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status)

	return result.RowsAffected, result.Error
}
