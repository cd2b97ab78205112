package repository

import (
	"context"

	"gorm.io/gorm"

	"rooneyform-backend/internal/model"
)

type CartRepository interface {
	ListWithProduct(ctx context.Context, userID int64) ([]*model.CartItem, error)
	FindByIDWithProduct(ctx context.Context, id int64) (*model.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID int64) (*model.CartItem, error)
	FindByIDForUser(ctx context.Context, id, userID int64) (*model.CartItem, error)
	Create(ctx context.Context, item *model.CartItem) error
	PinQuantity(ctx context.Context, ids []int64) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []int64) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID int64) error
	Delete(ctx context.Context, item *model.CartItem) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

// ListWithProduct preloads the referenced product with its category and
// gallery. Rows whose product has been deleted come back with a nil Product.
func (r *cartRepoImpl) ListWithProduct(ctx context.Context, userID int64) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product.Category").
		Preload("Product.GalleryImages").
		Where("user_id = ?", userID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) FindByIDWithProduct(ctx context.Context, id int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product.Category").
		Preload("Product.GalleryImages").
		First(&item, id).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) FindByUserAndProduct(ctx context.Context, userID, productID int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) FindByIDForUser(ctx context.Context, id, userID int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) Create(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepoImpl) PinQuantity(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id IN ?", ids).
		Update("quantity", 1).Error
}

func (r *cartRepoImpl) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) DeleteByUser(ctx context.Context, tx *gorm.DB, userID int64) error {
	return tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) Delete(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Delete(item).Error
}
