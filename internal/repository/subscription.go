package repository

import (
	"context"

	"gorm.io/gorm"

	"rooneyform-backend/internal/model"
)

type SubscriptionRepository interface {
	// Replace drops any existing subscription for the user and inserts the
	// new size in the same transaction, keeping at most one row per user.
	Replace(ctx context.Context, userID int64, size string) error
	DeleteForUser(ctx context.Context, userID int64) error
	FindByUser(ctx context.Context, userID int64) (*model.SizeSubscription, error)
	ListBySize(ctx context.Context, size string) ([]*model.SizeSubscription, error)
}

type subscriptionRepoImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepoImpl{
		db: db,
	}
}

func (r *subscriptionRepoImpl) Replace(ctx context.Context, userID int64, size string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&model.SizeSubscription{}).Error; err != nil {
			return err
		}
		sub := model.SizeSubscription{UserID: userID, Size: size}
		return tx.Create(&sub).Error
	})
}

func (r *subscriptionRepoImpl) DeleteForUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.SizeSubscription{}).Error
}

func (r *subscriptionRepoImpl) FindByUser(ctx context.Context, userID int64) (*model.SizeSubscription, error) {
	var sub model.SizeSubscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&sub).Error

	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subscriptionRepoImpl) ListBySize(ctx context.Context, size string) ([]*model.SizeSubscription, error) {
	var subs []*model.SizeSubscription
	err := r.db.WithContext(ctx).
		Where("size = ?", size).
		Find(&subs).Error

	if err != nil {
		return nil, err
	}

	return subs, nil
}
