package repository

import (
	"context"

	"gorm.io/gorm"

	"rooneyform-backend/internal/model"
)

type FavoriteRepository interface {
	ListWithProduct(ctx context.Context, userID int64) ([]*model.Favorite, error)
	FindByIDWithProduct(ctx context.Context, id int64) (*model.Favorite, error)
	FindByUserAndProduct(ctx context.Context, userID, productID int64) (*model.Favorite, error)
	Create(ctx context.Context, favorite *model.Favorite) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []int64) error
	DeleteByUserAndProduct(ctx context.Context, userID, productID int64) error
}

type favoriteRepoImpl struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepoImpl{
		db: db,
	}
}

func (r *favoriteRepoImpl) ListWithProduct(ctx context.Context, userID int64) ([]*model.Favorite, error) {
	var favorites []*model.Favorite
	err := r.db.WithContext(ctx).
		Preload("Product.Category").
		Preload("Product.GalleryImages").
		Where("user_id = ?", userID).
		Find(&favorites).Error

	if err != nil {
		return nil, err
	}

	return favorites, nil
}

func (r *favoriteRepoImpl) FindByIDWithProduct(ctx context.Context, id int64) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.WithContext(ctx).
		Preload("Product.Category").
		Preload("Product.GalleryImages").
		First(&favorite, id).Error

	if err != nil {
		return nil, err
	}

	return &favorite, nil
}

func (r *favoriteRepoImpl) FindByUserAndProduct(ctx context.Context, userID, productID int64) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&favorite).Error

	if err != nil {
		return nil, err
	}

	return &favorite, nil
}

func (r *favoriteRepoImpl) Create(ctx context.Context, favorite *model.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepoImpl) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.Favorite{}).Error
}

func (r *favoriteRepoImpl) DeleteByUserAndProduct(ctx context.Context, userID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.Favorite{}).Error
}
