package repository

import (
	"context"

	"gorm.io/gorm"

	"rooneyform-backend/internal/model"
)

type ProductRepository interface {
	List(ctx context.Context, search, categorySlug string, limit, offset int) ([]*model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, tx *gorm.DB, product *model.Product) error
	Save(ctx context.Context, tx *gorm.DB, product *model.Product) error
	ReplaceGallery(ctx context.Context, tx *gorm.DB, productID int64, imageURLs []string) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) List(ctx context.Context, search, categorySlug string, limit, offset int) ([]*model.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Preload("Category").
		Preload("GalleryImages").
		Joins("JOIN categories ON categories.id = products.category_id")

	if categorySlug != "" {
		query = query.Where("categories.slug = ?", categorySlug)
	}

	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"products.name LIKE ? OR products.team LIKE ? OR products.brand LIKE ? OR products.league LIKE ?",
			like, like, like, like,
		)
	}

	var products []*model.Product
	err := query.Limit(limit).Offset(offset).Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("GalleryImages").
		First(&product, id).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) Create(ctx context.Context, tx *gorm.DB, product *model.Product) error {
	return tx.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Save(ctx context.Context, tx *gorm.DB, product *model.Product) error {
	return tx.WithContext(ctx).Save(product).Error
}

func (r *productRepoImpl) ReplaceGallery(ctx context.Context, tx *gorm.DB, productID int64, imageURLs []string) error {
	if err := tx.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductImage{}).Error; err != nil {
		return err
	}

	for _, imageURL := range imageURLs {
		image := model.ProductImage{ProductID: productID, ImageURL: imageURL}
		if err := tx.WithContext(ctx).Create(&image).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete removes the product and its gallery. Cart and favorite rows that
// reference it are left in place; the cart service reconciles them away on
// the next read.
func (r *productRepoImpl) Delete(ctx context.Context, id int64) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})

	return deleted, err
}
