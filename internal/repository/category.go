package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"rooneyform-backend/internal/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]*model.Category, error)
	GetOrCreateBySlug(ctx context.Context, tx *gorm.DB, slug string) (*model.Category, error)
}

type categoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepoImpl{
		db: db,
	}
}

func (r *categoryRepoImpl) List(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.db.WithContext(ctx).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepoImpl) GetOrCreateBySlug(ctx context.Context, tx *gorm.DB, slug string) (*model.Category, error) {
	var category model.Category
	err := tx.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category = model.Category{
		Name: titleFromSlug(slug),
		Slug: slug,
	}
	if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

func titleFromSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
