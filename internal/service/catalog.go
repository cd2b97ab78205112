package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rooneyform-backend/internal/dto"
	"rooneyform-backend/internal/media"
	"rooneyform-backend/internal/model"
	"rooneyform-backend/internal/repository"
)

const (
	productListDefaultLimit = 300
	productListMaxLimit     = 500
)

type CatalogService interface {
	ListProducts(ctx context.Context, search, categorySlug string, limit, offset int) ([]*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)

	CreateProduct(ctx context.Context, payload *dto.ProductCreate) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, payload *dto.ProductUpdate) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type catalogServiceImpl struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	subRepo      repository.SubscriptionRepository
	notifier     NotificationPort
	baseURL      string
	logger       *slog.Logger
}

func NewCatalogService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	subRepo repository.SubscriptionRepository,
	notifier NotificationPort,
	baseURL string,
	logger *slog.Logger,
) CatalogService {
	return &catalogServiceImpl{
		db:           db,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		subRepo:      subRepo,
		notifier:     notifier,
		baseURL:      baseURL,
		logger:       logger,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, search, categorySlug string, limit, offset int) ([]*model.Product, error) {
	if limit <= 0 {
		limit = productListDefaultLimit
	}
	if limit > productListMaxLimit {
		limit = productListMaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.List(ctx, search, categorySlug, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	for _, product := range products {
		media.NormalizeProduct(s.baseURL, product)
	}
	return products, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	media.NormalizeProduct(s.baseURL, product)
	return product, nil
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, payload *dto.ProductCreate) (*model.Product, error) {
	imageURL := payload.ImageURL
	gallery := payload.Gallery
	// The first gallery image is promoted to primary when no primary is set.
	if imageURL == "" && len(gallery) > 0 {
		imageURL = gallery[0]
		gallery = gallery[1:]
	}
	if imageURL == "" {
		return nil, ErrImageRequired
	}

	product := &model.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		TgPostURL:   payload.TgPostURL,
		Team:        payload.Team,
		Size:        payload.Size,
		Brand:       payload.Brand,
		League:      payload.League,
		Season:      payload.Season,
		KitType:     payload.KitType,
		ImageURL:    imageURL,
	}
	for _, image := range gallery {
		if image == "" || image == imageURL {
			continue
		}
		product.GalleryImages = append(product.GalleryImages, model.ProductImage{ImageURL: image})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := s.categoryRepo.GetOrCreateBySlug(ctx, tx, payload.CategorySlug)
		if err != nil {
			return fmt.Errorf("get or create category: %w", err)
		}
		product.CategoryID = category.ID

		if err := s.productRepo.Create(ctx, tx, product); err != nil {
			return fmt.Errorf("store product in db: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifySizeSubscribers(ctx, product)

	return s.GetProduct(ctx, product.ID)
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, id int64, payload *dto.ProductUpdate) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if payload.Gallery != nil {
			gallery := *payload.Gallery
			imageURL := payload.ImageURL
			if imageURL == nil && len(gallery) > 0 {
				imageURL = &gallery[0]
				gallery = gallery[1:]
			}
			if imageURL != nil {
				product.ImageURL = *imageURL
			}
			replacement := make([]string, 0, len(gallery))
			for _, image := range gallery {
				if image == "" || image == product.ImageURL {
					continue
				}
				replacement = append(replacement, image)
			}
			if err := s.productRepo.ReplaceGallery(ctx, tx, product.ID, replacement); err != nil {
				return fmt.Errorf("replace gallery: %w", err)
			}
		} else if payload.ImageURL != nil {
			product.ImageURL = *payload.ImageURL
		}

		if payload.CategorySlug != nil {
			category, err := s.categoryRepo.GetOrCreateBySlug(ctx, tx, *payload.CategorySlug)
			if err != nil {
				return fmt.Errorf("get or create category: %w", err)
			}
			product.CategoryID = category.ID
		}

		applyProductUpdate(product, payload)

		// Save only the product row; associations were handled above.
		product.GalleryImages = nil
		product.Category = nil
		return s.productRepo.Save(ctx, tx, product)
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, id)
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, id int64) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if deleted == 0 {
		return ErrProductNotFound
	}
	return nil
}

// notifySizeSubscribers fans a new-arrival message out to every user
// subscribed to the product's size. Best effort, same policy as order
// notifications.
func (s *catalogServiceImpl) notifySizeSubscribers(ctx context.Context, product *model.Product) {
	if product.Size == "" {
		return
	}

	subs, err := s.subRepo.ListBySize(ctx, product.Size)
	if err != nil {
		s.logger.Error("failed to list size subscribers", "size", product.Size, "error", err)
		return
	}

	text := fmt.Sprintf(
		"Новинка вашего размера (%s)!\n%s — %s ₽",
		product.Size,
		product.Name,
		decimal.NewFromFloat(product.Price).StringFixed(2),
	)
	for _, sub := range subs {
		s.notifier.Send(ctx, sub.UserID, text)
	}
}

func applyProductUpdate(product *model.Product, payload *dto.ProductUpdate) {
	if payload.Name != nil {
		product.Name = *payload.Name
	}
	if payload.Description != nil {
		product.Description = *payload.Description
	}
	if payload.Price != nil {
		product.Price = *payload.Price
	}
	if payload.TgPostURL != nil {
		product.TgPostURL = payload.TgPostURL
	}
	if payload.Team != nil {
		product.Team = *payload.Team
	}
	if payload.Size != nil {
		product.Size = *payload.Size
	}
	if payload.Brand != nil {
		product.Brand = payload.Brand
	}
	if payload.League != nil {
		product.League = payload.League
	}
	if payload.Season != nil {
		product.Season = payload.Season
	}
	if payload.KitType != nil {
		product.KitType = payload.KitType
	}
}
