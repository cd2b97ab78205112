package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rooneyform-backend/internal/dto"
	"rooneyform-backend/internal/model"
	"rooneyform-backend/internal/repository"
)

func newCatalogService(t *testing.T) (CatalogService, *gorm.DB, *fakeNotifier) {
	t.Helper()
	db := setupTestDB(t)
	notifier := newFakeNotifier()
	svc := NewCatalogService(
		db,
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewSubscriptionRepository(db),
		notifier,
		testBaseURL,
		testLogger(),
	)
	return svc, db, notifier
}

func TestCreateProductPromotesGalleryImage(t *testing.T) {
	svc, db, _ := newCatalogService(t)

	product, err := svc.CreateProduct(context.Background(), &dto.ProductCreate{
		Name:         "Shirt A",
		Price:        85,
		Size:         "M",
		CategorySlug: "retro-shirts",
		Gallery:      []string{"static/a.jpg", "static/b.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, testBaseURL+"static/a.jpg", product.ImageURL)
	require.Len(t, product.GalleryImages, 1)

	// The category was created from the slug.
	var category model.Category
	require.NoError(t, db.Where("slug = ?", "retro-shirts").First(&category).Error)
	assert.Equal(t, "Retro Shirts", category.Name)
	assert.Equal(t, category.ID, product.CategoryID)
}

func TestCreateProductRequiresImage(t *testing.T) {
	svc, _, _ := newCatalogService(t)

	_, err := svc.CreateProduct(context.Background(), &dto.ProductCreate{
		Name:         "Shirt A",
		Price:        85,
		CategorySlug: "shirts",
	})
	assert.ErrorIs(t, err, ErrImageRequired)
}

func TestCreateProductNotifiesSizeSubscribers(t *testing.T) {
	svc, db, notifier := newCatalogService(t)

	require.NoError(t, db.Create(&model.User{TelegramID: 100}).Error)
	require.NoError(t, db.Create(&model.User{TelegramID: 200}).Error)
	require.NoError(t, db.Create(&model.SizeSubscription{UserID: 100, Size: "M"}).Error)
	require.NoError(t, db.Create(&model.SizeSubscription{UserID: 200, Size: "XL"}).Error)

	_, err := svc.CreateProduct(context.Background(), &dto.ProductCreate{
		Name:         "Shirt A",
		Price:        85,
		Size:         "M",
		ImageURL:     "static/a.jpg",
		CategorySlug: "shirts",
	})
	require.NoError(t, err)

	require.Len(t, notifier.sent[100], 1, "matching size notified")
	assert.Contains(t, notifier.sent[100][0], "Shirt A")
	assert.Empty(t, notifier.sent[200], "other sizes untouched")
}

func TestListProductsSearchAndCategoryFilter(t *testing.T) {
	svc, db, _ := newCatalogService(t)
	ctx := context.Background()

	shirts := seedCategory(t, db, "Shirts", "shirts")
	posters := seedCategory(t, db, "Posters", "posters")
	united := seedProduct(t, db, shirts.ID, "Manchester United 2008", 85)
	seedProduct(t, db, shirts.ID, "Arsenal 2004", 90)
	seedProduct(t, db, posters.ID, "Old Trafford Poster", 15)

	byCategory, err := svc.ListProducts(ctx, "", "shirts", 0, 0)
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	bySearch, err := svc.ListProducts(ctx, "united", "", 0, 0)
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, united.ID, bySearch[0].ID)

	both, err := svc.ListProducts(ctx, "arsenal", "posters", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, both)
}

func TestGetProductNotFound(t *testing.T) {
	svc, _, _ := newCatalogService(t)

	_, err := svc.GetProduct(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateProductPartial(t *testing.T) {
	svc, db, _ := newCatalogService(t)
	ctx := context.Background()

	category := seedCategory(t, db, "Shirts", "shirts")
	product := seedProduct(t, db, category.ID, "Shirt A", 85)

	newPrice := 99.0
	updated, err := svc.UpdateProduct(ctx, product.ID, &dto.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 99.0, updated.Price)
	assert.Equal(t, "Shirt A", updated.Name, "unset fields stay put")
}

func TestUpdateProductReplacesGallery(t *testing.T) {
	svc, db, _ := newCatalogService(t)
	ctx := context.Background()

	category := seedCategory(t, db, "Shirts", "shirts")
	product := seedProduct(t, db, category.ID, "Shirt A", 85)
	require.NoError(t, db.Create(&model.ProductImage{ProductID: product.ID, ImageURL: "static/old.jpg"}).Error)

	gallery := []string{"static/new-main.jpg", "static/new-extra.jpg"}
	updated, err := svc.UpdateProduct(ctx, product.ID, &dto.ProductUpdate{Gallery: &gallery})
	require.NoError(t, err)

	assert.Equal(t, testBaseURL+"static/new-main.jpg", updated.ImageURL, "first gallery image promoted")
	require.Len(t, updated.GalleryImages, 1)
	assert.Equal(t, int64(0), countRows(t, db, &model.ProductImage{}, "image_url = ?", "static/old.jpg"))
}

func TestDeleteProductLeavesCartRowsBehind(t *testing.T) {
	svc, db, _ := newCatalogService(t)
	ctx := context.Background()

	category := seedCategory(t, db, "Shirts", "shirts")
	product := seedProduct(t, db, category.ID, "Shirt A", 85)
	seedCartRow(t, db, 100, product.ID, 1)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))

	// Cart rows are not cascaded; reconciliation owns their cleanup.
	assert.Equal(t, int64(1), countRows(t, db, &model.CartItem{}, "product_id = ?", product.ID))

	assert.ErrorIs(t, svc.DeleteProduct(ctx, product.ID), ErrProductNotFound)
}
