package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"rooneyform-backend/internal/media"
	"rooneyform-backend/internal/model"
	"rooneyform-backend/internal/repository"
)

type CartService interface {
	// ReadCart returns the user's cart with resolved products. The read may
	// write: orphan rows, duplicate rows and drifted quantities found during
	// the pass are repaired in the store before the result is returned.
	ReadCart(ctx context.Context, userID int64) ([]*model.CartItem, error)
	AddToCart(ctx context.Context, userID, productID int64) (*model.CartItem, error)
	RemoveFromCart(ctx context.Context, userID, itemID int64) error

	ReadFavorites(ctx context.Context, userID int64) ([]*model.Favorite, error)
	AddFavorite(ctx context.Context, userID, productID int64) (*model.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, productID int64) error
}

type cartServiceImpl struct {
	db           *gorm.DB
	cartRepo     repository.CartRepository
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
	baseURL      string
	logger       *slog.Logger
}

func NewCartService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	favoriteRepo repository.FavoriteRepository,
	productRepo repository.ProductRepository,
	baseURL string,
	logger *slog.Logger,
) CartService {
	return &cartServiceImpl{
		db:           db,
		cartRepo:     cartRepo,
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
		baseURL:      baseURL,
		logger:       logger,
	}
}

// cartReconciliation is the outcome of one reconciliation pass over a
// fetched cart, computed before any side effect is applied.
type cartReconciliation struct {
	kept      []*model.CartItem
	orphanIDs []int64
	dupIDs    []int64
	repinIDs  []int64
}

func (rec cartReconciliation) dirty() bool {
	return len(rec.orphanIDs) > 0 || len(rec.dupIDs) > 0 || len(rec.repinIDs) > 0
}

// reconcileCart walks the rows in fetch order and keeps the first row per
// product. Rows without a product are orphans, later repeats are duplicates,
// and kept rows with quantity != 1 are corrected in place and scheduled for
// a persistent repin. Which duplicate survives follows fetch order, which is
// implementation-defined; callers must not rely on it.
func reconcileCart(items []*model.CartItem) cartReconciliation {
	var rec cartReconciliation
	seen := make(map[int64]bool, len(items))

	for _, item := range items {
		if item.Product == nil {
			rec.orphanIDs = append(rec.orphanIDs, item.ID)
			continue
		}
		if seen[item.ProductID] {
			rec.dupIDs = append(rec.dupIDs, item.ID)
			continue
		}
		seen[item.ProductID] = true
		if item.Quantity != 1 {
			item.Quantity = 1
			rec.repinIDs = append(rec.repinIDs, item.ID)
		}
		rec.kept = append(rec.kept, item)
	}

	return rec
}

func (s *cartServiceImpl) applyReconciliation(ctx context.Context, userID int64, rec cartReconciliation) error {
	if !rec.dirty() {
		return nil
	}

	if err := s.cartRepo.DeleteByIDs(ctx, s.db, rec.orphanIDs); err != nil {
		return fmt.Errorf("purge orphan cart rows: %w", err)
	}
	if err := s.cartRepo.DeleteByIDs(ctx, s.db, rec.dupIDs); err != nil {
		return fmt.Errorf("purge duplicate cart rows: %w", err)
	}
	if err := s.cartRepo.PinQuantity(ctx, rec.repinIDs); err != nil {
		return fmt.Errorf("pin cart quantities: %w", err)
	}

	s.logger.Info("cart reconciled",
		"user_id", userID,
		"orphans", len(rec.orphanIDs),
		"duplicates", len(rec.dupIDs),
		"repinned", len(rec.repinIDs),
	)
	return nil
}

func (s *cartServiceImpl) ReadCart(ctx context.Context, userID int64) ([]*model.CartItem, error) {
	items, err := s.cartRepo.ListWithProduct(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	rec := reconcileCart(items)
	if err := s.applyReconciliation(ctx, userID, rec); err != nil {
		return nil, err
	}

	for _, item := range rec.kept {
		media.NormalizeProduct(s.baseURL, item.Product)
	}

	if rec.kept == nil {
		return []*model.CartItem{}, nil
	}
	return rec.kept, nil
}

func (s *cartServiceImpl) AddToCart(ctx context.Context, userID, productID int64) (*model.CartItem, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	item, err := s.cartRepo.FindByUserAndProduct(ctx, userID, productID)
	switch {
	case err == nil:
		// Re-adding pins the quantity back to 1.
		if err := s.cartRepo.PinQuantity(ctx, []int64{item.ID}); err != nil {
			return nil, fmt.Errorf("pin cart quantity: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = &model.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
		if err := s.cartRepo.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("create cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("find cart item: %w", err)
	}

	withProduct, err := s.cartRepo.FindByIDWithProduct(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("reload cart item: %w", err)
	}
	media.NormalizeProduct(s.baseURL, withProduct.Product)
	return withProduct, nil
}

func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, userID, itemID int64) error {
	item, err := s.cartRepo.FindByIDForUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return fmt.Errorf("find cart item: %w", err)
	}

	return s.cartRepo.Delete(ctx, item)
}

func (s *cartServiceImpl) ReadFavorites(ctx context.Context, userID int64) ([]*model.Favorite, error) {
	favorites, err := s.favoriteRepo.ListWithProduct(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	kept := make([]*model.Favorite, 0, len(favorites))
	var orphanIDs []int64
	for _, favorite := range favorites {
		if favorite.Product == nil {
			orphanIDs = append(orphanIDs, favorite.ID)
			continue
		}
		media.NormalizeProduct(s.baseURL, favorite.Product)
		kept = append(kept, favorite)
	}

	if len(orphanIDs) > 0 {
		if err := s.favoriteRepo.DeleteByIDs(ctx, s.db, orphanIDs); err != nil {
			return nil, fmt.Errorf("purge orphan favorites: %w", err)
		}
		s.logger.Info("favorites reconciled", "user_id", userID, "orphans", len(orphanIDs))
	}

	return kept, nil
}

func (s *cartServiceImpl) AddFavorite(ctx context.Context, userID, productID int64) (*model.Favorite, error) {
	_, err := s.favoriteRepo.FindByUserAndProduct(ctx, userID, productID)
	if err == nil {
		return nil, ErrAlreadyFavorite
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find favorite: %w", err)
	}

	favorite := &model.Favorite{UserID: userID, ProductID: productID}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	withProduct, err := s.favoriteRepo.FindByIDWithProduct(ctx, favorite.ID)
	if err != nil {
		return nil, fmt.Errorf("reload favorite: %w", err)
	}
	media.NormalizeProduct(s.baseURL, withProduct.Product)
	return withProduct, nil
}

// RemoveFavorite is idempotent: removing a product that is not in the
// favorites succeeds quietly.
func (s *cartServiceImpl) RemoveFavorite(ctx context.Context, userID, productID int64) error {
	return s.favoriteRepo.DeleteByUserAndProduct(ctx, userID, productID)
}
