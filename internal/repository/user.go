package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rooneyform-backend/internal/model"
)

type UserRepository interface {
	EnsureUser(ctx context.Context, telegramID int64, username *string) error
	FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

// EnsureUser lazily creates the user on first interaction. Concurrent
// first-touch requests race on the insert, so conflicts are ignored.
func (r *userRepoImpl) EnsureUser(ctx context.Context, telegramID int64, username *string) error {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		First(&user).Error

	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user = model.User{TelegramID: telegramID, Username: username}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&user).Error
}

func (r *userRepoImpl) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		First(&user).Error

	if err != nil {
		return nil, err
	}

	return &user, nil
}
