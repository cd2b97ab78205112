package repository

import (
	"context"

	"gorm.io/gorm"

	"rooneyform-backend/internal/model"
)

type AdminAccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.AdminAccount, error)
	Create(ctx context.Context, account *model.AdminAccount) error
}

type adminAccountRepoImpl struct {
	db *gorm.DB
}

func NewAdminAccountRepository(db *gorm.DB) AdminAccountRepository {
	return &adminAccountRepoImpl{
		db: db,
	}
}

func (r *adminAccountRepoImpl) FindByUsername(ctx context.Context, username string) (*model.AdminAccount, error) {
	var account model.AdminAccount
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&account).Error

	if err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *adminAccountRepoImpl) Create(ctx context.Context, account *model.AdminAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}
