package repository

import (
	"context"

	"laundrybill/internal/model"

	"gorm.io/gorm"
)

// UserRepository defines the interface for data access of UserAccount entities
type UserRepository interface {
	Create(ctx context.Context, user *model.UserAccount) error
	GetByUsername(ctx context.Context, username string) (*model.UserAccount, error)
	UpdatePassword(ctx context.Context, user *model.UserAccount) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.UserAccount) error {
	return mapError(GetDB(ctx, r.db).Create(user).Error)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.UserAccount, error) {
	var user model.UserAccount
	if err := GetDB(ctx, r.db).First(&user, "username = ?", username).Error; err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, user *model.UserAccount) error {
	result := GetDB(ctx, r.db).Model(&model.UserAccount{}).Where("id = ?", user.ID).Update("password", user.Password)
	return requireAffected(result)
}
