package repository

import (
	"context"
	"errors"

	"laundrybill/internal/model"

	"gorm.io/gorm"
)

// ShopRepository stores the singleton shop profile.
type ShopRepository interface {
	// Get returns ErrNotFound until a profile has been saved.
	Get(ctx context.Context) (*model.ShopProfile, error)
	Upsert(ctx context.Context, profile *model.ShopProfile) error
}

type shopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Get(ctx context.Context) (*model.ShopProfile, error) {
	var profile model.ShopProfile
	if err := GetDB(ctx, r.db).Order("created_at asc").First(&profile).Error; err != nil {
		return nil, mapError(err)
	}
	return &profile, nil
}

func (r *shopRepository) Upsert(ctx context.Context, profile *model.ShopProfile) error {
	existing, err := r.Get(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		return mapError(GetDB(ctx, r.db).Create(profile).Error)
	case err != nil:
		return err
	}

	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	return mapError(GetDB(ctx, r.db).Model(existing).Updates(map[string]interface{}{
		"shop_name": profile.ShopName,
		"tagline":   profile.Tagline,
		"address":   profile.Address,
		"phone":     profile.Phone,
		"tax_rate":  profile.TaxRate,
	}).Error)
}
