package repository

import (
	"context"

	"laundrybill/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.LaundryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LaundryItem, error)
	ListActive(ctx context.Context) ([]model.LaundryItem, error)
	Update(ctx context.Context, item *model.LaundryItem) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.LaundryItem) error {
	return mapError(GetDB(ctx, r.db).Create(item).Error)
}

func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LaundryItem, error) {
	var item model.LaundryItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return &item, nil
}

func (r *itemRepository) ListActive(ctx context.Context) ([]model.LaundryItem, error) {
	var items []model.LaundryItem
	if err := GetDB(ctx, r.db).Where("is_active = ?", true).Order("item_name asc").Find(&items).Error; err != nil {
		return nil, mapError(err)
	}
	return items, nil
}

func (r *itemRepository) Update(ctx context.Context, item *model.LaundryItem) error {
	result := GetDB(ctx, r.db).Model(&model.LaundryItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"item_name":     item.ItemName,
		"default_price": item.DefaultPrice,
	})
	return requireAffected(result)
}

// Deactivate is the soft delete: the row stays so nothing that refers to it breaks.
func (r *itemRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Model(&model.LaundryItem{}).Where("id = ?", id).Update("is_active", false)
	return requireAffected(result)
}
