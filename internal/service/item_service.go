package service

import (
	"context"
	"strings"

	"laundrybill/internal/model"
	"laundrybill/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type ItemRequest struct {
	ItemName  string          `json:"ItemName" validate:"required"`
	UnitPrice decimal.Decimal `json:"UnitPrice"`
}

// --- Interface ---

type ItemService interface {
	ListActive(ctx context.Context) ([]model.LaundryItem, error)
	CreateItem(ctx context.Context, req ItemRequest) (*model.LaundryItem, error)
	UpdateItem(ctx context.Context, id string, req ItemRequest) error
	DeleteItem(ctx context.Context, id string) error
}

type itemService struct {
	repo      repository.ItemRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewItemService(repo repository.ItemRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) ItemService {
	return &itemService{repo: repo, auditRepo: auditRepo, txManager: txManager}
}

// --- Implementation ---

func (s *itemService) ListActive(ctx context.Context) ([]model.LaundryItem, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, storeError("Item", "fetching items", err)
	}
	if items == nil {
		items = []model.LaundryItem{}
	}
	return items, nil
}

func (s *itemService) CreateItem(ctx context.Context, req ItemRequest) (*model.LaundryItem, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	item := &model.LaundryItem{ItemName: req.ItemName, DefaultPrice: req.UnitPrice, IsActive: true}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, item); err != nil {
			return err
		}
		return writeAudit(txCtx, s.auditRepo, model.ActionCreateItem, item.ID.String(), item.ItemName, req)
	})
	if err != nil {
		return nil, storeError("Item", "adding item", err)
	}
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req ItemRequest) error {
	itemID, err := parseID("Item", id)
	if err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	item := &model.LaundryItem{ID: itemID, ItemName: req.ItemName, DefaultPrice: req.UnitPrice}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, item); err != nil {
			return err
		}
		return writeAudit(txCtx, s.auditRepo, model.ActionUpdateItem, item.ID.String(), item.ItemName, req)
	})
	return storeError("Item", "updating item", err)
}

// DeleteItem hides the item from the catalog. Bills keep their own copy of the name.
func (s *itemService) DeleteItem(ctx context.Context, id string) error {
	itemID, err := parseID("Item", id)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.repo.FindByID(txCtx, itemID)
		if err != nil {
			return err
		}
		if err := s.repo.Deactivate(txCtx, itemID); err != nil {
			return err
		}
		return writeAudit(txCtx, s.auditRepo, model.ActionDeleteItem, item.ID.String(), item.ItemName, nil)
	})
	return storeError("Item", "deleting item", err)
}

func (r *ItemRequest) validate() error {
	r.ItemName = strings.TrimSpace(r.ItemName)
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.UnitPrice.IsNegative() {
		return fieldError("UnitPrice", "UnitPrice must not be negative")
	}
	return nil
}
