package service

import (
	"context"
	"errors"
	"strings"

	"laundrybill/internal/model"
	"laundrybill/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type UpdateShopRequest struct {
	ShopName string          `json:"ShopName" validate:"required"`
	Tagline  string          `json:"Tagline"`
	Address  string          `json:"Address"`
	Phone    string          `json:"Phone"`
	TaxRate  decimal.Decimal `json:"TaxRate"`
}

// --- Interface ---

// ShopService owns the singleton shop profile. It also serves as the tax rate
// source for billing.
type ShopService interface {
	GetProfile(ctx context.Context) (*model.ShopProfile, error)
	UpdateProfile(ctx context.Context, req UpdateShopRequest) error
	TaxRate(ctx context.Context) (decimal.Decimal, error)
}

type shopService struct {
	repo        repository.ShopRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	defaultRate decimal.Decimal
}

// NewShopService creates a ShopService. defaultRate applies until a profile is saved.
func NewShopService(repo repository.ShopRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager, defaultRate decimal.Decimal) ShopService {
	return &shopService{
		repo:        repo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		defaultRate: model.NormalizeTaxRate(defaultRate),
	}
}

// GetProfile returns nil without error when no profile exists yet.
func (s *shopService) GetProfile(ctx context.Context) (*model.ShopProfile, error) {
	profile, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("Shop profile", "fetching profile", err)
	}
	profile.TaxRate = model.NormalizeTaxRate(profile.TaxRate)
	return profile, nil
}

func (s *shopService) UpdateProfile(ctx context.Context, req UpdateShopRequest) error {
	req.ShopName = strings.TrimSpace(req.ShopName)
	if err := validateStruct(req); err != nil {
		return err
	}
	if req.TaxRate.IsNegative() {
		return fieldError("TaxRate", "TaxRate must not be negative")
	}

	profile := &model.ShopProfile{
		ShopName: req.ShopName,
		Tagline:  strings.TrimSpace(req.Tagline),
		Address:  strings.TrimSpace(req.Address),
		Phone:    strings.TrimSpace(req.Phone),
		TaxRate:  model.NormalizeTaxRate(req.TaxRate),
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Upsert(txCtx, profile); err != nil {
			return err
		}
		return writeAudit(txCtx, s.auditRepo, model.ActionUpdateShop, profile.ID.String(), profile.ShopName, map[string]string{
			"taxRate": profile.TaxRate.String(),
		})
	})
	return storeError("Shop profile", "updating profile", err)
}

func (s *shopService) TaxRate(ctx context.Context) (decimal.Decimal, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if profile == nil {
		return s.defaultRate, nil
	}
	return profile.TaxRate, nil
}
