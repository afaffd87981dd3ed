package repository

import (
	"context"

	"laundrybill/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillRepository persists bills together with their line-item snapshots.
type BillRepository interface {
	Create(ctx context.Context, bill *model.Bill) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error)
	// Update overwrites the editable fields and replaces all line items.
	// BillDate and PaymentStatus are left as stored.
	Update(ctx context.Context, bill *model.Bill) error
	MarkPaid(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListAll returns every bill ordered by BillDate descending.
	ListAll(ctx context.Context) ([]model.Bill, error)
	ListRecent(ctx context.Context, limit int) ([]model.Bill, error)
}

type billRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	})
}

func (r *billRepository) Create(ctx context.Context, bill *model.Bill) error {
	return mapError(GetDB(ctx, r.db).Create(bill).Error)
}

func (r *billRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	var bill model.Bill
	if err := preloadItems(GetDB(ctx, r.db)).First(&bill, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return &bill, nil
}

func (r *billRepository) Update(ctx context.Context, bill *model.Bill) error {
	db := GetDB(ctx, r.db)

	result := db.Model(&model.Bill{}).Where("id = ?", bill.ID).Updates(map[string]interface{}{
		"invoice_number": bill.InvoiceNumber,
		"customer_name":  bill.CustomerName,
		"customer_phone": bill.CustomerPhone,
		"customer_town":  bill.CustomerTown,
		"return_date":    bill.ReturnDate,
		"sub_total":      bill.SubTotal,
		"tax_amount":     bill.TaxAmount,
		"grand_total":    bill.GrandTotal,
	})
	if err := requireAffected(result); err != nil {
		return err
	}

	if err := db.Where("bill_id = ?", bill.ID).Delete(&model.BillLineItem{}).Error; err != nil {
		return mapError(err)
	}
	for i := range bill.Items {
		bill.Items[i].BillID = bill.ID
	}
	if len(bill.Items) == 0 {
		return nil
	}
	return mapError(db.Create(&bill.Items).Error)
}

func (r *billRepository) MarkPaid(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Model(&model.Bill{}).Where("id = ?", id).Update("payment_status", model.PaymentPaid)
	return requireAffected(result)
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("bill_id = ?", id).Delete(&model.BillLineItem{}).Error; err != nil {
		return mapError(err)
	}
	return requireAffected(db.Where("id = ?", id).Delete(&model.Bill{}))
}

func (r *billRepository) ListAll(ctx context.Context) ([]model.Bill, error) {
	var bills []model.Bill
	if err := preloadItems(GetDB(ctx, r.db)).Order("bill_date desc").Find(&bills).Error; err != nil {
		return nil, mapError(err)
	}
	return bills, nil
}

func (r *billRepository) ListRecent(ctx context.Context, limit int) ([]model.Bill, error) {
	var bills []model.Bill
	if err := preloadItems(GetDB(ctx, r.db)).Order("bill_date desc").Limit(limit).Find(&bills).Error; err != nil {
		return nil, mapError(err)
	}
	return bills, nil
}
