package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus enum constants
const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
)

// DefaultTaxRate applies when no shop profile has been saved yet.
var DefaultTaxRate = decimal.RequireFromString("0.05")

// Bill is one laundry order. Totals are computed once at save time and stored;
// they are never re-derived from the shop's current tax rate.
type Bill struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"BillID"`
	InvoiceNumber string          `gorm:"type:varchar(30);index" json:"InvoiceNumber"` // display label, not unique
	CustomerName  string          `gorm:"type:varchar(255);not null" json:"CustomerName"`
	CustomerPhone string          `gorm:"type:varchar(20);not null;index" json:"CustomerPhone"`
	CustomerTown  string          `gorm:"type:varchar(255)" json:"CustomerTown"`
	BillDate      time.Time       `gorm:"not null;index" json:"BillDate"`
	ReturnDate    *time.Time      `gorm:"index" json:"ReturnDate"`
	SubTotal      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"SubTotal"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"TaxAmount"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"GrandTotal"` // SubTotal + TaxAmount
	PaymentStatus string          `gorm:"type:varchar(20);default:'Pending';index" json:"PaymentStatus"`
	Items         []BillLineItem  `gorm:"foreignKey:BillID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"-"`
}

// BillLineItem is a snapshot of one ordered service. ItemName is copied by value
// from the catalog so later catalog edits never touch past bills.
type BillLineItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	BillID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position   int             `gorm:"type:int;not null" json:"-"`
	ItemName   string          `gorm:"type:varchar(255);not null" json:"ItemName"`
	Quantity   int             `gorm:"type:int;not null" json:"Quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"UnitPrice"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"TotalPrice"`
}

// NormalizeStatus treats a missing status (legacy rows) as Pending.
func NormalizeStatus(status string) string {
	if status == "" {
		return PaymentPending
	}
	return status
}

// IsPaid reports whether the bill has been settled.
func (b *Bill) IsPaid() bool {
	return NormalizeStatus(b.PaymentStatus) == PaymentPaid
}

// ComputeTotals fills line totals and bill totals from the items and the captured rate.
func (b *Bill) ComputeTotals(taxRate decimal.Decimal) {
	subtotal := decimal.Zero
	for i := range b.Items {
		item := &b.Items[i]
		item.Position = i
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		subtotal = subtotal.Add(item.TotalPrice)
	}
	b.SubTotal = subtotal
	b.TaxAmount = subtotal.Mul(taxRate).Round(2)
	b.GrandTotal = b.SubTotal.Add(b.TaxAmount)
}
