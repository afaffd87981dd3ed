package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LaundryItem is a catalog entry. Deletion only clears IsActive.
type LaundryItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"ItemID"`
	ItemName     string          `gorm:"type:varchar(255);not null" json:"ItemName"`
	DefaultPrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"UnitPrice"`
	IsActive     bool            `gorm:"not null;default:true;index" json:"IsActive"`
	CreatedAt    time.Time       `json:"-"`
	UpdatedAt    time.Time       `json:"-"`
}
