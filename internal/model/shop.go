package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShopProfile is the singleton business configuration printed on every invoice.
type ShopProfile struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ShopName  string          `gorm:"type:varchar(255)" json:"ShopName"`
	Tagline   string          `gorm:"type:varchar(255)" json:"Tagline"`
	Address   string          `gorm:"type:text" json:"Address"`
	Phone     string          `gorm:"type:varchar(20)" json:"Phone"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"TaxRate"` // fraction, e.g. 0.05
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

var hundred = decimal.NewFromInt(100)

// NormalizeTaxRate converts a percentage (5) into a fraction (0.05). Values of 1 or
// less are already fractions.
func NormalizeTaxRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(hundred)
	}
	return rate
}
