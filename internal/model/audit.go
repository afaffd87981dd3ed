package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateBill     = "CREATE_BILL"
	ActionUpdateBill     = "UPDATE_BILL"
	ActionPayBill        = "PAY_BILL"
	ActionDeleteBill     = "DELETE_BILL"
	ActionCreateItem     = "CREATE_ITEM"
	ActionUpdateItem     = "UPDATE_ITEM"
	ActionDeleteItem     = "DELETE_ITEM"
	ActionUpdateShop     = "UPDATE_SHOP"
	ActionChangePassword = "CHANGE_PASSWORD"
)

// AuditLog tracks What and When for bill, catalog and shop changes
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string    `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
