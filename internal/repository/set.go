package repository

import "gorm.io/gorm"

// Set bundles every repository behind one storage backend.
type Set struct {
	Bills     BillRepository
	Shop      ShopRepository
	Items     ItemRepository
	Users     UserRepository
	Audit     AuditRepository
	TxManager TransactionManager
}

// NewSet wires the gorm-backed repositories.
func NewSet(db *gorm.DB) Set {
	return Set{
		Bills:     NewBillRepository(db),
		Shop:      NewShopRepository(db),
		Items:     NewItemRepository(db),
		Users:     NewUserRepository(db),
		Audit:     NewAuditRepository(db),
		TxManager: NewTransactionManager(db),
	}
}
