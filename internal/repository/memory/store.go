// Package memory is an in-process implementation of the repository interfaces,
// used for local demos (STORE_DRIVER=memory) and tests. Data is lost on exit.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"laundrybill/internal/model"
	"laundrybill/internal/repository"

	"github.com/google/uuid"
)

// Store holds every collection behind one lock.
type Store struct {
	mu        sync.RWMutex
	bills     map[uuid.UUID]model.Bill
	billOrder []uuid.UUID
	shop      *model.ShopProfile
	items     map[uuid.UUID]model.LaundryItem
	users     map[string]model.UserAccount
	audit     []model.AuditLog
	now       func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		bills: make(map[uuid.UUID]model.Bill),
		items: make(map[uuid.UUID]model.LaundryItem),
		users: make(map[string]model.UserAccount),
		now:   time.Now,
	}
}

func (s *Store) Bills() repository.BillRepository          { return billRepo{s} }
func (s *Store) Shop() repository.ShopRepository           { return shopRepo{s} }
func (s *Store) Items() repository.ItemRepository          { return itemRepo{s} }
func (s *Store) Users() repository.UserRepository          { return userRepo{s} }
func (s *Store) Audit() repository.AuditRepository         { return auditRepo{s} }
func (s *Store) TxManager() repository.TransactionManager { return txManager{} }

// Set exposes the store through the same bundle the gorm backend uses.
func (s *Store) Set() repository.Set {
	return repository.Set{
		Bills:     s.Bills(),
		Shop:      s.Shop(),
		Items:     s.Items(),
		Users:     s.Users(),
		Audit:     s.Audit(),
		TxManager: s.TxManager(),
	}
}

// txManager runs fn directly; the store has no rollback.
type txManager struct{}

func (txManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func ensureID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

func copyBill(b model.Bill) model.Bill {
	b.Items = slices.Clone(b.Items)
	if b.ReturnDate != nil {
		rd := *b.ReturnDate
		b.ReturnDate = &rd
	}
	return b
}

// --- bills ---

type billRepo struct{ s *Store }

func (r billRepo) Create(_ context.Context, bill *model.Bill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bill.ID = ensureID(bill.ID)
	if _, exists := r.s.bills[bill.ID]; exists {
		return repository.ErrDuplicate
	}
	if bill.PaymentStatus == "" {
		bill.PaymentStatus = model.PaymentPending
	}
	now := r.s.now()
	bill.CreatedAt, bill.UpdatedAt = now, now
	for i := range bill.Items {
		bill.Items[i].ID = ensureID(bill.Items[i].ID)
		bill.Items[i].BillID = bill.ID
	}

	r.s.bills[bill.ID] = copyBill(*bill)
	r.s.billOrder = append(r.s.billOrder, bill.ID)
	return nil
}

func (r billRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Bill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	bill, ok := r.s.bills[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := copyBill(bill)
	return &out, nil
}

func (r billRepo) Update(_ context.Context, bill *model.Bill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.bills[bill.ID]
	if !ok {
		return repository.ErrNotFound
	}

	stored.InvoiceNumber = bill.InvoiceNumber
	stored.CustomerName = bill.CustomerName
	stored.CustomerPhone = bill.CustomerPhone
	stored.CustomerTown = bill.CustomerTown
	stored.ReturnDate = bill.ReturnDate
	stored.SubTotal = bill.SubTotal
	stored.TaxAmount = bill.TaxAmount
	stored.GrandTotal = bill.GrandTotal
	stored.UpdatedAt = r.s.now()
	for i := range bill.Items {
		bill.Items[i].ID = ensureID(bill.Items[i].ID)
		bill.Items[i].BillID = bill.ID
	}
	stored.Items = bill.Items

	r.s.bills[bill.ID] = copyBill(stored)
	return nil
}

func (r billRepo) MarkPaid(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bill, ok := r.s.bills[id]
	if !ok {
		return repository.ErrNotFound
	}
	bill.PaymentStatus = model.PaymentPaid
	bill.UpdatedAt = r.s.now()
	r.s.bills[id] = bill
	return nil
}

func (r billRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bills[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.bills, id)
	r.s.billOrder = slices.DeleteFunc(r.s.billOrder, func(v uuid.UUID) bool { return v == id })
	return nil
}

func (r billRepo) ListAll(_ context.Context) ([]model.Bill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedBills(0), nil
}

func (r billRepo) ListRecent(_ context.Context, limit int) ([]model.Bill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedBills(limit), nil
}

// sortedBills returns copies ordered by BillDate descending, insertion order on ties.
// Callers hold the read lock.
func (s *Store) sortedBills(limit int) []model.Bill {
	out := make([]model.Bill, 0, len(s.billOrder))
	for _, id := range s.billOrder {
		out = append(out, copyBill(s.bills[id]))
	}
	slices.SortStableFunc(out, func(a, b model.Bill) int {
		return b.BillDate.Compare(a.BillDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// --- shop ---

type shopRepo struct{ s *Store }

func (r shopRepo) Get(_ context.Context) (*model.ShopProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if r.s.shop == nil {
		return nil, repository.ErrNotFound
	}
	out := *r.s.shop
	return &out, nil
}

func (r shopRepo) Upsert(_ context.Context, profile *model.ShopProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	if r.s.shop != nil {
		profile.ID = r.s.shop.ID
		profile.CreatedAt = r.s.shop.CreatedAt
	} else {
		profile.ID = ensureID(profile.ID)
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	stored := *profile
	r.s.shop = &stored
	return nil
}

// --- catalog items ---

type itemRepo struct{ s *Store }

func (r itemRepo) Create(_ context.Context, item *model.LaundryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item.ID = ensureID(item.ID)
	now := r.s.now()
	item.CreatedAt, item.UpdatedAt = now, now
	r.s.items[item.ID] = *item
	return nil
}

func (r itemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.LaundryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (r itemRepo) ListActive(_ context.Context) ([]model.LaundryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.LaundryItem
	for _, item := range r.s.items {
		if item.IsActive {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b model.LaundryItem) int {
		return strings.Compare(a.ItemName, b.ItemName)
	})
	return out, nil
}

func (r itemRepo) Update(_ context.Context, item *model.LaundryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.items[item.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.ItemName = item.ItemName
	stored.DefaultPrice = item.DefaultPrice
	stored.UpdatedAt = r.s.now()
	r.s.items[item.ID] = stored
	return nil
}

func (r itemRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	stored.IsActive = false
	stored.UpdatedAt = r.s.now()
	r.s.items[id] = stored
	return nil
}

// --- users ---

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *model.UserAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[user.Username]; exists {
		return repository.ErrDuplicate
	}
	user.ID = ensureID(user.ID)
	now := r.s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.Username] = *user
	return nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*model.UserAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r userRepo) UpdatePassword(_ context.Context, user *model.UserAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for name, stored := range r.s.users {
		if stored.ID == user.ID {
			stored.Password = user.Password
			stored.UpdatedAt = r.s.now()
			r.s.users[name] = stored
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- audit ---

type auditRepo struct{ s *Store }

func (r auditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry.ID = ensureID(entry.ID)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.s.now()
	}
	r.s.audit = append(r.s.audit, *entry)
	return nil
}

func (r auditRepo) List(_ context.Context, offset, limit int) ([]model.AuditLog, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := int64(len(r.s.audit))
	newestFirst := slices.Clone(r.s.audit)
	slices.Reverse(newestFirst)
	if offset >= len(newestFirst) {
		return []model.AuditLog{}, total, nil
	}
	end := min(offset+limit, len(newestFirst))
	return newestFirst[offset:end], total, nil
}
