package memory

import (
	"context"
	"testing"
	"time"

	"laundrybill/internal/model"
	"laundrybill/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillRepoListAllOrdersByBillDateDesc(t *testing.T) {
	ctx := context.Background()
	bills := NewStore().Bills()
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	for i, offset := range []int{2, 0, 1} {
		bill := &model.Bill{
			CustomerName: string(rune('A' + i)),
			BillDate:     base.Add(time.Duration(offset) * time.Hour),
		}
		require.NoError(t, bills.Create(ctx, bill))
	}

	all, err := bills.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "C", "B"}, []string{all[0].CustomerName, all[1].CustomerName, all[2].CustomerName})

	recent, err := bills.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestBillRepoReturnsCopies(t *testing.T) {
	ctx := context.Background()
	bills := NewStore().Bills()

	bill := &model.Bill{
		BillDate: time.Now(),
		Items:    []model.BillLineItem{{ItemName: "Shirt", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	}
	require.NoError(t, bills.Create(ctx, bill))
	assert.Equal(t, model.PaymentPending, bill.PaymentStatus)

	got, err := bills.FindByID(ctx, bill.ID)
	require.NoError(t, err)
	got.Items[0].ItemName = "changed"

	again, err := bills.FindByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shirt", again.Items[0].ItemName)
}

func TestBillRepoUpdateKeepsStatusAndBillDate(t *testing.T) {
	ctx := context.Background()
	bills := NewStore().Bills()
	billDate := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	bill := &model.Bill{CustomerName: "Asha", BillDate: billDate}
	require.NoError(t, bills.Create(ctx, bill))
	require.NoError(t, bills.MarkPaid(ctx, bill.ID))

	edit := &model.Bill{ID: bill.ID, CustomerName: "Asha K", BillDate: time.Now(), PaymentStatus: model.PaymentPending}
	require.NoError(t, bills.Update(ctx, edit))

	got, err := bills.FindByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha K", got.CustomerName)
	assert.Equal(t, model.PaymentPaid, got.PaymentStatus)
	assert.True(t, got.BillDate.Equal(billDate))
}

func TestBillRepoMissingIDs(t *testing.T) {
	ctx := context.Background()
	bills := NewStore().Bills()
	id := uuid.New()

	_, err := bills.FindByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, bills.Update(ctx, &model.Bill{ID: id}), repository.ErrNotFound)
	assert.ErrorIs(t, bills.MarkPaid(ctx, id), repository.ErrNotFound)
	assert.ErrorIs(t, bills.Delete(ctx, id), repository.ErrNotFound)
}

func TestItemRepoDeactivateHidesFromActiveList(t *testing.T) {
	ctx := context.Background()
	items := NewStore().Items()

	shirt := &model.LaundryItem{ItemName: "Shirt", DefaultPrice: decimal.NewFromInt(10), IsActive: true}
	pant := &model.LaundryItem{ItemName: "Pant", DefaultPrice: decimal.NewFromInt(15), IsActive: true}
	require.NoError(t, items.Create(ctx, shirt))
	require.NoError(t, items.Create(ctx, pant))
	require.NoError(t, items.Deactivate(ctx, shirt.ID))

	active, err := items.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Pant", active[0].ItemName)

	stored, err := items.FindByID(ctx, shirt.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestUserRepoRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	require.NoError(t, users.Create(ctx, &model.UserAccount{Username: "admin", Password: "x"}))
	err := users.Create(ctx, &model.UserAccount{Username: "admin", Password: "y"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestAuditRepoListNewestFirst(t *testing.T) {
	ctx := context.Background()
	audit := NewStore().Audit()

	for _, action := range []string{model.ActionCreateBill, model.ActionPayBill, model.ActionDeleteBill} {
		require.NoError(t, audit.Log(ctx, &model.AuditLog{Action: action, Details: "{}"}))
	}

	logs, total, err := audit.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, logs, 2)
	assert.Equal(t, model.ActionDeleteBill, logs[0].Action)

	logs, _, err = audit.List(ctx, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
