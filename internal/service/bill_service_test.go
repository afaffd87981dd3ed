package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"laundrybill/internal/model"
	"laundrybill/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBillComputesTotalsFromTaxRate(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)

	res, err := f.bills.SaveBill(ctx, validBillRequest())
	require.NoError(t, err)
	assert.True(t, res.Created)

	bill, err := f.store.Bills().FindByID(ctx, res.BillID)
	require.NoError(t, err)
	assert.Equal(t, "70", bill.SubTotal.String())
	assert.Equal(t, "3.5", bill.TaxAmount.String())
	assert.Equal(t, "73.5", bill.GrandTotal.String())
	assert.Equal(t, model.PaymentPending, bill.PaymentStatus)
	assert.True(t, bill.BillDate.Equal(fixtureStart))
	require.Len(t, bill.Items, 2)
	assert.Equal(t, "20", bill.Items[0].TotalPrice.String())
	assert.Equal(t, []string{EventBillSaved}, f.events.Names())
}

func TestSaveBillIgnoresClientTotals(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)

	req := validBillRequest()
	req.Items[0].Total = decimal.NewFromInt(999)

	res, err := f.bills.SaveBill(ctx, req)
	require.NoError(t, err)

	bill, err := f.store.Bills().FindByID(ctx, res.BillID)
	require.NoError(t, err)
	assert.Equal(t, "20", bill.Items[0].TotalPrice.String())
}

func TestSaveBillUsesShopTaxRate(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	require.NoError(t, f.shop.UpdateProfile(ctx, UpdateShopRequest{ShopName: "FreshWash", TaxRate: decimal.NewFromInt(10)}))

	res, err := f.bills.SaveBill(ctx, validBillRequest())
	require.NoError(t, err)

	bill, err := f.store.Bills().FindByID(ctx, res.BillID)
	require.NoError(t, err)
	assert.Equal(t, "7", bill.TaxAmount.String())
	assert.Equal(t, "77", bill.GrandTotal.String())
}

func TestSaveBillPhoneValidation(t *testing.T) {
	tests := []struct {
		phone string
		ok    bool
	}{
		{"9876543210", true},
		{"12345", false},
		{"12345678901", false},
		{"abcdefghij", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			f := newBillFixture(t)
			req := validBillRequest()
			req.CustomerPhone = tt.phone

			_, err := f.bills.SaveBill(context.Background(), req)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assertKind(t, err, apperror.KindValidation)
			assert.Contains(t, err.Error(), "customerPhone")
		})
	}
}

func TestSaveBillValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SaveBillRequest)
		field  string
	}{
		{"missing name", func(r *SaveBillRequest) { r.CustomerName = "  " }, "customerName"},
		{"missing return date", func(r *SaveBillRequest) { r.ReturnDate = "" }, "returnDate"},
		{"bad return date", func(r *SaveBillRequest) { r.ReturnDate = "next week" }, "returnDate"},
		{"no items", func(r *SaveBillRequest) { r.Items = nil }, "items"},
		{"zero quantity", func(r *SaveBillRequest) { r.Items[0].Qty = 0 }, "items[0].qty"},
		{"item without name", func(r *SaveBillRequest) { r.Items[1].Name = "" }, "items[1].name"},
		{"negative price", func(r *SaveBillRequest) { r.Items[1].Price = decimal.NewFromInt(-1) }, "items[1].price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBillFixture(t)
			req := validBillRequest()
			tt.mutate(&req)

			_, err := f.bills.SaveBill(context.Background(), req)
			assertKind(t, err, apperror.KindValidation)

			appErr := apperror.GetAppError(err)
			require.NotEmpty(t, appErr.Errors)
			assert.Equal(t, tt.field, appErr.Errors[0].Field)

			all, listErr := f.store.Bills().ListAll(context.Background())
			require.NoError(t, listErr)
			assert.Empty(t, all)
		})
	}
}

func TestSaveBillGeneratesInvoiceNumber(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)

	res, err := f.bills.SaveBill(ctx, validBillRequest())
	require.NoError(t, err)
	bill, err := f.store.Bills().FindByID(ctx, res.BillID)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^#FW-\d{4}$`), bill.InvoiceNumber)

	req := validBillRequest()
	req.InvoiceNum = "#FW-1111"
	res, err = f.bills.SaveBill(ctx, req)
	require.NoError(t, err)
	bill, err = f.store.Bills().FindByID(ctx, res.BillID)
	require.NoError(t, err)
	assert.Equal(t, "#FW-1111", bill.InvoiceNumber)
}

func TestSaveBillUpdateKeepsStoredInvoiceNumber(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)

	created, err := f.bills.SaveBill(ctx, validBillRequest())
	require.NoError(t, err)
	original, err := f.store.Bills().FindByID(ctx, created.BillID)
	require.NoError(t, err)

	req := validBillRequest()
	req.BillID = created.BillID.String()
	req.CustomerTown = "Nashik"
	_, err = f.bills.SaveBill(ctx, req)
	require.NoError(t, err)

	bill, err := f.store.Bills().FindByID(ctx, created.BillID)
	require.NoError(t, err)
	assert.Equal(t, original.InvoiceNumber, bill.InvoiceNumber)
	assert.Equal(t, "Nashik", bill.CustomerTown)

	req.InvoiceNum = "#FW-4242"
	_, err = f.bills.SaveBill(ctx, req)
	require.NoError(t, err)
	bill, err = f.store.Bills().FindByID(ctx, created.BillID)
	require.NoError(t, err)
	assert.Equal(t, "#FW-4242", bill.InvoiceNumber)
}

func TestSaveBillAllowsDuplicateInvoiceNumbers(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)

	req := validBillRequest()
	req.InvoiceNum = "#FW-2000"
	first, err := f.bills.SaveBill(ctx, req)
	require.NoError(t, err)
	second, err := f.bills.SaveBill(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.BillID, second.BillID)
}

func TestSaveBillUpdateKeepsBillDateAndStatus(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)

	created, err := f.bills.SaveBill(ctx, validBillRequest())
	require.NoError(t, err)
	require.NoError(t, f.bills.MarkPaid(ctx, created.BillID.String()))

	f.clock.Advance(48 * time.Hour)
	req := validBillRequest()
	req.BillID = created.BillID.String()
	req.CustomerName = "Asha Kulkarni"
	req.Items = []BillItemRequest{{Name: "Blanket", Qty: 1, Price: decimal.NewFromInt(100)}}

	updated, err := f.bills.SaveBill(ctx, req)
	require.NoError(t, err)
	assert.False(t, updated.Created)
	assert.Equal(t, created.BillID, updated.BillID)

	bill, err := f.store.Bills().FindByID(ctx, created.BillID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Kulkarni", bill.CustomerName)
	assert.Equal(t, model.PaymentPaid, bill.PaymentStatus)
	assert.True(t, bill.BillDate.Equal(fixtureStart))
	require.Len(t, bill.Items, 1)
	assert.Equal(t, "Blanket", bill.Items[0].ItemName)
	assert.Equal(t, "105", bill.GrandTotal.String())
}

func TestSaveBillUpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		req := validBillRequest()
		req.BillID = id
		_, err := f.bills.SaveBill(ctx, req)
		assertKind(t, err, apperror.KindNotFound)
	}
}

func TestMarkPaidIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)

	res, err := f.bills.SaveBill(ctx, validBillRequest())
	require.NoError(t, err)

	require.NoError(t, f.bills.MarkPaid(ctx, res.BillID.String()))
	require.NoError(t, f.bills.MarkPaid(ctx, res.BillID.String()))

	bill, err := f.store.Bills().FindByID(ctx, res.BillID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, bill.PaymentStatus)
	assert.Equal(t, []string{EventBillSaved, EventBillPaid}, f.events.Names())

	logs, _, err := f.store.Audit().List(ctx, 0, 10)
	require.NoError(t, err)
	paidEntries := 0
	for _, l := range logs {
		if l.Action == model.ActionPayBill {
			paidEntries++
		}
	}
	assert.Equal(t, 1, paidEntries)
}

func TestMarkPaidUnknownBill(t *testing.T) {
	f := newBillFixture(t)
	assertKind(t, f.bills.MarkPaid(context.Background(), uuid.NewString()), apperror.KindNotFound)
	assertKind(t, f.bills.MarkPaid(context.Background(), "42"), apperror.KindNotFound)
}

func TestDeleteBill(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)

	res, err := f.bills.SaveBill(ctx, validBillRequest())
	require.NoError(t, err)

	require.NoError(t, f.bills.DeleteBill(ctx, res.BillID.String()))

	_, err = f.bills.GetLineItems(ctx, res.BillID.String())
	assertKind(t, err, apperror.KindNotFound)
	assertKind(t, f.bills.DeleteBill(ctx, res.BillID.String()), apperror.KindNotFound)
	assert.Equal(t, []string{EventBillSaved, EventBillDeleted}, f.events.Names())
}

func TestListPendingExcludesPaidAndSortsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)

	var ids []uuid.UUID
	for _, name := range []string{"First", "Second", "Third"} {
		req := validBillRequest()
		req.CustomerName = name
		res, err := f.bills.SaveBill(ctx, req)
		require.NoError(t, err)
		ids = append(ids, res.BillID)
		f.clock.Advance(time.Hour)
	}
	require.NoError(t, f.bills.MarkPaid(ctx, ids[1].String()))

	pending, err := f.bills.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "Third", pending[0].CustomerName)
	assert.Equal(t, "First", pending[1].CustomerName)
	for _, b := range pending {
		assert.Equal(t, model.PaymentPending, b.PaymentStatus)
	}
}

func TestListPendingEmpty(t *testing.T) {
	f := newBillFixture(t)

	pending, err := f.bills.ListPending(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, pending)
	assert.Empty(t, pending)
}

func TestGetLineItemsReturnsSnapshotInOrder(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)

	res, err := f.bills.SaveBill(ctx, validBillRequest())
	require.NoError(t, err)

	items, err := f.bills.GetLineItems(ctx, res.BillID.String())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Shirt", items[0].ItemName)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Saree", items[1].ItemName)
}
