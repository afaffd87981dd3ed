package service

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"laundrybill/internal/model"
	"laundrybill/internal/repository"
	"laundrybill/pkg/dateutil"
	"laundrybill/pkg/invoiceno"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type BillItemRequest struct {
	Name  string          `json:"name" validate:"required"`
	Qty   int             `json:"qty" validate:"gt=0"`
	Price decimal.Decimal `json:"price"`
	Total decimal.Decimal `json:"total"` // informational; recomputed server-side
}

type SaveBillRequest struct {
	BillID        string            `json:"billId"`
	InvoiceNum    string            `json:"invoiceNum"`
	CustomerName  string            `json:"customerName" validate:"required"`
	CustomerPhone string            `json:"customerPhone" validate:"phone10"`
	CustomerTown  string            `json:"customerTown"`
	ReturnDate    string            `json:"returnDate" validate:"required"`
	Items         []BillItemRequest `json:"items" validate:"min=1,dive"`
}

type SaveBillResult struct {
	BillID  uuid.UUID `json:"billId"`
	Created bool      `json:"-"`
}

// Bill events published to live dashboards.
const (
	EventBillSaved   = "bill.saved"
	EventBillPaid    = "bill.paid"
	EventBillDeleted = "bill.deleted"
)

// BillEvent is the payload of every bill.* event.
type BillEvent struct {
	BillID        string          `json:"billId"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	PaymentStatus string          `json:"paymentStatus,omitempty"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
}

// --- Interfaces ---

// TaxRateProvider yields the rate applied to newly saved bills.
type TaxRateProvider interface {
	TaxRate(ctx context.Context) (decimal.Decimal, error)
}

// EventPublisher fans events out to connected clients. Publish must not block.
type EventPublisher interface {
	Publish(event string, data interface{})
}

type BillService interface {
	SaveBill(ctx context.Context, req SaveBillRequest) (SaveBillResult, error)
	MarkPaid(ctx context.Context, id string) error
	DeleteBill(ctx context.Context, id string) error
	ListPending(ctx context.Context) ([]model.Bill, error)
	GetLineItems(ctx context.Context, id string) ([]model.BillLineItem, error)
}

type billService struct {
	repo          repository.BillRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
	taxRates      TaxRateProvider
	events        EventPublisher
	clock         Clock
	invoicePrefix string
}

// NewBillService creates a new BillService. events may be nil.
func NewBillService(
	repo repository.BillRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	taxRates TaxRateProvider,
	events EventPublisher,
	clock Clock,
	invoicePrefix string,
) BillService {
	if invoicePrefix == "" {
		invoicePrefix = invoiceno.DefaultPrefix
	}
	return &billService{
		repo:          repo,
		auditRepo:     auditRepo,
		txManager:     txManager,
		taxRates:      taxRates,
		events:        events,
		clock:         clock,
		invoicePrefix: invoicePrefix,
	}
}

// --- Implementation ---

func (s *billService) SaveBill(ctx context.Context, req SaveBillRequest) (SaveBillResult, error) {
	req.normalize()
	if err := validateStruct(req); err != nil {
		return SaveBillResult{}, err
	}

	returnDate, err := dateutil.ParseDate(req.ReturnDate, s.clock.Location)
	if err != nil {
		return SaveBillResult{}, fieldError("returnDate", "returnDate: "+err.Error())
	}

	items := make([]model.BillLineItem, 0, len(req.Items))
	for i, it := range req.Items {
		if it.Price.IsNegative() {
			return SaveBillResult{}, fieldError(itemField(i, "price"), itemField(i, "price")+" must not be negative")
		}
		items = append(items, model.BillLineItem{ItemName: it.Name, Quantity: it.Qty, UnitPrice: it.Price})
	}

	rate, err := s.taxRates.TaxRate(ctx)
	if err != nil {
		return SaveBillResult{}, storeError("Shop profile", "loading tax rate", err)
	}

	bill := &model.Bill{
		InvoiceNumber: req.InvoiceNum,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerTown:  req.CustomerTown,
		ReturnDate:    &returnDate,
		Items:         items,
	}
	bill.ComputeTotals(rate)

	if req.BillID == "" {
		return s.create(ctx, bill)
	}

	id, err := parseID("Bill", req.BillID)
	if err != nil {
		return SaveBillResult{}, err
	}
	bill.ID = id
	return s.update(ctx, bill)
}

func (s *billService) create(ctx context.Context, bill *model.Bill) (SaveBillResult, error) {
	bill.ID = uuid.New()
	bill.BillDate = s.clock.Now()
	bill.PaymentStatus = model.PaymentPending
	if bill.InvoiceNumber == "" {
		bill.InvoiceNumber = invoiceno.New(s.invoicePrefix)
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, bill); err != nil {
			return err
		}
		return writeAudit(txCtx, s.auditRepo, model.ActionCreateBill, bill.ID.String(), bill.InvoiceNumber, billAuditDetails(bill))
	})
	if err != nil {
		return SaveBillResult{}, storeError("Bill", "saving bill", err)
	}

	s.publish(EventBillSaved, bill)
	return SaveBillResult{BillID: bill.ID, Created: true}, nil
}

// update overwrites the editable fields. BillDate and PaymentStatus stay as
// stored, as does the invoice number when the request leaves it blank.
func (s *billService) update(ctx context.Context, bill *model.Bill) (SaveBillResult, error) {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if bill.InvoiceNumber == "" {
			stored, err := s.repo.FindByID(txCtx, bill.ID)
			if err != nil {
				return err
			}
			bill.InvoiceNumber = stored.InvoiceNumber
		}
		if err := s.repo.Update(txCtx, bill); err != nil {
			return err
		}
		return writeAudit(txCtx, s.auditRepo, model.ActionUpdateBill, bill.ID.String(), bill.InvoiceNumber, billAuditDetails(bill))
	})
	if err != nil {
		return SaveBillResult{}, storeError("Bill", "updating bill", err)
	}

	s.publish(EventBillSaved, bill)
	return SaveBillResult{BillID: bill.ID}, nil
}

func (s *billService) MarkPaid(ctx context.Context, id string) error {
	billID, err := parseID("Bill", id)
	if err != nil {
		return err
	}

	var paid *model.Bill
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		bill, err := s.repo.FindByID(txCtx, billID)
		if err != nil {
			return err
		}
		if bill.IsPaid() {
			return nil
		}
		if err := s.repo.MarkPaid(txCtx, billID); err != nil {
			return err
		}
		bill.PaymentStatus = model.PaymentPaid
		paid = bill
		return writeAudit(txCtx, s.auditRepo, model.ActionPayBill, bill.ID.String(), bill.InvoiceNumber, map[string]string{
			"grandTotal": bill.GrandTotal.StringFixed(2),
		})
	})
	if err != nil {
		return storeError("Bill", "updating payment", err)
	}

	if paid != nil {
		s.publish(EventBillPaid, paid)
	}
	return nil
}

func (s *billService) DeleteBill(ctx context.Context, id string) error {
	billID, err := parseID("Bill", id)
	if err != nil {
		return err
	}

	var deleted *model.Bill
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		bill, err := s.repo.FindByID(txCtx, billID)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(txCtx, billID); err != nil {
			return err
		}
		deleted = bill
		return writeAudit(txCtx, s.auditRepo, model.ActionDeleteBill, bill.ID.String(), bill.InvoiceNumber, billAuditDetails(bill))
	})
	if err != nil {
		return storeError("Bill", "deleting bill", err)
	}

	s.publish(EventBillDeleted, deleted)
	return nil
}

func (s *billService) ListPending(ctx context.Context) ([]model.Bill, error) {
	bills, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, storeError("Bill", "fetching deliveries", err)
	}

	pending := make([]model.Bill, 0, len(bills))
	for _, b := range normalizeBills(bills) {
		if b.PaymentStatus == model.PaymentPending {
			pending = append(pending, b)
		}
	}
	slices.SortStableFunc(pending, func(a, b model.Bill) int {
		return b.BillDate.Compare(a.BillDate)
	})
	return pending, nil
}

func (s *billService) GetLineItems(ctx context.Context, id string) ([]model.BillLineItem, error) {
	billID, err := parseID("Bill", id)
	if err != nil {
		return nil, err
	}

	bill, err := s.repo.FindByID(ctx, billID)
	if err != nil {
		return nil, storeError("Bill", "fetching bill items", err)
	}
	if bill.Items == nil {
		return []model.BillLineItem{}, nil
	}
	return bill.Items, nil
}

func (s *billService) publish(event string, bill *model.Bill) {
	if s.events == nil || bill == nil {
		return
	}
	s.events.Publish(event, BillEvent{
		BillID:        bill.ID.String(),
		InvoiceNumber: bill.InvoiceNumber,
		PaymentStatus: bill.PaymentStatus,
		GrandTotal:    bill.GrandTotal,
	})
}

// --- Helpers ---

func (r *SaveBillRequest) normalize() {
	r.BillID = strings.TrimSpace(r.BillID)
	r.InvoiceNum = strings.TrimSpace(r.InvoiceNum)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerPhone = strings.TrimSpace(r.CustomerPhone)
	r.CustomerTown = strings.TrimSpace(r.CustomerTown)
	r.ReturnDate = strings.TrimSpace(r.ReturnDate)
	for i := range r.Items {
		r.Items[i].Name = strings.TrimSpace(r.Items[i].Name)
	}
}

func itemField(i int, name string) string {
	return "items[" + strconv.Itoa(i) + "]." + name
}

// normalizeBills fills in the default status on every bill in place.
func normalizeBills(bills []model.Bill) []model.Bill {
	if bills == nil {
		return []model.Bill{}
	}
	for i := range bills {
		bills[i].PaymentStatus = model.NormalizeStatus(bills[i].PaymentStatus)
	}
	return bills
}

func billAuditDetails(bill *model.Bill) map[string]interface{} {
	var returnDate string
	if bill.ReturnDate != nil {
		returnDate = bill.ReturnDate.Format(time.DateOnly)
	}
	return map[string]interface{}{
		"customerName":  bill.CustomerName,
		"customerPhone": bill.CustomerPhone,
		"returnDate":    returnDate,
		"items":         len(bill.Items),
		"grandTotal":    bill.GrandTotal.StringFixed(2),
	}
}
