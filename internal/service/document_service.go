package service

import (
	"context"
	"encoding/base64"
	"log"
	"strings"
	"time"

	"laundrybill/internal/notify"
	"laundrybill/internal/storage"
	"laundrybill/pkg/apperror"
	"laundrybill/pkg/dateutil"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

// UploadItem accepts both the bill-form keys (name/qty/total) and the stored
// line item keys (ItemName/Quantity/TotalPrice).
type UploadItem struct {
	Name       string          `json:"name"`
	ItemName   string          `json:"ItemName"`
	Qty        int             `json:"qty"`
	Quantity   int             `json:"Quantity"`
	Total      decimal.Decimal `json:"total"`
	TotalPrice decimal.Decimal `json:"TotalPrice"`
}

type UploadBillDetails struct {
	InvoiceNum string          `json:"invoiceNum"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	ReturnDate string          `json:"returnDate"`
}

type UploadPDFRequest struct {
	PDFData       string             `json:"pdfData"`
	FileName      string             `json:"fileName"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	ShopName      string             `json:"shopName"`
	Items         []UploadItem       `json:"items"`
	BillDetails   *UploadBillDetails `json:"billDetails"`
	IsEdited      bool               `json:"isEdited"`
}

type UploadResult struct {
	FileName string
	// Notified reports whether a message was queued for the customer.
	Notified bool
}

// --- Interface ---

// DocumentService stores client-rendered invoice PDFs and notifies the customer.
type DocumentService interface {
	UploadPDF(ctx context.Context, req UploadPDFRequest) (UploadResult, error)
}

type documentService struct {
	archive       *storage.Archive
	notifier      notify.Notifier
	clock         Clock
	notifyTimeout time.Duration
}

// NewDocumentService creates a DocumentService. A nil notifier disables delivery.
func NewDocumentService(archive *storage.Archive, notifier notify.Notifier, clock Clock, notifyTimeout time.Duration) DocumentService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if notifyTimeout <= 0 {
		notifyTimeout = 30 * time.Second
	}
	return &documentService{archive: archive, notifier: notifier, clock: clock, notifyTimeout: notifyTimeout}
}

func (s *documentService) UploadPDF(_ context.Context, req UploadPDFRequest) (UploadResult, error) {
	if strings.TrimSpace(req.PDFData) == "" {
		return UploadResult{}, fieldError("pdfData", "No PDF data provided")
	}

	data, err := decodePDF(req.PDFData)
	if err != nil {
		return UploadResult{}, err
	}

	now := s.clock.Now()
	name := storage.FileName(req.FileName, req.IsEdited, now)
	saved, err := s.archive.Save(name, data, now)
	if err != nil {
		return UploadResult{}, apperror.NewPersistenceError("saving PDF", err)
	}
	log.Printf("[document] saved %s (archive: %q)", saved.LocalPath, saved.ArchivePath)

	res := UploadResult{FileName: saved.FileName}
	phone := strings.TrimSpace(req.CustomerPhone)
	if phone != "" {
		text := notify.FormatInvoice(s.invoiceFor(req), s.clock.Location)
		go s.deliver(phone, text)
		res.Notified = true
	}
	return res, nil
}

// deliver runs detached from the request; failures are only logged.
func (s *documentService) deliver(phone, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()

	if err := s.notifier.Send(ctx, phone, text); err != nil {
		if !apperror.IsKind(err, apperror.KindDelivery) {
			err = apperror.NewDeliveryError(err)
		}
		log.Printf("[document] notification failed: %v", err)
	}
}

func (s *documentService) invoiceFor(req UploadPDFRequest) notify.Invoice {
	inv := notify.Invoice{
		ShopName:     req.ShopName,
		CustomerName: req.CustomerName,
		GrandTotal:   decimal.Zero,
	}
	if d := req.BillDetails; d != nil {
		inv.InvoiceNumber = d.InvoiceNum
		inv.GrandTotal = d.GrandTotal
		if rd, err := dateutil.ParseDate(d.ReturnDate, s.clock.Location); err == nil {
			inv.ReturnDate = &rd
		}
	}
	for _, it := range req.Items {
		line := notify.InvoiceLine{Name: it.Name, Qty: it.Qty, Total: it.Total}
		if line.Name == "" {
			line.Name = it.ItemName
		}
		if line.Qty == 0 {
			line.Qty = it.Quantity
		}
		if line.Total.IsZero() {
			line.Total = it.TotalPrice
		}
		inv.Items = append(inv.Items, line)
	}
	return inv
}

// decodePDF strips a data URI header ("data:application/pdf;...;base64,")
// and decodes the payload.
func decodePDF(raw string) ([]byte, error) {
	payload := strings.TrimSpace(raw)
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ";base64,")
		if idx < 0 {
			return nil, fieldError("pdfData", "pdfData must be base64 encoded")
		}
		payload = payload[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fieldError("pdfData", "pdfData is not valid base64")
	}
	if len(data) == 0 {
		return nil, fieldError("pdfData", "No PDF data provided")
	}
	return data, nil
}
