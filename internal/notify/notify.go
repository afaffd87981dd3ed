// Package notify delivers invoice summaries to customers over WhatsApp.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Notifier sends a text message to a customer's phone number.
type Notifier interface {
	Send(ctx context.Context, phone, text string) error
}

// Nop discards messages. Used when WhatsApp delivery is disabled.
type Nop struct{}

func (Nop) Send(_ context.Context, phone, _ string) error {
	log.Printf("notify: delivery disabled, skipping message to %s", maskPhone(phone))
	return nil
}

// Invoice is the data printed in the customer message.
type Invoice struct {
	ShopName      string
	CustomerName  string
	InvoiceNumber string
	GrandTotal    decimal.Decimal
	ReturnDate    *time.Time
	Items         []InvoiceLine
}

type InvoiceLine struct {
	Name  string
	Qty   int
	Total decimal.Decimal
}

const currency = "₹"

// FormatInvoice renders the WhatsApp text for a saved invoice. Dates are
// printed in loc as DD/MM/YYYY.
func FormatInvoice(inv Invoice, loc *time.Location) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s*\n\n", fallback(inv.ShopName, "Laundry"))
	fmt.Fprintf(&b, "Hello %s,\n", fallback(inv.CustomerName, "Customer"))
	b.WriteString("Thank you for choosing us! Here are your bill details:\n\n")
	if inv.InvoiceNumber != "" {
		fmt.Fprintf(&b, "*Invoice:* %s\n", inv.InvoiceNumber)
	}
	if inv.ReturnDate != nil {
		fmt.Fprintf(&b, "*Return Date:* %s\n", inv.ReturnDate.In(loc).Format("02/01/2006"))
	}

	if len(inv.Items) > 0 {
		b.WriteString("\n*Items:*\n")
		for _, item := range inv.Items {
			fmt.Fprintf(&b, "- %s x %d = %s%s\n", item.Name, item.Qty, currency, item.Total.StringFixed(2))
		}
	}

	fmt.Fprintf(&b, "\n*Total Amount:* %s%s\n\n", currency, inv.GrandTotal.StringFixed(2))
	b.WriteString("Your invoice PDF has been saved. Please contact us for any queries.")
	return b.String()
}

// ChatID builds the gateway recipient id: country code + digits + "@c.us".
func ChatID(countryCode, phone string) string {
	return countryCode + digits(phone) + "@c.us"
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func maskPhone(phone string) string {
	d := digits(phone)
	if len(d) <= 4 {
		return d
	}
	return strings.Repeat("*", len(d)-4) + d[len(d)-4:]
}
