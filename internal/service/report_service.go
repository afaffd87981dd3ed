package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"laundrybill/internal/model"
	"laundrybill/internal/repository"
	"laundrybill/pkg/dateutil"

	"github.com/shopspring/decimal"
)

const (
	// FinancialReportLimit caps the financial report to the latest bills.
	FinancialReportLimit = 100
	topItemsLimit        = 5
)

// --- Interface ---

// ReportService derives read-only views from the stored bills. It never caches;
// every call reflects the store at call time.
type ReportService interface {
	Dashboard(ctx context.Context) (model.DashboardSummary, error)
	Financial(ctx context.Context) ([]model.Bill, error)
	Overdue(ctx context.Context) ([]model.Bill, error)
	Operational(ctx context.Context) ([]model.Bill, error)
	MonthlySales(ctx context.Context) ([]model.MonthlySales, error)
}

type reportService struct {
	repo  repository.BillRepository
	clock Clock
}

func NewReportService(repo repository.BillRepository, clock Clock) ReportService {
	return &reportService{repo: repo, clock: clock}
}

// --- Implementation ---

func (s *reportService) Dashboard(ctx context.Context) (model.DashboardSummary, error) {
	bills, err := s.repo.ListAll(ctx)
	if err != nil {
		return model.DashboardSummary{}, storeError("Bill", "fetching dashboard", err)
	}

	now := s.clock.Now()
	summary := model.DashboardSummary{
		Today:    model.DaySales{Revenue: decimal.Zero},
		TopItems: []model.ItemRanking{},
	}

	rankIndex := make(map[string]int)
	for _, b := range bills {
		if dateutil.SameDay(b.BillDate, now, s.clock.Location) {
			summary.Today.Revenue = summary.Today.Revenue.Add(b.GrandTotal)
			summary.Today.Orders++
		}
		if awaitingReturn(b, now, true) {
			summary.PendingDeliveries++
		}
		for _, item := range b.Items {
			idx, seen := rankIndex[item.ItemName]
			if !seen {
				idx = len(summary.TopItems)
				rankIndex[item.ItemName] = idx
				summary.TopItems = append(summary.TopItems, model.ItemRanking{ItemName: item.ItemName})
			}
			summary.TopItems[idx].TotalQty += item.Quantity
		}
	}

	// Stable sort keeps first-encountered order between equal quantities.
	slices.SortStableFunc(summary.TopItems, func(a, b model.ItemRanking) int {
		return cmp.Compare(b.TotalQty, a.TotalQty)
	})
	if len(summary.TopItems) > topItemsLimit {
		summary.TopItems = summary.TopItems[:topItemsLimit]
	}

	return summary, nil
}

func (s *reportService) Financial(ctx context.Context) ([]model.Bill, error) {
	bills, err := s.repo.ListRecent(ctx, FinancialReportLimit)
	if err != nil {
		return nil, storeError("Bill", "fetching report", err)
	}
	return normalizeBills(bills), nil
}

// Overdue lists unpaid bills whose return date has strictly passed.
func (s *reportService) Overdue(ctx context.Context) ([]model.Bill, error) {
	return s.undelivered(ctx, false)
}

// Operational lists unpaid bills due now or earlier.
func (s *reportService) Operational(ctx context.Context) ([]model.Bill, error) {
	return s.undelivered(ctx, true)
}

func (s *reportService) undelivered(ctx context.Context, inclusive bool) ([]model.Bill, error) {
	bills, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, storeError("Bill", "fetching report", err)
	}

	now := s.clock.Now()
	out := make([]model.Bill, 0)
	for _, b := range normalizeBills(bills) {
		if awaitingReturn(b, now, inclusive) {
			out = append(out, b)
		}
	}

	slices.SortStableFunc(out, func(a, b model.Bill) int {
		return a.ReturnDate.Compare(*b.ReturnDate)
	})
	return out, nil
}

// awaitingReturn reports whether an unpaid bill is due by now. Bills without a
// return date are never due.
func awaitingReturn(b model.Bill, now time.Time, inclusive bool) bool {
	if b.IsPaid() || b.ReturnDate == nil {
		return false
	}
	if inclusive {
		return !b.ReturnDate.After(now)
	}
	return b.ReturnDate.Before(now)
}

func (s *reportService) MonthlySales(ctx context.Context) ([]model.MonthlySales, error) {
	bills, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, storeError("Bill", "fetching report", err)
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	groups := make(map[monthKey]*model.MonthlySales)
	for _, b := range bills {
		t := b.BillDate.In(s.clock.Location)
		key := monthKey{year: t.Year(), month: t.Month()}
		g, ok := groups[key]
		if !ok {
			g = &model.MonthlySales{
				MonthName:  t.Month().String(),
				Year:       t.Year(),
				MonthNum:   int(t.Month()),
				TotalSales: decimal.Zero,
			}
			groups[key] = g
		}
		g.TotalSales = g.TotalSales.Add(b.GrandTotal)
		g.TotalOrders++
	}

	out := make([]model.MonthlySales, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	slices.SortFunc(out, func(a, b model.MonthlySales) int {
		if c := cmp.Compare(b.Year, a.Year); c != 0 {
			return c
		}
		return cmp.Compare(b.MonthNum, a.MonthNum)
	})
	return out, nil
}
