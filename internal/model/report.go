package model

import "github.com/shopspring/decimal"

// DashboardSummary is the landing-screen snapshot.
type DashboardSummary struct {
	Today             DaySales      `json:"today"`
	PendingDeliveries int           `json:"pendingDeliveries"`
	TopItems          []ItemRanking `json:"topItems"`
}

// DaySales holds revenue and order count for one calendar day
type DaySales struct {
	Revenue decimal.Decimal `json:"Revenue"`
	Orders  int             `json:"Orders"`
}

// ItemRanking represents an item ranked by cumulative quantity across all bills
type ItemRanking struct {
	ItemName string `json:"ItemName"`
	TotalQty int    `json:"TotalQty"`
}

// MonthlySales is one (month, year) group of bills.
type MonthlySales struct {
	MonthName   string          `json:"MonthName"`
	Year        int             `json:"Year"`
	MonthNum    int             `json:"MonthNum"`
	TotalSales  decimal.Decimal `json:"TotalSales"`
	TotalOrders int             `json:"TotalOrders"`
}
