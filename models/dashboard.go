package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dashboardLowStockItems = 5
	dashboardTopProducts   = 5
	dashboardRecentOrders  = 10
)

type ProductSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type OrderRevenue struct {
	InvoiceNumber string          `json:"invoice_number"`
	Total         decimal.Decimal `json:"total"`
	OrderDate     time.Time       `json:"order_date"`
}

type DashboardSummary struct {
	TotalProducts    int             `json:"total_products"`
	LowStockCount    int             `json:"low_stock_count"`
	LowStockProducts []Product       `json:"low_stock_products"`
	TotalOrders      int             `json:"total_orders"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TopProducts      []ProductSales  `json:"top_products"`
	RecentOrders     []OrderRevenue  `json:"recent_orders"`
}

// BuildDashboard aggregates the catalog and the ledger. Lines are expected to
// have Product preloaded; lines without one count under "Unknown".
func BuildDashboard(products []Product, lines []SalesOrderLine, lowStockThreshold int) DashboardSummary {
	summary := DashboardSummary{
		TotalProducts:    len(products),
		TotalRevenue:     decimal.Zero,
		LowStockProducts: []Product{},
		TopProducts:      []ProductSales{},
		RecentOrders:     []OrderRevenue{},
	}

	for _, p := range products {
		if p.StockQuantity < lowStockThreshold {
			summary.LowStockCount++
			summary.LowStockProducts = append(summary.LowStockProducts, p)
		}
	}
	sort.SliceStable(summary.LowStockProducts, func(i, j int) bool {
		return summary.LowStockProducts[i].StockQuantity < summary.LowStockProducts[j].StockQuantity
	})
	if len(summary.LowStockProducts) > dashboardLowStockItems {
		summary.LowStockProducts = summary.LowStockProducts[:dashboardLowStockItems]
	}

	sold := make(map[string]int)
	var names []string
	for _, line := range lines {
		summary.TotalRevenue = summary.TotalRevenue.Add(line.TotalAmount)
		name := "Unknown"
		if line.Product != nil && line.Product.Name != "" {
			name = line.Product.Name
		}
		if _, ok := sold[name]; !ok {
			names = append(names, name)
		}
		sold[name] += line.Quantity
	}
	for _, name := range names {
		summary.TopProducts = append(summary.TopProducts, ProductSales{Name: name, Quantity: sold[name]})
	}
	sort.SliceStable(summary.TopProducts, func(i, j int) bool {
		return summary.TopProducts[i].Quantity > summary.TopProducts[j].Quantity
	})
	if len(summary.TopProducts) > dashboardTopProducts {
		summary.TopProducts = summary.TopProducts[:dashboardTopProducts]
	}

	orders := GroupOrders(lines)
	summary.TotalOrders = len(orders)
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	if len(orders) > dashboardRecentOrders {
		orders = orders[:dashboardRecentOrders]
	}
	// oldest first, for charting
	for i := len(orders) - 1; i >= 0; i-- {
		summary.RecentOrders = append(summary.RecentOrders, OrderRevenue{
			InvoiceNumber: orders[i].InvoiceNumber,
			Total:         orders[i].Total,
			OrderDate:     orders[i].OrderDate,
		})
	}

	return summary
}
