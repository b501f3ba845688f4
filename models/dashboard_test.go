package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDashboard(t *testing.T) {
	products := []Product{
		{Name: "tea", StockQuantity: 3},
		{Name: "milk", StockQuantity: 20},
		{Name: "sugar", StockQuantity: 0},
	}
	tea, milk := products[0], products[1]

	at := time.Date(2026, 1, 16, 9, 0, 0, 0, time.UTC)
	first := line("INV-1", 1, 2, "1.00", at)
	first.Product = &tea
	second := line("INV-1", 2, 5, "2.00", at)
	second.Product = &milk
	third := line("INV-2", 9, 1, "4.00", at.Add(time.Hour))

	summary := BuildDashboard(products, []SalesOrderLine{first, second, third}, 5)

	assert.Equal(t, 3, summary.TotalProducts)
	assert.Equal(t, 2, summary.LowStockCount)
	require.Len(t, summary.LowStockProducts, 2)
	assert.Equal(t, "sugar", summary.LowStockProducts[0].Name)
	assert.Equal(t, 2, summary.TotalOrders)
	assert.Equal(t, "16", summary.TotalRevenue.String())

	require.Len(t, summary.TopProducts, 3)
	assert.Equal(t, ProductSales{Name: "milk", Quantity: 5}, summary.TopProducts[0])
	assert.Equal(t, "Unknown", summary.TopProducts[2].Name)

	require.Len(t, summary.RecentOrders, 2)
	assert.Equal(t, "INV-1", summary.RecentOrders[0].InvoiceNumber)
	assert.Equal(t, "INV-2", summary.RecentOrders[1].InvoiceNumber)
	assert.Equal(t, "12", summary.RecentOrders[0].Total.String())
}

func TestBuildDashboardTruncates(t *testing.T) {
	var products []Product
	var lines []SalesOrderLine
	at := time.Date(2026, 1, 16, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		p := Product{Name: fmt.Sprintf("p%d", i), StockQuantity: i}
		products = append(products, p)
		l := line(fmt.Sprintf("INV-%02d", i), uint(i+1), i+1, "1", at.Add(time.Duration(i)*time.Minute))
		l.Product = &products[i]
		lines = append(lines, l)
	}

	summary := BuildDashboard(products, lines, 100)

	assert.Equal(t, 12, summary.LowStockCount)
	assert.Len(t, summary.LowStockProducts, 5)
	assert.Len(t, summary.TopProducts, 5)
	assert.Equal(t, "p11", summary.TopProducts[0].Name)
	require.Len(t, summary.RecentOrders, 10)
	assert.Equal(t, "INV-02", summary.RecentOrders[0].InvoiceNumber)
	assert.Equal(t, "INV-11", summary.RecentOrders[9].InvoiceNumber)
}
