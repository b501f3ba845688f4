package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrderLine is one ledger row: a single product sold under an invoice.
// UnitPrice and TotalAmount are snapshots taken at the moment of sale.
type SalesOrderLine struct {
	ID            uint            `json:"id" gorm:"primary_key"`
	InvoiceNumber string          `json:"invoice_number" gorm:"not null;index"`
	OrderDate     time.Time       `json:"order_date" gorm:"not null;index"`
	SalesPersonID string          `json:"sales_person_id"`
	ProductID     uint            `json:"product_id" gorm:"not null;index"`
	Product       *Product        `json:"product,omitempty" gorm:"foreignkey:ProductID;association_autoupdate:false;association_autocreate:false"`
	Quantity      int             `json:"quantity" gorm:"not null"`
	UnitPrice     decimal.Decimal `json:"unit_price" gorm:"type:decimal(18,2);not null"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(18,2);not null"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (SalesOrderLine) TableName() string {
	return "orders"
}

// LineTotal returns quantity × unit price.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Order is the virtual grouping of all ledger lines sharing an invoice number.
type Order struct {
	InvoiceNumber string           `json:"invoice_number"`
	OrderDate     time.Time        `json:"order_date"`
	SalesPersonID string           `json:"sales_person_id"`
	Total         decimal.Decimal  `json:"total"`
	Lines         []SalesOrderLine `json:"lines"`
}

// GroupOrders folds ledger lines into orders, keeping the order in which each
// invoice number is first seen.
func GroupOrders(lines []SalesOrderLine) []Order {
	index := make(map[string]int)
	var orders []Order
	for _, line := range lines {
		i, ok := index[line.InvoiceNumber]
		if !ok {
			i = len(orders)
			index[line.InvoiceNumber] = i
			orders = append(orders, Order{
				InvoiceNumber: line.InvoiceNumber,
				OrderDate:     line.OrderDate,
				SalesPersonID: line.SalesPersonID,
				Total:         decimal.Zero,
			})
		}
		orders[i].Lines = append(orders[i].Lines, line)
		orders[i].Total = orders[i].Total.Add(line.TotalAmount)
	}
	return orders
}
