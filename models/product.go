package models

import (
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places prices and totals are stored with.
const PriceScale = 2

// RoundPrice rounds d half away from zero to PriceScale places, the same value
// a decimal(18,2) column keeps.
func RoundPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(PriceScale)
}

type Product struct {
	gorm.Model
	Name          string          `json:"name" gorm:"not null"`
	Barcode       *string         `json:"barcode,omitempty" gorm:"unique_index"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(18,2);not null"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null"`
	SupplierID    uint            `json:"supplier_id" gorm:"index"`
	Supplier      *Supplier       `json:"supplier,omitempty" gorm:"foreignkey:SupplierID"`
	// Version is bumped on every stock write; checkout uses it to detect
	// concurrent modification.
	Version int     `json:"version" gorm:"not null"`
	Stocks  []Stock `json:"-" gorm:"foreignkey:ProductID"`
}
