package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Stock records a quantity added to a product's inventory (initial stock or a
// restock). Sales never write here; they decrement Product.StockQuantity.
type Stock struct {
	gorm.Model
	ProductID uint      `json:"product_id" gorm:"not null;index:idx_product_stock"`
	Product   Product   `json:"-" gorm:"foreignkey:ProductID"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at" gorm:"index"`
}
